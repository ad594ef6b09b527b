// Package domain define contratos e tipos de domínio para o roteamento por subdomínio.
//
// Este pacote não depende de net/http nem de implementações concretas.
// Resolver, tabela e dispatcher vivem em application; bibliotecas externas
// (publicsuffix, x/time/rate, redis) ficam em infra.
package domain
