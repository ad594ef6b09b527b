// Package commands implementa o CLI routectl: inspeciona a tabela de rotas,
// resolve hostnames e simula o dispatch sem subir o gateway.
package commands
