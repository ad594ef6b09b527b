// Package subdomain fornece o adapter HTTP (net/http) do roteamento por subdomínio.
//
// Visão geral (camadas):
//
//   - domain: contratos e tipos (Pattern, RouteDefinition, DispatchResult), sem net/http
//   - application: Resolver, Table e Dispatch, funções puras
//   - infra: domínio base (publicsuffix), throttling (x/time/rate), stats (memória/Redis), arquivo YAML
//   - subdomain (este pacote): extrai host/path da requisição e monta o handler escolhido
//
// Fluxo no gateway:
//
//  1. Extrai o host (Host ou X-Forwarded-Host confiável) e o path
//  2. Resolver normaliza o subdomínio e Dispatch escolhe o handler
//  3. Se o subdomínio estourou o limite, responde 429
//  4. Senão monta o handler registrado (ou o NotFound)
//
// O resultado do dispatch fica no context da requisição (FromContext).
package subdomain
