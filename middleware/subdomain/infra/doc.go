// Package infra contém implementações concretas para os contratos do pacote domain.
//
// Exemplos:
//   - StaticBaseDomains / PublicSuffix: domínio base para o Resolver
//   - LimiterStore: token bucket por subdomínio usando golang.org/x/time/rate
//   - MemoryStatsStore / RedisStatsStore: estatísticas de dispatch
//   - LoadRouteFile: tabela de rotas declarada em YAML
package infra
