package domain

// BaseDomainFinder encontra o domínio registrado (base) de um host já normalizado.
//
// Ex.: "billing.example.com" -> ("example.com", true).
// Retorna ok=false quando não há base conhecida (ex: "localhost").
type BaseDomainFinder interface {
	BaseDomain(host string) (base string, ok bool)
}
