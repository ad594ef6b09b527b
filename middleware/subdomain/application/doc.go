// Package application contém os casos de uso do roteamento por subdomínio.
//
// Ele depende apenas do pacote domain e não conhece net/http.
// Ex.: Resolver.Resolve(host) devolve o token de subdomínio e
// Dispatch(ctx, table) escolhe exatamente um handler (ou NotFound).
package application
