package domain

import "errors"

// Erros de configuração. Só fazem sentido na inicialização: uma tabela vazia
// ou ambígua é erro de programação e deve derrubar o processo.
var (
	ErrEmptyTable      = errors.New("route table is empty")
	ErrNilMatcher      = errors.New("route has nil matcher")
	ErrEmptyHandler    = errors.New("route has empty handler id")
	ErrReservedHandler = errors.New("route uses reserved not-found handler id")
	ErrDuplicateRoute  = errors.New("duplicate route matcher")
	ErrRouteCount      = errors.New("unexpected route count")
	ErrUnknownHandler  = errors.New("no handler registered for route")
)
