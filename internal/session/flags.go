package session

import "context"

// FlagStore persiste el flag de segundo factor por sesión. El flag nunca se
// borra explícitamente: expira con el TTL de la sesión.
type FlagStore interface {
	// Get retorna true si la sesión ya completó el segundo factor.
	Get(ctx context.Context, sessionID string) (bool, error)

	// Set marca la sesión como autenticada.
	Set(ctx context.Context, sessionID string) error
}
