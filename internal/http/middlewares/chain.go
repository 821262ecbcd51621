// Package middlewares agrupa los middlewares HTTP del servicio.
package middlewares

import "net/http"

// Middleware es el tipo estándar de middleware del servicio.
type Middleware func(http.Handler) http.Handler

// Chain compone middlewares de izquierda a derecha: el primero de la lista es
// el más externo (el primero en ejecutar).
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
