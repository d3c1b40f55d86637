// Package middleware provides composable wrappers around a SessionStore.
package middleware

import "github.com/ledscape/intake/pkg/ports"

// Middleware wraps a SessionStore to add behavior on the way in or out.
type Middleware func(ports.SessionStore) ports.SessionStore

// Chain applies middlewares right to left, so the first listed wraps outermost.
func Chain(store ports.SessionStore, mws ...Middleware) ports.SessionStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}
