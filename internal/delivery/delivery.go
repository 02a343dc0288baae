// Package delivery defines the contract every transport entry point of the
// application fulfills.
package delivery

import "context"

// Delivery is a long-running transport server, started by main and stopped
// through the Fx lifecycle.
type Delivery interface {
	// Serve blocks until the server stops or fails.
	Serve(ctx context.Context) error
}
