// Package delivery defines the contract every transport entrypoint implements.
package delivery

import "context"

// Delivery is a long-running transport server. Implementations block in Serve
// until the server stops; shutdown runs through the fx lifecycle.
type Delivery interface {
	Serve(ctx context.Context) error
}
