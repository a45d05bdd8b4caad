// Package delivery holds the front ends that drive the roster use cases.
package delivery

import "context"

// Delivery is a front end started by the application lifecycle.
// Serve blocks until the front end is done.
type Delivery interface {
	Serve(ctx context.Context) error
}
