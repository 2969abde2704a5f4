// Package actor carries the resolved caller context for the current request.
//
// The authorization guard resolves the session credential exactly once at the
// request boundary and stores a Caller here; handlers never read cookies or
// headers mid-flight.
package actor

import (
	"context"
	"fmt"
)

// Roles recognized by the back office.
const (
	RoleAdmin = "admin"
	RoleStore = "store"
)

// Caller is the resolved identity, role and store scope of the request.
type Caller struct {
	// IdentityID is the identity provider's id for the caller.
	IdentityID string `json:"identity_id"`

	// CompanyCode identifies the caller's company/store account. For store
	// users it doubles as the store identifier used to scope queries.
	CompanyCode string `json:"company_code"`

	// Role is the caller's role, one of RoleAdmin or RoleStore.
	Role string `json:"role"`

	// StoreName is the display name of the caller's store, empty for
	// headquarters users.
	StoreName string `json:"store_name,omitempty"`
}

// IsAdmin reports whether the caller is a headquarters user.
func (c *Caller) IsAdmin() bool {
	return c != nil && c.Role == RoleAdmin
}

// IsStore reports whether the caller is scoped to a single store.
func (c *Caller) IsStore() bool {
	return c != nil && c.Role == RoleStore
}

// String returns a string representation of the caller for logging
func (c *Caller) String() string {
	if c == nil {
		return "anonymous"
	}
	return fmt.Sprintf("%s (%s)", c.CompanyCode, c.Role)
}

// contextKey is the type for context keys to avoid collisions
type contextKey string

const callerContextKey contextKey = "caller"

// FromContext retrieves the Caller from the context.
// Returns nil if no caller is present.
func FromContext(ctx context.Context) *Caller {
	if ctx == nil {
		return nil
	}
	caller, ok := ctx.Value(callerContextKey).(*Caller)
	if !ok {
		return nil
	}
	return caller
}

// WithCaller returns a new context with the Caller attached.
func WithCaller(ctx context.Context, c *Caller) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, callerContextKey, c)
}

// MustFromContext retrieves the Caller from the context.
// Panics if no caller is present. Use only behind the session middleware.
func MustFromContext(ctx context.Context) *Caller {
	caller := FromContext(ctx)
	if caller == nil {
		panic("caller not found in context")
	}
	return caller
}
