package auth

import "context"

// Provider authenticates the household session. There is one shared
// password for the dashboard, not per-user credentials; the two user slots
// are picked inside the app after login.
type Provider interface {
	Login(ctx context.Context, password string) (string, error)
	Verify(ctx context.Context, token string) error
}
