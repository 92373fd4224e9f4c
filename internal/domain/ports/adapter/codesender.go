package adapter

import "context"

// CodeSender delivers a verification code to an address. Implementations:
// SMTP for real deployments, a logging no-op for dev mode.
type CodeSender interface {
	SendCode(ctx context.Context, email, code string) error
}
