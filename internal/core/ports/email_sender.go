package ports

import "context"

// VerificationSender dispatches account-activation emails through the
// external email endpoint.
type VerificationSender interface {
	Send(ctx context.Context, email, fullname, token string) error
}
