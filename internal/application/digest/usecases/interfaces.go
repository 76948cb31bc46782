package usecases

import "context"

// Sender delivers one HTML digest.
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}
