package ports

import "context"

// Mailer sends one message to one recipient. Implementations own transport
// details and per-send deadlines; callers treat a returned error as a failed
// attempt and never retry.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}
