package mail

import (
	"context"

	"article-hub/internal/domain/ports/adapter"

	"github.com/rs/zerolog"
)

var _ adapter.CodeSender = (*NoopSender)(nil)

// NoopSender logs the code instead of delivering it. Used in dev mode so
// the wizard can be exercised without a mail server.
type NoopSender struct {
	log *zerolog.Logger
}

func NewNoopSender(logger *zerolog.Logger) *NoopSender {
	return &NoopSender{log: logger}
}

func (s *NoopSender) SendCode(ctx context.Context, email, code string) error {
	s.log.Info().Str("to", email).Str("code", code).Msg("dev mode: verification code not mailed")
	return nil
}
