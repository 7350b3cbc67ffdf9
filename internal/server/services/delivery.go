package services

import (
	"context"

	"github.com/dcastano/authd/internal/logging"
)

// ResetDelivery hands a freshly minted reset token to whatever notifies the
// user out of band. The orchestrator only guarantees the token's existence
// and validity window.
type ResetDelivery interface {
	SendResetToken(ctx context.Context, email string, token string) error
}

// LogDelivery writes the token to the log. It stands in for a real mail
// sender in development deployments.
type LogDelivery struct {
	logger logging.Logger
}

func NewLogDelivery(l logging.Logger) *LogDelivery {
	return &LogDelivery{logger: l.With("module", "reset_delivery")}
}

func (d *LogDelivery) SendResetToken(ctx context.Context, email string, token string) error {
	d.logger.Info(ctx, "password reset token issued", "email", email, "token", token)
	return nil
}
