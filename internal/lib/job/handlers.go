package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/deppfellow/directory/internal/config"
	"github.com/deppfellow/directory/internal/lib/email"
)

// EmailSender is the part of *email.Client the task handlers use.
type EmailSender interface {
	SendWelcomeEmail(to, fullName, role string) error
	SendRevenueUpdatedEmail(to string, u email.RevenueUpdate) error
}

// InitHandlers builds the dependencies of the task handlers.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger) {
	j.email = email.NewClient(cfg, logger)
}

func (j *JobService) handleWelcomeEmailTask(ctx context.Context, t *asynq.Task) error {
	var p WelcomeEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal welcome email payload: %w", err)
	}

	j.logger.Info().
		Str("type", "welcome").
		Str("to", p.To).
		Msg("Processing welcome email task")

	if err := j.email.SendWelcomeEmail(p.To, p.FullName, p.Role); err != nil {
		j.logger.Error().
			Str("type", "welcome").
			Str("to", p.To).
			Err(err).
			Msg("Failed to send welcome email")
		return err
	}

	j.logger.Info().
		Str("type", "welcome").
		Str("to", p.To).
		Msg("Successfully sent welcome email")

	return nil
}

func (j *JobService) handleRevenueTableUpdatedTask(ctx context.Context, t *asynq.Task) error {
	var p RevenueTableUpdatedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal revenue table payload: %w", err)
	}

	logger := j.logger.With().
		Str("type", "revenue_table_updated").
		Str("company_id", p.CompanyID.String()).
		Int("year", p.Year).
		Str("industry_type_slug", p.IndustryTypeSlug).
		Str("source_slug", p.SourceSlug).
		Int("row_count", p.RowCount).
		Logger()

	if p.NotifyEmail == "" {
		logger.Info().Msg("Revenue table updated, company has no contact email")
		return nil
	}

	err := j.email.SendRevenueUpdatedEmail(p.NotifyEmail, email.RevenueUpdate{
		CompanyName:      p.CompanyName,
		IndustryTypeName: p.IndustryTypeName,
		SourceName:       p.SourceName,
		Year:             p.Year,
		RowCount:         p.RowCount,
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to send revenue update email")
		return err
	}

	logger.Info().Msg("Sent revenue update email")
	return nil
}
