package job

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

const (
	TaskWelcome             = "email:welcome"
	TaskRevenueTableUpdated = "revenue:table_updated"
)

type WelcomeEmailPayload struct {
	To       string `json:"to"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

func NewWelcomeEmailTask(p WelcomeEmailPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskWelcome,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}

// RevenueTableUpdatedPayload describes a replaced revenue table. NotifyEmail
// is the company contact address; no email is sent when it is empty.
type RevenueTableUpdatedPayload struct {
	CompanyID        uuid.UUID `json:"company_id"`
	CompanyName      string    `json:"company_name"`
	Year             int       `json:"year"`
	IndustryTypeSlug string    `json:"industry_type_slug"`
	IndustryTypeName string    `json:"industry_type_name"`
	SourceSlug       string    `json:"source_slug"`
	SourceName       string    `json:"source_name"`
	RowCount         int       `json:"row_count"`
	NotifyEmail      string    `json:"notify_email,omitempty"`
}

func NewRevenueTableUpdatedTask(p RevenueTableUpdatedPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskRevenueTableUpdated,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("low"),
		asynq.Timeout(30*time.Second),
	), nil
}
