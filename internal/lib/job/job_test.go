package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/directory/internal/lib/email"
)

type mockEnqueuer struct {
	mock.Mock
}

func (m *mockEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	args := m.Called(ctx, task)
	info, _ := args.Get(0).(*asynq.TaskInfo)
	return info, args.Error(1)
}

func (m *mockEnqueuer) Close() error { return nil }

type mockSender struct {
	mock.Mock
}

func (m *mockSender) SendWelcomeEmail(to, fullName, role string) error {
	return m.Called(to, fullName, role).Error(0)
}

func (m *mockSender) SendRevenueUpdatedEmail(to string, u email.RevenueUpdate) error {
	return m.Called(to, u).Error(0)
}

func newTestService(enq enqueuer, sender EmailSender) *JobService {
	logger := zerolog.Nop()
	return &JobService{Client: enq, logger: &logger, email: sender}
}

func revenuePayload() RevenueTableUpdatedPayload {
	return RevenueTableUpdatedPayload{
		CompanyID:        uuid.MustParse("0b8e2d55-3f3a-4f61-9d4b-5b7c2b4a9e01"),
		CompanyName:      "Acme",
		Year:             2024,
		IndustryTypeSlug: "saas",
		IndustryTypeName: "SaaS",
		SourceSlug:       "subscriptions",
		SourceName:       "Subscriptions",
		RowCount:         4,
		NotifyEmail:      "owner@acme.test",
	}
}

func TestEnqueueRevenueTableUpdated(t *testing.T) {
	enq := &mockEnqueuer{}
	enq.On("EnqueueContext", mock.Anything, mock.MatchedBy(func(task *asynq.Task) bool {
		var p RevenueTableUpdatedPayload
		return task.Type() == TaskRevenueTableUpdated &&
			json.Unmarshal(task.Payload(), &p) == nil &&
			p == revenuePayload()
	})).Return(&asynq.TaskInfo{ID: "t1", Queue: "low"}, nil)

	err := newTestService(enq, nil).EnqueueRevenueTableUpdated(context.Background(), revenuePayload())
	require.NoError(t, err)
	enq.AssertExpectations(t)
}

func TestEnqueueWelcomeEmail_Error(t *testing.T) {
	enq := &mockEnqueuer{}
	enq.On("EnqueueContext", mock.Anything, mock.Anything).Return(nil, errors.New("redis down"))

	err := newTestService(enq, nil).EnqueueWelcomeEmail(context.Background(), WelcomeEmailPayload{To: "a@example.com"})
	assert.ErrorContains(t, err, "email:welcome")
	assert.ErrorContains(t, err, "redis down")
}

func TestHandleRevenueTableUpdated_SendsToContact(t *testing.T) {
	sender := &mockSender{}
	sender.On("SendRevenueUpdatedEmail", "owner@acme.test", email.RevenueUpdate{
		CompanyName:      "Acme",
		IndustryTypeName: "SaaS",
		SourceName:       "Subscriptions",
		Year:             2024,
		RowCount:         4,
	}).Return(nil)

	task, err := NewRevenueTableUpdatedTask(revenuePayload())
	require.NoError(t, err)

	require.NoError(t, newTestService(nil, sender).handleRevenueTableUpdatedTask(context.Background(), task))
	sender.AssertExpectations(t)
}

func TestHandleRevenueTableUpdated_NoContact(t *testing.T) {
	sender := &mockSender{}
	p := revenuePayload()
	p.NotifyEmail = ""

	task, err := NewRevenueTableUpdatedTask(p)
	require.NoError(t, err)

	require.NoError(t, newTestService(nil, sender).handleRevenueTableUpdatedTask(context.Background(), task))
	sender.AssertNotCalled(t, "SendRevenueUpdatedEmail", mock.Anything, mock.Anything)
}

func TestHandleWelcomeEmail_PropagatesFailure(t *testing.T) {
	sender := &mockSender{}
	sender.On("SendWelcomeEmail", "a@example.com", "Ann", "viewer").Return(errors.New("bounce"))

	task, err := NewWelcomeEmailTask(WelcomeEmailPayload{To: "a@example.com", FullName: "Ann", Role: "viewer"})
	require.NoError(t, err)

	err = newTestService(nil, sender).handleWelcomeEmailTask(context.Background(), task)
	assert.EqualError(t, err, "bounce")
}

func TestHandleWelcomeEmail_BadPayload(t *testing.T) {
	task := asynq.NewTask(TaskWelcome, []byte("{"))
	err := newTestService(nil, &mockSender{}).handleWelcomeEmailTask(context.Background(), task)
	assert.Error(t, err)
}
