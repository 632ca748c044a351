package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	to, name string
	err      error
}

func (f *fakeMailer) SendWelcomeEmail(to, name string) error {
	f.to, f.name = to, name
	return f.err
}

func newTestService(m WelcomeSender) *JobService {
	logger := zerolog.Nop()
	return &JobService{logger: &logger, mailer: m}
}

func TestNewWelcomeEmailTask(t *testing.T) {
	task, err := NewWelcomeEmailTask("a@example.com", "Alice")
	require.NoError(t, err)

	assert.Equal(t, TaskWelcome, task.Type())

	var p WelcomeEmailPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &p))
	assert.Equal(t, WelcomeEmailPayload{To: "a@example.com", Name: "Alice"}, p)
}

func TestHandleWelcomeEmailTask(t *testing.T) {
	mailer := &fakeMailer{}
	svc := newTestService(mailer)

	task, err := NewWelcomeEmailTask("a@example.com", "Alice")
	require.NoError(t, err)

	require.NoError(t, svc.handleWelcomeEmailTask(context.Background(), task))
	assert.Equal(t, "a@example.com", mailer.to)
	assert.Equal(t, "Alice", mailer.name)
}

func TestHandleWelcomeEmailTaskSendFailure(t *testing.T) {
	boom := errors.New("provider down")
	svc := newTestService(&fakeMailer{err: boom})

	task, err := NewWelcomeEmailTask("a@example.com", "Alice")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.handleWelcomeEmailTask(context.Background(), task), boom)
}

func TestHandleWelcomeEmailTaskBadPayload(t *testing.T) {
	svc := newTestService(&fakeMailer{})

	err := svc.handleWelcomeEmailTask(context.Background(), asynq.NewTask(TaskWelcome, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestHandleWelcomeEmailTaskWithoutMailer(t *testing.T) {
	svc := newTestService(nil)

	task, err := NewWelcomeEmailTask("a@example.com", "Alice")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.handleWelcomeEmailTask(context.Background(), task), errNoMailer)
}
