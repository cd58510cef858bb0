package email

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"blogpress-backend/internal/shared"
)

// AsyncDispatcher enqueue email tasks lên Redis thay vì gửi inline
// Worker process (cmd/worker) sẽ pick up và retry nếu fail
type AsyncDispatcher struct {
	client *asynq.Client
}

func NewAsyncDispatcher(client *asynq.Client) *AsyncDispatcher {
	return &AsyncDispatcher{client: client}
}

func (d *AsyncDispatcher) SendVerificationEmail(ctx context.Context, data VerificationEmailData) error {
	return d.enqueue(ctx, shared.TypeSendVerificationEmail, data)
}

func (d *AsyncDispatcher) SendResetPasswordEmail(ctx context.Context, data ResetPasswordData) error {
	return d.enqueue(ctx, shared.TypeSendResetEmail, data)
}

func (d *AsyncDispatcher) enqueue(ctx context.Context, taskType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", taskType, err)
	}

	task := asynq.NewTask(taskType, data)
	_, err = d.client.EnqueueContext(ctx, task,
		asynq.Queue(shared.QueueEmail),
		asynq.MaxRetry(5),
		asynq.Timeout(30*time.Second),
	)
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", taskType, err)
	}

	return nil
}
