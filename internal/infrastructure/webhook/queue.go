package webhook

import (
	"context"
	"encoding/json"
	"fmt"

	"newsapi-backend/internal/shared"

	"github.com/hibiken/asynq"
)

// Enqueuer is the part of *asynq.Client used here
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// QueueDeliverer hands notifications to the worker through asynq.
// Tasks are enqueued with MaxRetry(0): the worker makes exactly one attempt.
type QueueDeliverer struct {
	client Enqueuer
	queue  string
}

func NewQueueDeliverer(client Enqueuer, queue string) *QueueDeliverer {
	return &QueueDeliverer{client: client, queue: queue}
}

func (q *QueueDeliverer) Deliver(ctx context.Context, n Notification) error {
	task, err := NewTask(n)
	if err != nil {
		return err
	}

	if _, err := q.client.EnqueueContext(ctx, task, asynq.Queue(q.queue), asynq.MaxRetry(0)); err != nil {
		return fmt.Errorf("enqueue webhook: %w", err)
	}
	return nil
}

// NewTask encodes a notification as an asynq task
func NewTask(n Notification) (*asynq.Task, error) {
	payload, err := json.Marshal(n)
	if err != nil {
		return nil, fmt.Errorf("marshal webhook task: %w", err)
	}
	return asynq.NewTask(shared.TypeWebhookNewsViewed, payload), nil
}

// ParseTask decodes a task produced by NewTask
func ParseTask(t *asynq.Task) (Notification, error) {
	var n Notification
	if err := json.Unmarshal(t.Payload(), &n); err != nil {
		return Notification{}, fmt.Errorf("unmarshal webhook task: %w", err)
	}
	if n.URL == "" {
		return Notification{}, fmt.Errorf("webhook task has no url")
	}
	return n, nil
}
