package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"newsapi-backend/internal/shared"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockDeliverer struct {
	deliverFunc func(ctx context.Context, n Notification) error
}

func (m *mockDeliverer) Deliver(ctx context.Context, n Notification) error {
	return m.deliverFunc(ctx, n)
}

type mockEnqueuer struct {
	tasks []*asynq.Task
	opts  [][]asynq.Option
	err   error
}

func (m *mockEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.tasks = append(m.tasks, task)
	m.opts = append(m.opts, opts)
	return &asynq.TaskInfo{ID: "task-1", Type: task.Type()}, nil
}

func sampleNotification(url string) Notification {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return NewsViewed(url, uuid.MustParse("3f0c3b7e-8c1d-4a57-9a4e-1d1f7c1c2b11"), "Hello World", 3, at)
}

func TestHTTPSenderPostsPayload(t *testing.T) {
	var (
		gotBody   Payload
		gotHeader http.Header
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Clone()
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := NewHTTPSender(time.Second).Deliver(context.Background(), sampleNotification(srv.URL))
	require.NoError(t, err)

	assert.Equal(t, "application/json", gotHeader.Get("Content-Type"))
	assert.Equal(t, UserAgent, gotHeader.Get("User-Agent"))
	assert.Equal(t, EventNewsViewed, gotBody.Event)
	assert.Equal(t, "2024-05-01T12:00:00Z", gotBody.Timestamp)
	assert.Equal(t, "Hello World", gotBody.Data.NewsTitle)
	assert.Equal(t, 3, gotBody.Data.ViewCount)
}

func TestHTTPSenderNon2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := NewHTTPSender(time.Second).Deliver(context.Background(), sampleNotification(srv.URL))
	assert.ErrorContains(t, err, "500")
}

func TestHTTPSenderTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	err := NewHTTPSender(50*time.Millisecond).Deliver(context.Background(), sampleNotification(srv.URL))
	assert.Error(t, err)
}

func TestDispatcherDeliversOnce(t *testing.T) {
	var calls atomic.Int32
	d := NewDispatcher(&mockDeliverer{deliverFunc: func(ctx context.Context, n Notification) error {
		calls.Add(1)
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		return nil
	}}, time.Second)

	d.Dispatch(sampleNotification("http://hook.test"))
	require.NoError(t, d.Shutdown(context.Background()))

	assert.Equal(t, int32(1), calls.Load())
}

func TestDispatcherSwallowsFailures(t *testing.T) {
	var calls atomic.Int32
	d := NewDispatcher(&mockDeliverer{deliverFunc: func(ctx context.Context, n Notification) error {
		calls.Add(1)
		return errors.New("connection refused")
	}}, time.Second)

	d.Dispatch(sampleNotification("http://hook.test"))
	require.NoError(t, d.Shutdown(context.Background()))

	// one attempt, no retry
	assert.Equal(t, int32(1), calls.Load())
}

func TestDispatcherDoesNotBlockCaller(t *testing.T) {
	release := make(chan struct{})
	d := NewDispatcher(&mockDeliverer{deliverFunc: func(ctx context.Context, n Notification) error {
		<-release
		return nil
	}}, time.Minute)

	start := time.Now()
	d.Dispatch(sampleNotification("http://hook.test"))
	assert.Less(t, time.Since(start), 100*time.Millisecond)

	close(release)
	require.NoError(t, d.Shutdown(context.Background()))
}

func TestDispatcherShutdownIsBounded(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	d := NewDispatcher(&mockDeliverer{deliverFunc: func(ctx context.Context, n Notification) error {
		<-release
		return nil
	}}, time.Minute)
	d.Dispatch(sampleNotification("http://hook.test"))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, d.Shutdown(ctx), context.DeadlineExceeded)
}

func TestDispatcherDropsAfterShutdown(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	d := NewDispatcher(&mockDeliverer{deliverFunc: func(ctx context.Context, n Notification) error {
		mu.Lock()
		calls++
		mu.Unlock()
		return nil
	}}, time.Second)

	require.NoError(t, d.Shutdown(context.Background()))
	d.Dispatch(sampleNotification("http://hook.test"))
	require.NoError(t, d.Shutdown(context.Background()))

	mu.Lock()
	defer mu.Unlock()
	assert.Zero(t, calls)
}

func TestQueueDelivererEnqueuesTask(t *testing.T) {
	enq := &mockEnqueuer{}
	q := NewQueueDeliverer(enq, "webhooks")

	n := sampleNotification("http://hook.test")
	require.NoError(t, q.Deliver(context.Background(), n))

	require.Len(t, enq.tasks, 1)
	assert.Equal(t, shared.TypeWebhookNewsViewed, enq.tasks[0].Type())
	assert.Len(t, enq.opts[0], 2)

	parsed, err := ParseTask(enq.tasks[0])
	require.NoError(t, err)
	assert.Equal(t, n, parsed)
}

func TestQueueDelivererPropagatesEnqueueError(t *testing.T) {
	q := NewQueueDeliverer(&mockEnqueuer{err: errors.New("redis down")}, "webhooks")
	assert.ErrorContains(t, q.Deliver(context.Background(), sampleNotification("http://hook.test")), "redis down")
}

func TestParseTaskRejectsBadPayload(t *testing.T) {
	_, err := ParseTask(asynq.NewTask(shared.TypeWebhookNewsViewed, []byte("{")))
	assert.Error(t, err)

	_, err = ParseTask(asynq.NewTask(shared.TypeWebhookNewsViewed, []byte(`{"url":""}`)))
	assert.Error(t, err)
}
