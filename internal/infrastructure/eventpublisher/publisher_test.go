package eventpublisher

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/iho/goexpense/internal/domain"
	"github.com/iho/goexpense/internal/usecase"
)

func TestProcessEventsPublishesAndMarks(t *testing.T) {
	repo := &stubOutboxRepo{
		events: []*domain.OutboxEvent{{ID: "evt-1", EventType: domain.EventTypeRecordCreated}},
	}
	pub := &stubPublisher{}
	obs := &countingObserver{}
	ep := newTestPublisher(repo, pub)
	ep.observer = obs

	if err := ep.processEvents(context.Background()); err != nil {
		t.Fatalf("processEvents failed: %v", err)
	}

	if len(pub.published) != 1 {
		t.Fatalf("expected one published event, got %d", len(pub.published))
	}
	if len(repo.marked) != 1 || repo.marked[0] != "evt-1" {
		t.Fatalf("expected event to be marked published, got %#v", repo.marked)
	}
	if obs.published != 1 || obs.failed != 0 {
		t.Fatalf("unexpected observer counts %+v", obs)
	}
}

func TestProcessEventsContinuesOnPublishError(t *testing.T) {
	repo := &stubOutboxRepo{
		events: []*domain.OutboxEvent{
			{ID: "evt-1", EventType: domain.EventTypeRecordCreated},
			{ID: "evt-2", EventType: domain.EventTypeTransferCreated},
		},
	}
	pub := &stubPublisher{
		errorsByID: map[string]error{"evt-1": errors.New("fail")},
	}
	obs := &countingObserver{}
	ep := newTestPublisher(repo, pub)
	ep.observer = obs

	if err := ep.processEvents(context.Background()); err != nil {
		t.Fatalf("processEvents returned error: %v", err)
	}

	if len(pub.published) != 1 || pub.published[0].ID != "evt-2" {
		t.Fatalf("expected only evt-2 to be published, got %#v", pub.published)
	}
	if len(repo.marked) != 1 || repo.marked[0] != "evt-2" {
		t.Fatalf("expected only evt-2 to be marked, got %#v", repo.marked)
	}
	if obs.published != 1 || obs.failed != 1 {
		t.Fatalf("unexpected observer counts %+v", obs)
	}
}

func TestProcessEventsRepoError(t *testing.T) {
	repo := &stubOutboxRepo{fetchErr: errors.New("db down")}
	ep := newTestPublisher(repo, &stubPublisher{})

	if err := ep.processEvents(context.Background()); err == nil {
		t.Fatalf("expected fetch error")
	}
}

func TestCleanupDeletesOldPublishedEvents(t *testing.T) {
	repo := &stubOutboxRepo{deleted: 3}
	ep := newTestPublisher(repo, &stubPublisher{})
	now := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)
	ep.now = func() time.Time { return now }
	ep.retention = 24 * time.Hour

	ep.cleanup(context.Background())

	if !repo.deleteBefore.Equal(now.Add(-24 * time.Hour)) {
		t.Fatalf("expected cutoff one day back, got %s", repo.deleteBefore)
	}
}

func TestStartStopsOnContextCancellation(t *testing.T) {
	repo := &stubOutboxRepo{}
	pub := &stubPublisher{}
	ep := newTestPublisher(repo, pub)
	ep.interval = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- ep.Start(ctx)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("publisher did not stop after cancel")
	}
}

func TestLogPublisher(t *testing.T) {
	p := NewLogPublisher(zerolog.Nop())
	if err := p.Publish(context.Background(), &domain.OutboxEvent{ID: "evt-1", Payload: map[string]any{"amount": "10"}}); err != nil {
		t.Fatalf("log publisher failed: %v", err)
	}
}

func TestAMQPPublisherRoutesByEventType(t *testing.T) {
	ch := &stubChannel{}
	p := &AMQPPublisher{channel: ch, exchange: "goexpense.events"}

	created := time.Date(2024, time.January, 5, 12, 0, 0, 0, time.UTC)
	event := &domain.OutboxEvent{
		ID:            "evt-1",
		UserID:        "user-1",
		AggregateID:   "r1",
		AggregateType: domain.AggregateTypeRecord,
		EventType:     domain.EventTypeRecordCreated,
		Payload:       map[string]any{"amount": "200"},
		CreatedAt:     created,
	}

	if err := p.Publish(context.Background(), event); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	if ch.exchange != "goexpense.events" || ch.key != domain.EventTypeRecordCreated {
		t.Fatalf("unexpected routing exchange=%s key=%s", ch.exchange, ch.key)
	}
	if ch.msg.DeliveryMode != amqp.Persistent || ch.msg.MessageId != "evt-1" {
		t.Fatalf("unexpected message %+v", ch.msg)
	}

	var body envelope
	if err := json.Unmarshal(ch.msg.Body, &body); err != nil {
		t.Fatalf("body is not json: %v", err)
	}
	if body.AggregateID != "r1" || body.Payload["amount"] != "200" || !body.OccurredAt.Equal(created) {
		t.Fatalf("unexpected envelope %+v", body)
	}
}

func TestAMQPPublisherError(t *testing.T) {
	p := &AMQPPublisher{channel: &stubChannel{err: amqp.ErrClosed}, exchange: "x"}

	err := p.Publish(context.Background(), &domain.OutboxEvent{ID: "evt-1", EventType: "t"})
	if !errors.Is(err, amqp.ErrClosed) {
		t.Fatalf("expected wrapped channel error, got %v", err)
	}
}

func newTestPublisher(repo *stubOutboxRepo, pub *stubPublisher) *EventPublisher {
	return NewEventPublisher(Config{
		OutboxRepo: repo,
		Publisher:  pub,
		Logger:     zerolog.Nop(),
		BatchSize:  10,
		Interval:   5 * time.Millisecond,
	})
}

var _ usecase.OutboxRepository = (*stubOutboxRepo)(nil)

type stubOutboxRepo struct {
	events       []*domain.OutboxEvent
	marked       []string
	fetchErr     error
	deleted      int64
	deleteBefore time.Time
}

func (s *stubOutboxRepo) Create(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error {
	return nil
}

func (s *stubOutboxRepo) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	if len(s.events) <= limit {
		return append([]*domain.OutboxEvent(nil), s.events...), nil
	}
	return append([]*domain.OutboxEvent(nil), s.events[:limit]...), nil
}

func (s *stubOutboxRepo) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	s.marked = append(s.marked, id)
	return nil
}

func (s *stubOutboxRepo) DeletePublished(ctx context.Context, before time.Time) (int64, error) {
	s.deleteBefore = before
	return s.deleted, nil
}

type stubPublisher struct {
	published  []*domain.OutboxEvent
	errorsByID map[string]error
}

func (s *stubPublisher) Publish(ctx context.Context, event *domain.OutboxEvent) error {
	if err := s.errorsByID[event.ID]; err != nil {
		return err
	}
	s.published = append(s.published, event)
	return nil
}

type countingObserver struct {
	published int
	failed    int
}

func (o *countingObserver) EventPublished() { o.published++ }
func (o *countingObserver) EventFailed()    { o.failed++ }

type stubChannel struct {
	exchange string
	key      string
	msg      amqp.Publishing
	err      error
}

func (c *stubChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	if c.err != nil {
		return c.err
	}
	c.exchange, c.key, c.msg = exchange, key, msg
	return nil
}

func (c *stubChannel) Close() error { return nil }
