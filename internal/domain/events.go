package domain

import "time"

// Event types
const (
	EventTypeRecordCreated   = "record.created"
	EventTypeRecordDeleted   = "record.deleted"
	EventTypeTransferCreated = "transfer.created"
	EventTypeLimitSpent      = "limit.spent"
	EventTypeLimitActivated  = "limit.activated"
	EventTypeAccountCreated  = "account.created"
)

// Aggregate types
const (
	AggregateTypeRecord   = "record"
	AggregateTypeTransfer = "transfer"
	AggregateTypeLimit    = "limit"
	AggregateTypeAccount  = "account"
)

// OutboxEvent represents an event to be published
type OutboxEvent struct {
	ID            string
	UserID        string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
}

// NewRecordCreatedEvent describes a created record.
func NewRecordCreatedEvent(id string, r *Record, at time.Time) *OutboxEvent {
	return &OutboxEvent{
		ID:            id,
		UserID:        r.UserID,
		AggregateID:   r.ID,
		AggregateType: AggregateTypeRecord,
		EventType:     EventTypeRecordCreated,
		Payload: map[string]any{
			"record_id":  r.ID,
			"account_id": r.AccountID,
			"mode":       string(r.Mode),
			"kind":       string(r.Kind),
			"category":   r.Category,
			"amount":     r.Amount.String(),
			"date":       r.Date.String(),
		},
		CreatedAt: at,
	}
}

// NewRecordDeletedEvent describes a deleted record and the balance it reversed.
func NewRecordDeletedEvent(id string, r *Record, at time.Time) *OutboxEvent {
	return &OutboxEvent{
		ID:            id,
		UserID:        r.UserID,
		AggregateID:   r.ID,
		AggregateType: AggregateTypeRecord,
		EventType:     EventTypeRecordDeleted,
		Payload: map[string]any{
			"record_id":      r.ID,
			"account_id":     r.AccountID,
			"reversed_delta": r.SignedAmount().Neg().String(),
		},
		CreatedAt: at,
	}
}

// NewTransferCreatedEvent describes a created transfer.
func NewTransferCreatedEvent(id string, t *Transfer, at time.Time) *OutboxEvent {
	return &OutboxEvent{
		ID:            id,
		UserID:        t.UserID,
		AggregateID:   t.ID,
		AggregateType: AggregateTypeTransfer,
		EventType:     EventTypeTransferCreated,
		Payload: map[string]any{
			"transfer_id":     t.ID,
			"from_account_id": t.FromAccountID,
			"to_account_id":   t.ToAccountID,
			"amount":          t.Amount.String(),
			"fee":             t.Fee.String(),
			"date":            t.Date.String(),
		},
		CreatedAt: at,
	}
}

// NewLimitEvent describes a limit change of the given type.
func NewLimitEvent(id, eventType string, l *Limit, at time.Time) *OutboxEvent {
	payload := map[string]any{
		"limit_id":   l.ID,
		"account_id": l.AccountID,
		"ceiling":    l.Ceiling.String(),
		"spent":      l.Spent.String(),
	}
	if l.StartDate != nil {
		payload["start_date"] = l.StartDate.String()
	}
	return &OutboxEvent{
		ID:            id,
		UserID:        l.UserID,
		AggregateID:   l.ID,
		AggregateType: AggregateTypeLimit,
		EventType:     eventType,
		Payload:       payload,
		CreatedAt:     at,
	}
}

// NewAccountCreatedEvent describes a created account.
func NewAccountCreatedEvent(id string, a *Account, at time.Time) *OutboxEvent {
	return &OutboxEvent{
		ID:            id,
		UserID:        a.UserID,
		AggregateID:   a.ID,
		AggregateType: AggregateTypeAccount,
		EventType:     EventTypeAccountCreated,
		Payload: map[string]any{
			"account_id":      a.ID,
			"name":            a.Name,
			"opening_balance": a.OpeningBalance.String(),
		},
		CreatedAt: at,
	}
}
