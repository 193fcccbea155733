package repository

import (
	"context"
	"errors"

	"github.com/pipewatch/pipewatch/internal/entity"
	"gorm.io/gorm"
)

// WebhookDeliveryRepository enforces ingestion idempotency. Reserve claims
// the (provider, event id) key atomically; a second delivery of the same
// event gets entity.ErrDuplicate from the unique index.
type WebhookDeliveryRepository interface {
	Reserve(ctx context.Context, provider entity.Provider, eventID string) error
	AttachRun(ctx context.Context, provider entity.Provider, eventID string, runID entity.ID) error
}

type webhookDeliveryRepositoryImpl struct {
	db *gorm.DB
}

func NewWebhookDeliveryRepository(db *gorm.DB) WebhookDeliveryRepository {
	return &webhookDeliveryRepositoryImpl{db: db}
}

// Reserve implements WebhookDeliveryRepository.
func (r *webhookDeliveryRepositoryImpl) Reserve(ctx context.Context, provider entity.Provider, eventID string) error {
	model := WebhookDelivery{Provider: string(provider), EventID: eventID}
	if err := gorm.G[WebhookDelivery](r.db).Create(ctx, &model); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return entity.ErrDuplicate
		}
		return err
	}
	return nil
}

// AttachRun implements WebhookDeliveryRepository.
func (r *webhookDeliveryRepositoryImpl) AttachRun(ctx context.Context, provider entity.Provider, eventID string, runID entity.ID) error {
	id := runID.Uint()
	_, err := gorm.G[WebhookDelivery](r.db).
		Where("provider = ? AND event_id = ?", string(provider), eventID).
		Updates(ctx, WebhookDelivery{RunID: &id})
	return err
}
