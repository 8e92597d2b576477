package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fnp-marketplace/logger"
	"fnp-marketplace/messaging"
	"fnp-marketplace/metrics"
	"fnp-marketplace/pricing"
	"fnp-marketplace/repository"
	"fnp-marketplace/repository/cache"
	"fnp-marketplace/utils"
)

// BulkFillRequest is the body of POST /admin/producer-price-lists/{id}/bulk-fill
type BulkFillRequest struct {
	Category  string `json:"category"`
	PriceType string `json:"priceType"`
	Value     any    `json:"value"`
}

// PriceListService coordinates validation, persistence, caching and events for producer price lists
type PriceListService struct {
	repository repository.PriceListRepositoryInterface
	cache      cache.PriceListCache
	publisher  messaging.Publisher
	metrics    *metrics.Manager
	now        func() time.Time
}

// NewPriceListService creates a new PriceListService. A nil cache or publisher disables that concern.
func NewPriceListService(
	repo repository.PriceListRepositoryInterface,
	priceListCache cache.PriceListCache,
	publisher messaging.Publisher,
	m *metrics.Manager,
) *PriceListService {
	if priceListCache == nil {
		priceListCache = cache.NopPriceListCache{}
	}
	if publisher == nil {
		publisher = messaging.NopPublisher{}
	}
	return &PriceListService{
		repository: repo,
		cache:      priceListCache,
		publisher:  publisher,
		metrics:    m,
		now:        time.Now,
	}
}

// List returns one page of price lists and the total match count
func (s *PriceListService) List(ctx context.Context, filter repository.PriceListFilter, page utils.Page) ([]*pricing.ProducerPriceList, int, error) {
	return s.repository.List(ctx, filter, page)
}

// Get returns a price list, from the cache when a fresh copy is there
func (s *PriceListService) Get(ctx context.Context, id string) (*pricing.ProducerPriceList, error) {
	if l, ok, err := s.cache.Get(ctx, id); err != nil {
		logger.Log.Warnf("⚠️ PriceListService.Get: cache read failed for id=%s: %v", id, err)
	} else if ok {
		s.metrics.CacheLookup(true)
		return l, nil
	}
	s.metrics.CacheLookup(false)

	l, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, l); err != nil {
		logger.Log.Warnf("⚠️ PriceListService.Get: cache write failed for id=%s: %v", id, err)
	}
	return l, nil
}

// NewDraft returns the creation template dated today: every category hidden, every grade at 0
func (s *PriceListService) NewDraft(clientID, clientName, clientSpecialization string) *pricing.ProducerPriceList {
	return pricing.NewDraft(clientID, clientName, clientSpecialization, s.now())
}

// Create validates raw and stores it as a new price list
func (s *PriceListService) Create(ctx context.Context, raw []byte) (*pricing.ProducerPriceList, error) {
	l, err := pricing.ParseDraft(raw)
	if err != nil {
		return nil, err
	}
	if err := s.repository.Create(ctx, l); err != nil {
		return nil, fmt.Errorf("failed to create price list: %w", err)
	}
	s.metrics.Mutation("create")
	s.publish(ctx, messaging.SubjectPriceListCreated, l)
	return l, nil
}

// Update replaces price list id with raw. Concurrent edits are last write wins.
func (s *PriceListService) Update(ctx context.Context, id string, raw []byte) (*pricing.ProducerPriceList, error) {
	l, err := pricing.ParseDraft(raw)
	if err != nil {
		return nil, err
	}
	l.ID = id
	if err := s.repository.Update(ctx, l); err != nil {
		return nil, s.wrap("update", err)
	}
	s.evict(ctx, id)
	s.metrics.Mutation("update")
	s.publish(ctx, messaging.SubjectPriceListUpdated, l)
	return l, nil
}

// BulkFill writes one value into one price type of every grade of one category, then saves the list.
// An invalid request changes nothing.
func (s *PriceListService) BulkFill(ctx context.Context, id string, req BulkFillRequest) (*pricing.ProducerPriceList, error) {
	category, ok := pricing.ParseCategory(req.Category)
	if !ok {
		return nil, fmt.Errorf("%w: %q", pricing.ErrUnknownCategory, req.Category)
	}
	priceType, ok := pricing.ParsePriceType(req.PriceType)
	if !ok {
		return nil, fmt.Errorf("%w: %q", pricing.ErrUnknownPriceType, req.PriceType)
	}
	value, err := pricing.ParseBulkValue(req.Value)
	if err != nil {
		return nil, err
	}

	stored, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// the loaded list stays untouched unless the update succeeds
	l := stored.Clone()
	if err := l.BulkFill(category, priceType, value); err != nil {
		return nil, err
	}
	if err := s.repository.Update(ctx, l); err != nil {
		return nil, s.wrap("bulk fill", err)
	}

	logger.Log.Infof("💰 PriceListService.BulkFill: id=%s %s.%s=%d", id, category, priceType, value)
	s.evict(ctx, id)
	s.metrics.Mutation("bulk_fill")
	s.publish(ctx, messaging.SubjectPriceListUpdated, l)
	return l, nil
}

// Delete removes a price list
func (s *PriceListService) Delete(ctx context.Context, id string) error {
	if err := s.repository.Delete(ctx, id); err != nil {
		return s.wrap("delete", err)
	}
	s.evict(ctx, id)
	s.metrics.Mutation("delete")
	s.publish(ctx, messaging.SubjectPriceListDeleted, &pricing.ProducerPriceList{ID: id})
	return nil
}

func (s *PriceListService) wrap(action string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return err
	}
	return fmt.Errorf("failed to %s price list: %w", action, err)
}

func (s *PriceListService) evict(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, id); err != nil {
		logger.Log.Warnf("⚠️ PriceListService: cache eviction failed for id=%s: %v", id, err)
	}
}

// publish is best effort: the change is already committed when it runs
func (s *PriceListService) publish(ctx context.Context, subject string, l *pricing.ProducerPriceList) {
	event := messaging.PriceListEvent{
		ID:         l.ID,
		ClientID:   l.ClientID,
		OccurredAt: s.now().UTC(),
	}
	if !l.EffectiveDate.IsZero() {
		event.EffectiveDate = l.EffectiveDate.Format(pricing.DateLayout)
	}
	for _, cp := range l.VisibleCategories() {
		event.Categories = append(event.Categories, string(cp.Category))
	}
	if err := s.publisher.Publish(ctx, subject, event); err != nil {
		logger.Log.Warnf("⚠️ PriceListService: failed to publish %s for id=%s: %v", subject, l.ID, err)
	}
}
