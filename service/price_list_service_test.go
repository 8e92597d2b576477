package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fnp-marketplace/messaging"
	"fnp-marketplace/metrics"
	"fnp-marketplace/models"
	"fnp-marketplace/pricing"
	"fnp-marketplace/repository"
)

const listID = "0b7c1d6a-3f0e-4f55-9d2a-7c1f3e9b8a01"

func storedList(t *testing.T) *pricing.ProducerPriceList {
	t.Helper()
	l := pricing.NewDraft("client-1", "Premium Meats", "Beef", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	l.ID = listID
	require.NoError(t, l.SetVisibility(pricing.Beef, true, false))
	require.NoError(t, l.SetPrice(pricing.Beef, "super", pricing.Delivered, 5000))
	return l
}

func newTestPriceListService() (*PriceListService, *mockPriceListRepo, *memoryCache, *mockPublisher) {
	repo := &mockPriceListRepo{}
	c := newMemoryCache()
	pub := &mockPublisher{}
	s := NewPriceListService(repo, c, pub, metrics.NewManager())
	s.now = func() time.Time { return time.Date(2024, 1, 20, 12, 0, 0, 0, time.UTC) }
	return s, repo, c, pub
}

func TestPriceListService_GetUsesCache(t *testing.T) {
	s, repo, c, _ := newTestPriceListService()
	ctx := context.Background()
	repo.On("GetByID", ctx, listID).Return(storedList(t), nil).Once()

	first, err := s.Get(ctx, listID)
	require.NoError(t, err)
	second, err := s.Get(ctx, listID)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Contains(t, c.items, listID)
	repo.AssertExpectations(t)
}

func TestPriceListService_GetNotFound(t *testing.T) {
	s, repo, _, _ := newTestPriceListService()
	ctx := context.Background()
	repo.On("GetByID", ctx, "missing").Return(nil, repository.ErrNotFound)

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPriceListService_NewDraft(t *testing.T) {
	s, _, _, _ := newTestPriceListService()

	d := s.NewDraft("client-1", "Premium Meats", "Beef")
	assert.Equal(t, time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC), d.EffectiveDate)
	assert.Empty(t, d.VisibleCategories())
}

func TestPriceListService_Create(t *testing.T) {
	s, repo, _, pub := newTestPriceListService()
	ctx := context.Background()

	repo.On("Create", ctx, mock.AnythingOfType("*pricing.ProducerPriceList")).
		Run(func(args mock.Arguments) { args.Get(1).(*pricing.ProducerPriceList).ID = listID }).
		Return(nil)
	pub.On("Publish", ctx, messaging.SubjectPriceListCreated, mock.MatchedBy(func(e messaging.PriceListEvent) bool {
		return e.ID == listID && e.EffectiveDate == "2024-01-15" && len(e.Categories) == 0
	})).Return(nil)

	l, err := s.Create(ctx, []byte(`{"client_id": "client-1", "effectiveDate": "2024-01-15"}`))
	require.NoError(t, err)
	assert.Equal(t, listID, l.ID)

	repo.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestPriceListService_CreateInvalid(t *testing.T) {
	s, repo, _, pub := newTestPriceListService()

	_, err := s.Create(context.Background(), []byte(`{"client_name": "x"}`))
	_, ok := models.AsValidationError(err)
	assert.True(t, ok)

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestPriceListService_UpdateEvictsCache(t *testing.T) {
	s, repo, c, pub := newTestPriceListService()
	ctx := context.Background()
	c.items[listID] = storedList(t)

	repo.On("Update", ctx, mock.MatchedBy(func(l *pricing.ProducerPriceList) bool { return l.ID == listID })).Return(nil)
	pub.On("Publish", ctx, messaging.SubjectPriceListUpdated, mock.Anything).Return(nil)

	_, err := s.Update(ctx, listID, []byte(`{"client_id": "client-1", "effectiveDate": "2024-02-01"}`))
	require.NoError(t, err)
	assert.NotContains(t, c.items, listID)
}

func TestPriceListService_BulkFill(t *testing.T) {
	s, repo, _, pub := newTestPriceListService()
	ctx := context.Background()

	repo.On("GetByID", ctx, listID).Return(storedList(t), nil)
	repo.On("Update", ctx, mock.AnythingOfType("*pricing.ProducerPriceList")).Return(nil)
	pub.On("Publish", ctx, messaging.SubjectPriceListUpdated, mock.Anything).Return(nil)

	l, err := s.BulkFill(ctx, listID, BulkFillRequest{Category: "beef", PriceType: "delivered", Value: "6000"})
	require.NoError(t, err)

	for _, g := range l.Category(pricing.Beef).Grades() {
		assert.Equal(t, int64(6000), g.Price.Pricing.Delivered)
	}
	repo.AssertExpectations(t)
}

func TestPriceListService_BulkFillHiddenCategorySurvivesReload(t *testing.T) {
	s, repo, _, pub := newTestPriceListService()
	ctx := context.Background()

	var saved []byte
	repo.On("GetByID", ctx, listID).Return(storedList(t), nil)
	repo.On("Update", ctx, mock.AnythingOfType("*pricing.ProducerPriceList")).
		Run(func(args mock.Arguments) {
			raw, err := args.Get(1).(*pricing.ProducerPriceList).EncodeCategories()
			require.NoError(t, err)
			saved = raw
		}).
		Return(nil)
	pub.On("Publish", ctx, messaging.SubjectPriceListUpdated, mock.Anything).Return(nil)

	_, err := s.BulkFill(ctx, listID, BulkFillRequest{Category: "lamb", PriceType: "delivered", Value: 7000})
	require.NoError(t, err)
	require.NotEmpty(t, saved)

	reloaded := &pricing.ProducerPriceList{ID: listID}
	require.NoError(t, reloaded.DecodeCategories(saved))
	assert.False(t, reloaded.Category(pricing.Lamb).HasPrice, "bulk fill does not toggle visibility")
	for _, g := range reloaded.Category(pricing.Lamb).Grades() {
		assert.Equal(t, int64(7000), g.Price.Pricing.Delivered)
	}
}

func TestPriceListService_BulkFillFailedUpdateLeavesListUntouched(t *testing.T) {
	s, repo, _, _ := newTestPriceListService()
	ctx := context.Background()

	stored := storedList(t)
	repo.On("GetByID", ctx, listID).Return(stored, nil)
	repo.On("Update", ctx, mock.AnythingOfType("*pricing.ProducerPriceList")).Return(assert.AnError)

	_, err := s.BulkFill(ctx, listID, BulkFillRequest{Category: "beef", PriceType: "delivered", Value: 9000})
	require.ErrorIs(t, err, assert.AnError)

	super, _ := stored.Grade(pricing.Beef, "super")
	assert.Equal(t, int64(5000), super.Pricing.Delivered)
}

func TestPriceListService_BulkFillRejects(t *testing.T) {
	tests := []struct {
		name    string
		req     BulkFillRequest
		wantErr error
	}{
		{"unknown category", BulkFillRequest{Category: "venison", PriceType: "delivered", Value: 1}, pricing.ErrUnknownCategory},
		{"unknown price type", BulkFillRequest{Category: "beef", PriceType: "retail", Value: 1}, pricing.ErrUnknownPriceType},
		{"negative value", BulkFillRequest{Category: "beef", PriceType: "delivered", Value: -5}, pricing.ErrInvalidBulkValue},
		{"non numeric value", BulkFillRequest{Category: "beef", PriceType: "collected", Value: "lots"}, pricing.ErrInvalidBulkValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, repo, _, _ := newTestPriceListService()
			_, err := s.BulkFill(context.Background(), listID, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
			repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		})
	}
}

func TestPriceListService_Delete(t *testing.T) {
	s, repo, c, pub := newTestPriceListService()
	ctx := context.Background()
	c.items[listID] = storedList(t)

	repo.On("Delete", ctx, listID).Return(nil)
	pub.On("Publish", ctx, messaging.SubjectPriceListDeleted, mock.Anything).Return(nil)

	require.NoError(t, s.Delete(ctx, listID))
	assert.NotContains(t, c.items, listID)

	repo.On("Delete", ctx, "gone").Return(repository.ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "gone"), repository.ErrNotFound)
}
