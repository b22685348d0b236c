package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tyazhprofil/site/internal/domain"
	"github.com/tyazhprofil/site/internal/store"
)

func newTestContentService(t *testing.T) *ContentService {
	d := openTestDB(t)
	return NewContentService(store.NewPortfolioStore(d), store.NewFAQStore(d), store.NewServiceStore(d), nil, testLogger())
}

func TestCreatePortfolioItem_ListedOnce(t *testing.T) {
	svc := newTestContentService(t)
	ctx := context.Background()

	created, err := svc.CreatePortfolioItem(ctx, &domain.PortfolioItem{Title: "Склад А", Category: "Склад", Workers: 12})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID, "id is generated when absent")

	items, err := svc.ListPortfolio(ctx)
	require.NoError(t, err)
	count := 0
	for _, item := range items {
		if item.ID == created.ID {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestCreatePortfolioItem_KeepsCallerID(t *testing.T) {
	svc := newTestContentService(t)

	created, err := svc.CreatePortfolioItem(context.Background(), &domain.PortfolioItem{ID: "1712345678901", Title: "X"})
	require.NoError(t, err)
	assert.Equal(t, "1712345678901", created.ID)
}

func TestCreatePortfolioItem_Validation(t *testing.T) {
	svc := newTestContentService(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		item  *domain.PortfolioItem
		field string
	}{
		{"missing title", &domain.PortfolioItem{Category: "Склад"}, "title"},
		{"blank title", &domain.PortfolioItem{Title: "   "}, "title"},
		{"negative workers", &domain.PortfolioItem{Title: "X", Workers: -1}, "workers"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreatePortfolioItem(ctx, tt.item)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, tt.field, verr.Field)
		})
	}

	items, err := svc.ListPortfolio(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCreatePortfolioItem_DuplicateID(t *testing.T) {
	svc := newTestContentService(t)
	ctx := context.Background()

	_, err := svc.CreatePortfolioItem(ctx, &domain.PortfolioItem{ID: "1", Title: "A"})
	require.NoError(t, err)

	_, err = svc.CreatePortfolioItem(ctx, &domain.PortfolioItem{ID: "1", Title: "B"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "id", verr.Field)
}

func TestUpdatePortfolioItem_PatchKeepsUnspecifiedFields(t *testing.T) {
	svc := newTestContentService(t)
	ctx := context.Background()

	created, err := svc.CreatePortfolioItem(ctx, &domain.PortfolioItem{
		Title: "Склад А", Category: "Склад", Client: "ООО Логистик", Workers: 12,
	})
	require.NoError(t, err)

	updated, err := svc.UpdatePortfolioItem(ctx, created.ID, &PortfolioPatch{Workers: ptr(15), Duration: ptr("2 недели")})
	require.NoError(t, err)
	assert.Equal(t, 15, updated.Workers)

	got, err := svc.GetPortfolioItem(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 15, got.Workers)
	assert.Equal(t, "2 недели", got.Duration)
	assert.Equal(t, "Склад А", got.Title)
	assert.Equal(t, "Склад", got.Category)
	assert.Equal(t, "ООО Логистик", got.Client)
}

func TestUpdatePortfolioItem_NotFound(t *testing.T) {
	svc := newTestContentService(t)

	_, err := svc.UpdatePortfolioItem(context.Background(), "missing", &PortfolioPatch{Title: ptr("X")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdatePortfolioItem_CannotClearTitle(t *testing.T) {
	svc := newTestContentService(t)
	ctx := context.Background()

	created, err := svc.CreatePortfolioItem(ctx, &domain.PortfolioItem{Title: "A"})
	require.NoError(t, err)

	_, err = svc.UpdatePortfolioItem(ctx, created.ID, &PortfolioPatch{Title: ptr("")})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestDeletePortfolioItem_Idempotent(t *testing.T) {
	svc := newTestContentService(t)
	ctx := context.Background()

	created, err := svc.CreatePortfolioItem(ctx, &domain.PortfolioItem{Title: "A"})
	require.NoError(t, err)

	require.NoError(t, svc.DeletePortfolioItem(ctx, created.ID))
	require.NoError(t, svc.DeletePortfolioItem(ctx, created.ID))
	require.NoError(t, svc.DeletePortfolioItem(ctx, "never-existed"))

	items, err := svc.ListPortfolio(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	_, err = svc.GetPortfolioItem(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFAQLifecycle(t *testing.T) {
	svc := newTestContentService(t)
	ctx := context.Background()

	_, err := svc.CreateFAQItem(ctx, &domain.FAQItem{Question: "Q"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "answer", verr.Field)

	second, err := svc.CreateFAQItem(ctx, &domain.FAQItem{Question: "Второй", Answer: "A", OrderIndex: 1})
	require.NoError(t, err)
	first, err := svc.CreateFAQItem(ctx, &domain.FAQItem{Question: "Первый", Answer: "A", OrderIndex: 0})
	require.NoError(t, err)

	items, err := svc.ListFAQ(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, first.ID, items[0].ID)

	updated, err := svc.UpdateFAQItem(ctx, second.ID, &FAQPatch{OrderIndex: ptr(-1)})
	require.NoError(t, err)
	assert.Equal(t, "Второй", updated.Question)

	items, err = svc.ListFAQ(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, items[0].ID)

	_, err = svc.UpdateFAQItem(ctx, "missing", &FAQPatch{})
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.DeleteFAQItem(ctx, first.ID))
	require.NoError(t, svc.DeleteFAQItem(ctx, first.ID))
}

func TestServiceLifecycle(t *testing.T) {
	svc := newTestContentService(t)
	ctx := context.Background()

	created, err := svc.CreateServiceItem(ctx, &domain.ServiceItem{
		Title: "Складские работы", Icon: domain.IconWarehouse, Features: []string{"Погрузка"},
	})
	require.NoError(t, err)

	updated, err := svc.UpdateServiceItem(ctx, created.ID, &ServicePatch{Features: &[]string{"Погрузка", "Упаковка"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Погрузка", "Упаковка"}, updated.Features)
	assert.Equal(t, domain.IconWarehouse, updated.Icon)

	_, err = svc.CreateServiceItem(ctx, &domain.ServiceItem{Description: "no title"})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	require.NoError(t, svc.DeleteServiceItem(ctx, created.ID))
	_, err = svc.GetServiceItem(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestServicesForDisplay_FallsBackWhenEmpty(t *testing.T) {
	svc := newTestContentService(t)
	ctx := context.Background()

	shown := svc.ServicesForDisplay(ctx)
	assert.Len(t, shown, len(domain.FallbackServices()))

	_, err := svc.CreateServiceItem(ctx, &domain.ServiceItem{Title: "Только эта"})
	require.NoError(t, err)

	shown = svc.ServicesForDisplay(ctx)
	require.Len(t, shown, 1)
	assert.Equal(t, "Только эта", shown[0].Title)
}

type failingServiceRepo struct {
	serviceRepository
}

func (failingServiceRepo) List(context.Context) ([]*domain.ServiceItem, error) {
	return nil, errors.New("database is locked")
}

func TestServicesForDisplay_FallsBackOnStoreError(t *testing.T) {
	svc := NewContentService(nil, nil, failingServiceRepo{}, nil, testLogger())

	shown := svc.ServicesForDisplay(context.Background())
	assert.Equal(t, domain.FallbackServices(), shown)

	_, err := svc.ListServices(context.Background())
	assert.ErrorContains(t, err, "database is locked")
}

func newReleasingContentService(t *testing.T) (*ContentService, *recordingReleaser) {
	d := openTestDB(t)
	releaser := &recordingReleaser{}
	return NewContentService(store.NewPortfolioStore(d), store.NewFAQStore(d), store.NewServiceStore(d), releaser, testLogger()), releaser
}

func TestDeletePortfolioItem_ReleasesImage(t *testing.T) {
	svc, releaser := newReleasingContentService(t)
	ctx := context.Background()

	created, err := svc.CreatePortfolioItem(ctx, &domain.PortfolioItem{Title: "Склад А", Image: "/media/uploads/a.jpg"})
	require.NoError(t, err)

	require.NoError(t, svc.DeletePortfolioItem(ctx, created.ID))
	assert.Equal(t, []string{"/media/uploads/a.jpg"}, releaser.urls)

	require.NoError(t, svc.DeletePortfolioItem(ctx, created.ID))
	assert.Len(t, releaser.urls, 1, "missing item releases nothing")
}

func TestDeletePortfolioItem_KeepsSharedImage(t *testing.T) {
	svc, releaser := newReleasingContentService(t)
	ctx := context.Background()

	first, err := svc.CreatePortfolioItem(ctx, &domain.PortfolioItem{Title: "A", Image: "/media/uploads/shared.jpg"})
	require.NoError(t, err)
	_, err = svc.CreatePortfolioItem(ctx, &domain.PortfolioItem{Title: "B", Image: "/media/uploads/shared.jpg"})
	require.NoError(t, err)

	require.NoError(t, svc.DeletePortfolioItem(ctx, first.ID))
	assert.Empty(t, releaser.urls)
}

func TestUpdatePortfolioItem_ReleasesReplacedImage(t *testing.T) {
	svc, releaser := newReleasingContentService(t)
	ctx := context.Background()

	created, err := svc.CreatePortfolioItem(ctx, &domain.PortfolioItem{Title: "A", Image: "/media/uploads/old.jpg"})
	require.NoError(t, err)

	_, err = svc.UpdatePortfolioItem(ctx, created.ID, &PortfolioPatch{Title: ptr("A2")})
	require.NoError(t, err)
	assert.Empty(t, releaser.urls, "image unchanged")

	_, err = svc.UpdatePortfolioItem(ctx, created.ID, &PortfolioPatch{Image: ptr("/media/uploads/new.jpg")})
	require.NoError(t, err)
	assert.Equal(t, []string{"/media/uploads/old.jpg"}, releaser.urls)
	assert.Equal(t, []string{""}, releaser.kinds)
}
