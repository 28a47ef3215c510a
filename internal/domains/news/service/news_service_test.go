package service

import (
	"context"
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	"newsapi-backend/internal/domains/category"
	"newsapi-backend/internal/domains/news"
	"newsapi-backend/internal/domains/publisher"
	"newsapi-backend/internal/infrastructure/memory"
	"newsapi-backend/internal/infrastructure/webhook"
	"newsapi-backend/internal/shared"
	"newsapi-backend/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []webhook.Notification
}

func (r *recordingNotifier) Dispatch(n webhook.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
}

// conflictingRepo rejects the first `conflicts` writes as if a concurrent insert took the slug
type conflictingRepo struct {
	news.Repository
	conflicts int
	writes    int
}

func (r *conflictingRepo) Create(ctx context.Context, n *news.News) error {
	r.writes++
	if r.writes <= r.conflicts {
		return news.ErrSlugTaken
	}
	return r.Repository.Create(ctx, n)
}

type testEnv struct {
	store    *memory.Store
	svc      *newsService
	notifier *recordingNotifier
	owner    shared.Caller
	other    shared.Caller
	category uuid.UUID
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	hook := "https://hooks.example.com/owner"
	owner := publisher.Publisher{ID: uuid.New(), Email: "owner@example.com", Name: "Owner", WebhookURL: &hook}
	other := publisher.Publisher{ID: uuid.New(), Email: "other@example.com", Name: "Other"}
	require.NoError(t, store.Publishers().Create(ctx, &owner))
	require.NoError(t, store.Publishers().Create(ctx, &other))

	catID, err := store.PutCategory(ctx, category.Category{ID: uuid.New(), Name: "Tech", Slug: "tech"})
	require.NoError(t, err)

	notifier := &recordingNotifier{}
	svc := NewNewsService(store.News(), store.Categories(), notifier).(*newsService)

	return &testEnv{
		store:    store,
		svc:      svc,
		notifier: notifier,
		owner:    shared.NewCaller(owner.ID),
		other:    shared.NewCaller(other.ID),
		category: catID,
	}
}

func (e *testEnv) create(t *testing.T, title string, published bool) *news.NewsResponse {
	t.Helper()
	resp, err := e.svc.Create(context.Background(), e.owner, news.CreateNewsRequest{
		Title:      title,
		Content:    "This content is long enough to pass validation.",
		CategoryID: e.category.String(),
		Published:  published,
	})
	require.NoError(t, err)
	return resp
}

func intPtr(v int) *int       { return &v }
func boolPtr(v bool) *bool    { return &v }
func strPtr(v string) *string { return &v }

// ============================================
// CREATE
// ============================================

func TestCreate_AssignsSlugAndOwner(t *testing.T) {
	env := newTestEnv(t)

	first := env.create(t, "Hello World", true)
	second := env.create(t, "Hello World", true)

	assert.Equal(t, "hello-world", first.Slug)
	assert.Equal(t, "hello-world-1", second.Slug)
	assert.Equal(t, env.owner.PublisherID, first.Publisher.ID)
	assert.Equal(t, "Tech", first.Category.Name)
	assert.Zero(t, first.ViewCount)
}

func TestCreate_RequiresIdentity(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Create(context.Background(), shared.Anonymous, news.CreateNewsRequest{})

	assert.ErrorIs(t, err, apperror.ErrUnauthenticated)
}

func TestCreate_Validation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Create(context.Background(), env.owner, news.CreateNewsRequest{
		Title:      "Hey",
		Content:    "short",
		CategoryID: env.category.String(),
	})

	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestCreate_UnknownCategory(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Create(context.Background(), env.owner, news.CreateNewsRequest{
		Title:      "Valid title here",
		Content:    "This content is long enough to pass validation.",
		CategoryID: uuid.NewString(),
	})

	assert.ErrorIs(t, err, category.ErrCategoryNotFound)
}

func TestCreate_RetriesOnSlugConflict(t *testing.T) {
	env := newTestEnv(t)
	repo := &conflictingRepo{Repository: env.store.News(), conflicts: maxSlugConflictRetries}
	env.svc.repo = repo

	resp := env.create(t, "Racing Title", true)

	assert.Equal(t, "racing-title", resp.Slug)
	assert.Equal(t, maxSlugConflictRetries+1, repo.writes)
}

func TestCreate_GivesUpAfterConflictRetries(t *testing.T) {
	env := newTestEnv(t)
	repo := &conflictingRepo{Repository: env.store.News(), conflicts: maxSlugConflictRetries + 1}
	env.svc.repo = repo

	_, err := env.svc.Create(context.Background(), env.owner, news.CreateNewsRequest{
		Title:      "Racing Title",
		Content:    "This content is long enough to pass validation.",
		CategoryID: env.category.String(),
	})

	assert.ErrorIs(t, err, news.ErrSlugTaken)
	assert.Equal(t, maxSlugConflictRetries+1, repo.writes)
}

// ============================================
// UPDATE / DELETE
// ============================================

func TestUpdate_OwnerOnly(t *testing.T) {
	env := newTestEnv(t)
	created := env.create(t, "Owned article", true)

	_, err := env.svc.Update(context.Background(), env.other, created.ID.String(), news.UpdateNewsRequest{
		Content: strPtr("Someone else trying to rewrite this."),
	})
	assert.ErrorIs(t, err, news.ErrNotNewsOwner)

	_, err = env.svc.Delete(context.Background(), env.other, created.ID.String())
	assert.ErrorIs(t, err, news.ErrNotNewsOwner)

	_, err = env.svc.Update(context.Background(), shared.Anonymous, created.ID.String(), news.UpdateNewsRequest{})
	assert.ErrorIs(t, err, apperror.ErrUnauthenticated)
}

func TestUpdate_TitleChangeRegeneratesSlug(t *testing.T) {
	env := newTestEnv(t)
	env.create(t, "Fresh Title", true)
	created := env.create(t, "Original Title", true)

	updated, err := env.svc.Update(context.Background(), env.owner, created.ID.String(), news.UpdateNewsRequest{
		Title: strPtr("Fresh Title"),
	})

	require.NoError(t, err)
	assert.Equal(t, "fresh-title-1", updated.Slug)
	assert.Equal(t, "Fresh Title", updated.Title)
}

func TestUpdate_SameTitleKeepsSlug(t *testing.T) {
	env := newTestEnv(t)
	created := env.create(t, "Stable Title", false)

	updated, err := env.svc.Update(context.Background(), env.owner, created.ID.String(), news.UpdateNewsRequest{
		Title:     strPtr("Stable Title"),
		Published: boolPtr(true),
	})

	require.NoError(t, err)
	assert.Equal(t, created.Slug, updated.Slug)
	assert.True(t, updated.Published)
}

func TestUpdate_UnknownOrMalformedID(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Update(context.Background(), env.owner, "not-a-uuid", news.UpdateNewsRequest{})
	assert.ErrorIs(t, err, news.ErrNewsNotFound)

	_, err = env.svc.Update(context.Background(), env.owner, uuid.NewString(), news.UpdateNewsRequest{})
	assert.ErrorIs(t, err, news.ErrNewsNotFound)
}

func TestDelete(t *testing.T) {
	env := newTestEnv(t)
	created := env.create(t, "Short lived", true)

	resp, err := env.svc.Delete(context.Background(), env.owner, created.ID.String())
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "News deleted successfully", resp.Message)

	_, err = env.svc.Detail(context.Background(), news.DetailRequest{ID: created.ID.String()})
	assert.ErrorIs(t, err, news.ErrNewsNotFound)
}

// ============================================
// DETAIL
// ============================================

func TestDetail_CountsViewAndNotifies(t *testing.T) {
	env := newTestEnv(t)
	at := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)
	env.svc.now = func() time.Time { return at }
	created := env.create(t, "Viewed article", true)

	first, err := env.svc.Detail(context.Background(), news.DetailRequest{ID: created.ID.String()})
	require.NoError(t, err)
	second, err := env.svc.Detail(context.Background(), news.DetailRequest{Slug: created.Slug})
	require.NoError(t, err)

	assert.Equal(t, 1, first.ViewCount)
	assert.Equal(t, 2, second.ViewCount)

	require.Len(t, env.notifier.sent, 2)
	sent := env.notifier.sent[1]
	assert.Equal(t, "https://hooks.example.com/owner", sent.URL)
	assert.Equal(t, webhook.EventNewsViewed, sent.Payload.Event)
	assert.Equal(t, created.ID.String(), sent.Payload.Data.NewsID)
	assert.Equal(t, 2, sent.Payload.Data.ViewCount)
	assert.Equal(t, "2025-03-04T05:06:07Z", sent.Payload.Timestamp)
}

func TestDetail_NoWebhookNoNotification(t *testing.T) {
	env := newTestEnv(t)
	resp, err := env.svc.Create(context.Background(), env.other, news.CreateNewsRequest{
		Title:      "Quiet article",
		Content:    "This content is long enough to pass validation.",
		CategoryID: env.category.String(),
	})
	require.NoError(t, err)

	_, err = env.svc.Detail(context.Background(), news.DetailRequest{ID: resp.ID.String()})
	require.NoError(t, err)

	assert.Empty(t, env.notifier.sent)
}

func TestDetail_MissingLookup(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Detail(context.Background(), news.DetailRequest{})

	assert.ErrorIs(t, err, news.ErrMissingLookup)
}

func TestDetail_MalformedID(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Detail(context.Background(), news.DetailRequest{ID: "123"})

	assert.ErrorIs(t, err, news.ErrNewsNotFound)
}

// ============================================
// FEED
// ============================================

func TestList_PaginatesPublished(t *testing.T) {
	env := newTestEnv(t)
	for i := 0; i < 25; i++ {
		env.create(t, fmt.Sprintf("Article number %02d", i), true)
	}
	env.create(t, "Unpublished draft", false)

	page, err := env.svc.List(context.Background(), news.ListNewsRequest{Page: intPtr(3), Limit: intPtr(10)})

	require.NoError(t, err)
	assert.Len(t, page.Nodes, 5)
	assert.Equal(t, 25, page.TotalCount)
	assert.Equal(t, news.PageInfo{
		HasNextPage:     false,
		HasPreviousPage: true,
		CurrentPage:     3,
		TotalPages:      3,
	}, page.PageInfo)
}

func TestList_SearchAndSort(t *testing.T) {
	env := newTestEnv(t)
	env.create(t, "Golang generics explained", true)
	env.create(t, "Another golang story", true)
	env.create(t, "Rust ownership model", true)

	page, err := env.svc.List(context.Background(), news.ListNewsRequest{
		Search:    "  GOLANG ",
		SortBy:    news.SortByTitle,
		SortOrder: news.SortAsc,
	})

	require.NoError(t, err)
	require.Len(t, page.Nodes, 2)
	assert.Equal(t, "Another golang story", page.Nodes[0].Title)
	assert.Equal(t, "Golang generics explained", page.Nodes[1].Title)
}

func TestList_EmptyPageHasNodes(t *testing.T) {
	env := newTestEnv(t)

	page, err := env.svc.List(context.Background(), news.ListNewsRequest{})

	require.NoError(t, err)
	assert.NotNil(t, page.Nodes)
	assert.Empty(t, page.Nodes)
	assert.Equal(t, 0, page.PageInfo.TotalPages)
	assert.False(t, page.PageInfo.HasNextPage)
}

func TestList_HugePageIsEmpty(t *testing.T) {
	env := newTestEnv(t)
	env.create(t, "Only published story", true)

	for _, p := range []int{1e17, math.MaxInt} {
		page, err := env.svc.List(context.Background(), news.ListNewsRequest{
			Page:  intPtr(p),
			Limit: intPtr(news.MaxLimit),
		})

		require.NoError(t, err)
		assert.Empty(t, page.Nodes)
		assert.Equal(t, 1, page.TotalCount)
		assert.Equal(t, p, page.PageInfo.CurrentPage)
		assert.True(t, page.PageInfo.HasPreviousPage)
		assert.False(t, page.PageInfo.HasNextPage)
	}
}

func TestListMine_HugePageIsEmpty(t *testing.T) {
	env := newTestEnv(t)
	env.create(t, "Draft story title", false)

	page, err := env.svc.ListMine(context.Background(), env.owner, news.MyNewsRequest{Page: intPtr(math.MaxInt)})

	require.NoError(t, err)
	assert.Empty(t, page.Nodes)
	assert.Equal(t, 1, page.TotalCount)
}

func TestList_InvalidInput(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		req  news.ListNewsRequest
	}{
		{"page zero", news.ListNewsRequest{Page: intPtr(0)}},
		{"limit too large", news.ListNewsRequest{Limit: intPtr(101)}},
		{"bad sort", news.ListNewsRequest{SortBy: "slug"}},
		{"bad order", news.ListNewsRequest{SortOrder: "up"}},
		{"bad category", news.ListNewsRequest{CategoryID: "abc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.svc.List(context.Background(), tt.req)
			assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
		})
	}
}

func TestListMine_IncludesDrafts(t *testing.T) {
	env := newTestEnv(t)
	env.create(t, "Published piece", true)
	env.create(t, "Draft piece here", false)

	all, err := env.svc.ListMine(context.Background(), env.owner, news.MyNewsRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, all.TotalCount)

	drafts, err := env.svc.ListMine(context.Background(), env.owner, news.MyNewsRequest{Published: boolPtr(false)})
	require.NoError(t, err)
	require.Equal(t, 1, drafts.TotalCount)
	assert.Equal(t, "Draft piece here", drafts.Nodes[0].Title)

	others, err := env.svc.ListMine(context.Background(), env.other, news.MyNewsRequest{})
	require.NoError(t, err)
	assert.Zero(t, others.TotalCount)

	_, err = env.svc.ListMine(context.Background(), shared.Anonymous, news.MyNewsRequest{})
	assert.ErrorIs(t, err, apperror.ErrUnauthenticated)
}
