package news

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListNewsRequest_SetDefaults(t *testing.T) {
	var req ListNewsRequest
	req.SetDefaults()

	require.NotNil(t, req.Published)
	assert.True(t, *req.Published)
	assert.Equal(t, DefaultPage, *req.Page)
	assert.Equal(t, DefaultLimit, *req.Limit)
	assert.Equal(t, SortByCreatedAt, req.SortBy)
	assert.Equal(t, SortDesc, req.SortOrder)
	assert.NoError(t, req.Validate())
}

func TestListNewsRequest_KeepsExplicitUnpublished(t *testing.T) {
	published := false
	req := ListNewsRequest{Published: &published}
	req.SetDefaults()

	assert.False(t, *req.Published)
}

func TestListNewsRequest_Validate(t *testing.T) {
	zero, big, ok := 0, MaxLimit+1, MaxLimit

	assert.Error(t, ListNewsRequest{Page: &zero}.Validate())
	assert.Error(t, ListNewsRequest{Limit: &zero}.Validate())
	assert.Error(t, ListNewsRequest{Limit: &big}.Validate())
	assert.NoError(t, ListNewsRequest{Limit: &ok}.Validate())
	assert.Error(t, ListNewsRequest{PublisherID: "x"}.Validate())
	assert.NoError(t, ListNewsRequest{PublisherID: uuid.NewString(), SortBy: SortByViewCount, SortOrder: SortAsc}.Validate())
}

func TestMyNewsRequest_NoPublishedDefault(t *testing.T) {
	var req MyNewsRequest
	req.SetDefaults()

	assert.Nil(t, req.Published)
	assert.Equal(t, DefaultLimit, *req.Limit)
}

func TestCreateNewsRequest_Validate(t *testing.T) {
	valid := CreateNewsRequest{
		Title:      "Valid title",
		Content:    strings.Repeat("x", 20),
		CategoryID: uuid.NewString(),
	}
	assert.NoError(t, valid.Validate())

	badImage := "example.com/pic.png"
	cases := map[string]func(r *CreateNewsRequest){
		"short title":   func(r *CreateNewsRequest) { r.Title = "Tiny" },
		"short content": func(r *CreateNewsRequest) { r.Content = strings.Repeat("x", 19) },
		"no category":   func(r *CreateNewsRequest) { r.CategoryID = "" },
		"bad category":  func(r *CreateNewsRequest) { r.CategoryID = "123" },
		"bad image":     func(r *CreateNewsRequest) { r.ImageURL = &badImage },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := valid
			mutate(&req)
			assert.Error(t, req.Validate())
		})
	}
}

func TestUpdateNewsRequest_Validate(t *testing.T) {
	empty := ""
	short := "Tiny"

	assert.NoError(t, UpdateNewsRequest{}.Validate())
	assert.Error(t, UpdateNewsRequest{Title: &empty}.Validate())
	assert.Error(t, UpdateNewsRequest{Title: &short}.Validate())
	assert.Error(t, UpdateNewsRequest{CategoryID: &short}.Validate())
}
