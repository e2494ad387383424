package service

import (
	"context"
	"testing"
	"time"

	"kidsphere_backend/internal/config"
	"kidsphere_backend/internal/model"
	"kidsphere_backend/internal/repository"
	"kidsphere_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newNewsService(db *gorm.DB) *NewsService {
	// No redis in tests; the feed is served straight from the repository.
	return NewNewsService(repository.NewNewsRepository(db), nil, &config.Config{})
}

func publishedNews(title, viewpoint string, groupID uint) *model.News {
	now := time.Now()
	return &model.News{
		Title:       title,
		Viewpoint:   viewpoint,
		NewsGroupID: groupID,
		Language:    "en",
		IsPublished: true,
		PublishedAt: &now,
	}
}

func TestMergeViewpoints(t *testing.T) {
	assert.Equal(t, "left,right", mergeViewpoints("right", "left"))
	assert.Equal(t, "left,right", mergeViewpoints("left,right", "right"))
	assert.Equal(t, "centre,left,right", mergeViewpoints("right, left", "centre"))
	assert.Equal(t, "left", mergeViewpoints("left", ""))
	assert.Equal(t, "", mergeViewpoints("", ""))
}

func TestGroupArticles(t *testing.T) {
	items := []model.News{
		{BaseModel: model.BaseModel{ID: 1}, Title: "Standalone", Viewpoint: "neutral"},
		{BaseModel: model.BaseModel{ID: 2}, Title: "Debate A", NewsGroupID: 7, Viewpoint: "right"},
		{BaseModel: model.BaseModel{ID: 3}, Title: "Other story"},
		{BaseModel: model.BaseModel{ID: 4}, Title: "Debate B", NewsGroupID: 7, Viewpoint: "left"},
	}

	grouped := groupArticles(items)
	require.Len(t, grouped, 3)

	assert.Equal(t, "Standalone", grouped[0].Title)
	assert.Equal(t, []uint{1}, grouped[0].ArticleIDs)

	// The group keeps the first article's slot and title.
	assert.Equal(t, "Debate A", grouped[1].Title)
	assert.Equal(t, []uint{2, 4}, grouped[1].ArticleIDs)
	assert.Equal(t, "left,right", grouped[1].Viewpoints)

	assert.Equal(t, []uint{3}, grouped[2].ArticleIDs)
}

func TestListFeedGroupsPublishedArticles(t *testing.T) {
	db := newTestDB(t)
	svc := newNewsService(db)

	require.NoError(t, db.Create(publishedNews("Grouped A", "right", 3)).Error)
	require.NoError(t, db.Create(publishedNews("Grouped B", "left", 3)).Error)
	require.NoError(t, db.Create(publishedNews("Solo", "", 0)).Error)
	draft := &model.News{Title: "Draft", Language: "en"}
	require.NoError(t, db.Create(draft).Error)

	feed, err := svc.ListFeed(context.Background(), "", "", 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 3, feed.Total)
	require.Len(t, feed.Items, 2)

	var group *GroupedNews
	for i := range feed.Items {
		if len(feed.Items[i].ArticleIDs) == 2 {
			group = &feed.Items[i]
		}
	}
	require.NotNil(t, group)
	assert.Equal(t, "left,right", group.Viewpoints)
}

func TestGetNewsIncludesGroupAlternates(t *testing.T) {
	db := newTestDB(t)
	svc := newNewsService(db)

	a := publishedNews("Side A", "right", 9)
	b := publishedNews("Side B", "left", 9)
	require.NoError(t, db.Create(a).Error)
	require.NoError(t, db.Create(b).Error)

	detail, err := svc.GetNews(a.ID)
	require.NoError(t, err)
	require.Len(t, detail.Alternates, 1)
	assert.Equal(t, b.ID, detail.Alternates[0].ID)

	_, err = svc.GetNews(9999)
	assert.ErrorIs(t, err, util.ErrNewsNotFound)
}

func TestPublishNewsStampsPublishedAtOnce(t *testing.T) {
	db := newTestDB(t)
	svc := newNewsService(db)

	created, err := svc.CreateNews(&NewsRequest{Title: "Fresh"})
	require.NoError(t, err)
	require.Nil(t, created.PublishedAt)

	published, err := svc.PublishNews(created.ID, true)
	require.NoError(t, err)
	require.NotNil(t, published.PublishedAt)
	first := *published.PublishedAt

	_, err = svc.PublishNews(created.ID, false)
	require.NoError(t, err)
	again, err := svc.PublishNews(created.ID, true)
	require.NoError(t, err)
	require.NotNil(t, again.PublishedAt)
	assert.True(t, again.PublishedAt.Equal(first))
}
