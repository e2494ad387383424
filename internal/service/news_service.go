package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"kidsphere_backend/internal/config"
	"kidsphere_backend/internal/model"
	"kidsphere_backend/internal/repository"
	"kidsphere_backend/internal/util"
	"kidsphere_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type NewsService struct {
	NewsRepo *repository.NewsRepository
	Redis    *redis.Client
	Cfg      *config.Config
}

func NewNewsService(newsRepo *repository.NewsRepository, rdb *redis.Client, cfg *config.Config) *NewsService {
	return &NewsService{
		NewsRepo: newsRepo,
		Redis:    rdb,
		Cfg:      cfg,
	}
}

type NewsRequest struct {
	Title       string `json:"title" binding:"required"`
	Summary     string `json:"summary"`
	Body        string `json:"body"`
	ImageURL    string `json:"imageUrl"`
	Category    string `json:"category"`
	Language    string `json:"language"`
	NewsGroupID uint   `json:"newsGroupId"`
	Viewpoint   string `json:"viewpoint"`
}

// GroupedNews is one feed entry. Articles sharing a news group collapse
// into a single entry carrying the union of their viewpoints.
type GroupedNews struct {
	model.News
	Viewpoints string `json:"viewpoints"`
	ArticleIDs []uint `json:"articleIds"`
}

type NewsFeed struct {
	Items []GroupedNews `json:"items"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

type NewsDetail struct {
	model.News
	Alternates []model.News `json:"alternates"`
}

const newsFeedVersionKey = "news:feed:ver"

// ListFeed returns the grouped published feed, served from redis when a
// fresh copy exists.
func (s *NewsService) ListFeed(ctx context.Context, category, language string, page, limit int) (*NewsFeed, error) {
	key, err := s.feedCacheKey(ctx, category, language, page, limit)
	if err == nil && key != "" {
		if cached, err := s.Redis.Get(ctx, key).Result(); err == nil {
			var feed NewsFeed
			if json.Unmarshal([]byte(cached), &feed) == nil {
				return &feed, nil
			}
		}
	}

	items, total, err := s.NewsRepo.ListPublished(category, language, page, limit)
	if err != nil {
		return nil, err
	}

	feed := &NewsFeed{
		Items: groupArticles(items),
		Total: total,
		Page:  page,
		Limit: limit,
	}

	if key != "" && s.Cfg.Content.NewsCacheTTL > 0 {
		if payload, err := json.Marshal(feed); err == nil {
			ttl := time.Duration(s.Cfg.Content.NewsCacheTTL) * time.Second
			if err := s.Redis.Set(ctx, key, payload, ttl).Err(); err != nil {
				logger.Log.Warn("news feed cache write failed", zap.Error(err))
			}
		}
	}
	return feed, nil
}

// groupArticles collapses a page of articles by news group, keeping feed
// order. Ungrouped articles (group id 0) stay as standalone entries.
func groupArticles(items []model.News) []GroupedNews {
	grouped := make([]GroupedNews, 0, len(items))
	index := make(map[uint]int)

	for _, n := range items {
		if n.NewsGroupID == 0 {
			grouped = append(grouped, GroupedNews{
				News:       n,
				Viewpoints: n.Viewpoint,
				ArticleIDs: []uint{n.ID},
			})
			continue
		}

		if i, ok := index[n.NewsGroupID]; ok {
			grouped[i].ArticleIDs = append(grouped[i].ArticleIDs, n.ID)
			grouped[i].Viewpoints = mergeViewpoints(grouped[i].Viewpoints, n.Viewpoint)
			continue
		}

		index[n.NewsGroupID] = len(grouped)
		grouped = append(grouped, GroupedNews{
			News:       n,
			Viewpoints: n.Viewpoint,
			ArticleIDs: []uint{n.ID},
		})
	}
	return grouped
}

// mergeViewpoints unions two comma-joined viewpoint lists, deduplicated
// and sorted so the result is stable regardless of article order.
func mergeViewpoints(existing, extra string) string {
	seen := make(map[string]bool)
	var all []string
	for _, part := range strings.Split(existing+","+extra, ",") {
		part = strings.TrimSpace(part)
		if part == "" || seen[part] {
			continue
		}
		seen[part] = true
		all = append(all, part)
	}
	sort.Strings(all)
	return strings.Join(all, ",")
}

// GetNews returns one article plus the other published viewpoints in
// its group.
func (s *NewsService) GetNews(id uint) (*NewsDetail, error) {
	news, err := s.NewsRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrNewsNotFound
	}
	if err != nil {
		return nil, err
	}

	detail := &NewsDetail{News: *news}
	if news.NewsGroupID != 0 {
		members, err := s.NewsRepo.FindGroupMembers(news.NewsGroupID)
		if err != nil {
			return nil, err
		}
		for _, m := range members {
			if m.ID != news.ID {
				detail.Alternates = append(detail.Alternates, m)
			}
		}
	}
	return detail, nil
}

func (s *NewsService) CreateNews(req *NewsRequest) (*model.News, error) {
	news := &model.News{
		Title:       req.Title,
		Summary:     req.Summary,
		Body:        req.Body,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		Language:    req.Language,
		NewsGroupID: req.NewsGroupID,
		Viewpoint:   req.Viewpoint,
	}
	if news.Language == "" {
		news.Language = "en"
	}
	if err := s.NewsRepo.Create(news); err != nil {
		return nil, err
	}
	return news, nil
}

func (s *NewsService) UpdateNews(id uint, req *NewsRequest) (*model.News, error) {
	news, err := s.NewsRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrNewsNotFound
	}
	if err != nil {
		return nil, err
	}

	news.Title = req.Title
	news.Summary = req.Summary
	news.Body = req.Body
	news.ImageURL = req.ImageURL
	news.Category = req.Category
	if req.Language != "" {
		news.Language = req.Language
	}
	news.NewsGroupID = req.NewsGroupID
	news.Viewpoint = req.Viewpoint

	if err := s.NewsRepo.Update(news); err != nil {
		return nil, err
	}
	s.invalidateFeed(context.Background())
	return news, nil
}

func (s *NewsService) PublishNews(id uint, publish bool) (*model.News, error) {
	news, err := s.NewsRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrNewsNotFound
	}
	if err != nil {
		return nil, err
	}

	news.IsPublished = publish
	if publish && news.PublishedAt == nil {
		now := time.Now()
		news.PublishedAt = &now
	}

	if err := s.NewsRepo.Update(news); err != nil {
		return nil, err
	}
	s.invalidateFeed(context.Background())
	return news, nil
}

func (s *NewsService) DeleteNews(id uint) error {
	if _, err := s.NewsRepo.FindByID(id); errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrNewsNotFound
	} else if err != nil {
		return err
	}
	if err := s.NewsRepo.Delete(id); err != nil {
		return err
	}
	s.invalidateFeed(context.Background())
	return nil
}

func (s *NewsService) ListAll(page, limit int) ([]model.News, int64, error) {
	return s.NewsRepo.ListAll(page, limit)
}

// feedCacheKey embeds a version counter so a single INCR invalidates
// every cached page at once.
func (s *NewsService) feedCacheKey(ctx context.Context, category, language string, page, limit int) (string, error) {
	if s.Redis == nil || s.Cfg.Content.NewsCacheTTL <= 0 {
		return "", nil
	}
	ver, err := s.Redis.Get(ctx, newsFeedVersionKey).Int64()
	if err != nil && err != redis.Nil {
		return "", err
	}
	return fmt.Sprintf("news:feed:%d:%s:%s:%d:%d", ver, category, language, page, limit), nil
}

func (s *NewsService) invalidateFeed(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Incr(ctx, newsFeedVersionKey).Err(); err != nil {
		logger.Log.Warn("news feed cache invalidation failed", zap.Error(err))
	}
}
