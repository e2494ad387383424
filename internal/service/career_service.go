package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"kidsphere_backend/internal/model"
	"kidsphere_backend/internal/repository"
	"kidsphere_backend/internal/util"
	"kidsphere_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CareerCatalogEntry is one static catalog record: what a personality
// code means and which careers suit it.
type CareerCatalogEntry struct {
	Description string   `json:"description"`
	Careers     []string `json:"careers"`
}

// CareerCatalog maps type sequence -> language -> entry.
type CareerCatalog map[string]map[string]CareerCatalogEntry

func LoadCareerCatalog(path string) (CareerCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var catalog CareerCatalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, err
	}
	return catalog, nil
}

type CareerService struct {
	CareerRepo *repository.CareerRepository
	QuizRepo   *repository.QuizRepository
	Users      *UserService
	AI         *AIService
	Redis      *redis.Client
	Catalog    CareerCatalog
}

func NewCareerService(careerRepo *repository.CareerRepository, quizRepo *repository.QuizRepository, users *UserService, ai *AIService, rdb *redis.Client, catalogPath string) *CareerService {
	catalog, err := LoadCareerCatalog(catalogPath)
	if err != nil {
		logger.Log.Warn("career catalog not loaded", zap.String("path", catalogPath), zap.Error(err))
		catalog = CareerCatalog{}
	}
	return &CareerService{
		CareerRepo: careerRepo,
		QuizRepo:   quizRepo,
		Users:      users,
		AI:         ai,
		Redis:      rdb,
		Catalog:    catalog,
	}
}

type CareerAnswerRequest struct {
	ChildID    uint   `json:"childId"`
	QuestionID uint   `json:"questionId" binding:"required"`
	Answer     string `json:"answer" binding:"required,oneof=strongly_disagree neutral strongly_agree"`
}

type CareerAnswerResult struct {
	Answered  int  `json:"answered"`
	Total     int  `json:"total"`
	Completed bool `json:"completed"`
}

type CategoryScore struct {
	Category string `json:"category"`
	Score    int    `json:"score"`
}

type CareerReport struct {
	TypeSequence  string          `json:"typeSequence"`
	Categories    []CategoryScore `json:"categories"`
	Description   string          `json:"description"`
	Careers       []string        `json:"careers"`
	Compatibility string          `json:"compatibility"`
}

func likertWeight(answer string) int {
	switch answer {
	case "strongly_agree":
		return util.WeightStronglyAgree
	case "neutral":
		return util.WeightNeutral
	default:
		return util.WeightStronglyDisagree
	}
}

func (s *CareerService) ListTests(language string, page, limit int) ([]model.CareerTest, int64, error) {
	return s.CareerRepo.ListTests(language, page, limit)
}

func (s *CareerService) GetTest(id uint) (*model.CareerTest, error) {
	test, err := s.CareerRepo.FindTestByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrTestNotFound
	}
	return test, err
}

// RecordAnswer stores one Likert answer with the weight and category
// resolved server-side. Completing the last question stamps the type
// sequence on the attempt.
func (s *CareerService) RecordAnswer(userID, testID uint, req *CareerAnswerRequest) (*CareerAnswerResult, error) {
	child, err := s.Users.ResolveChild(userID, req.ChildID)
	if err != nil {
		return nil, err
	}
	if _, err := s.GetTest(testID); err != nil {
		return nil, err
	}

	question, err := s.CareerRepo.FindQuestion(req.QuestionID)
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && question.TestID != testID) {
		return nil, util.ErrTestNotFound
	}
	if err != nil {
		return nil, err
	}

	years, weeks := util.AgeParts(child.DOB, time.Now())
	seq, err := s.QuizRepo.EnsureSequence(&model.QuizSequence{
		UserID:   userID,
		ChildID:  child.ID,
		QuizType: model.QuizTypeCareer,
		QuizID:   testID,
		Age:      years,
		Weeks:    weeks,
	})
	if err != nil {
		return nil, err
	}

	inserted, err := s.CareerRepo.InsertProgress(&model.CareerProgress{
		UserID:     userID,
		ChildID:    child.ID,
		TestID:     testID,
		QuestionID: question.ID,
		Weight:     likertWeight(req.Answer),
		Category:   question.Category,
	})
	if err != nil {
		return nil, err
	}
	if !inserted {
		return nil, util.ErrAnswerAlreadyRecorded
	}

	total, err := s.CareerRepo.CountQuestions(testID)
	if err != nil {
		return nil, err
	}
	progress, err := s.CareerRepo.ListProgress(userID, child.ID, testID)
	if err != nil {
		return nil, err
	}

	result := &CareerAnswerResult{
		Answered: len(progress),
		Total:    int(total),
	}

	if int64(len(progress)) >= total && !seq.IsCompleted {
		test, err := s.GetTest(testID)
		if err != nil {
			return nil, err
		}
		scores := TallyCategories(progress, categoryOrder(test))
		if err := s.QuizRepo.CompleteSequence(seq.ID, TypeSequence(scores)); err != nil {
			return nil, err
		}
		result.Completed = true
	}
	return result, nil
}

// categoryOrder is the order categories first appear across the test's
// ordered questions; tie-breaks in the tally follow it.
func categoryOrder(test *model.CareerTest) []string {
	seen := make(map[string]bool)
	var order []string
	for _, q := range test.Questions {
		if !seen[q.Category] {
			seen[q.Category] = true
			order = append(order, q.Category)
		}
	}
	return order
}

// TallyCategories sums answer weights per category and sorts descending
// by score. Ties keep the supplied category order (stable).
func TallyCategories(rows []model.CareerProgress, order []string) []CategoryScore {
	totals := make(map[string]int)
	for _, r := range rows {
		totals[r.Category] += r.Weight
	}

	scores := make([]CategoryScore, 0, len(order))
	for _, cat := range order {
		scores = append(scores, CategoryScore{Category: cat, Score: totals[cat]})
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})
	return scores
}

// TypeSequence builds the personality code from the initials of the top
// three categories.
func TypeSequence(scores []CategoryScore) string {
	var b strings.Builder
	for i, s := range scores {
		if i == 3 {
			break
		}
		if s.Category != "" {
			b.WriteString(strings.ToUpper(s.Category[:1]))
		}
	}
	return b.String()
}

// Report assembles the full classification: type sequence, catalog
// entry, and AI compatibility text generated once and cached.
func (s *CareerService) Report(ctx context.Context, userID, childID, testID uint, language string) (*CareerReport, error) {
	child, err := s.Users.ResolveChild(userID, childID)
	if err != nil {
		return nil, err
	}
	test, err := s.GetTest(testID)
	if err != nil {
		return nil, err
	}

	total, err := s.CareerRepo.CountQuestions(testID)
	if err != nil {
		return nil, err
	}
	progress, err := s.CareerRepo.ListProgress(userID, child.ID, testID)
	if err != nil {
		return nil, err
	}
	if total == 0 || int64(len(progress)) < total {
		return nil, util.ErrQuizNotCompleted
	}

	scores := TallyCategories(progress, categoryOrder(test))
	typeSeq := TypeSequence(scores)

	report := &CareerReport{
		TypeSequence: typeSeq,
		Categories:   scores,
	}
	if entry, ok := s.catalogEntry(typeSeq, language); ok {
		report.Description = entry.Description
		report.Careers = entry.Careers
	}

	compat, err := s.compatibility(ctx, userID, testID, language, report)
	if err != nil {
		return nil, err
	}
	report.Compatibility = compat
	return report, nil
}

func (s *CareerService) catalogEntry(typeSeq, language string) (CareerCatalogEntry, bool) {
	langs, ok := s.Catalog[typeSeq]
	if !ok {
		return CareerCatalogEntry{}, false
	}
	if entry, ok := langs[language]; ok {
		return entry, true
	}
	entry, ok := langs["en"]
	return entry, ok
}

// compatibility returns the cached AI compatibility text, generating and
// persisting it on the first request. The stored text is returned
// verbatim afterwards.
func (s *CareerService) compatibility(ctx context.Context, userID, testID uint, language string, report *CareerReport) (string, error) {
	cacheKey := fmt.Sprintf("career:result:%d:%d", userID, testID)
	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			return cached, nil
		}
	}

	existing, err := s.CareerRepo.FindResult(userID, testID)
	if err == nil {
		s.cacheResult(ctx, cacheKey, existing.Content)
		return existing.Content, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	content, err := s.AI.Chat(
		"You are a children's career guidance assistant. Answer in "+languageName(language)+".",
		nil,
		buildCompatibilityPrompt(report),
	)
	if err != nil {
		return "", err
	}

	if err := s.CareerRepo.SaveResult(&model.CareerResult{
		UserID:   userID,
		TestID:   testID,
		Language: language,
		Content:  content,
	}); err != nil {
		return "", err
	}
	s.cacheResult(ctx, cacheKey, content)
	return content, nil
}

func (s *CareerService) cacheResult(ctx context.Context, key, content string) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Set(ctx, key, content, time.Hour).Err(); err != nil {
		logger.Log.Warn("career result cache write failed", zap.Error(err))
	}
}

func buildCompatibilityPrompt(report *CareerReport) string {
	var b strings.Builder
	b.WriteString("A child completed a personality assessment. Trait scores:\n")
	for _, c := range report.Categories {
		fmt.Fprintf(&b, "- %s: %d\n", c.Category, c.Score)
	}
	fmt.Fprintf(&b, "Personality code: %s\n", report.TypeSequence)
	if len(report.Careers) > 0 {
		fmt.Fprintf(&b, "Candidate careers: %s\n", strings.Join(report.Careers, ", "))
	}
	b.WriteString("For each candidate career, give a compatibility percentage and one sentence of reasoning, as plain text.")
	return b.String()
}

func languageName(code string) string {
	switch code {
	case "hi":
		return "Hindi"
	case "es":
		return "Spanish"
	default:
		return "English"
	}
}

type CareerTestCreateRequest struct {
	Title     string `json:"title" binding:"required"`
	Language  string `json:"language"`
	Questions []struct {
		Content  string `json:"content" binding:"required"`
		Category string `json:"category" binding:"required"`
		Order    int    `json:"order"`
	} `json:"questions" binding:"required,min=1"`
}

func (s *CareerService) CreateTest(req *CareerTestCreateRequest) (*model.CareerTest, error) {
	test := &model.CareerTest{
		Title:    req.Title,
		Language: req.Language,
	}
	if test.Language == "" {
		test.Language = "en"
	}
	for _, q := range req.Questions {
		test.Questions = append(test.Questions, model.CareerQuestion{
			Content:  q.Content,
			Category: q.Category,
			Order:    q.Order,
		})
	}

	if err := s.CareerRepo.CreateTest(test); err != nil {
		return nil, err
	}
	return test, nil
}
