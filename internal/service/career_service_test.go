package service

import (
	"context"
	"testing"
	"time"

	"kidsphere_backend/internal/model"
	"kidsphere_backend/internal/repository"
	"kidsphere_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedCareerTest(t *testing.T, db *gorm.DB) *model.CareerTest {
	t.Helper()
	test := &model.CareerTest{Title: "Who am I?"}
	categories := []string{"realistic", "investigative", "artistic", "social", "enterprising", "conventional"}
	order := 1
	for _, cat := range categories {
		for i := 0; i < 2; i++ {
			test.Questions = append(test.Questions, model.CareerQuestion{
				Content:  "statement",
				Category: cat,
				Order:    order,
			})
			order++
		}
	}
	require.NoError(t, db.Create(test).Error)
	return test
}

func newCareerService(db *gorm.DB, catalog CareerCatalog) *CareerService {
	return &CareerService{
		CareerRepo: repository.NewCareerRepository(db),
		QuizRepo:   repository.NewQuizRepository(db),
		Users:      newUserService(db),
		Catalog:    catalog,
	}
}

func TestTallyCategoriesSortsStable(t *testing.T) {
	order := []string{"realistic", "investigative", "artistic"}
	rows := []model.CareerProgress{
		{Category: "artistic", Weight: 2},
		{Category: "realistic", Weight: 1},
		{Category: "investigative", Weight: 1},
	}

	scores := TallyCategories(rows, order)
	require.Len(t, scores, 3)
	assert.Equal(t, "artistic", scores[0].Category)
	// Tied categories keep their question order.
	assert.Equal(t, "realistic", scores[1].Category)
	assert.Equal(t, "investigative", scores[2].Category)
}

func TestTypeSequence(t *testing.T) {
	scores := []CategoryScore{
		{Category: "realistic", Score: 4},
		{Category: "investigative", Score: 3},
		{Category: "artistic", Score: 2},
		{Category: "social", Score: 1},
	}
	assert.Equal(t, "RIA", TypeSequence(scores))

	assert.Equal(t, "RI", TypeSequence(scores[:2]))
	assert.Equal(t, "", TypeSequence(nil))
}

func TestStripCodeFences(t *testing.T) {
	assert.Equal(t, "plain", StripCodeFences("plain"))
	assert.Equal(t, "hello", StripCodeFences("```\nhello\n```"))
	assert.Equal(t, `{"a":1}`, StripCodeFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, "hello", StripCodeFences("  ```\nhello\n```  "))
}

func TestCareerAnswersDriveTypeSequence(t *testing.T) {
	db := newTestDB(t)
	user, child := seedUserWithChild(t, db, time.Now().AddDate(-12, 0, -30))
	test := seedCareerTest(t, db)
	svc := newCareerService(db, CareerCatalog{})

	// Strongly agree on artistic, neutral elsewhere.
	for _, q := range test.Questions {
		answer := "neutral"
		if q.Category == "artistic" {
			answer = "strongly_agree"
		}
		result, err := svc.RecordAnswer(user.ID, test.ID, &CareerAnswerRequest{
			ChildID:    child.ID,
			QuestionID: q.ID,
			Answer:     answer,
		})
		require.NoError(t, err)
		if result.Answered == result.Total {
			assert.True(t, result.Completed)
		}
	}

	seq, err := repository.NewQuizRepository(db).FindSequence(user.ID, child.ID, model.QuizTypeCareer, test.ID)
	require.NoError(t, err)
	assert.True(t, seq.IsCompleted)
	// Artistic leads; realistic and investigative follow in question order.
	assert.Equal(t, "ARI", seq.TypeSequence)
}

func TestCareerDuplicateAnswer(t *testing.T) {
	db := newTestDB(t)
	user, child := seedUserWithChild(t, db, time.Now().AddDate(-12, 0, -30))
	test := seedCareerTest(t, db)
	svc := newCareerService(db, CareerCatalog{})

	req := &CareerAnswerRequest{
		ChildID:    child.ID,
		QuestionID: test.Questions[0].ID,
		Answer:     "neutral",
	}
	_, err := svc.RecordAnswer(user.ID, test.ID, req)
	require.NoError(t, err)

	req.Answer = "strongly_agree"
	_, err = svc.RecordAnswer(user.ID, test.ID, req)
	assert.ErrorIs(t, err, util.ErrAnswerAlreadyRecorded)
}

func TestReportRequiresCompletion(t *testing.T) {
	db := newTestDB(t)
	user, child := seedUserWithChild(t, db, time.Now().AddDate(-12, 0, -30))
	test := seedCareerTest(t, db)
	svc := newCareerService(db, CareerCatalog{})

	_, err := svc.Report(context.Background(), user.ID, child.ID, test.ID, "en")
	assert.ErrorIs(t, err, util.ErrQuizNotCompleted)
}

func TestReportUsesCatalogAndCachedResult(t *testing.T) {
	db := newTestDB(t)
	user, child := seedUserWithChild(t, db, time.Now().AddDate(-12, 0, -30))
	test := seedCareerTest(t, db)

	catalog := CareerCatalog{
		"ARI": {
			"en": {Description: "creative investigator", Careers: []string{"Designer"}},
		},
	}
	svc := newCareerService(db, catalog)

	for _, q := range test.Questions {
		answer := "neutral"
		if q.Category == "artistic" {
			answer = "strongly_agree"
		}
		_, err := svc.RecordAnswer(user.ID, test.ID, &CareerAnswerRequest{
			ChildID:    child.ID,
			QuestionID: q.ID,
			Answer:     answer,
		})
		require.NoError(t, err)
	}

	// Persisted AI text is returned verbatim; no new generation happens.
	require.NoError(t, svc.CareerRepo.SaveResult(&model.CareerResult{
		UserID:   user.ID,
		TestID:   test.ID,
		Language: "en",
		Content:  "Designer: 92%",
	}))

	report, err := svc.Report(context.Background(), user.ID, child.ID, test.ID, "en")
	require.NoError(t, err)
	assert.Equal(t, "ARI", report.TypeSequence)
	assert.Equal(t, "creative investigator", report.Description)
	assert.Equal(t, []string{"Designer"}, report.Careers)
	assert.Equal(t, "Designer: 92%", report.Compatibility)
}
