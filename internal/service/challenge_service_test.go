package service

import (
	"testing"
	"time"

	"kidsphere_backend/internal/model"
	"kidsphere_backend/internal/repository"
	"kidsphere_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedChallenge(t *testing.T, db *gorm.DB, taskCount int) *model.Challenge {
	t.Helper()
	var badge model.Badge
	require.NoError(t, db.Where("code = ?", "quiz_whiz").First(&badge).Error)

	challenge := &model.Challenge{
		Title:     "Quiz marathon",
		BadgeID:   badge.ID,
		TaskCount: taskCount,
		Language:  "en",
	}
	require.NoError(t, db.Create(challenge).Error)
	return challenge
}

func newChallengeService(db *gorm.DB) *ChallengeService {
	return NewChallengeService(repository.NewChallengeRepository(db), newUserService(db))
}

func TestRecordTaskAwardsBadgeOnce(t *testing.T) {
	db := newTestDB(t)
	user, child := seedUserWithChild(t, db, time.Now().AddDate(-8, 0, 0))
	challenge := seedChallenge(t, db, 3)
	svc := newChallengeService(db)

	for i := 1; i <= 2; i++ {
		result, err := svc.RecordTask(user.ID, child.ID, challenge.ID)
		require.NoError(t, err)
		assert.Equal(t, i, result.TasksDone)
		assert.False(t, result.Completed)
		assert.Nil(t, result.Badge)
	}

	third, err := svc.RecordTask(user.ID, child.ID, challenge.ID)
	require.NoError(t, err)
	assert.True(t, third.Completed)
	assert.True(t, third.BadgeAwarded)
	require.NotNil(t, third.Badge)
	assert.Equal(t, "quiz_whiz", third.Badge.Code)
}

func TestRecordTaskAfterCompletionIsNoOp(t *testing.T) {
	db := newTestDB(t)
	user, child := seedUserWithChild(t, db, time.Now().AddDate(-8, 0, 0))
	challenge := seedChallenge(t, db, 1)
	svc := newChallengeService(db)

	first, err := svc.RecordTask(user.ID, child.ID, challenge.ID)
	require.NoError(t, err)
	assert.True(t, first.Completed)
	assert.True(t, first.BadgeAwarded)

	extra, err := svc.RecordTask(user.ID, child.ID, challenge.ID)
	require.NoError(t, err)
	assert.True(t, extra.Completed)
	assert.False(t, extra.BadgeAwarded)
	assert.Equal(t, 1, extra.TasksDone)

	progress, err := svc.ChallengeRepo.FindProgress(user.ID, child.ID, challenge.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, progress.TasksDone)
}

func TestRecordTaskUnknownChallenge(t *testing.T) {
	db := newTestDB(t)
	user, child := seedUserWithChild(t, db, time.Now().AddDate(-8, 0, 0))
	svc := newChallengeService(db)

	_, err := svc.RecordTask(user.ID, child.ID, 9999)
	assert.ErrorIs(t, err, util.ErrChallengeNotFound)
}

func TestStatusMergesProgress(t *testing.T) {
	db := newTestDB(t)
	user, child := seedUserWithChild(t, db, time.Now().AddDate(-8, 0, 0))
	started := seedChallenge(t, db, 3)
	untouched := seedChallenge(t, db, 5)
	svc := newChallengeService(db)

	_, err := svc.RecordTask(user.ID, child.ID, started.ID)
	require.NoError(t, err)

	statuses, err := svc.Status(user.ID, child.ID, "en")
	require.NoError(t, err)
	require.Len(t, statuses, 2)

	byID := make(map[uint]ChallengeStatus)
	for _, s := range statuses {
		byID[s.Challenge.ID] = s
	}
	assert.Equal(t, 1, byID[started.ID].TasksDone)
	assert.Equal(t, 0, byID[untouched.ID].TasksDone)
	assert.False(t, byID[untouched.ID].Completed)
}
