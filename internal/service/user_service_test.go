package service

import (
	"testing"
	"time"

	"kidsphere_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddChildParsesDOB(t *testing.T) {
	db := newTestDB(t)
	user, _ := seedUserWithChild(t, db, time.Now().AddDate(-8, 0, 0))
	svc := newUserService(db)

	child, err := svc.AddChild(user.ID, &ChildRequest{Name: "Alex", DOB: "2019-04-12"})
	require.NoError(t, err)
	assert.Equal(t, 2019, child.DOB.Year())
}

func TestAddChildRejectsMalformedDOB(t *testing.T) {
	db := newTestDB(t)
	user, _ := seedUserWithChild(t, db, time.Now().AddDate(-8, 0, 0))
	svc := newUserService(db)

	_, err := svc.AddChild(user.ID, &ChildRequest{Name: "Alex", DOB: "12/04/2019"})
	assert.ErrorIs(t, err, util.ErrInvalidDate)
}

func TestUpdateChildRejectsMalformedDOB(t *testing.T) {
	db := newTestDB(t)
	user, child := seedUserWithChild(t, db, time.Now().AddDate(-8, 0, 0))
	svc := newUserService(db)

	_, err := svc.UpdateChild(user.ID, child.ID, &ChildRequest{Name: "Sam", DOB: "not-a-date"})
	assert.ErrorIs(t, err, util.ErrInvalidDate)
}
