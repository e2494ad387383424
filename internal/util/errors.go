package util

import "errors"

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrEmailRegistered       = errors.New("email already registered")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrChildNotFound         = errors.New("child not found")
	ErrInvalidDate           = errors.New("invalid date, expected YYYY-MM-DD")
	ErrQuizNotFound          = errors.New("quiz not found")
	ErrTestNotFound          = errors.New("test not found")
	ErrSubjectNotFound       = errors.New("subject not found")
	ErrNewsNotFound          = errors.New("news not found")
	ErrFolderNotFound        = errors.New("folder not found")
	ErrDebateNotFound        = errors.New("debate not found")
	ErrChallengeNotFound     = errors.New("challenge not found")
	ErrAnswerAlreadyRecorded = errors.New("answer already recorded")
	ErrAlreadySaved          = errors.New("already saved to folder")
	ErrQuizNotCompleted      = errors.New("quiz not completed yet")
	ErrOrderNotFound         = errors.New("payment order not found")
	ErrBadSignature          = errors.New("payment signature mismatch")
	ErrPremiumRequired       = errors.New("premium plan required")
)
