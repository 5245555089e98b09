package services

import "errors"

var (
	ErrProfileNotFound  = errors.New("preference profile not found")
	ErrInvalidUserID    = errors.New("user id must be positive")
	ErrInvalidDraftData = errors.New("draft data does not match the profile shape")
	ErrInvalidFeedback  = errors.New("feedback needs a course id and a rating within [0,5]")
)
