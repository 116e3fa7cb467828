package services

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrRecordNotFound      = errors.New("record not found")
	ErrRecordForbidden     = errors.New("record belongs to another user")
	ErrRecordAlreadyExists = errors.New("record already exists for this day")
	ErrInvalidRecordInput  = errors.New("invalid record input")

	errProviderNotConfigured = errors.New("provider not configured")
)
