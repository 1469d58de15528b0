package database

import "errors"

var (
	ErrCodeExists      = errors.New("file code already exists")
	ErrFileNotFound    = errors.New("file not found")
	ErrChannelExists   = errors.New("channel already exists")
	ErrChannelNotFound = errors.New("channel not found")
	ErrUserNotFound    = errors.New("user not found")
)
