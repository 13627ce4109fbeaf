package service

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidReference   = errors.New("referenced tema or usuario does not exist")
	ErrLoginTaken         = errors.New("login already registered")
	ErrStorageUnavailable = errors.New("object storage is not configured")
	ErrReaderNil          = errors.New("reader is nil")
	ErrNotAnImage         = errors.New("photo must be an image")
)
