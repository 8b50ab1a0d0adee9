package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound         = errors.New("record not found")
	ErrDuplicateName    = errors.New("name already exists")
	ErrDuplicateRanking = errors.New("player already in season")
)
