package domain

import "errors"

var (
	ErrContentNotFound   = errors.New("content not found")
	ErrInvalidContent    = errors.New("invalid content item")
	ErrMissingCredential = errors.New("missing api credential")
)
