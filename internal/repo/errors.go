package repo

import "errors"

var (
	ErrProductNotFound       = errors.New("product not found")
	ErrQuoteNotFound         = errors.New("quote not found")
	ErrUserNotFound          = errors.New("user not found")
	ErrDuplicatedValueUnique = errors.New("unique constraint violation")
)
