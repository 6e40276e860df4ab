package application

import "errors"

var (
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrUserNotFound           = errors.New("user not found")
	ErrEmailTaken             = errors.New("user already exists")
	ErrInvalidCurrentPassword = errors.New("current password is incorrect")

	ErrProjectNotFound = errors.New("project not found")
	ErrForbidden       = errors.New("forbidden")
	ErrValidation      = errors.New("validation failed")

	ErrFileTooLarge       = errors.New("file too large")
	ErrStorageUnavailable = errors.New("storage unavailable")

	ErrCannotBuyOwnProject = errors.New("cannot purchase your own project")
	ErrPaymentUnavailable  = errors.New("payment provider unavailable")
)
