package service

import (
	"errors"
	"net/http"
)

var (
	ErrParamInvalid         = errors.New("Invalid request parameters")
	ErrInvalidCredentials   = errors.New("Invalid email or password")
	ErrTooManyLoginAttempts = errors.New("Too many failed login attempts, please try again later")
	ErrUnauthorized         = errors.New("Unauthorized")
	ErrForbidden            = errors.New("Forbidden")
	ErrUserNotFound         = errors.New("User not found")
	ErrUserExist            = errors.New("User with this email already exists")
	ErrPasswordIncorrect    = errors.New("Current password is incorrect")
	ErrInvitationInvalid    = errors.New("Invalid invitation token")
	ErrInvitationExpired    = errors.New("Invitation has expired")
	ErrInvitationUsed       = errors.New("Invitation has already been used")
	ErrInvitationEmail      = errors.New("Email does not match invitation")
	ErrInvitationNotFound   = errors.New("Invitation not found")
	ErrMediaNotFound        = errors.New("Media not found")
	ErrMediaExist           = errors.New("This file has already been registered")
	ErrFolderNotFound       = errors.New("Folder not found")
	ErrScopeForbidden       = errors.New("Only admins can view all media")
	ErrBlobNotOwned         = errors.New("Blob does not belong to the current user")
	ErrBlobInvalid          = errors.New("Blob URL does not point to managed storage")
	ErrBlobMissing          = errors.New("Uploaded file not found in storage")
	ErrFileNotSupported     = errors.New("Only images and videos are allowed")
	ErrFileTooLarge         = errors.New("File exceeds the maximum upload size")
	ErrStarValueInvalid     = errors.New("is_starred must be a boolean")
	ErrUnexpected           = errors.New("Internal server error")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:         http.StatusBadRequest,
	ErrInvalidCredentials:   http.StatusUnauthorized,
	ErrTooManyLoginAttempts: http.StatusTooManyRequests,
	ErrUnauthorized:         http.StatusUnauthorized,
	ErrForbidden:            http.StatusForbidden,
	ErrUserNotFound:         http.StatusNotFound,
	ErrUserExist:            http.StatusConflict,
	ErrPasswordIncorrect:    http.StatusBadRequest,
	ErrInvitationInvalid:    http.StatusForbidden,
	ErrInvitationExpired:    http.StatusForbidden,
	ErrInvitationUsed:       http.StatusForbidden,
	ErrInvitationEmail:      http.StatusForbidden,
	ErrInvitationNotFound:   http.StatusNotFound,
	ErrMediaNotFound:        http.StatusNotFound,
	ErrMediaExist:           http.StatusConflict,
	ErrFolderNotFound:       http.StatusNotFound,
	ErrScopeForbidden:       http.StatusForbidden,
	ErrBlobNotOwned:         http.StatusForbidden,
	ErrBlobInvalid:          http.StatusBadRequest,
	ErrBlobMissing:          http.StatusBadRequest,
	ErrFileNotSupported:     http.StatusBadRequest,
	ErrFileTooLarge:         http.StatusRequestEntityTooLarge,
	ErrStarValueInvalid:     http.StatusBadRequest,
	ErrUnexpected:           http.StatusInternalServerError,
}
