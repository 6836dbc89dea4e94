package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidPreferences   = errors.New("invalid preferences")
	ErrPreferencesNotFound  = errors.New("preferences not found: complete onboarding first")
	ErrReportNotFound       = errors.New("report not found")
	ErrRateLimited          = errors.New("rate limited")
	ErrServiceNotConfigured = errors.New("service not configured")
)

// ValidationError detalla que campos de las preferencias no pasaron la validacion.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrInvalidPreferences.Error()
	}
	return fmt.Sprintf("%s: %s", ErrInvalidPreferences.Error(), strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidPreferences
}
