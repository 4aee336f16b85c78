package validator

import (
	"mime/multipart"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Username: 3-50 chars, A-Z, a-z, 0-9, ., _, -
var usernameRegex = regexp.MustCompile(`^[A-Za-z0-9._-]{3,50}$`)

func IsValidUsername(username string) bool {
	return usernameRegex.MatchString(username)
}

func IsValidUUID(id string) bool {
	return uuid.Validate(id) == nil
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}

func IsInSlice(value string, slice []string) bool {
	return slices.Contains(slice, value)
}

// MaxImageSize is the upload limit for photos.
const MaxImageSize = 10 << 20

var imageExts = []string{".jpg", ".jpeg", ".png"}

// IsImageFile reports whether filename has a jpg, jpeg or png extension.
func IsImageFile(filename string) bool {
	return IsInSlice(strings.ToLower(filepath.Ext(filename)), imageExts)
}

// ValidateImage checks an uploaded photo. A nil header yields a "required" error only when
// required is set.
func ValidateImage(field string, fh *multipart.FileHeader, required bool) *ValidationError {
	if fh == nil {
		if required {
			return &ValidationError{Field: field, Message: field + " is required"}
		}
		return nil
	}
	if !IsImageFile(fh.Filename) {
		return &ValidationError{Field: field, Message: "invalid file type: only jpg, jpeg, png allowed"}
	}
	if fh.Size > MaxImageSize {
		return &ValidationError{Field: field, Message: field + " size must not exceed 10MB"}
	}
	return nil
}

// IsValidDateTime checks if a string is a valid ISO8601 timestamp.
// Accepts formats like: "2024-01-15T10:30:00Z" or "2024-01-15T10:30:00+07:00"
func IsValidDateTime(dateTimeStr string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, dateTimeStr)
	if err == nil {
		return t, true
	}

	t, err = time.Parse(time.RFC3339Nano, dateTimeStr)
	if err == nil {
		return t, true
	}

	return time.Time{}, false
}
