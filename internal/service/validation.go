// Package service holds Blogly's business rules between handlers and repositories.
package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"blogly/internal/models"
)

const (
	maxNameLen     = 100
	maxEmailLen    = 255
	maxImageURLLen = 2048
	maxTitleLen    = 300
	maxContentLen  = 50000
	maxTagNameLen  = 100
)

// requiredText trims value and rejects it when blank or longer than max runes.
func requiredText(label, value string, max int) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", models.NewValidationError(fmt.Sprintf("%s is required", label))
	}
	return optionalText(label, v, max)
}

// optionalText trims value and rejects it when longer than max runes.
func optionalText(label, value string, max int) (string, error) {
	v := strings.TrimSpace(value)
	if utf8.RuneCountInString(v) > max {
		return "", models.NewValidationError(fmt.Sprintf("%s too long (max %d characters)", label, max))
	}
	return v, nil
}
