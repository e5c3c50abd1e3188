// Package validator checks form input before any analysis request is made.
package validator

import (
	"errors"
	"strconv"
	"strings"

	"github.com/BerylCAtieno/smm-content-analyzer/internal/models"
)

type Kind string

const (
	KindAgeRange         Kind = "age-range"
	KindMissingLocation  Kind = "missing-location"
	KindMissingInterests Kind = "missing-interests"
	KindMissingContent   Kind = "missing-content"
	KindMalformedLink    Kind = "malformed-link"
)

var messages = map[Kind]string{
	KindAgeRange:         "Ups, rentang usianya belum pas nih. Yuk, dicek lagi biar hasilnya maksimal!",
	KindMissingLocation:  "Lokasi target audiensmu penting lho! Yuk, diisi dulu ya.",
	KindMissingInterests: "Apa sih yang disukai audiensmu? Ceritain minat mereka di sini ya!",
	KindMissingContent:   "Caption atau link Instagram-nya jangan sampai kelewat ya. Keduanya bikin analisa makin top!",
	KindMalformedLink:    "Hmm, format link Instagram-nya sepertinya perlu diperiksa lagi. Pastikan dimulai dengan `" + models.InstagramLinkPrefix + "` ya!",
}

// ErrValidation matches any *ValidationError with errors.Is.
var ErrValidation = errors.New("validation failed")

type ValidationError struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func newError(kind Kind) *ValidationError {
	return &ValidationError{Kind: kind, Message: messages[kind]}
}

// Validate returns nil when the form is ready to submit, otherwise the first
// failing check as a *ValidationError.
func Validate(audience models.TargetAudience, content models.InstagramContent) error {
	if !validAgeRange(audience.AgeMin, audience.AgeMax) {
		return newError(KindAgeRange)
	}
	if isBlank(audience.Location) {
		return newError(KindMissingLocation)
	}
	if isBlank(audience.Interests) {
		return newError(KindMissingInterests)
	}
	if isBlank(content.Caption) && isBlank(content.Link) {
		return newError(KindMissingContent)
	}
	if !isBlank(content.Link) && !strings.HasPrefix(content.Link, models.InstagramLinkPrefix) {
		return newError(KindMalformedLink)
	}
	return nil
}

func validAgeRange(minStr, maxStr string) bool {
	if minStr == "" || maxStr == "" {
		return false
	}
	minAge, err := strconv.Atoi(strings.TrimSpace(minStr))
	if err != nil {
		return false
	}
	maxAge, err := strconv.Atoi(strings.TrimSpace(maxStr))
	if err != nil {
		return false
	}
	return minAge >= 0 && maxAge >= 0 && minAge <= maxAge
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
