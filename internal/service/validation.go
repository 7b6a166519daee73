package service

import (
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/cohort-attendance/internal/models"
)

// NewValidator returns a validator with the form tags used by the tracker registered.
func NewValidator() *validator.Validate {
	v := validator.New()
	registerValidations(v)
	return v
}

func registerValidations(v *validator.Validate) {
	_ = v.RegisterValidation("alphaspace", func(fl validator.FieldLevel) bool {
		return isAlphaSpace(fl.Field().String())
	})
	_ = v.RegisterValidation("digits", func(fl validator.FieldLevel) bool {
		raw := fl.Field().String()
		if raw == "" {
			return false
		}
		for _, r := range raw {
			if r < '0' || r > '9' {
				return false
			}
		}
		return true
	})
	_ = v.RegisterValidation("day_pattern", func(fl validator.FieldLevel) bool {
		return models.DayPattern(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("mark", func(fl validator.FieldLevel) bool {
		switch models.NormalizeMark(fl.Field().String()) {
		case models.MarkPresent, models.MarkAbsent, models.MarkUnmarked:
			return true
		default:
			return false
		}
	})
}

// isAlphaSpace accepts letters and spaces with at least one letter.
func isAlphaSpace(raw string) bool {
	letters := 0
	for _, r := range strings.ReplaceAll(raw, " ", "") {
		if !unicode.IsLetter(r) {
			return false
		}
		letters++
	}
	return letters > 0
}
