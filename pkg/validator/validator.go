package validator

import (
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type ErrorResponse struct {
	FailedField string
	Tag         string
	Value       string
}

var validate = validator.New()

// Default forbidden words for catalog content fields. A field value
// fails only when, lowercased, it exactly equals an entry; substrings
// are allowed.
var defaultForbiddenWords = []string{
	"казино", "криптовалюта", "обман", "биржа",
	"дешево", "бесплатно", "полиция", "радар",
}

var (
	forbiddenMu    sync.RWMutex
	forbiddenWords = toSet(defaultForbiddenWords)
)

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			set[w] = struct{}{}
		}
	}
	return set
}

// SetForbiddenWords replaces the forbidden-word list (e.g. from the
// FORBIDDEN_WORDS env var). An empty slice restores the defaults.
func SetForbiddenWords(words []string) {
	forbiddenMu.Lock()
	defer forbiddenMu.Unlock()
	if len(words) == 0 {
		forbiddenWords = toSet(defaultForbiddenWords)
		return
	}
	forbiddenWords = toSet(words)
}

// IsForbidden reports whether value exactly matches a forbidden word
// after lowercasing.
func IsForbidden(value string) bool {
	forbiddenMu.RLock()
	defer forbiddenMu.RUnlock()
	_, ok := forbiddenWords[strings.ToLower(value)]
	return ok
}

func init() {
	// Register custom validation for UUID
	validate.RegisterValidation("uuid_required", func(fl validator.FieldLevel) bool {
		if id, ok := fl.Field().Interface().(uuid.UUID); ok {
			return id != uuid.Nil
		}
		return false
	})

	// Content rule for catalog name/description fields
	validate.RegisterValidation("not_forbidden", func(fl validator.FieldLevel) bool {
		return !IsForbidden(fl.Field().String())
	})
}

func ValidateStruct(data interface{}) []*ErrorResponse {
	var errors []*ErrorResponse
	err := validate.Struct(data)
	if err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			var element ErrorResponse
			element.FailedField = err.StructNamespace()
			element.Tag = err.Tag()
			element.Value = err.Param()
			errors = append(errors, &element)
		}
	}
	return errors
}
