package validator

import (
	"cmp"
	"fmt"
	"sort"
	"strings"
)

type Validator struct {
	Errors map[string]string
}

func New() *Validator {
	return &Validator{Errors: map[string]string{}}
}

func (v *Validator) CheckError(ok bool, key, message string) {
	if !ok {
		v.AddFieldError(key, message)
	}
}

func (v *Validator) IsValid() bool {
	return len(v.Errors) == 0
}

// AddFieldError keeps the first message recorded for a key.
func (v *Validator) AddFieldError(key, message string) {
	_, exists := v.Errors[key]
	if !exists {
		v.Errors[key] = message
	}
}

// Err folds the recorded field errors into a single error, ordered by key.
// It returns nil when the validator is valid.
func (v *Validator) Err() error {
	if v.IsValid() {
		return nil
	}

	keys := make([]string, 0, len(v.Errors))
	for key := range v.Errors {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", key, v.Errors[key]))
	}

	return fmt.Errorf("invalid configuration: %s", strings.Join(parts, "; "))
}

func NotBlank(val string) bool {
	return strings.TrimSpace(val) != ""
}

func InRange[T cmp.Ordered](val, lo, hi T) bool {
	return val >= lo && val <= hi
}

func PermittedValue[T comparable](val T, permittedValues ...T) bool {
	for _, permitted := range permittedValues {
		if val == permitted {
			return true
		}
	}

	return false
}

func Unique[T comparable](vals []T) bool {
	uniqueValues := map[T]struct{}{}

	for _, val := range vals {
		if _, ok := uniqueValues[val]; ok {
			return false
		}

		uniqueValues[val] = struct{}{}
	}

	return true
}
