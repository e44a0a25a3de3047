package model

import (
	"fmt"
	"strings"
)

// ValidationError lists the required fields that were missing or empty.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: missing %s", strings.Join(e.Fields, ", "))
}

// Validate checks the required fields of the article and its libraries.
// Nothing is corrected; the caller gets every missing field at once.
func (a *Article) Validate() error {
	var missing []string
	required := []struct {
		name  string
		value string
	}{
		{"title", a.Title},
		{"description", a.Description},
		{"content", a.Content},
		{"language", a.Language},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.name)
		}
	}

	for i, lib := range a.Libraries {
		if strings.TrimSpace(lib.Name) == "" {
			missing = append(missing, fmt.Sprintf("libraries[%d].name", i))
		}
		if strings.TrimSpace(lib.Description) == "" {
			missing = append(missing, fmt.Sprintf("libraries[%d].description", i))
		}
	}

	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}
