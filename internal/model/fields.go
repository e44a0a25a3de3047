package model

import "slices"

// Fields carries the editable parts of an Article. A nil pointer or nil
// slice means "leave unchanged" on update; on create every field is taken
// as given. Slug is never accepted from callers.
type Fields struct {
	Title        *string   `json:"title,omitempty"`
	Description  *string   `json:"description,omitempty"`
	Content      *string   `json:"content,omitempty"`
	Requirements []string  `json:"requirements"`
	UseCases     []string  `json:"useCases"`
	Libraries    []Library `json:"libraries"`
	Language     *string   `json:"language,omitempty"`
	Icon         *string   `json:"icon,omitempty"`
	Color        *string   `json:"color,omitempty"`
}

// Apply copies the set fields onto a and reports whether anything changed.
func (f Fields) Apply(a *Article) bool {
	changed := false
	setString := func(dst *string, src *string) {
		if src != nil && *dst != *src {
			*dst = *src
			changed = true
		}
	}

	setString(&a.Title, f.Title)
	setString(&a.Description, f.Description)
	setString(&a.Content, f.Content)
	setString(&a.Language, f.Language)
	setString(&a.Icon, f.Icon)
	setString(&a.Color, f.Color)

	if f.Requirements != nil && !slices.Equal(a.Requirements, f.Requirements) {
		a.Requirements = append([]string{}, f.Requirements...)
		changed = true
	}
	if f.UseCases != nil && !slices.Equal(a.UseCases, f.UseCases) {
		a.UseCases = append([]string{}, f.UseCases...)
		changed = true
	}
	if f.Libraries != nil && !slices.Equal(a.Libraries, f.Libraries) {
		a.Libraries = append([]Library{}, f.Libraries...)
		changed = true
	}

	return changed
}

// String is a helper for building Fields literals.
func String(s string) *string {
	return &s
}
