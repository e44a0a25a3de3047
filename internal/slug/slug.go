package slug

import (
	"regexp"
	"strings"
)

var (
	nonWord    = regexp.MustCompile(`[^a-z0-9\s]`)
	whitespace = regexp.MustCompile(`\s+`)
	hyphens    = regexp.MustCompile(`-+`)
)

// DefaultExceptions maps titles whose short name is not a mechanical
// transform of the display title.
var DefaultExceptions = map[string]string{
	"C++": "cpp",
	"C#":  "csharp",
}

// Deriver turns article titles into slugs.
type Deriver struct {
	exceptions map[string]string
}

// Option configures a Deriver.
type Option func(*Deriver)

// WithException adds (or replaces) a fixed title -> slug mapping.
func WithException(title, value string) Option {
	return func(d *Deriver) {
		d.exceptions[exceptionKey(title)] = value
	}
}

// New returns a Deriver seeded with DefaultExceptions.
func New(opts ...Option) *Deriver {
	d := &Deriver{exceptions: make(map[string]string, len(DefaultExceptions))}
	for title, value := range DefaultExceptions {
		d.exceptions[exceptionKey(title)] = value
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Derive returns the exception value for title if there is one,
// otherwise Transform(title).
func (d *Deriver) Derive(title string) string {
	if v, ok := d.exceptions[exceptionKey(title)]; ok {
		return v
	}
	return Transform(title)
}

// Transform is the mechanical slug rule. Leading and trailing hyphens
// are kept: Transform("  Ruby!!  ") == "-ruby-".
func Transform(s string) string {
	s = strings.ToLower(s)
	s = nonWord.ReplaceAllString(s, "-")
	s = whitespace.ReplaceAllString(s, "-")
	return hyphens.ReplaceAllString(s, "-")
}

var defaultDeriver = New()

// Derive uses the default exception table.
func Derive(title string) string {
	return defaultDeriver.Derive(title)
}

func exceptionKey(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}
