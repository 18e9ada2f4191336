// Package slug derives unique, URL-safe article identifiers from titles.
package slug

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	// MaxLength bounds every generated slug, suffix included.
	MaxLength = 200

	// Fallback is used when a title normalizes to nothing.
	Fallback = "article"

	maxAttempts = 10000
)

// DefaultReserved holds path segments that share a route with /articles/{slug}.
var DefaultReserved = []string{"feed"}

// DefaultStopWords are dropped from titles before joining.
var DefaultStopWords = []string{"a", "an", "the"}

// ErrExhausted is returned when no free suffix was found within maxAttempts.
var ErrExhausted = errors.New("slug: no unique candidate found")

// ExistsFunc reports whether a slug is already taken in the store.
type ExistsFunc func(ctx context.Context, slug string) (bool, error)

// Generator turns titles into slugs. It is safe for concurrent use.
type Generator struct {
	reserved  map[string]struct{}
	stopWords map[string]struct{}
	maxLength int
}

// Option customizes a Generator.
type Option func(*Generator)

// WithReserved replaces the reserved word set.
func WithReserved(words ...string) Option {
	return func(g *Generator) {
		g.reserved = toSet(words)
	}
}

// WithStopWords replaces the stop word list.
func WithStopWords(words ...string) Option {
	return func(g *Generator) {
		g.stopWords = toSet(words)
	}
}

// WithMaxLength sets the length bound. Values below 1 are ignored.
func WithMaxLength(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.maxLength = n
		}
	}
}

func New(opts ...Option) *Generator {
	g := &Generator{
		reserved:  toSet(DefaultReserved),
		stopWords: toSet(DefaultStopWords),
		maxLength: MaxLength,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Normalize maps a title to its slug base without checking uniqueness.
// Non-Latin scripts are transliterated. The result may be empty.
func (g *Generator) Normalize(title string) string {
	folded, _, err := transform.String(foldAccents(), title)
	if err != nil {
		folded = title
	}
	ascii := unidecode.Unidecode(folded)

	words := strings.FieldsFunc(strings.ToLower(ascii), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})

	kept := words[:0]
	for _, w := range words {
		if _, stop := g.stopWords[w]; !stop {
			kept = append(kept, w)
		}
	}

	return truncate(strings.Join(kept, "-"), g.maxLength)
}

// Reserved reports whether s may never be used as a slug.
func (g *Generator) Reserved(s string) bool {
	_, ok := g.reserved[s]
	return ok
}

// Unique returns the first candidate derived from title that is neither
// reserved nor reported taken by exists: base, base-1, base-2, ...
func (g *Generator) Unique(ctx context.Context, title string, exists ExistsFunc) (string, error) {
	base := g.Normalize(title)
	if base == "" {
		base = Fallback
	}

	candidate := base
	for i := 1; i <= maxAttempts; i++ {
		if !g.Reserved(candidate) {
			taken, err := exists(ctx, candidate)
			if err != nil {
				return "", fmt.Errorf("check slug %q: %w", candidate, err)
			}
			if !taken {
				return candidate, nil
			}
		}

		suffix := "-" + strconv.Itoa(i)
		candidate = truncate(base, g.maxLength-len(suffix)) + suffix
	}

	return "", ErrExhausted
}

// truncate cuts s to at most n bytes, preferring the last hyphen boundary.
// s is expected to be ASCII.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 0 {
		return ""
	}

	cut := s[:n]
	if s[n] != '-' {
		if idx := strings.LastIndexByte(cut, '-'); idx > 0 {
			cut = cut[:idx]
		}
	}
	return strings.Trim(cut, "-")
}

func foldAccents() transform.Transformer {
	return transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = struct{}{}
	}
	return set
}
