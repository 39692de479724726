// Package sanitize cleans untrusted user text before it is stored in session
// history or sent to a paid provider API. This is the only place user content
// is cleaned, which makes it a load-bearing boundary: everything downstream
// assumes its output is markup-free and within the length limit.
package sanitize

import (
	"fmt"
	"html"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	apperrors "chat-relay/internal/errors"
)

// MaxMessageLength is the maximum number of characters accepted in a single
// user message after markup stripping and trimming.
const MaxMessageLength = 2000

var (
	// ErrEmptyMessage is returned when the input is empty after cleaning.
	ErrEmptyMessage = fmt.Errorf("%w: message cannot be empty", apperrors.ErrValidation)

	// ErrTooLong is returned when the cleaned input exceeds MaxMessageLength.
	ErrTooLong = fmt.Errorf("%w: message exceeds %d characters", apperrors.ErrValidation, MaxMessageLength)
)

var (
	policy *bluemonday.Policy
	once   sync.Once
)

// getPolicy lazily builds the strip-everything policy. bluemonday policies
// are safe for concurrent use, so one instance serves all requests.
func getPolicy() *bluemonday.Policy {
	once.Do(func() {
		policy = bluemonday.StrictPolicy()
	})
	return policy
}

// Sanitize strips all HTML/markup from raw, trims surrounding whitespace, and
// enforces the length limit. The returned text is plain: bluemonday escapes
// what it keeps, so the entities are unescaped back afterwards.
//
// Stripping runs to a fixed point because unescaping can reveal markup that
// was entity-encoded in the input ("&lt;script&gt;" decodes to a live tag).
// Each pass only removes tags or decodes entities, so the loop terminates.
func Sanitize(raw string) (string, error) {
	cleaned := raw
	for {
		stripped := html.UnescapeString(getPolicy().Sanitize(cleaned))
		if stripped == cleaned {
			break
		}
		cleaned = stripped
	}
	trimmed := strings.TrimSpace(cleaned)

	if trimmed == "" {
		return "", ErrEmptyMessage
	}
	if utf8.RuneCountInString(trimmed) > MaxMessageLength {
		return "", ErrTooLong
	}
	return trimmed, nil
}
