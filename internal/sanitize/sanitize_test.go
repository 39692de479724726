package sanitize_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "chat-relay/internal/errors"
	"chat-relay/internal/sanitize"
)

func TestSanitize_StripsMarkup(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text untouched", "Hello, world", "Hello, world"},
		{"inline tags removed", "Hello <b>World</b>", "Hello World"},
		{"script element removed with its content", "<script>alert(1)</script>hi", "hi"},
		{"anchor stripped to its text", `<a href="https://example.com">click</a>`, "click"},
		{"surrounding whitespace trimmed", "  padded message  ", "padded message"},
		{"entities come back as plain text", "fish & chips", "fish & chips"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := sanitize.Sanitize(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSanitize_StripsEntityEncodedMarkup(t *testing.T) {
	// Markup that arrives entity-encoded decodes to live tags during
	// unescaping; those must be stripped too, not returned to the caller.
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"encoded inline tags", "&lt;b&gt;Hello&lt;/b&gt;", "Hello"},
		{"encoded script with trailing text", "&lt;script&gt;alert(1)&lt;/script&gt;hi", "hi"},
		{"double-encoded tag", "&amp;lt;img src=x onerror=alert(1)&amp;gt;text", "text"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := sanitize.Sanitize(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.NotContains(t, got, "<")
			assert.NotContains(t, got, ">")
		})
	}

	t.Run("encoded script alone is empty after stripping", func(t *testing.T) {
		_, err := sanitize.Sanitize("&lt;script&gt;alert(1)&lt;/script&gt;")
		require.Error(t, err)
		assert.ErrorIs(t, err, sanitize.ErrEmptyMessage)
	})
}

func TestSanitize_RejectsEmpty(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t", "<p>  </p>"} {
		_, err := sanitize.Sanitize(input)
		require.Error(t, err, "input %q", input)
		assert.ErrorIs(t, err, sanitize.ErrEmptyMessage)
		// The taxonomy matters to the API layer: a 400, not a 500.
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	}
}

func TestSanitize_EnforcesMaxLength(t *testing.T) {
	t.Run("at the limit passes", func(t *testing.T) {
		input := strings.Repeat("a", sanitize.MaxMessageLength)
		got, err := sanitize.Sanitize(input)
		require.NoError(t, err)
		assert.Len(t, got, sanitize.MaxMessageLength)
	})

	t.Run("one over the limit fails", func(t *testing.T) {
		input := strings.Repeat("a", sanitize.MaxMessageLength+1)
		_, err := sanitize.Sanitize(input)
		require.Error(t, err)
		assert.ErrorIs(t, err, sanitize.ErrTooLong)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("limit applies after stripping", func(t *testing.T) {
		// Markup does not count toward the limit once removed.
		input := "<b>" + strings.Repeat("a", sanitize.MaxMessageLength) + "</b>"
		_, err := sanitize.Sanitize(input)
		require.NoError(t, err)
	})
}

func TestSanitize_OutputNeverContainsTags(t *testing.T) {
	inputs := []string{
		"<img src=x onerror=alert(1)>text",
		"<div><span>nested</span></div>",
		"text with <br/> break",
	}
	for _, input := range inputs {
		got, err := sanitize.Sanitize(input)
		require.NoError(t, err, "input %q", input)
		assert.NotContains(t, got, "<")
		assert.NotContains(t, got, ">")
	}
}
