package prompt

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPopulate(t *testing.T) {
	tmpl := New("Question:\n{question}\n\nContext:\n{context}\n")
	out, err := tmpl.Populate(map[string]string{"question": "Why?", "context": "Because."})
	require.NoError(t, err)
	assert.Equal(t, "Question:\nWhy?\n\nContext:\nBecause.\n", out)
}

func TestPopulateRepeatedPlaceholder(t *testing.T) {
	tmpl := New("{a}-{b}-{a}")
	assert.Equal(t, []string{"a", "b"}, tmpl.Placeholders())

	out, err := tmpl.Populate(map[string]string{"a": "1", "b": "2"})
	require.NoError(t, err)
	assert.Equal(t, "1-2-1", out)
}

func TestPopulateMissingValue(t *testing.T) {
	tmpl := New("{question} / {context} / {extra}")
	out, err := tmpl.Populate(map[string]string{"question": "q"})
	require.Error(t, err)
	assert.Empty(t, out)

	var te *TemplateError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, []string{"context", "extra"}, te.Missing)
	assert.ErrorIs(t, err, ErrTemplate)
}

func TestPopulateValuesAreNotReparsed(t *testing.T) {
	tmpl := New("Q: {question}")
	out, err := tmpl.Populate(map[string]string{"question": "what is {context}?"})
	require.NoError(t, err)
	assert.Equal(t, "Q: what is {context}?", out)
}

func TestBraceHandling(t *testing.T) {
	cases := []struct {
		name  string
		text  string
		want  string
		names []string
	}{
		{"escaped", "{{question}}", "{question}", nil},
		{"json-like", `{"k": 1}`, `{"k": 1}`, nil},
		{"empty braces", "{}", "{}", nil},
		{"digit start", "{1x}", "{1x}", nil},
		{"unterminated", "tail {name", "tail {name", nil},
		{"stray close", "a } b", "a } b", nil},
		{"trailing close", "end}", "end}", nil},
		{"close before placeholder", "} {x}", "} v", []string{"x"}},
		{"format spec", "{x:>10}", "{x:>10}", nil},
		{"conversion", "{x!r}", "{x!r}", nil},
		{"mixed", "{{{x}}}", "{v}", []string{"x"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tmpl := New(tc.text)
			assert.Equal(t, tc.names, nilIfEmpty(tmpl.Placeholders()))
			out, err := tmpl.Populate(map[string]string{"x": "v"})
			require.NoError(t, err)
			assert.Equal(t, tc.want, out)
		})
	}
}

func TestRequire(t *testing.T) {
	tmpl := New("Only {question} here")
	require.NoError(t, tmpl.Require("question"))

	err := tmpl.Require("question", "context")
	var te *TemplateError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, []string{"context"}, te.Unreferenced)
	assert.Contains(t, err.Error(), "context")
}

func TestZeroTemplate(t *testing.T) {
	var tmpl Template
	out, err := tmpl.Populate(nil)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Empty(t, tmpl.Placeholders())
}

func nilIfEmpty(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return s
}
