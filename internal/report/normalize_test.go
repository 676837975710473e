package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "fenced json",
			raw:  "```json\n{\"a\":1}\n```",
			want: `{"a":1}`,
		},
		{
			name: "plain json is untouched",
			raw:  `{"summary":"Good"}`,
			want: `{"summary":"Good"}`,
		},
		{
			name: "markdown headings and bullets",
			raw:  "## Result\n```json\n{\n  \"skills\": \"**Go**\"\n}\n```",
			want: `Result { "skills": "Go" }`,
		},
		{
			name: "whitespace runs collapse",
			raw:  "{\t\"a\":   \"b   c\"\r\n}",
			want: `{ "a": "b c" }`,
		},
		{
			name: "surrounding whitespace",
			raw:  "   \n\n{\"a\":1}\n\n  ",
			want: `{"a":1}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw))
		})
	}
}
