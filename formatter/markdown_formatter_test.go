package formatter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestMarkdownFormatter_Format(t *testing.T) {
	formatter := NewMarkdownFormatter(NewFormatter(WithWidth(20)))

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name: "Basic code block",
			input: `# My Script

Here's some code:

` + "```typc" + `
let x=a+b
` + "```" + `

That's it!
`,
			expected: `# My Script

Here's some code:

` + "```typc" + `
let x = a + b
` + "```" + `

That's it!
`,
		},
		{
			name: "Multiple code blocks",
			input: "```typc\nf(a,b)\n```\n\ntext\n\n```typc\nitems.filter(keep).map(transform)\n```\n",
			expected: "```typc\nf(a, b)\n```\n\ntext\n\n```typc\nitems\n  .filter(keep)\n  .map(transform)\n```\n",
		},
		{
			name:     "Other languages are untouched",
			input:    "```go\nx:=1\n```\n\n```\na+b\n```\n",
			expected: "```go\nx:=1\n```\n\n```\na+b\n```\n",
		},
		{
			name:     "Info string with attributes",
			input:    "```TYPC title=\"demo\"\na+b\n```\n",
			expected: "```TYPC title=\"demo\"\na + b\n```\n",
		},
		{
			name:     "Block in a list keeps its indentation",
			input:    "- item\n\n  ```typc\n  items.filter(keep).map(transform)\n  ```\n",
			expected: "- item\n\n  ```typc\n  items\n    .filter(keep)\n    .map(transform)\n  ```\n",
		},
		{
			name:     "Invalid code is left as is",
			input:    "```typc\nf(a\n```\n",
			expected: "```typc\nf(a\n```\n",
		},
		{
			name:     "Empty block",
			input:    "```typc\n```\n",
			expected: "```typc\n```\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := formatter.Format(tt.input)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestMarkdownFormatter_Languages(t *testing.T) {
	formatter := NewMarkdownFormatter(NewFormatter(), "typst-code", "TYPC")

	result, err := formatter.Format("```typst-code\na+b\n```\n\n```typc\nc+d\n```\n")
	assert.NoError(t, err)
	assert.Equal(t, "```typst-code\na + b\n```\n\n```typc\nc + d\n```\n", result)
}

func TestMarkdownFormatter_FormatFromReader(t *testing.T) {
	formatter := NewMarkdownFormatter(NewFormatter())

	var out bytes.Buffer

	err := formatter.FormatFromReader(strings.NewReader("```typc\na+b\n```\n"), &out)
	assert.NoError(t, err)
	assert.Equal(t, "```typc\na + b\n```\n", out.String())
}

func TestIsMarkdownFile(t *testing.T) {
	tests := []struct {
		filename string
		expected bool
	}{
		{"README.md", true},
		{"notes.MARKDOWN", true},
		{"main.typc", false},
		{"md", false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsMarkdownFile(tt.filename))
		})
	}
}
