package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountWords(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected int
	}{
		{name: "empty", content: "", expected: 0},
		{name: "plain paragraph", content: "<p>One two three.</p>", expected: 3},
		{name: "paragraph boundary separates words", content: "<p>end</p><p>start</p>", expected: 2},
		{name: "dashes separate words", content: "<p>this--that and here—there</p>", expected: 5},
		{name: "inline markup does not split", content: "<p>un<em>believ</em>able</p>", expected: 1},
		{name: "notes are ignored", content: `<p>Word<note id="ftn1" class="footnote"><note-citation>1</note-citation><p>not counted</p></note> here</p>`, expected: 2},
		{name: "comments are ignored", content: "<p>Keep<comment><creator>A</creator><p>skip me</p></comment> this</p>", expected: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CountWords(tt.content))
		})
	}
}
