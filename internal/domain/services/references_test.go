package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/peter88213/novelibre-sub001/internal/domain/entities"
)

func referenceNovel() *entities.Novel {
	n := entities.NewNovel()
	n.AddPlotLine("ac1", entities.NewPlotLine("Main plot", "A"))
	n.AddPlotLine("ac2", entities.NewPlotLine("Romance", "B"))
	alice := entities.NewCharacter("Alice")
	alice.SetFullName("Alice Liddell")
	n.AddCharacter("cr1", alice)
	n.AddCharacter("cr2", entities.NewCharacter("Bob"))
	return n
}

func TestResolvePlotLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Resolution
	}{
		{"short names", "A;B", Resolution{IDs: []string{"ac1", "ac2"}}},
		{"titles and spaces", " Romance ; Main plot ", Resolution{IDs: []string{"ac2", "ac1"}}},
		{"duplicates", "A;A;Main plot", Resolution{IDs: []string{"ac1"}}},
		{"rejected", "A;C;;D;C", Resolution{IDs: []string{"ac1"}, Rejected: []string{"C", "D"}}},
		{"empty", "", Resolution{}},
	}
	n := referenceNovel()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolvePlotLines(n, tt.input))
		})
	}
}

func TestResolveCharacters(t *testing.T) {
	n := referenceNovel()

	r := ResolveCharacters(n, "Bob;Alice Liddell;Carol")

	assert.Equal(t, []string{"cr2", "cr1"}, r.IDs)
	assert.Equal(t, []string{"Carol"}, r.Rejected)
	assert.Equal(t, `Wrong name: "Carol"`, r.Message())
}

func TestResolution_MessageEmpty(t *testing.T) {
	assert.Equal(t, "", Resolution{IDs: []string{"ac1"}}.Message())
}
