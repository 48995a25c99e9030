package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNameKey(t *testing.T) {
	assert.Equal(t, NameKey("alice"), NameKey("  ALICE "))
	assert.Equal(t, NameKey("école"), NameKey("ÉCOLE"))
	assert.NotEqual(t, NameKey("Alice"), NameKey("Alicia"))
	assert.Equal(t, "", NameKey("   "))
}

func TestNormalizeNames(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{"nil", nil, []string{}},
		{"trims", []string{" Alice ", "Bob\t"}, []string{"Alice", "Bob"}},
		{"drops blanks", []string{"", "  ", "Alice"}, []string{"Alice"}},
		{"first spelling wins", []string{"alice", "Bob", "ALICE", " bob "}, []string{"alice", "Bob"}},
		{"keeps order", []string{"Zed", "Amy", "Max"}, []string{"Zed", "Amy", "Max"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeNames(tt.input))
		})
	}
}

func TestSplitNames(t *testing.T) {
	assert.Equal(t, []string{"Alice", "Bob", "Charlie"}, SplitNames("Alice, Bob,,Charlie , alice"))
	assert.Equal(t, []string{}, SplitNames(""))
	assert.Equal(t, []string{}, SplitNames(" , ,"))
}

func TestIndexAndContainsName(t *testing.T) {
	owners := []string{"Alice", "Bob"}

	assert.Equal(t, 1, IndexName(owners, " bob"))
	assert.Equal(t, -1, IndexName(owners, "Charlie"))
	assert.True(t, ContainsName(owners, "ALICE"))
	assert.False(t, ContainsName(owners, "Ali"))
	assert.False(t, ContainsName(nil, "Alice"))
}

func TestSameName(t *testing.T) {
	assert.True(t, SameName("Zelda", " zelda "))
	assert.False(t, SameName("Zelda", "Zelda 2"))
}
