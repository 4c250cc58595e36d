package tmpl

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFill(t *testing.T) {
	tests := []struct {
		name     string
		template string
		values   []string
		want     string
	}{
		{"Exact Count", "Hi {}, your code is {}.", []string{"Alice", "42"}, "Hi Alice, your code is 42."},
		{"No Markers", "static text", []string{"unused"}, "static text"},
		{"No Values", "Hi {}!", nil, "Hi {}!"},
		{"Extra Values Ignored", "Hi {}!", []string{"Bob", "spare", "more"}, "Hi Bob!"},
		{"Shortfall Leaves Literal", "{} and {} and {}", []string{"one"}, "one and {} and {}"},
		{"Empty Template", "", []string{"x"}, ""},
		{"Empty Value", "a{}b", []string{""}, "ab"},
		{"Left To Right Order", "{}-{}-{}", []string{"1", "2", "3"}, "1-2-3"},
		{"Adjacent Markers", "{}{}", []string{"a", "b"}, "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Fill(tt.template, tt.values))
		})
	}
}

func TestFill_NoRescanOfSubstitutedContent(t *testing.T) {
	// A value containing the marker must not become a new substitution point
	got := Fill("{} {}", []string{"literal {}", "second"})
	assert.Equal(t, "literal {} second", got)
}

func TestFill_ExtraValuesMatchTruncated(t *testing.T) {
	template := "Hello {} from {}"
	long := Fill(template, []string{"a", "b", "c", "d"})
	short := Fill(template, []string{"a", "b"})
	assert.Equal(t, short, long)
}

func TestMarkerCount(t *testing.T) {
	assert.Equal(t, 0, MarkerCount("nothing here"))
	assert.Equal(t, 2, MarkerCount("Hi {}, your code is {}."))
	assert.Equal(t, 3, MarkerCount("{}{}{}"))
}

func TestGreet(t *testing.T) {
	t.Run("No Title Is Identity", func(t *testing.T) {
		assert.Equal(t, "body text", Greet("", "body text"))
	})

	t.Run("Title Prepends Salutation", func(t *testing.T) {
		got := Greet("Mr. Smith", "body text")
		assert.Equal(t, "Dear Mr. Smith,\n\nbody text", got)
		assert.True(t, strings.HasPrefix(got, "Dear Mr. Smith,"))
	})
}

func TestStore_Load(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "welcome.txt"), []byte("Hi {}!"), 0o644))

	store := NewStore(dir)

	body, err := store.Load("welcome.txt")
	require.NoError(t, err)
	assert.Equal(t, "Hi {}!", body)

	// Cached reads survive removal of the underlying file
	require.NoError(t, os.Remove(filepath.Join(dir, "welcome.txt")))
	body, err = store.Load("welcome.txt")
	require.NoError(t, err)
	assert.Equal(t, "Hi {}!", body)
}

func TestStore_LoadMissing(t *testing.T) {
	store := NewStore(t.TempDir())

	_, err := store.Load("absent.txt")
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestStore_LoadRejectsTraversal(t *testing.T) {
	store := NewStore(t.TempDir())

	for _, ref := range []string{"", "../secret.txt", "a/b.txt", `a\b.txt`, "..", "foo..txt"} {
		_, err := store.Load(ref)
		assert.ErrorIs(t, err, ErrBadTemplateRef, "ref %q", ref)
	}
}
