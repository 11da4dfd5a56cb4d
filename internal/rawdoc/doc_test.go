package rawdoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantOK  bool
		wantKey string
	}{
		{
			name:    "Valid object",
			input:   `{"name":"Iron Ore","level":3}`,
			wantOK:  true,
			wantKey: "name",
		},
		{
			name:   "Array body",
			input:  `[{"name":"Iron Ore"}]`,
			wantOK: false,
		},
		{
			name:   "Bare string",
			input:  `"null"`,
			wantOK: false,
		},
		{
			name:   "Malformed JSON",
			input:  `{"name":`,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, ok := Parse([]byte(tt.input))
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Contains(t, doc, tt.wantKey)
			}
		})
	}
}

func TestTryString(t *testing.T) {
	doc := Doc{"name": "Iron Ore", "level": float64(3)}

	s, ok := doc.TryString("name")
	assert.True(t, ok)
	assert.Equal(t, "Iron Ore", s)

	// Numbers are not coerced to strings
	_, ok = doc.TryString("level")
	assert.False(t, ok)

	_, ok = doc.TryString("missing")
	assert.False(t, ok)

	assert.Equal(t, "", doc.String("missing"))
}

func TestTryInt(t *testing.T) {
	doc := Doc{
		"level":    float64(3),
		"fraction": float64(3.5),
		"name":     "Iron Ore",
	}

	i, ok := doc.TryInt("level")
	assert.True(t, ok)
	assert.Equal(t, 3, i)

	// Fractional numbers do not round silently
	_, ok = doc.TryInt("fraction")
	assert.False(t, ok)

	_, ok = doc.TryInt("name")
	assert.False(t, ok)

	assert.Equal(t, 7, doc.IntOr("missing", 7))
}

func TestTryBool(t *testing.T) {
	doc := Doc{"stackable": true, "name": "Iron Ore"}

	b, ok := doc.TryBool("stackable")
	assert.True(t, ok)
	assert.True(t, b)

	_, ok = doc.TryBool("name")
	assert.False(t, ok)

	assert.False(t, doc.Bool("missing"))
}

func TestFirstArray(t *testing.T) {
	doc := Doc{
		"ingredients": []any{},
		"inputs":      []any{map[string]any{"itemId": "a"}},
		"materials":   []any{map[string]any{"itemId": "b"}},
	}

	// Empty arrays are skipped in favor of later non-empty ones
	arr, key, ok := doc.FirstArray("ingredients", "inputs", "materials")
	assert.True(t, ok)
	assert.Equal(t, "inputs", key)
	assert.Len(t, arr, 1)

	_, _, ok = doc.FirstArray("missing", "also-missing")
	assert.False(t, ok)
}

func TestFirstString(t *testing.T) {
	doc := Doc{"itemName": "", "name": "Iron Ore"}

	assert.Equal(t, "Iron Ore", doc.FirstString("itemName", "name", "displayName"))
	assert.Equal(t, "", doc.FirstString("missing"))
}

func TestStringSlice(t *testing.T) {
	doc := Doc{"tags": []any{"Item.Weapon.Sword", float64(3), "Rarity.Rare"}}

	// Non-string elements are skipped, not fatal
	assert.Equal(t, []string{"Item.Weapon.Sword", "Rarity.Rare"}, doc.StringSlice("tags"))
	assert.Nil(t, doc.StringSlice("missing"))
}

func TestTagSegment(t *testing.T) {
	tags := []string{"Rarity.Rare", "Item.Weapon.Sword"}

	assert.Equal(t, "Weapon", TagSegment(tags, "Item.", 1))
	assert.Equal(t, "Sword", TagSegment(tags, "Item.", 2))
	assert.Equal(t, "", TagSegment(tags, "Item.", 3))
	assert.Equal(t, "", TagSegment([]string{"Rarity.Rare"}, "Item.", 1))
	assert.Equal(t, "", TagSegment(nil, "Item.", 1))
}

func TestKeys(t *testing.T) {
	doc := Doc{"b": 1, "a": 2, "c": 3}
	assert.Equal(t, []string{"a", "b", "c"}, doc.Keys())
}
