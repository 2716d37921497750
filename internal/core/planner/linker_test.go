package planner

import (
	"testing"

	"meal-planner/internal/core/catalog"

	"github.com/stretchr/testify/assert"
)

func TestAnnotate(t *testing.T) {
	idx := catalog.BuildIndex([]catalog.Item{
		{ID: 7, Name: "Milk"},
		{ID: 3, Name: "Eggs"},
		{ID: 9, Name: "Olive Oil"},
	})
	linker := NewLinker("/order/%d")

	t.Run("MatchAndFallback", func(t *testing.T) {
		got, links := linker.Annotate("1 cup Milk, pinch of Salt", idx)
		assert.Equal(t, "1 cup <a href='/order/7'>Milk</a>, pinch of salt", got)
		assert.Equal(t, []Link{{Word: "Milk", ItemID: 7}}, links)
	})

	t.Run("MultiWordNamesNeverMatchWhole", func(t *testing.T) {
		got, links := linker.Annotate("2 tbsp Olive Oil", idx)
		assert.Equal(t, "2 tbsp olive oil", got)
		assert.Empty(t, links)
	})

	t.Run("WhitespaceNormalizedWithinPhrase", func(t *testing.T) {
		got, _ := linker.Annotate("EGGS   beaten,  milk", idx)
		assert.Equal(t, "<a href='/order/3'>EGGS</a> beaten, <a href='/order/7'>milk</a>", got)
	})

	t.Run("EmptyIndex", func(t *testing.T) {
		got, links := linker.Annotate("Milk, Eggs", catalog.Index{})
		assert.Equal(t, "milk, eggs", got)
		assert.Empty(t, links)
	})

	t.Run("EmptyText", func(t *testing.T) {
		got, links := linker.Annotate("", idx)
		assert.Equal(t, "", got)
		assert.Empty(t, links)
	})

	t.Run("CustomOrderPath", func(t *testing.T) {
		got, _ := NewLinker("/shop/items/%d?ref=plan&x=1").Annotate("milk", idx)
		assert.Equal(t, "<a href='/shop/items/7?ref=plan&amp;x=1'>milk</a>", got)
	})
}

func TestAnnotateUnmatchedOnlyCaseNormalized(t *testing.T) {
	linker := NewLinker("/order/%d")
	for _, in := range []string{"Pinch", "SALT", "a&b", "[missing"} {
		got, _ := linker.Annotate(in, catalog.Index{"milk": 7})
		assert.Equal(t, catalog.NormalizeName(in), got)
	}
}
