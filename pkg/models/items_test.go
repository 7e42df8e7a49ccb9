package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Every known kind must be constructible, have a default value, clone and encode.
// A new kind added to AllItemTypes without support in these places fails here.
func TestItemKindsAreHandledEverywhere(t *testing.T) {
	for _, kind := range AllItemTypes {
		t.Run(string(kind), func(t *testing.T) {
			item, ok := NewItem(kind, "it")
			require.True(t, ok, "NewItem must support %s", kind)
			assert.Equal(t, kind, item.Type())
			assert.Equal(t, "it", item.Base().ID)

			_, ok = DefaultValue(item)
			assert.True(t, ok, "DefaultValue must support %s", kind)

			clone := CloneItem(item)
			assert.Equal(t, item, clone)

			w := toWire(item)
			assert.Equal(t, string(kind), w.Type)
			back := fromWire(w)
			assert.Equal(t, kind, back.Type())
			_, unknown := back.(UnknownItem)
			assert.False(t, unknown, "%s decoded as unknown", kind)

			assert.NotEqual(t, string(kind), kind.Label(), "missing label for %s", kind)
		})
	}
}

func TestNewItem_UnknownType(t *testing.T) {
	item, ok := NewItem("carousel", "x")
	assert.False(t, ok)
	assert.Nil(t, item)
}

func TestCloneItem_DoesNotAlias(t *testing.T) {
	original := SelectItem{
		ItemBase:         ItemBase{ID: "s", Order: Ptr(3)},
		Options:          []SelectOption{{Value: "a", Label: "A"}},
		DefaultParameter: Ptr("a"),
	}

	clone := CloneItem(original).(SelectItem)
	clone.Options[0].Label = "changed"
	*clone.DefaultParameter = "b"
	*clone.Order = 9

	assert.Equal(t, "A", original.Options[0].Label)
	assert.Equal(t, "a", *original.DefaultParameter)
	assert.Equal(t, 3, *original.Order)
}

func TestWithID(t *testing.T) {
	item := ToggleItem{ItemBase: ItemBase{ID: "old", Name: "Old"}, DefaultParameter: Ptr(false)}

	renamed := WithID(item, "new")

	assert.Equal(t, "new", renamed.Base().ID)
	assert.Equal(t, "Old", renamed.Base().Name)
	assert.Equal(t, "old", item.Base().ID)
	assert.Equal(t, false, *renamed.(ToggleItem).DefaultParameter)
}

func TestItemBase_OrderValue(t *testing.T) {
	assert.Equal(t, 0, ItemBase{}.OrderValue())
	assert.Equal(t, -2, ItemBase{Order: Ptr(-2)}.OrderValue())
}

func TestItemType_Known(t *testing.T) {
	assert.True(t, ItemTypeSlider.Known())
	assert.False(t, ItemType("toggle").Known())
}

func TestUnknownItem_SurvivesJSON(t *testing.T) {
	input := `[{"type":"carousel","id":"c1","name":"Carousel","order":2}]`

	var items ItemList
	require.NoError(t, json.Unmarshal([]byte(input), &items))
	require.Len(t, items, 1)

	unknown, ok := items[0].(UnknownItem)
	require.True(t, ok)
	assert.Equal(t, "carousel", unknown.RawType)
	assert.Equal(t, "c1", unknown.ID)
	assert.Equal(t, 2, unknown.OrderValue())

	out, err := json.Marshal(items)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"type":"carousel","id":"c1","name":"Carousel","order":2}]`, string(out))
}
