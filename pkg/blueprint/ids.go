package blueprint

import (
	"fmt"

	"github.com/google/uuid"
)

// IDGenerator produces item ids for newly created or duplicated items.
// taken reports whether a candidate is already used in the graph.
type IDGenerator interface {
	NewItemID(taken func(id string) bool) string
}

// UUIDGenerator issues ids of the form item_<uuid>
type UUIDGenerator struct{}

func (UUIDGenerator) NewItemID(taken func(string) bool) string {
	for {
		id := "item_" + uuid.NewString()
		if taken == nil || !taken(id) {
			return id
		}
	}
}

// CounterGenerator issues item_1, item_2, ... skipping ids already in use.
// It is deterministic, which makes it the generator of choice in tests.
type CounterGenerator struct {
	Prefix string
	next   int
}

// NewCounterGenerator returns a counter starting at 1 with the "item_" prefix
func NewCounterGenerator() *CounterGenerator {
	return &CounterGenerator{Prefix: "item_"}
}

func (c *CounterGenerator) NewItemID(taken func(string) bool) string {
	for {
		c.next++
		id := fmt.Sprintf("%s%d", c.Prefix, c.next)
		if taken == nil || !taken(id) {
			return id
		}
	}
}

// NewIDGenerator picks a generator by name ("uuid" or "counter")
func NewIDGenerator(kind string) (IDGenerator, error) {
	switch kind {
	case "", "uuid":
		return UUIDGenerator{}, nil
	case "counter":
		return NewCounterGenerator(), nil
	default:
		return nil, fmt.Errorf("unknown id generator %q (must be: uuid or counter)", kind)
	}
}
