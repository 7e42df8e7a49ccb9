package blueprint

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/pluqqy/blueprint/pkg/models"
)

var (
	ErrNodeNotFound    = errors.New("node not found")
	ErrNotSection      = errors.New("node is not a section")
	ErrNotItem         = errors.New("node is not an item")
	ErrUnknownItemType = errors.New("unknown item type")
)

// Editor applies editing operations to graphs. Every operation returns a new graph
// and leaves its input untouched; on error the input is returned unchanged.
type Editor struct {
	ids    IDGenerator
	layout Layout
}

// NewEditor creates an editor. A nil generator falls back to UUIDGenerator.
func NewEditor(ids IDGenerator, layout Layout) *Editor {
	if ids == nil {
		ids = UUIDGenerator{}
	}
	return &Editor{ids: ids, layout: layout}
}

// Layout returns the layout the editor positions nodes with
func (e *Editor) Layout() Layout {
	return e.layout
}

// NextSectionID returns the lowest section_<n> not used by a section node
func NextSectionID(g models.Graph) string {
	used := make(map[int]bool)
	for _, s := range g.Sections() {
		if n, ok := sectionIndex(s.ID); ok {
			used[n] = true
		}
	}
	n := 0
	for used[n] {
		n++
	}
	return SectionID(n)
}

func sectionIndex(id string) (int, bool) {
	rest, ok := strings.CutPrefix(id, "section_")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 || strconv.Itoa(n) != rest {
		return 0, false
	}
	return n, true
}

// AddSection appends an untitled section at pos
func (e *Editor) AddSection(g models.Graph, pos models.Position) (models.Graph, string) {
	id := NextSectionID(g)
	out := g.Clone()
	out.Nodes = append(out.Nodes, models.SectionNode{ID: id, Position: e.layout.Snap(pos)})
	return out, id
}

// AddItem creates an item of type t under sectionID, stacked below the section's
// last item or below the header when it has none. An empty t means a toggle.
func (e *Editor) AddItem(g models.Graph, sectionID string, t models.ItemType) (models.Graph, string, error) {
	section, err := requireSection(g, sectionID)
	if err != nil {
		return g, "", err
	}

	pos := e.layout.ItemPosition(section.Position, 0)
	if attached := NewIndex(g).Attached(sectionID); len(attached) > 0 {
		pos = e.layout.Below(attached[len(attached)-1].Position)
	}
	return e.createItem(g, sectionID, t, pos)
}

// CreateItemAt creates an item of type t at an explicit position. sectionID may be
// empty to leave the new item detached.
func (e *Editor) CreateItemAt(g models.Graph, sectionID string, t models.ItemType, pos models.Position) (models.Graph, string, error) {
	if sectionID != "" {
		if _, err := requireSection(g, sectionID); err != nil {
			return g, "", err
		}
	}
	return e.createItem(g, sectionID, t, e.layout.Snap(pos))
}

func (e *Editor) createItem(g models.Graph, sectionID string, t models.ItemType, pos models.Position) (models.Graph, string, error) {
	if t == "" {
		t = models.ItemTypeToggle
	}
	id := e.ids.NewItemID(NewIndex(g).Taken)
	item, ok := models.NewItem(t, id)
	if !ok {
		return g, "", fmt.Errorf("%w: %s", ErrUnknownItemType, t)
	}

	out := g.Clone()
	out.Nodes = append(out.Nodes, models.ItemNode{
		ID:        id,
		SectionID: sectionID,
		Item:      item,
		Position:  pos,
	})
	return out, id, nil
}

// Attach points an item at a section
func (e *Editor) Attach(g models.Graph, itemID, sectionID string) (models.Graph, error) {
	if _, err := requireSection(g, sectionID); err != nil {
		return g, err
	}
	return updateItemNode(g, itemID, func(n models.ItemNode) models.ItemNode {
		n.SectionID = sectionID
		return n
	})
}

// Detach clears an item's section. Position and payload are kept.
func (e *Editor) Detach(g models.Graph, itemID string) (models.Graph, error) {
	return updateItemNode(g, itemID, func(n models.ItemNode) models.ItemNode {
		n.SectionID = ""
		return n
	})
}

// UpdateSectionTitle replaces a section's title
func (e *Editor) UpdateSectionTitle(g models.Graph, sectionID, title string) (models.Graph, error) {
	i := g.IndexOf(sectionID)
	if i < 0 {
		return g, fmt.Errorf("%w: %s", ErrNodeNotFound, sectionID)
	}
	section, ok := g.Nodes[i].(models.SectionNode)
	if !ok {
		return g, fmt.Errorf("%w: %s", ErrNotSection, sectionID)
	}
	section.Title = title
	out := g.Clone()
	out.Nodes[i] = section
	return out, nil
}

// UpdateItem replaces an item's payload. An empty payload id keeps the node id;
// a different non-empty id renames the node so node and item ids stay equal.
// Duplicate ids are not rejected here; see Validate.
func (e *Editor) UpdateItem(g models.Graph, itemID string, item models.Item) (models.Graph, error) {
	if item == nil {
		return g, fmt.Errorf("%w: nil payload for %s", ErrNotItem, itemID)
	}
	return updateItemNode(g, itemID, func(n models.ItemNode) models.ItemNode {
		if item.Base().ID == "" {
			item = models.WithID(item, n.ID)
		}
		n.ID = item.Base().ID
		n.Item = item
		return n
	})
}

// MoveNode places a node at pos, snapped to the grid when enabled
func (e *Editor) MoveNode(g models.Graph, id string, pos models.Position) (models.Graph, error) {
	i := g.IndexOf(id)
	if i < 0 {
		return g, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	out := g.Clone()
	out.Nodes[i] = g.Nodes[i].WithPosition(e.layout.Snap(pos))
	return out, nil
}

// DeleteNode removes a node. Deleting a section also removes every item whose
// sectionId names it.
func (e *Editor) DeleteNode(g models.Graph, id string) (models.Graph, error) {
	n, ok := g.Find(id)
	if !ok {
		return g, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}

	_, isSection := n.(models.SectionNode)
	out := models.Graph{Nodes: make([]models.Node, 0, len(g.Nodes))}
	for _, node := range g.Nodes {
		if node.NodeID() == id {
			continue
		}
		if item, ok := node.(models.ItemNode); ok && isSection && item.SectionID == id {
			continue
		}
		out.Nodes = append(out.Nodes, node)
	}
	return out, nil
}

// DuplicateItem copies an item under a fresh id into the same section, offset so
// the copy does not cover its source
func (e *Editor) DuplicateItem(g models.Graph, itemID string) (models.Graph, string, error) {
	i := g.IndexOf(itemID)
	if i < 0 {
		return g, "", fmt.Errorf("%w: %s", ErrNodeNotFound, itemID)
	}
	source, ok := g.Nodes[i].(models.ItemNode)
	if !ok {
		return g, "", fmt.Errorf("%w: %s", ErrNotItem, itemID)
	}

	id := e.ids.NewItemID(NewIndex(g).Taken)
	offset := e.layout.DuplicateOffset
	clone := models.ItemNode{
		ID:        id,
		SectionID: source.SectionID,
		Item:      models.WithID(models.CloneItem(source.Item), id),
		Position:  source.Position.Add(offset, offset),
	}

	out := g.Clone()
	out.Nodes = append(out.Nodes, clone)
	return out, id, nil
}

func requireSection(g models.Graph, id string) (models.SectionNode, error) {
	n, ok := g.Find(id)
	if !ok {
		return models.SectionNode{}, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	section, ok := n.(models.SectionNode)
	if !ok {
		return models.SectionNode{}, fmt.Errorf("%w: %s", ErrNotSection, id)
	}
	return section, nil
}

func updateItemNode(g models.Graph, id string, fn func(models.ItemNode) models.ItemNode) (models.Graph, error) {
	i := g.IndexOf(id)
	if i < 0 {
		return g, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	item, ok := g.Nodes[i].(models.ItemNode)
	if !ok {
		return g, fmt.Errorf("%w: %s", ErrNotItem, id)
	}
	out := g.Clone()
	out.Nodes[i] = fn(item)
	return out, nil
}
