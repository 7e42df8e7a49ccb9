package blueprint

import (
	"fmt"
	"sort"

	"github.com/pluqqy/blueprint/pkg/models"
)

// SectionID returns the positional node id of the index-th section
func SectionID(index int) string {
	return fmt.Sprintf("section_%d", index)
}

// SchemaToGraph lays a schema out as a graph. Each node position comes from the
// schema's persisted layout, then from previous (when given), then from the
// default layout. The result depends only on its inputs.
func SchemaToGraph(schema models.SettingsSchema, previous *models.Graph, layout Layout) models.Graph {
	persisted := make(map[string]models.Position, len(schema.Nodes))
	for _, n := range schema.Nodes {
		if _, seen := persisted[n.ID]; !seen {
			persisted[n.ID] = n.Position
		}
	}

	prior := make(map[string]models.Position)
	if previous != nil {
		for _, n := range previous.Nodes {
			if _, seen := prior[n.NodeID()]; !seen {
				prior[n.NodeID()] = n.NodePosition()
			}
		}
	}

	resolve := func(id string, fallback models.Position) models.Position {
		if p, ok := persisted[id]; ok {
			return p
		}
		if p, ok := prior[id]; ok {
			return p
		}
		return fallback
	}

	itemCounts := make([]int, len(schema.Sections))
	for i, section := range schema.Sections {
		itemCounts[i] = len(section.Items)
	}

	g := models.Graph{Nodes: make([]models.Node, 0, len(schema.Sections)+schema.ItemCount())}
	for si, section := range schema.Sections {
		sectionID := SectionID(si)
		sectionPos := resolve(sectionID, layout.SectionPosition(itemCounts, si))
		g.Nodes = append(g.Nodes, models.SectionNode{
			ID:       sectionID,
			Title:    section.Title,
			Position: sectionPos,
		})

		for ii, item := range section.Items {
			item = models.CloneItem(item)
			id := item.Base().ID
			if id == "" {
				id = fmt.Sprintf("%s_item_%d", sectionID, ii)
				item = models.WithID(item, id)
			}
			g.Nodes = append(g.Nodes, models.ItemNode{
				ID:        id,
				SectionID: sectionID,
				Item:      item,
				Position:  resolve(id, layout.ItemPosition(sectionPos, ii)),
			})
		}
	}

	return g
}

// GraphToSchema exports a graph. Sections follow node-list order; each section
// holds the items attached to it, stably sorted by order. Detached or dangling
// items are left out of the sections but keep a layout entry, as does every node.
// Section layouts are keyed by the positional id the section gets when the schema
// is read back, and item layouts point at those ids.
func GraphToSchema(g models.Graph) models.SettingsSchema {
	idx := NewIndex(g)
	schema := models.SettingsSchema{
		Sections: []models.Section{},
		Nodes:    make([]models.NodeLayout, 0, len(g.Nodes)),
	}

	positional := make(map[string]string)
	for _, section := range g.Sections() {
		if _, seen := positional[section.ID]; seen {
			continue
		}
		positional[section.ID] = SectionID(len(schema.Sections))

		attached := append([]models.ItemNode(nil), idx.Attached(section.ID)...)
		sort.SliceStable(attached, func(i, j int) bool {
			return attached[i].Item.Base().OrderValue() < attached[j].Item.Base().OrderValue()
		})

		items := make(models.ItemList, 0, len(attached))
		for _, node := range attached {
			items = append(items, payload(node))
		}
		schema.Sections = append(schema.Sections, models.Section{Title: section.Title, Items: items})
	}

	for _, n := range g.Nodes {
		layout := models.NodeLayout{
			ID:       n.NodeID(),
			Type:     n.NodeType(),
			Position: n.NodePosition(),
		}
		switch node := n.(type) {
		case models.SectionNode:
			layout.ID = positional[node.ID]
		case models.ItemNode:
			layout.SectionID = node.SectionID
			if id, ok := positional[node.SectionID]; ok {
				layout.SectionID = id
			}
		}
		schema.Nodes = append(schema.Nodes, layout)
	}

	return schema
}

// payload returns the item of a node with its id aligned to the node id
func payload(node models.ItemNode) models.Item {
	item := node.Item
	if item == nil {
		item = models.ToggleItem{}
	}
	item = models.CloneItem(item)
	if item.Base().ID != node.ID {
		item = models.WithID(item, node.ID)
	}
	return item
}
