package blueprint

import "github.com/pluqqy/blueprint/pkg/models"

// Index is the adjacency view of a graph: which items hang off which section.
// It is the one place that decides whether a sectionId reference resolves.
type Index struct {
	sections map[string]models.SectionNode
	attached map[string][]models.ItemNode
	detached []models.ItemNode
	ids      map[string]int
}

// NewIndex builds an index for g. Item lists keep node-list order.
func NewIndex(g models.Graph) *Index {
	idx := &Index{
		sections: make(map[string]models.SectionNode),
		attached: make(map[string][]models.ItemNode),
		ids:      make(map[string]int, len(g.Nodes)),
	}

	for _, n := range g.Nodes {
		idx.ids[n.NodeID()]++
		if s, ok := n.(models.SectionNode); ok {
			if _, seen := idx.sections[s.ID]; !seen {
				idx.sections[s.ID] = s
			}
		}
	}

	for _, n := range g.Nodes {
		item, ok := n.(models.ItemNode)
		if !ok {
			continue
		}
		if idx.Resolves(item.SectionID) {
			idx.attached[item.SectionID] = append(idx.attached[item.SectionID], item)
		} else {
			idx.detached = append(idx.detached, item)
		}
	}

	return idx
}

// Resolves reports whether sectionID names a section node of the graph
func (idx *Index) Resolves(sectionID string) bool {
	if sectionID == "" {
		return false
	}
	_, ok := idx.sections[sectionID]
	return ok
}

// Attached returns the items attached to sectionID in node-list order
func (idx *Index) Attached(sectionID string) []models.ItemNode {
	return idx.attached[sectionID]
}

// Detached returns items whose sectionId is empty or dangling
func (idx *Index) Detached() []models.ItemNode {
	return idx.detached
}

// Taken reports whether any node already uses id
func (idx *Index) Taken(id string) bool {
	return idx.ids[id] > 0
}

// IsAttached reports whether an item node resolves to a section
func (idx *Index) IsAttached(item models.ItemNode) bool {
	return idx.Resolves(item.SectionID)
}
