package models

// Node is either a SectionNode or an ItemNode
type Node interface {
	NodeID() string
	NodeType() NodeType
	NodePosition() Position
	// WithPosition returns a copy of the node placed at p.
	WithPosition(p Position) Node
	isNode()
}

// SectionNode is the visual form of a Section
type SectionNode struct {
	ID       string
	Title    string
	Position Position
}

// ItemNode is the visual form of an Item. An empty SectionID means the item is
// detached.
type ItemNode struct {
	ID        string
	SectionID string
	Item      Item
	Position  Position
}

func (n SectionNode) NodeID() string         { return n.ID }
func (n SectionNode) NodeType() NodeType     { return NodeTypeSection }
func (n SectionNode) NodePosition() Position { return n.Position }
func (n SectionNode) WithPosition(p Position) Node {
	n.Position = p
	return n
}
func (SectionNode) isNode() {}

func (n ItemNode) NodeID() string         { return n.ID }
func (n ItemNode) NodeType() NodeType     { return NodeTypeItem }
func (n ItemNode) NodePosition() Position { return n.Position }
func (n ItemNode) WithPosition(p Position) Node {
	n.Position = p
	return n
}
func (ItemNode) isNode() {}

// Graph is the editable, positioned form of a SettingsSchema. Treat it as a value:
// operations return new graphs rather than changing Nodes in place.
type Graph struct {
	Nodes []Node
}

// Clone returns a graph with its own node slice
func (g Graph) Clone() Graph {
	nodes := make([]Node, len(g.Nodes))
	copy(nodes, g.Nodes)
	return Graph{Nodes: nodes}
}

// IndexOf returns the position of id in the node list, or -1
func (g Graph) IndexOf(id string) int {
	for i, n := range g.Nodes {
		if n.NodeID() == id {
			return i
		}
	}
	return -1
}

// Find returns the node with the given id
func (g Graph) Find(id string) (Node, bool) {
	if i := g.IndexOf(id); i >= 0 {
		return g.Nodes[i], true
	}
	return nil, false
}

// Section returns the section node with the given id
func (g Graph) Section(id string) (SectionNode, bool) {
	n, ok := g.Find(id)
	if !ok {
		return SectionNode{}, false
	}
	s, ok := n.(SectionNode)
	return s, ok
}

// ItemNode returns the item node with the given id
func (g Graph) ItemNode(id string) (ItemNode, bool) {
	n, ok := g.Find(id)
	if !ok {
		return ItemNode{}, false
	}
	it, ok := n.(ItemNode)
	return it, ok
}

// Sections returns section nodes in node-list order
func (g Graph) Sections() []SectionNode {
	var sections []SectionNode
	for _, n := range g.Nodes {
		if s, ok := n.(SectionNode); ok {
			sections = append(sections, s)
		}
	}
	return sections
}

// Items returns item nodes in node-list order
func (g Graph) Items() []ItemNode {
	var items []ItemNode
	for _, n := range g.Nodes {
		if it, ok := n.(ItemNode); ok {
			items = append(items, it)
		}
	}
	return items
}
