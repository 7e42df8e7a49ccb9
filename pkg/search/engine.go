package search

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pluqqy/blueprint/pkg/blueprint"
	"github.com/pluqqy/blueprint/pkg/models"
)

// Entry is the searchable view of one graph node
type Entry struct {
	NodeID       string          `json:"id" yaml:"id"`
	NodeType     models.NodeType `json:"type" yaml:"type"`
	Kind         models.ItemType `json:"kind,omitempty" yaml:"kind,omitempty"`
	Name         string          `json:"name" yaml:"name"`
	Description  string          `json:"description,omitempty" yaml:"description,omitempty"`
	SectionID    string          `json:"sectionId,omitempty" yaml:"sectionId,omitempty"`
	SectionTitle string          `json:"sectionTitle,omitempty" yaml:"sectionTitle,omitempty"`
	Attached     bool            `json:"attached" yaml:"attached"`
}

// Result is a matching entry with its relevance score
type Result struct {
	Entry Entry   `json:"entry" yaml:"entry"`
	Score float64 `json:"score" yaml:"score"`
}

// Engine answers queries over the nodes of one graph revision
type Engine struct {
	entries []Entry
	parser  *Parser
}

// NewEngine indexes the nodes of g in graph order
func NewEngine(g models.Graph) *Engine {
	idx := blueprint.NewIndex(g)
	titles := make(map[string]string)
	for _, s := range g.Sections() {
		titles[s.ID] = s.Title
	}

	entries := make([]Entry, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		e := Entry{NodeID: n.NodeID(), NodeType: n.NodeType()}
		switch node := n.(type) {
		case models.SectionNode:
			e.Name = node.Title
			e.SectionID = node.ID
			e.SectionTitle = node.Title
			e.Attached = true
		case models.ItemNode:
			base := node.Item.Base()
			e.Kind = node.Item.Type()
			e.Name = base.Name
			e.Description = base.Description
			e.SectionID = node.SectionID
			e.SectionTitle = titles[node.SectionID]
			e.Attached = idx.IsAttached(node)
		}
		entries = append(entries, e)
	}

	return &Engine{entries: entries, parser: NewParser()}
}

// Search returns the entries matching queryStr, best first. Equal scores keep
// graph order. An empty query matches every node.
func (e *Engine) Search(queryStr string) ([]Result, error) {
	query, err := e.parser.Parse(queryStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse query: %w", err)
	}

	var finalMatches []int
	if len(query.Conditions) == 0 {
		for i := range e.entries {
			finalMatches = append(finalMatches, i)
		}
	} else {
		conditionMatches := make([][]int, 0, len(query.Conditions))
		for _, condition := range query.Conditions {
			conditionMatches = append(conditionMatches, e.evaluateCondition(condition))
		}
		finalMatches = combineMatches(conditionMatches, query.Logic)
	}

	results := make([]Result, 0, len(finalMatches))
	for _, i := range finalMatches {
		results = append(results, Result{
			Entry: e.entries[i],
			Score: calculateScore(e.entries[i], query),
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results, nil
}

func (e *Engine) evaluateCondition(condition Condition) []int {
	var matches []int
	for i, entry := range e.entries {
		if matchEntry(entry, condition) != condition.Negate {
			matches = append(matches, i)
		}
	}
	return matches
}

func matchEntry(entry Entry, condition Condition) bool {
	value := strings.ToLower(condition.Value)

	switch condition.Field {
	case FieldTypeField:
		// "section" and "item" select node types, anything else an item kind
		if strings.HasPrefix(string(entry.NodeType), value) {
			return true
		}
		if entry.Kind == "" {
			return false
		}
		// Both the wire name and the label count, so toggle finds "button"
		label := strings.ReplaceAll(strings.ToLower(entry.Kind.Label()), " ", "_")
		return strings.HasPrefix(strings.ToLower(string(entry.Kind)), value) || strings.HasPrefix(label, value)
	case FieldID:
		return strings.HasPrefix(strings.ToLower(entry.NodeID), value)
	case FieldName:
		return strings.Contains(strings.ToLower(entry.Name), value)
	case FieldSection:
		return entry.SectionID != "" && (strings.ToLower(entry.SectionID) == value ||
			strings.Contains(strings.ToLower(entry.SectionTitle), value))
	case FieldStatus:
		if entry.NodeType != models.NodeTypeItem {
			return false
		}
		return entry.Attached == (value == "attached")
	case FieldContent:
		return strings.Contains(strings.ToLower(entry.NodeID), value) ||
			strings.Contains(strings.ToLower(entry.Name), value) ||
			strings.Contains(strings.ToLower(entry.Description), value)
	}
	return false
}

// combineMatches folds the match sets left to right
func combineMatches(conditionMatches [][]int, operators []Operator) []int {
	if len(conditionMatches) == 0 {
		return []int{}
	}

	result := conditionMatches[0]
	for i := 1; i < len(conditionMatches); i++ {
		if i-1 >= len(operators) {
			break
		}
		switch operators[i-1] {
		case OperatorAND:
			result = intersectSlices(result, conditionMatches[i])
		case OperatorOR:
			result = unionSlices(result, conditionMatches[i])
		}
	}
	return result
}

func calculateScore(entry Entry, query *Query) float64 {
	score := 1.0

	// Boost exact and prefix name matches
	for _, condition := range query.Conditions {
		if condition.Negate || (condition.Field != FieldName && condition.Field != FieldContent) {
			continue
		}
		pattern := strings.ToLower(condition.Value)
		name := strings.ToLower(entry.Name)
		switch {
		case name == pattern || strings.ToLower(entry.NodeID) == pattern:
			score += 2.0
		case strings.HasPrefix(name, pattern):
			score += 1.0
		}
	}
	return score
}

func intersectSlices(a, b []int) []int {
	set := make(map[int]bool)
	for _, v := range b {
		set[v] = true
	}

	var result []int
	for _, v := range a {
		if set[v] {
			result = append(result, v)
		}
	}
	return result
}

// unionSlices keeps indices ascending so graph order survives
func unionSlices(a, b []int) []int {
	set := make(map[int]bool)
	for _, v := range a {
		set[v] = true
	}
	for _, v := range b {
		set[v] = true
	}

	result := make([]int, 0, len(set))
	for v := range set {
		result = append(result, v)
	}
	sort.Ints(result)
	return result
}
