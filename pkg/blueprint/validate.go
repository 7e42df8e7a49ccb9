package blueprint

import (
	"fmt"
	"sort"

	"github.com/pluqqy/blueprint/pkg/models"
)

type ProblemKind string

const (
	ProblemDuplicateID     ProblemKind = "duplicate_id"
	ProblemDanglingSection ProblemKind = "dangling_section"
	ProblemDetached        ProblemKind = "detached"
	ProblemUnknownType     ProblemKind = "unknown_type"
)

// Problem is a finding reported by Validate. None of them block editing.
type Problem struct {
	Kind    ProblemKind `json:"kind" yaml:"kind"`
	NodeID  string      `json:"nodeId" yaml:"nodeId"`
	Message string      `json:"message" yaml:"message"`
}

// Validate reports duplicate node ids, items pointing at missing sections,
// detached items (which a schema export drops) and items of unknown type.
func Validate(g models.Graph) []Problem {
	var problems []Problem
	idx := NewIndex(g)

	counts := make(map[string]int)
	var order []string
	for _, n := range g.Nodes {
		if counts[n.NodeID()] == 0 {
			order = append(order, n.NodeID())
		}
		counts[n.NodeID()]++
	}
	for _, id := range order {
		if counts[id] > 1 {
			problems = append(problems, Problem{
				Kind:    ProblemDuplicateID,
				NodeID:  id,
				Message: fmt.Sprintf("id %q is used by %d nodes", id, counts[id]),
			})
		}
	}

	for _, item := range g.Items() {
		switch {
		case item.SectionID == "":
			problems = append(problems, Problem{
				Kind:    ProblemDetached,
				NodeID:  item.ID,
				Message: fmt.Sprintf("item %q is not attached to a section", item.ID),
			})
		case !idx.Resolves(item.SectionID):
			problems = append(problems, Problem{
				Kind:    ProblemDanglingSection,
				NodeID:  item.ID,
				Message: fmt.Sprintf("item %q references missing section %q", item.ID, item.SectionID),
			})
		}
		if item.Item != nil && !item.Item.Type().Known() {
			problems = append(problems, Problem{
				Kind:    ProblemUnknownType,
				NodeID:  item.ID,
				Message: fmt.Sprintf("item %q has unknown type %q", item.ID, item.Item.Type()),
			})
		}
	}

	return problems
}

// DuplicateItemIDs returns item ids that occur more than once across the schema,
// sorted
func DuplicateItemIDs(schema models.SettingsSchema) []string {
	counts := make(map[string]int)
	for _, section := range schema.Sections {
		for _, item := range section.Items {
			if id := item.Base().ID; id != "" {
				counts[id]++
			}
		}
	}
	var dups []string
	for id, n := range counts {
		if n > 1 {
			dups = append(dups, id)
		}
	}
	sort.Strings(dups)
	return dups
}
