package blueprint

import (
	"math"

	"github.com/pluqqy/blueprint/pkg/models"
)

// Layout holds the constants of the default top-to-bottom arrangement
type Layout struct {
	StartX              float64
	StartY              float64
	SectionHeaderHeight float64
	ItemHeight          float64
	Gap                 float64
	SectionGap          float64
	ItemIndent          float64
	DuplicateOffset     float64
	GridSize            float64
	SnapToGrid          bool
}

// DefaultLayout returns the layout used when no configuration overrides it
func DefaultLayout() Layout {
	return Layout{
		StartX:              50,
		StartY:              50,
		SectionHeaderHeight: 60,
		ItemHeight:          80,
		Gap:                 20,
		SectionGap:          40,
		ItemIndent:          40,
		DuplicateOffset:     30,
		GridSize:            10,
		SnapToGrid:          false,
	}
}

// SectionPosition returns the default position of section index given the item
// counts of the sections above it
func (l Layout) SectionPosition(itemCounts []int, index int) models.Position {
	y := l.StartY
	for i := 0; i < index && i < len(itemCounts); i++ {
		y += l.sectionHeight(itemCounts[i]) + l.SectionGap
	}
	return models.Position{X: l.StartX, Y: y}
}

// ItemPosition returns the default position of the index-th item under a section
func (l Layout) ItemPosition(section models.Position, index int) models.Position {
	return models.Position{
		X: section.X + l.ItemIndent,
		Y: section.Y + l.SectionHeaderHeight + l.Gap + float64(index)*(l.ItemHeight+l.Gap),
	}
}

// Below returns the slot directly beneath an item at p
func (l Layout) Below(p models.Position) models.Position {
	return models.Position{X: p.X, Y: p.Y + l.ItemHeight + l.Gap}
}

// Snap rounds p to the grid when snapping is enabled
func (l Layout) Snap(p models.Position) models.Position {
	if !l.SnapToGrid || l.GridSize <= 0 {
		return p
	}
	return models.Position{
		X: math.Round(p.X/l.GridSize) * l.GridSize,
		Y: math.Round(p.Y/l.GridSize) * l.GridSize,
	}
}

func (l Layout) sectionHeight(items int) float64 {
	return l.SectionHeaderHeight + l.Gap + float64(items)*(l.ItemHeight+l.Gap)
}
