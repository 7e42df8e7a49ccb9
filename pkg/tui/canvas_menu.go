package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pluqqy/blueprint/pkg/models"
)

type menuPurpose int

const (
	menuAddItem  menuPurpose = iota // stack under a section
	menuCreateAt                    // place at the cursor, attached or not
)

// typeMenu is the item type chooser opened by "add item" and by a connection
// dropped on empty canvas
type typeMenu struct {
	purpose   menuPurpose
	sectionID string
	at        models.Position
	cursor    int
}

func newTypeMenu(purpose menuPurpose, sectionID string, at models.Position) typeMenu {
	return typeMenu{purpose: purpose, sectionID: sectionID, at: at}
}

// update handles one key. done is true when the menu closes; t is empty when
// it was cancelled.
func (tm *typeMenu) update(key string) (t models.ItemType, done bool) {
	switch key {
	case "up", "k":
		if tm.cursor > 0 {
			tm.cursor--
		}
	case "down", "j", "tab":
		if tm.cursor < len(models.AllItemTypes)-1 {
			tm.cursor++
		}
	case "enter":
		return models.AllItemTypes[tm.cursor], true
	case "esc", "q":
		return "", true
	default:
		// Number keys pick directly
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(models.AllItemTypes) {
			return models.AllItemTypes[n-1], true
		}
	}
	return "", false
}

func (tm typeMenu) view() string {
	var b strings.Builder

	title := "Add item"
	switch {
	case tm.purpose == menuCreateAt && tm.sectionID == "":
		title = fmt.Sprintf("New detached item at %g,%g", tm.at.X, tm.at.Y)
	case tm.purpose == menuCreateAt:
		title = fmt.Sprintf("New item in %s at %g,%g", tm.sectionID, tm.at.X, tm.at.Y)
	case tm.sectionID != "":
		title = "Add item to " + tm.sectionID
	}
	b.WriteString(HeaderStyle.Render(title))
	b.WriteString("\n\n")

	for i, t := range models.AllItemTypes {
		line := fmt.Sprintf("%d  %s", i+1, t.Label())
		if i == tm.cursor {
			b.WriteString(SelectedStyle.Render("▸ " + line))
		} else {
			b.WriteString(NormalStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("↑/↓ choose • enter add • esc cancel"))

	return ActiveBorderStyle.Padding(0, 1).Render(b.String())
}
