// Package composer renders a settings schema as Markdown reference documentation.
package composer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pluqqy/blueprint/pkg/models"
)

// Options controls the generated document
type Options struct {
	Title        string
	ShowHeadings bool
	ShowDefaults bool
}

// DefaultOptions returns the options used when nothing is configured
func DefaultOptions() Options {
	return Options{Title: "Settings", ShowHeadings: true, ShowDefaults: true}
}

// ComposeMarkdown documents every section and item of schema in display order
func ComposeMarkdown(schema models.SettingsSchema, opts Options) (string, error) {
	if len(schema.Sections) == 0 {
		return "", fmt.Errorf("cannot compose schema: no sections defined")
	}

	var output strings.Builder
	if opts.ShowHeadings && opts.Title != "" {
		output.WriteString(fmt.Sprintf("# %s\n\n", opts.Title))
	}

	for i, section := range schema.Sections {
		if opts.ShowHeadings {
			output.WriteString(fmt.Sprintf("## %s\n\n", sectionTitle(section, i)))
		} else if i > 0 {
			output.WriteString("---\n\n")
		}

		if len(section.Items) == 0 {
			output.WriteString("_No settings._\n\n")
			continue
		}

		// Sort items by order field; equal orders keep document order
		items := make([]models.Item, len(section.Items))
		copy(items, section.Items)
		sort.SliceStable(items, func(a, b int) bool {
			return items[a].Base().OrderValue() < items[b].Base().OrderValue()
		})

		for _, item := range items {
			output.WriteString(composeItem(item, opts))
		}
		output.WriteString("\n")
	}

	return strings.TrimRight(output.String(), "\n") + "\n", nil
}

func sectionTitle(section models.Section, index int) string {
	if section.Title != "" {
		return section.Title
	}
	return fmt.Sprintf("Section %d", index+1)
}

func composeItem(item models.Item, opts Options) string {
	base := item.Base()
	name := base.Name
	if name == "" {
		name = base.ID
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("- **%s** (`%s`, %s)", name, base.ID, describeType(item)))
	if base.Description != "" {
		b.WriteString(": " + strings.TrimSpace(base.Description))
	}

	var notes []string
	if c := constraints(item); c != "" {
		notes = append(notes, c)
	}
	if opts.ShowDefaults {
		if v, ok := models.DefaultValue(item); ok && !isEmpty(v) {
			notes = append(notes, "default "+formatValue(v))
		}
	}
	if len(notes) > 0 {
		b.WriteString(" [" + strings.Join(notes, "; ") + "]")
	}
	b.WriteString("\n")
	return b.String()
}

func describeType(item models.Item) string {
	if u, ok := item.(models.UnknownItem); ok {
		return fmt.Sprintf("unsupported type %q", u.RawType)
	}
	return strings.ToLower(item.Type().Label())
}

func constraints(item models.Item) string {
	switch it := item.(type) {
	case models.SliderItem:
		var parts []string
		if it.Min != nil && it.Max != nil {
			parts = append(parts, fmt.Sprintf("range %g–%g", *it.Min, *it.Max))
		}
		if it.Step != nil {
			parts = append(parts, fmt.Sprintf("step %g", *it.Step))
		}
		return strings.Join(parts, ", ")
	case models.SelectItem:
		values := make([]string, len(it.Options))
		for i, o := range it.Options {
			values[i] = "`" + o.Value + "`"
		}
		if len(values) == 0 {
			return ""
		}
		return "options " + strings.Join(values, ", ")
	case models.FilePickerItem:
		if it.Accept != "" {
			return "accepts " + it.Accept
		}
	}
	return ""
}

func isEmpty(v any) bool {
	s, ok := v.(string)
	return ok && s == ""
}

func formatValue(v any) string {
	switch val := v.(type) {
	case bool:
		if val {
			return "on"
		}
		return "off"
	case float64:
		return fmt.Sprintf("`%g`", val)
	default:
		return fmt.Sprintf("`%v`", val)
	}
}
