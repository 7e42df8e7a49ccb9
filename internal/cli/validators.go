package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pluqqy/blueprint/pkg/models"
)

// ParseItemType validates an item type string, accepting short aliases
func ParseItemType(t string) (models.ItemType, error) {
	normalized := strings.ToLower(strings.TrimSpace(t))
	switch normalized {
	case "", "toggle", "button":
		return models.ItemTypeToggle, nil
	case "file":
		return models.ItemTypeFilePicker, nil
	case "color", "colour":
		return models.ItemTypeColorPicker, nil
	}

	if it := models.ItemType(normalized); it.Known() {
		return it, nil
	}

	names := make([]string, len(models.AllItemTypes))
	for i, it := range models.AllItemTypes {
		names[i] = string(it)
	}
	return "", fmt.Errorf("invalid item type: %s (must be: %s)", t, strings.Join(names, ", "))
}

// ParsePosition parses an "x,y" canvas coordinate
func ParsePosition(s string) (models.Position, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return models.Position{}, fmt.Errorf("invalid position %q (expected x,y)", s)
	}

	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return models.Position{}, fmt.Errorf("invalid x coordinate %q", parts[0])
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return models.Position{}, fmt.Errorf("invalid y coordinate %q", parts[1])
	}

	return models.Position{X: x, Y: y}, nil
}

// ValidateFilePath validates that a file path exists and is a file
func ValidateFilePath(path string) error {
	if !filepath.IsAbs(path) {
		path, _ = filepath.Abs(path)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("path does not exist: %s", path)
		}
		return fmt.Errorf("error accessing path: %w", err)
	}

	if info.IsDir() {
		return fmt.Errorf("path is a directory, expected file: %s", path)
	}

	return nil
}

// ValidateSectionTitle rejects titles that would break single-line rendering
func ValidateSectionTitle(title string) error {
	if strings.ContainsAny(title, "\n\r") {
		return fmt.Errorf("section title cannot contain line breaks")
	}
	return nil
}
