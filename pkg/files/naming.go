package files

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	nonIDChars    = regexp.MustCompile(`[^a-z0-9]+`)
	repeatedUnder = regexp.MustCompile(`_+`)
)

// IDFromName derives an item id from a display name
// Examples:
//
//	"Dark Mode"     → "dark_mode"
//	"User's Avatar" → "user_s_avatar"
//	"Volume #1!"    → "volume_1"
func IDFromName(name string) string {
	id := strings.ToLower(name)
	id = nonIDChars.ReplaceAllString(id, "_")
	id = repeatedUnder.ReplaceAllString(id, "_")
	id = strings.Trim(id, "_")
	if id == "" {
		id = "item"
	}
	return id
}

// UniqueID returns base, or base_2, base_3, ... when taken reports it is in use
func UniqueID(base string, taken func(string) bool) string {
	if taken == nil || !taken(base) {
		return base
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s_%d", base, n)
		if !taken(candidate) {
			return candidate
		}
	}
}

// ValidateName rejects names that cannot produce a readable id
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if !regexp.MustCompile(`[a-zA-Z0-9]`).MatchString(name) {
		return fmt.Errorf("name contains only special characters")
	}
	return nil
}
