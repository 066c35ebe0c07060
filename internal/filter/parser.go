package filter

import (
	"fmt"
	"regexp"
	"strings"
)

var levelPattern = regexp.MustCompile(`^P\d+$`)

// ParseLevels parses a comma-separated level list such as "P100, p250".
//
// Levels are trimmed and upper-cased; duplicates are dropped. Each level must
// look like a tier code ("P" followed by digits).
func ParseLevels(input string) ([]string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("level list cannot be empty")
	}

	seen := make(map[string]bool)
	levels := make([]string, 0)
	for _, part := range strings.Split(input, ",") {
		level := strings.ToUpper(strings.TrimSpace(part))
		if level == "" {
			continue
		}
		if !levelPattern.MatchString(level) {
			return nil, fmt.Errorf("invalid level: %q (expected e.g. P100)", part)
		}
		if !seen[level] {
			seen[level] = true
			levels = append(levels, level)
		}
	}

	if len(levels) == 0 {
		return nil, fmt.Errorf("level list cannot be empty")
	}
	return levels, nil
}
