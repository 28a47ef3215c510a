package utils

import (
	"regexp"
	"strings"
)

// spaces covers ASCII whitespace plus Unicode space separators (no-break, ideographic, ...)
const spaces = `\s\p{Zs}\x{2028}\x{2029}\x{FEFF}`

var (
	nonSlugChars  = regexp.MustCompile(`[^\w` + spaces + `-]`)
	whitespaceRun = regexp.MustCompile(`[` + spaces + `]+`)
	hyphenRun     = regexp.MustCompile(`-+`)
)

// ToSlug derives a URL slug from a title.
// "Hello,  World!" -> "hello-world". May return "" when nothing survives.
func ToSlug(input string) string {
	// Step 1: Lowercase
	lower := strings.ToLower(input)

	// Step 2: Drop everything that is not a word char, whitespace or hyphen
	cleaned := nonSlugChars.ReplaceAllString(lower, "")

	// Step 3: Whitespace runs become one hyphen
	hyphenated := whitespaceRun.ReplaceAllString(cleaned, "-")

	// Step 4: Collapse consecutive hyphens
	normalized := hyphenRun.ReplaceAllString(hyphenated, "-")

	// Step 5: Trim leading/trailing hyphens
	return strings.Trim(normalized, "-")
}
