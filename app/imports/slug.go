package imports

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Pre-compiled patterns; Slugify runs once per imported row/file.
var (
	extensionSuffix = regexp.MustCompile(`\.[^/.]+$`)
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
)

// Slugify derives a URL-safe key from a display name: lowercase, a
// trailing file-extension-like suffix stripped, every run of
// non-alphanumerics collapsed to a single hyphen, outer hyphens
// trimmed. Idempotent.
func Slugify(name string) string {
	s := strings.ToLower(name)
	s = extensionSuffix.ReplaceAllString(s, "")
	s = nonAlphanumeric.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// ProductSlug builds a unique product slug. Product names are not
// unique, so a base36 nanosecond disambiguator is appended.
func ProductSlug(name string) string {
	return fmt.Sprintf("%s-%s", Slugify(name), strconv.FormatInt(time.Now().UnixNano(), 36))
}
