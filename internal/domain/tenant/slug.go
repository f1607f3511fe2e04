package tenant

import (
	"strings"
	"unicode"

	"github.com/colaai/backend/internal/domain/shared"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const maxSlugLength = 60

// slugStripper decomposes accented characters and drops the combining marks,
// so "Açaí do Zé" transliterates to "Acai do Ze" before kebab-casing.
var slugStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify derives a URL-safe public slug from a store name.
// The result contains only lowercase letters, digits, and single hyphens.
func Slugify(name string) string {
	stripped, _, err := transform.String(slugStripper, name)
	if err != nil {
		stripped = name
	}

	var b strings.Builder
	lastHyphen := true // suppress leading hyphen
	for _, r := range strings.ToLower(stripped) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastHyphen = false
		case r == '\'' || r == '’':
			// apostrophes collapse instead of separating: "Joe's" -> "joes"
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	slug := strings.Trim(b.String(), "-")
	if len(slug) > maxSlugLength {
		slug = strings.Trim(slug[:maxSlugLength], "-")
	}
	return slug
}

// ValidateSlug checks that a slug is non-empty, URL-safe, and within length limits
func ValidateSlug(slug string) error {
	if slug == "" {
		return shared.NewDomainError("INVALID_SLUG", "Public slug cannot be empty")
	}
	if len(slug) > maxSlugLength {
		return shared.NewDomainError("INVALID_SLUG", "Public slug cannot exceed 60 characters")
	}
	if strings.HasPrefix(slug, "-") || strings.HasSuffix(slug, "-") {
		return shared.NewDomainError("INVALID_SLUG", "Public slug cannot start or end with a hyphen")
	}
	for _, r := range slug {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-') {
			return shared.NewDomainError("INVALID_SLUG", "Public slug can only contain lowercase letters, digits, and hyphens")
		}
	}
	return nil
}
