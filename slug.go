package listicle

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultSlug is used when a name contains no usable characters at all.
const DefaultSlug = "product"

// slugRe matches a well-formed product id.
var slugRe = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// slugReplacer applies the literal substitutions that run before lowercasing.
var slugReplacer = strings.NewReplacer(
	"/", "-",
	".", "-",
	"_", "-",
	"&", "en",
	"'", "",
	"‘", "",
	"’", "",
	"‛", "",
	"ʼ", "",
	"`", "",
	"´", "",
)

// Slugify derives a stable product id from a display name.
//
//	Slugify("Philips LatteGo 5500 EP5543/90")        == "philips-lattego-5500-ep5543-90"
//	Slugify("De'Longhi Eletta Explore ECAM450.65.G") == "delonghi-eletta-explore-ecam450-65-g"
//
// Returns "" when nothing usable remains.
func Slugify(name string) string {
	s := slugReplacer.Replace(name)
	s = strings.ToLower(s)
	s = stripAccents(s)

	var sb strings.Builder
	prevHyphen := false
	for _, r := range s {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			sb.WriteRune(r)
			prevHyphen = false
		case r == '-' || unicode.IsSpace(r):
			if !prevHyphen {
				sb.WriteRune('-')
				prevHyphen = true
			}
		}
	}

	return strings.Trim(sb.String(), "-")
}

// stripAccents maps accented letters to their base letters (ë→e, é→e, ö→o).
func stripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// IsValidSlug reports whether id is a well-formed product id.
func IsValidSlug(id string) bool {
	return slugRe.MatchString(id)
}

// AssignIDs slugifies each name and resolves collisions by appending -2, -3,
// … in order of first occurrence. The returned slice is parallel to names.
func AssignIDs(names []string) []string {
	ids := make([]string, len(names))
	used := make(map[string]bool, len(names))
	counts := make(map[string]int, len(names))

	for i, name := range names {
		base := Slugify(name)
		if base == "" {
			base = DefaultSlug
		}

		id := base
		if used[id] {
			n := counts[base]
			for {
				n++
				id = base + "-" + strconv.Itoa(n)
				if !used[id] {
					break
				}
			}
			counts[base] = n
		} else {
			counts[base] = 1
		}

		used[id] = true
		ids[i] = id
	}

	return ids
}
