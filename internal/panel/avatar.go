package panel

import (
	"hash/fnv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// avatarColors is a small ANSI 256 palette for avatar glyphs.
var avatarColors = []string{"33", "35", "39", "70", "99", "130", "166", "169", "172", "203"}

// Avatar returns up to two initials for name, or "?" when it has none.
func Avatar(name string) string {
	var initials []rune
	for _, part := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(part)
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		initials = append(initials, unicode.ToUpper(r))
		if len(initials) == 2 {
			break
		}
	}
	if len(initials) == 0 {
		return "?"
	}
	return string(initials)
}

// AvatarColor picks a stable palette color keyed by name.
func AvatarColor(name string) string {
	h := fnv.New32a()
	h.Write([]byte(name))
	return avatarColors[h.Sum32()%uint32(len(avatarColors))]
}
