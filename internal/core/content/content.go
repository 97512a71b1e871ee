// Package content validates the free text of posts and replies.
package content

import (
	"strings"

	"github.com/rivo/uniseg"
)

// MaxGraphemes is the longest accepted content, counted in user-perceived
// characters (extended grapheme clusters), not bytes or runes.
const MaxGraphemes = 280

// Valid is content that passed Validate. The zero value is never returned
// alongside ok == true.
type Valid struct {
	text string
}

// String returns the content exactly as submitted.
func (v Valid) String() string {
	return v.text
}

// Validate accepts content that is not blank and is at most MaxGraphemes
// grapheme clusters long. Whitespace is any rune with the Unicode White_Space
// property. Accepted content is kept verbatim.
func Validate(raw string) (Valid, bool) {
	if strings.TrimSpace(raw) == "" {
		return Valid{}, false
	}
	if uniseg.GraphemeClusterCount(raw) > MaxGraphemes {
		return Valid{}, false
	}
	return Valid{text: raw}, true
}
