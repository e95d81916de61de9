package core

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes to NFD and removes combining marks, so "á" becomes "a".
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize prepares free text for fuzzy comparison. Steps, in order:
// lower-case, strip diacritics, fold phonetically ambiguous Spanish
// consonants (v→b, z→s, c→s, g→j), drop everything outside [a-z0-9\s].
//
// The folding is deliberately lossy: "Caza" and "Casa" normalize to the
// same key. Spoken input and transcription confuse these pairs constantly,
// and recall matters more than precision here — the resolver's scoring
// orders the resulting homophone group. Do not "fix" the conflation.
//
// Normalize is total and idempotent: the output alphabet contains none of
// the folded consonants, so a second pass is the identity.
func Normalize(text string) string {
	lowered := strings.ToLower(text)
	stripped, _, err := transform.String(stripMarks, lowered)
	if err != nil {
		stripped = lowered
	}

	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range stripped {
		switch r {
		case 'v':
			r = 'b'
		case 'z', 'c':
			r = 's'
		case 'g':
			r = 'j'
		}
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return b.String()
}

// SignificantWords splits a normalized query into the tokens that are long
// enough to carry meaning (length > 2). Articles and short prepositions
// ("de", "el", "la") fall out naturally.
func SignificantWords(normalized string) []string {
	var out []string
	for _, w := range strings.Fields(normalized) {
		if len(w) > 2 {
			out = append(out, w)
		}
	}
	return out
}
