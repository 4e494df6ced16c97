package covers

import (
	"regexp"
	"strings"
	"unicode"
)

var markupPattern = regexp.MustCompile(`<[^>]*>`)

// StripMarkup removes embedded tags. Naver wraps query terms in <b> inside
// result fields.
func StripMarkup(s string) string {
	return strings.TrimSpace(markupPattern.ReplaceAllString(s, ""))
}

// NormalizeKey produces the canonical comparison form of a text field:
// markup stripped, lowercased, every run of non-letter/non-digit characters
// collapsed to a single space, trimmed.
func NormalizeKey(s string) string {
	lowered := strings.ToLower(StripMarkup(s))

	var b strings.Builder
	b.Grow(len(lowered))
	pendingSpace := false
	for _, r := range lowered {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
			continue
		}
		pendingSpace = true
	}
	return b.String()
}

// authorRoleWords are role suffixes the Naver author field appends but the
// catalog never records. Dropping them keeps a correct author containment
// check from failing on "홍길동 지음" vs "홍길동".
var authorRoleWords = map[string]struct{}{
	"지음":         {},
	"엮음":         {},
	"옮김":         {},
	"저":          {},
	"역":          {},
	"편":          {},
	"편저":         {},
	"공저":         {},
	"글":          {},
	"그림":         {},
	"author":     {},
	"editor":     {},
	"translator": {},
}

// NormalizeAuthor applies NormalizeKey and additionally strips author-role
// words.
func NormalizeAuthor(s string) string {
	normalized := NormalizeKey(s)
	if normalized == "" {
		return ""
	}
	words := strings.Fields(normalized)
	kept := words[:0]
	for _, word := range words {
		if _, ok := authorRoleWords[word]; ok {
			continue
		}
		kept = append(kept, word)
	}
	return strings.Join(kept, " ")
}
