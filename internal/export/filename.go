package export

import (
	"strconv"
	"strings"
	"unicode"
)

var unsafeRunes = strings.NewReplacer(
	"/", "-", `\`, "-", ":", "-", "*", "-", "?", "-",
	`"`, "-", "<", "-", ">", "-", "|", "-",
)

// FileName is the Markdown file name for a post's filename slug. Characters
// that are not portable in file names become "-"; an unusable slug falls back
// to the post id.
func FileName(slug string, postID int64) string {
	s := unsafeRunes.Replace(slug)
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	s = strings.Trim(s, " .")
	if s == "" {
		s = strconv.FormatInt(postID, 10)
	}
	return s + ".md"
}
