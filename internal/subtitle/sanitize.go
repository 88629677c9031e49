package subtitle

import (
	"regexp"
	"strings"
)

var overrideBlockRegex = regexp.MustCompile(`\{.*?\}`)

var lineBreakReplacer = strings.NewReplacer(`\N`, " ", `\n`, " ")

// Sanitize strips override blocks ({...}) and hard/soft line breaks
// (\N, \n) from a Dialogue text field. The result may be empty.
func Sanitize(text string) string {
	text = overrideBlockRegex.ReplaceAllString(text, "")
	text = lineBreakReplacer.Replace(text)
	return strings.TrimSpace(text)
}

