package action

import (
	"net/url"
	"strings"
)

const scriptScheme = "javascript:"

// PrepareScript turns a stored script into runnable code. Bookmarklet-style
// scripts lose their "javascript:" scheme and are URI-decoded; when decoding
// fails the undecoded text is used. Blank scripts return "".
func PrepareScript(script string) string {
	if strings.TrimSpace(script) == "" {
		return ""
	}
	rest, ok := strings.CutPrefix(script, scriptScheme)
	if !ok {
		return script
	}
	decoded, err := url.PathUnescape(rest)
	if err != nil {
		return rest
	}
	return decoded
}
