package storage

import (
	"fmt"
	"path"
	"strings"
	"time"
	"unicode"
)

// ObjectPath builds the key an attachment is stored under:
// attachments/<user id>/<unix millis>-<sanitised name>.
func ObjectPath(userID, filename string, now time.Time) string {
	return fmt.Sprintf("attachments/%s/%d-%s", userID, now.UnixMilli(), SanitizeFilename(filename))
}

// SanitizeFilename drops any directory part and replaces characters that are
// awkward in object keys and URLs.
func SanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.Map(func(r rune) rune {
		switch {
		case r == '.' || r == '-' || r == '_':
			return r
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			return r
		default:
			return '_'
		}
	}, name)
	name = strings.Trim(name, ".")
	if name == "" {
		return "file"
	}
	return name
}
