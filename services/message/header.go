package message

import (
	"regexp"
	"strings"

	"google.golang.org/api/gmail/v1"
)

var namedAddressRegex = regexp.MustCompile(`^(.*?)\s*<(.+?)>$`)

// Address is a single mailbox taken from a From/To/Cc/Bcc header value.
type Address struct {
	Name  string
	Email string
}

// GetHeader returns the value of the first header whose name matches case-insensitively, or "".
func GetHeader(name string, headers []*gmail.MessagePartHeader) string {
	for _, h := range headers {
		if h != nil && strings.EqualFold(h.Name, name) {
			return h.Value
		}
	}
	return ""
}

// ParseAddress splits `"Name" <email>` into its parts. Input without angle brackets
// is an email when it contains "@" and a bare name otherwise.
func ParseAddress(raw string) Address {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Address{}
	}

	if match := namedAddressRegex.FindStringSubmatch(raw); match != nil {
		return Address{
			Name:  strings.TrimSpace(strings.ReplaceAll(match[1], `"`, "")),
			Email: strings.TrimSpace(match[2]),
		}
	}

	if strings.Contains(raw, "@") {
		return Address{Email: raw}
	}
	return Address{Name: raw}
}
