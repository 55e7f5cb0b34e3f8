package validation

import (
	"net"
	"net/mail"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FormatValidator reports whether a string satisfies a named format.
type FormatValidator func(value string) bool

var formatValidators = map[string]FormatValidator{
	"email":     isEmail,
	"uuid":      isUUID,
	"date":      isDate,
	"datetime":  isDateTime,
	"date-time": isDateTime,
	"uri":       isURL,
	"url":       isURL,
	"ipv4":      func(v string) bool { ip := net.ParseIP(v); return ip != nil && ip.To4() != nil },
	"ipv6":      func(v string) bool { ip := net.ParseIP(v); return ip != nil && ip.To4() == nil },
	"ip":        func(v string) bool { return net.ParseIP(v) != nil },
	"hostname":  isHostname,
}

// ValidateFormat checks a value against a named format. Unknown formats pass.
func ValidateFormat(format, value string) bool {
	validator, ok := formatValidators[strings.ToLower(format)]
	if !ok {
		return true
	}
	return validator(value)
}

// IsKnownFormat returns true if the format is recognized
func IsKnownFormat(format string) bool {
	_, ok := formatValidators[strings.ToLower(format)]
	return ok
}

// RegisterFormat registers a custom format validator. It is not safe to call
// concurrently with validation; register formats from init or TestMain.
func RegisterFormat(name string, validator FormatValidator) {
	formatValidators[strings.ToLower(name)] = validator
}

// isEmail accepts RFC 5322 addresses whose domain contains a dot.
func isEmail(value string) bool {
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return false
	}
	at := strings.LastIndex(value, "@")
	return at > 0 && strings.Contains(value[at+1:], ".")
}

// isUUID accepts only the canonical 36 character form.
func isUUID(value string) bool {
	if len(value) != 36 {
		return false
	}
	_, err := uuid.Parse(value)
	return err == nil
}

func isDate(value string) bool {
	_, err := time.Parse(time.DateOnly, value)
	return err == nil
}

var dateTimeLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	time.DateTime,
}

func isDateTime(value string) bool {
	for _, layout := range dateTimeLayouts {
		if _, err := time.Parse(layout, value); err == nil {
			return true
		}
	}
	return false
}

// isURL requires both a scheme and a host.
func isURL(value string) bool {
	u, err := url.Parse(value)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// RFC 1123 hostname
var hostnamePattern = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(\.[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)

func isHostname(value string) bool {
	return len(value) <= 253 && hostnamePattern.MatchString(value)
}
