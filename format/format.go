// Package format verifies named string formats ("date-time", "uuid",
// "email", ...) referenced by format annotations. Verifiers follow JSON
// Schema's convention: a name nobody registered is an annotation, not an
// error, so Lookup reports whether a verifier exists at all.
package format

import (
	"fmt"
	"net"
	"net/mail"
	"net/url"
	"time"
)

// Checker reports whether s conforms to one named format.
type Checker func(s string) error

var registry = map[string]Checker{
	"date-time": checkDateTime,
	"date":      checkDate,
	"time":      checkTime,
	"duration":  checkDuration,
	"email":     checkEmail,
	"uuid":      checkUUID,
	"uri":       checkURI,
	"hostname":  checkHostname,
	"ipv4":      checkIPv4,
	"ipv6":      checkIPv6,
}

// Lookup returns the checker registered under name.
func Lookup(name string) (Checker, bool) {
	c, ok := registry[name]
	return c, ok
}

// ParseDateTime parses an RFC3339 timestamp, accepting fractional
// seconds of any precision.
func ParseDateTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, err
	}
	return t, nil
}

// FormatDateTime renders t in the canonical form ParseDateTime accepts:
// UTC, RFC3339, trailing fractional zeros trimmed.
func FormatDateTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func checkDateTime(s string) error {
	_, err := ParseDateTime(s)
	return err
}

func checkDate(s string) error {
	_, err := time.Parse("2006-01-02", s)
	return err
}

func checkTime(s string) error {
	_, err := time.Parse("15:04:05Z07:00", s)
	return err
}

func checkDuration(s string) error {
	_, err := time.ParseDuration(s)
	return err
}

func checkEmail(s string) error {
	a, err := mail.ParseAddress(s)
	if err != nil {
		return err
	}
	if a.Address != s {
		return fmt.Errorf("address %q carries a display name", s)
	}
	return nil
}

func checkUUID(s string) error {
	if len(s) != 36 {
		return fmt.Errorf("uuid must be 36 characters, got %d", len(s))
	}
	for i, r := range s {
		switch i {
		case 8, 13, 18, 23:
			if r != '-' {
				return fmt.Errorf("uuid needs '-' at position %d", i)
			}
		default:
			if !isHex(r) {
				return fmt.Errorf("uuid has a non-hex character at position %d", i)
			}
		}
	}
	return nil
}

func isHex(r rune) bool {
	return r >= '0' && r <= '9' || r >= 'a' && r <= 'f' || r >= 'A' && r <= 'F'
}

func checkURI(s string) error {
	u, err := url.Parse(s)
	if err != nil {
		return err
	}
	if !u.IsAbs() {
		return fmt.Errorf("uri %q has no scheme", s)
	}
	return nil
}

func checkHostname(s string) error {
	if s == "" || len(s) > 253 {
		return fmt.Errorf("hostname length %d out of range", len(s))
	}
	label := 0
	for i, r := range s {
		switch {
		case r == '.':
			if label == 0 || s[i-1] == '-' {
				return fmt.Errorf("hostname has an empty or malformed label")
			}
			label = 0
		case r == '-':
			if label == 0 {
				return fmt.Errorf("hostname label starts with '-'")
			}
			label++
		case r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9':
			label++
		default:
			return fmt.Errorf("hostname has an invalid character %q", r)
		}
		if label > 63 {
			return fmt.Errorf("hostname label exceeds 63 characters")
		}
	}
	if label == 0 || s[len(s)-1] == '-' {
		return fmt.Errorf("hostname has an empty or malformed final label")
	}
	return nil
}

func checkIPv4(s string) error {
	ip := net.ParseIP(s)
	if ip == nil || ip.To4() == nil {
		return fmt.Errorf("%q is not an IPv4 address", s)
	}
	return nil
}

func checkIPv6(s string) error {
	ip := net.ParseIP(s)
	if ip == nil || ip.To4() != nil {
		return fmt.Errorf("%q is not an IPv6 address", s)
	}
	return nil
}
