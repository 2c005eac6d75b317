package validate

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reID    = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	reOrder = regexp.MustCompile(`^[A-Za-z]{3}-[0-9]{5}$`)
	rePhone = regexp.MustCompile(`^\+?[0-9 ]{7,20}$`)
	reCat   = regexp.MustCompile(`^(HOLLOW|SOLID|PAVING|DECORATIVE|CEMENT|INTERLOCKING|U_BLOCK)$`)
	reTier  = regexp.MustCompile(`^(standard|premium|enterprise)$`)
	reCurr  = regexp.MustCompile(`^[A-Z]{3}$`)
)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 50 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// ID validates a simple resource identifier (product/partner ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// OrderID normalizes a free-text order id for tracking lookup. Matching
// is case-insensitive, so the id is uppercased here.
func OrderID(s string) (string, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	return s, reOrder.MatchString(s)
}

// Qty parses a form quantity; bad input defaults to 1, large input is
// clamped to avoid abuse.
func Qty(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	if n > 100000 {
		return 100000
	}
	return n
}

// Delta parses a signed quantity adjustment; bad input means no change.
func Delta(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// Dim parses a wall dimension with a tolerant contract: anything that is
// not a non-negative number reads as zero.
func Dim(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || f < 0 {
		return 0
	}
	return f
}

// BlockType narrows a block size to the supported set, defaulting to 6".
func BlockType(s string) string {
	s = strings.TrimSpace(s)
	switch s {
	case "5", "6", "8":
		return s
	}
	return "6"
}

func Category(s string) (string, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	return s, reCat.MatchString(s)
}

func Tier(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	return s, reTier.MatchString(s)
}

func Currency(s string) (string, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	return s, reCurr.MatchString(s)
}

func Phone(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, rePhone.MatchString(s)
}

// Name validates a displayable name with a reasonable max length.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 60 {
		return "", false
	}
	return s, true
}

// Password enforces complexity for login checks.
func Password(s string) bool {
	l := len(s)
	if l < 8 || l > 20 {
		return false
	}
	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z':
			hasLower = true
		case 'A' <= r && r <= 'Z':
			hasUpper = true
		case '0' <= r && r <= '9':
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	return hasLower && hasUpper && hasDigit && hasSymbol
}
