package util

import (
	"crypto/rand"
	"math/big"
	"net/mail"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// UIDMatcher checks if a string is a valid username.
var UIDMatcher = regexp.MustCompile("^[a-z0-9]([a-z0-9-]{1,30}[a-z0-9])$")

var yearMatcher = regexp.MustCompile(`\b(\d{4})\b`)

// ConvertStringToInt32 converts a string to int32.
func ConvertStringToInt32(src string) (int32, error) {
	parsed, err := strconv.ParseInt(src, 10, 32)
	if err != nil {
		return 0, err
	}
	return int32(parsed), nil
}

// HasPrefixes returns true if the string s has any of the given prefixes.
func HasPrefixes(src string, prefixes ...string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(src, prefix) {
			return true
		}
	}
	return false
}

// ValidateEmail validates the email.
func ValidateEmail(email string) bool {
	if _, err := mail.ParseAddress(email); err != nil {
		return false
	}
	return true
}

func GenUUID() string {
	return uuid.New().String()
}

// ExtractYear pulls a 4-digit year out of an irregular publish-date string
// such as "June 1998" or "1998-06-01". Returns 0 when no year is present.
func ExtractYear(src string) int32 {
	match := yearMatcher.FindString(src)
	if match == "" {
		return 0
	}
	year, err := ConvertStringToInt32(match)
	if err != nil {
		return 0
	}
	return year
}

var nonAlnumMatcher = regexp.MustCompile(`[^a-z0-9]+`)

// NormalizeTagName lowercases a tag name and collapses separators, so
// "Sci-Fi" and "sci fi" map to the same vocabulary entry.
func NormalizeTagName(name string) string {
	normalized := nonAlnumMatcher.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(normalized, "-")
}

var letters = []rune("0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")

// RandomString returns a random string with length n.
func RandomString(n int) (string, error) {
	var sb strings.Builder
	sb.Grow(n)
	for i := 0; i < n; i++ {
		// crypto/rand has a stronger source of randomness than math/rand,
		// and this is used for signing secrets.
		randNum, err := rand.Int(rand.Reader, big.NewInt(int64(len(letters))))
		if err != nil {
			return "", err
		}
		sb.WriteRune(letters[randNum.Int64()])
	}
	return sb.String(), nil
}
