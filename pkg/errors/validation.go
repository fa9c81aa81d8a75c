package errors

import (
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxURLLength bounds document URLs accepted from users and HTTP callers.
const maxURLLength = 2048

// ValidateURL validates a document URL for safety.
// It ensures the URL parses, uses a safe scheme (http or https) and names a host.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	if len(rawURL) > maxURLLength {
		return New(ErrCodeInvalidInput, "URL too long (max %d characters)", maxURLLength)
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return Wrap(ErrCodeInvalidInput, err, "malformed URL")
	}
	if u.Host == "" {
		return New(ErrCodeInvalidInput, "URL must include a host")
	}

	return nil
}

// ValidateFill validates a fill character given as a string.
// The value must be exactly one printable character; a single space is allowed.
func ValidateFill(s string) error {
	if utf8.RuneCountInString(s) != 1 {
		return New(ErrCodeInvalidInput, "fill must be exactly one character, got %q", s)
	}

	r, _ := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || !unicode.IsPrint(r) {
		return New(ErrCodeInvalidInput, "fill must be a printable character, got %q", s)
	}

	return nil
}
