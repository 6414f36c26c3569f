package errors

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxTextLength bounds the input accepted by outer surfaces (CLI, HTTP).
const MaxTextLength = 10000

// MaxWidth bounds the container width accepted by outer surfaces.
const MaxWidth = 20000

// ValidateText validates free-form input text coming from a host.
// Blank text is valid (it renders an empty surface). Whitespace control
// characters are allowed since they delimit words; other control characters
// and invalid UTF-8 are rejected.
func ValidateText(text string) error {
	if len(text) > MaxTextLength {
		return New(ErrCodeInvalidInput, "text too long (max %d bytes)", MaxTextLength)
	}
	if !utf8.ValidString(text) {
		return New(ErrCodeInvalidInput, "text is not valid UTF-8")
	}
	for _, r := range text {
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "text contains invalid control characters")
		}
	}
	return nil
}

// ValidateWidth validates a container width in pixels.
func ValidateWidth(width float64) error {
	if width <= 0 || width != width {
		return New(ErrCodeInvalidWidth, "width must be positive")
	}
	if width > MaxWidth {
		return New(ErrCodeInvalidWidth, "width too large (max %d)", MaxWidth)
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}

// IsURL reports whether s looks like an http(s) URL rather than a local path.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
