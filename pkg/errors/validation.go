package errors

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxNameLength bounds class, node and key names.
const maxNameLength = 256

// ValidateName validates a display name for a class or node.
//
// Empty names are allowed; nodes are frequently unnamed. The rules are:
//   - Maximum length of 256 characters
//   - No control characters (tabs excepted)
//   - Valid UTF-8
func ValidateName(name string) error {
	if utf8.RuneCountInString(name) > maxNameLength {
		return New(ErrCodeInvalidName, "name too long (max %d characters)", maxNameLength)
	}
	if !utf8.ValidString(name) {
		return New(ErrCodeInvalidName, "name is not valid UTF-8")
	}
	for _, r := range name {
		if r != '\t' && unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "name contains invalid control characters")
		}
	}
	return nil
}

// ValidateElementName validates a key that is stored as an XML element name,
// such as a custom data key.
//
// Validation rules:
//   - Key cannot be empty
//   - First character is a letter or underscore
//   - Remaining characters are letters, digits, '_', '-' or '.'
//   - Key must not start with "xml" in any case (reserved by XML)
func ValidateElementName(key string) error {
	if key == "" {
		return New(ErrCodeInvalidName, "key cannot be empty")
	}
	if len(key) > maxNameLength {
		return New(ErrCodeInvalidName, "key too long (max %d characters)", maxNameLength)
	}
	if strings.HasPrefix(strings.ToLower(key), "xml") {
		return New(ErrCodeInvalidName, "key %q uses the reserved xml prefix", key)
	}
	for i, r := range key {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && (unicode.IsDigit(r) || r == '-' || r == '.'):
		default:
			return New(ErrCodeInvalidName, "key %q contains invalid character %q", key, r)
		}
	}
	return nil
}
