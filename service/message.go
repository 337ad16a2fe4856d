package service

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/txix-open/isp-kit/json"
)

var (
	tagPattern = regexp.MustCompile(`<[^>]*>`) // nolint:gochecknoglobals
)

// ParseMessage extracts the message field from a request body.
// A body that is not an object, or a missing, null, false or zero message,
// yields an empty message. Invalid json, a null body and any other
// non-string message are errors.
func ParseMessage(data []byte) (string, error) {
	var body any
	err := json.Unmarshal(data, &body)
	if err != nil {
		return "", errors.WithMessage(err, "unmarshal request body")
	}
	if body == nil {
		return "", errors.New("request body is null")
	}

	object, ok := body.(map[string]any)
	if !ok {
		return "", nil
	}

	switch message := object["message"].(type) {
	case nil:
		return "", nil
	case string:
		return message, nil
	case bool:
		if !message {
			return "", nil
		}
	case float64:
		if message == 0 {
			return "", nil
		}
	}
	return "", errors.Errorf("message has unsupported type %T", object["message"])
}

// SanitizeMessage drops tag-like fragments, cuts the text to maxLength
// characters and trims surrounding whitespace, in that order.
func SanitizeMessage(raw string, maxLength int) string {
	message := tagPattern.ReplaceAllString(raw, "")
	if utf8.RuneCountInString(message) > maxLength {
		message = string([]rune(message)[:maxLength])
	}
	return strings.TrimSpace(message)
}
