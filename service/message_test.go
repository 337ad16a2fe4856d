package service_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"chat-gate-service/service"

	"github.com/stretchr/testify/require"
)

func TestSanitizeMessage(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		raw      string
		expected string
	}{
		{name: "plain", raw: "Hello", expected: "Hello"},
		{name: "tags", raw: "<b>Hello</b> there", expected: "Hello there"},
		{name: "script", raw: `<script src="x.js"></script>hi<img onerror="alert(1)">`, expected: "hi"},
		{name: "unclosed tag is kept", raw: "a < b", expected: "a < b"},
		{name: "whitespace", raw: "  \n\t ", expected: ""},
		{name: "only tags", raw: "<p> </p>", expected: ""},
		{name: "greek", raw: " Γεια σου <i>κόσμε</i> ", expected: "Γεια σου κόσμε"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, c.expected, service.SanitizeMessage(c.raw, 1000))
		})
	}
}

func TestSanitizeMessageTruncation(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	long := strings.Repeat("λ", 1500)
	require.Equal(1000, utf8.RuneCountInString(service.SanitizeMessage(long, 1000)))

	// truncation happens before trimming
	padded := strings.Repeat("a", 998) + "   bbb"
	require.Equal(strings.Repeat("a", 998), service.SanitizeMessage(padded, 1000))

	tagged := strings.Repeat("<br>", 500) + strings.Repeat("x", 1001)
	require.Equal(strings.Repeat("x", 1000), service.SanitizeMessage(tagged, 1000))
}

func TestParseMessage(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		body     string
		expected string
		err      bool
	}{
		{name: "string", body: `{"message":"hi"}`, expected: "hi"},
		{name: "missing", body: `{}`, expected: ""},
		{name: "null message", body: `{"message":null}`, expected: ""},
		{name: "false", body: `{"message":false}`, expected: ""},
		{name: "zero", body: `{"message":0}`, expected: ""},
		{name: "array body", body: `["hi"]`, expected: ""},
		{name: "string body", body: `"hello"`, expected: ""},
		{name: "number body", body: `42`, expected: ""},
		{name: "extra fields", body: `{"message":"hi","lang":"el"}`, expected: "hi"},
		{name: "invalid json", body: `not json`, err: true},
		{name: "null body", body: `null`, err: true},
		{name: "number message", body: `{"message":42}`, err: true},
		{name: "true", body: `{"message":true}`, err: true},
		{name: "array message", body: `{"message":["hi"]}`, err: true},
		{name: "object message", body: `{"message":{}}`, err: true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			message, err := service.ParseMessage([]byte(c.body))
			if c.err {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, c.expected, message)
		})
	}
}
