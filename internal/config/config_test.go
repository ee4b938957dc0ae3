package config

import (
	"reflect"
	"testing"
)

func TestParseOrigins(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty means allow all", "", nil},
		{"single origin", "https://app.example.com", []string{"https://app.example.com"}},
		{
			"multiple with whitespace",
			" https://a.example.com , https://b.example.com ",
			[]string{"https://a.example.com", "https://b.example.com"},
		},
		{"trailing comma", "https://a.example.com,", []string{"https://a.example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseOrigins(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseOrigins(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("TEST_INT_OK", "42")
	t.Setenv("TEST_INT_BAD", "not-a-number")

	if got := getEnvInt("TEST_INT_OK", 7); got != 42 {
		t.Errorf("expected 42, got %d", got)
	}
	if got := getEnvInt("TEST_INT_BAD", 7); got != 7 {
		t.Errorf("expected fallback 7, got %d", got)
	}
	if got := getEnvInt("TEST_INT_MISSING", 7); got != 7 {
		t.Errorf("expected fallback 7, got %d", got)
	}
}

func TestKeyBuilders(t *testing.T) {
	if got := CacheKey.UserSessionKey(42); got != "login:42" {
		t.Errorf("unexpected session key: %s", got)
	}
	if got := CacheKey.UserActiveQuizKey(42); got != "user:42:active_quiz" {
		t.Errorf("unexpected active quiz key: %s", got)
	}
}
