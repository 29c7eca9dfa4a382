package config

import (
	"reflect"
	"testing"
)

// TestParseCSVEnv проверяет разбор списка origin из ENV.
func TestParseCSVEnv(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://App.example.com, ,http://localhost:5173 ")

	got := parseCSVEnv("CORS_ALLOWED_ORIGINS")
	want := []string{"https://app.example.com", "http://localhost:5173"}

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

// TestParseCSVEnvMissing проверяет поведение при отсутствии переменной.
func TestParseCSVEnvMissing(t *testing.T) {
	got := parseCSVEnv("MISSING_ENV")
	if got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}
