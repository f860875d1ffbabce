package main

import (
	"errors"
	"testing"
)

func TestRedactURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"postgres://user:secret@db:5432/portal", "postgres://user@db:5432/portal"},
		{"redis://:secret@cache:6379/0", "redis://redacted@cache:6379/0"},
		{"http://hasura:8080/v1/graphql", "http://hasura:8080/v1/graphql"},
	}

	for _, tt := range tests {
		if got := redactURL(tt.in); got != tt.want {
			t.Errorf("redactURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSanitizeError(t *testing.T) {
	dsn := "postgres://user:secret@db:5432/portal"
	err := errors.New("dial " + dsn + " failed: password=hunter2")

	got := sanitizeError(err, dsn)
	if got != "dial postgres://user@db:5432/portal failed: password=redacted" {
		t.Errorf("sanitizeError() = %q", got)
	}
}
