package model

import (
	"testing"
	"time"
)

func TestApp_AllowsRedirect(t *testing.T) {
	t.Parallel()

	app := &App{
		ID: "app_0123456789",
		Actions: []Action{
			{Action: "vote", Redirects: []Redirect{{RedirectURI: "https://vote.example.com"}}},
			{Action: SignInAction, Redirects: []Redirect{
				{RedirectURI: "https://example.com"},
				{RedirectURI: "https://example.com/callback"},
			}},
		},
	}

	tests := []struct {
		name string
		uri  string
		want bool
	}{
		{"registered", "https://example.com", true},
		{"registered path", "https://example.com/callback", true},
		{"trailing slash differs", "https://example.com/", false},
		{"other action redirect", "https://vote.example.com", false},
		{"unknown", "https://invalid.com", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := app.AllowsRedirect(tt.uri); got != tt.want {
				t.Errorf("AllowsRedirect(%q) = %v, want %v", tt.uri, got, tt.want)
			}
		})
	}
}

func TestApp_NoSignInAction(t *testing.T) {
	t.Parallel()

	app := &App{ID: "app_1"}
	if app.SignIn() != nil {
		t.Fatal("expected nil sign-in action")
	}
	if app.AllowsRedirect("https://example.com") {
		t.Error("app without sign-in action must not allow any redirect")
	}
}

func TestInvite_IsExpired(t *testing.T) {
	t.Parallel()

	now := time.Now()

	if (&Invite{ExpiresAt: now.Add(time.Hour)}).IsExpired(now) {
		t.Error("future invite reported as expired")
	}
	if !(&Invite{ExpiresAt: now.Add(-time.Second)}).IsExpired(now) {
		t.Error("past invite reported as valid")
	}
	if (&Invite{}).IsExpired(now) {
		t.Error("invite without expiry reported as expired")
	}
}

func TestInvite_MatchesEmail(t *testing.T) {
	t.Parallel()

	invite := &Invite{Email: "Andy@Example.com"}
	if !invite.MatchesEmail("andy@example.com ") {
		t.Error("expected case-insensitive match")
	}
	if invite.MatchesEmail("other@example.com") {
		t.Error("unexpected match")
	}
}
