package oauth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newGithubTestClient(t *testing.T, user map[string]interface{}, emails []map[string]interface{}) *GithubClient {
	t.Helper()

	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"access_token": "ghtok-123"})
	}))
	t.Cleanup(tokenServer.Close)

	userServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(user)
	}))
	t.Cleanup(userServer.Close)

	emailsServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if emails == nil {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		json.NewEncoder(w).Encode(emails)
	}))
	t.Cleanup(emailsServer.Close)

	return NewGithubClient(GithubConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURL:  "http://localhost/callback",
		TokenURL:     tokenServer.URL,
		UserInfoURL:  userServer.URL,
		EmailsURL:    emailsServer.URL,
	})
}

func TestGithubFetchAttributesPublicEmail(t *testing.T) {
	client := newGithubTestClient(t, map[string]interface{}{
		"id":    583231,
		"login": "octocat",
		"email": "octocat@example.com",
	}, nil)

	attrs, err := client.FetchAttributes(context.Background(), "auth-code")
	if err != nil {
		t.Fatalf("FetchAttributes: %v", err)
	}
	if attrs["email"] != "octocat@example.com" {
		t.Errorf("email = %v", attrs["email"])
	}
	if attrs["login"] != "octocat" {
		t.Errorf("login = %v", attrs["login"])
	}
}

func TestGithubFetchAttributesHiddenEmail(t *testing.T) {
	client := newGithubTestClient(t, map[string]interface{}{
		"id":    583231,
		"login": "octocat",
		"email": nil,
	}, []map[string]interface{}{
		{"email": "old@example.com", "primary": false, "verified": true},
		{"email": "octocat@example.com", "primary": true, "verified": true},
	})

	attrs, err := client.FetchAttributes(context.Background(), "auth-code")
	if err != nil {
		t.Fatalf("FetchAttributes: %v", err)
	}
	if attrs["email"] != "octocat@example.com" {
		t.Errorf("email = %v, want the primary verified address", attrs["email"])
	}
}

func TestGithubFetchAttributesEmailsUnavailable(t *testing.T) {
	client := newGithubTestClient(t, map[string]interface{}{
		"id":    583231,
		"login": "octocat",
	}, nil)

	attrs, err := client.FetchAttributes(context.Background(), "auth-code")
	if err != nil {
		t.Fatalf("FetchAttributes: %v", err)
	}
	// The emails endpoint failing is not fatal; the attribute stays absent.
	if email, ok := attrs["email"].(string); ok && email != "" {
		t.Errorf("email = %q, want none", email)
	}
}
