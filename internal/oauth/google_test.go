package oauth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestGoogleFetchAttributes(t *testing.T) {
	var gotCode, gotToken string

	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("token method = %s, want POST", r.Method)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		gotCode = r.PostForm.Get("code")
		if r.PostForm.Get("grant_type") != "authorization_code" {
			t.Errorf("grant_type = %q", r.PostForm.Get("grant_type"))
		}
		json.NewEncoder(w).Encode(map[string]string{"access_token": "gtok-123"})
	}))
	defer tokenServer.Close()

	userInfoServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"sub":        "108273646",
			"email":      "carol@example.com",
			"given_name": "Carol",
		})
	}))
	defer userInfoServer.Close()

	client := NewGoogleClient(GoogleConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURL:  "http://localhost/callback",
		TokenURL:     tokenServer.URL,
		UserInfoURL:  userInfoServer.URL,
	})

	attrs, err := client.FetchAttributes(context.Background(), "auth-code")
	if err != nil {
		t.Fatalf("FetchAttributes: %v", err)
	}

	if gotCode != "auth-code" {
		t.Errorf("exchanged code = %q, want auth-code", gotCode)
	}
	if gotToken != "gtok-123" {
		t.Errorf("bearer token = %q, want gtok-123", gotToken)
	}
	if attrs["sub"] != "108273646" {
		t.Errorf("sub = %v", attrs["sub"])
	}
	if attrs["email"] != "carol@example.com" {
		t.Errorf("email = %v", attrs["email"])
	}
}

func TestGoogleFetchAttributesTokenError(t *testing.T) {
	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
	}))
	defer tokenServer.Close()

	client := NewGoogleClient(GoogleConfig{TokenURL: tokenServer.URL})

	if _, err := client.FetchAttributes(context.Background(), "bad-code"); err == nil {
		t.Fatal("expected an error for a rejected code")
	}
}

func TestGoogleLoginURL(t *testing.T) {
	client := NewGoogleClient(GoogleConfig{
		ClientID:    "client-id",
		RedirectURL: "http://localhost/callback",
	})

	loginURL := client.LoginURL("state-abc")
	parsed, err := url.Parse(loginURL)
	if err != nil {
		t.Fatalf("parse login url: %v", err)
	}

	q := parsed.Query()
	if q.Get("client_id") != "client-id" {
		t.Errorf("client_id = %q", q.Get("client_id"))
	}
	if q.Get("state") != "state-abc" {
		t.Errorf("state = %q", q.Get("state"))
	}
	if q.Get("response_type") != "code" {
		t.Errorf("response_type = %q", q.Get("response_type"))
	}
	if !strings.Contains(q.Get("scope"), "email") {
		t.Errorf("scope = %q, want it to include email", q.Get("scope"))
	}
}
