package mist

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(&Credentials{Host: srv.URL, APIToken: "testtoken"}), srv
}

func TestGetJSON_SendsTokenHeader(t *testing.T) {
	var gotAuth string
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]string{"email": "admin@example.net"})
	}))

	var self Self
	if err := c.GetJSON(context.Background(), "/api/v1/self", nil, &self); err != nil {
		t.Fatal(err)
	}
	if gotAuth != "Token testtoken" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if self.Email != "admin@example.net" {
		t.Errorf("Email = %q", self.Email)
	}
}

func TestGetJSON_BasicAuthFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "admin@example.net" || pass == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(&Credentials{Host: srv.URL, Username: "admin@example.net", Password: "secret"})
	if err := c.GetJSON(context.Background(), "/api/v1/self", nil, nil); err != nil {
		t.Fatalf("basic auth request failed: %v", err)
	}
}

func TestAPIErrorClassification(t *testing.T) {
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"not found"}`, http.StatusNotFound)
	}))

	err := c.GetJSON(context.Background(), "/api/v1/orgs/x/admins", nil, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsStatus(err, http.StatusNotFound) {
		t.Errorf("IsStatus(404) = false for %v", err)
	}
	if IsStatus(err, http.StatusForbidden) {
		t.Errorf("IsStatus(403) = true for %v", err)
	}
}

func TestPostJSON_ReturnsStatusOnError(t *testing.T) {
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":"bad payload"}`))
	}))

	status, err := c.PostJSON(context.Background(), "/api/v1/orgs/x/invites", map[string]string{}, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if status != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", status)
	}
}

func TestCredentialsBaseURL(t *testing.T) {
	tests := []struct {
		host string
		want string
	}{
		{"api.mist.com", "https://api.mist.com"},
		{"https://api.eu.mist.com", "https://api.eu.mist.com"},
		{"http://localhost:8080/", "http://localhost:8080"},
	}
	for _, tt := range tests {
		c := &Credentials{Host: tt.host}
		if got := c.BaseURL(); got != tt.want {
			t.Errorf("BaseURL(%q) = %q, want %q", tt.host, got, tt.want)
		}
	}
}
