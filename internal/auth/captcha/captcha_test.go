package captcha

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPVerifierSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if r.PostForm.Get("secret") != "shh" {
			t.Errorf("secret = %q", r.PostForm.Get("secret"))
		}
		if r.PostForm.Get("response") != "tok" {
			t.Errorf("response = %q", r.PostForm.Get("response"))
		}
		if r.PostForm.Get("remoteip") != "203.0.113.9" {
			t.Errorf("remoteip = %q", r.PostForm.Get("remoteip"))
		}
		w.Write([]byte(`{"success":true}`))
	}))
	defer server.Close()

	verifier := NewHTTPVerifier(server.URL, "shh", server.Client())
	ok, err := verifier.Verify(context.Background(), "tok", "203.0.113.9")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatal("expected verification to pass")
	}
}

func TestHTTPVerifierRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"success":false}`))
	}))
	defer server.Close()

	verifier := NewHTTPVerifier(server.URL, "shh", server.Client())
	ok, err := verifier.Verify(context.Background(), "tok", "")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if ok {
		t.Fatal("expected verification to fail")
	}
}

func TestHTTPVerifierNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	verifier := NewHTTPVerifier(server.URL, "shh", server.Client())
	if _, err := verifier.Verify(context.Background(), "tok", ""); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestNewFromConfigWithoutURL(t *testing.T) {
	verifier := NewFromConfig(Config{}, nil)
	ok, err := verifier.Verify(context.Background(), "", "")
	if err != nil || !ok {
		t.Fatalf("AllowAll Verify = (%v, %v), want (true, nil)", ok, err)
	}
}
