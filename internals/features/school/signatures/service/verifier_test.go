package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestVerifierVerifyPassesThroughVerdict(t *testing.T) {
	predicted := uuid.New()
	var gotAuth string
	var gotSession string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/verify" {
			t.Errorf("path = %s, want /verify", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		gotSession = r.FormValue("session_id")
		if _, _, err := r.FormFile("image"); err != nil {
			t.Errorf("image part missing: %v", err)
		}
		json.NewEncoder(w).Encode(VerifyResult{
			Success:          true,
			Match:            true,
			PredictedStudent: &predicted,
			Score:            0.93,
			Message:          "match",
		})
	}))
	defer srv.Close()

	v := NewVerifierClient(srv.URL, "secret-key")
	sid := uuid.New()
	res, err := v.Verify(context.Background(), []byte("ink"), "sig.webp", &sid)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if gotAuth != "Bearer secret-key" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotSession != sid.String() {
		t.Errorf("session_id = %q, want %q", gotSession, sid)
	}
	if !res.Match || res.Score != 0.93 {
		t.Errorf("verdict not passed through: %+v", res)
	}
	if res.PredictedStudent == nil || *res.PredictedStudent != predicted {
		t.Errorf("predicted student not passed through: %v", res.PredictedStudent)
	}
}

func TestVerifierSurfacesUpstreamErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	v := NewVerifierClient(srv.URL, "")
	if _, err := v.Verify(context.Background(), []byte("ink"), "sig.webp", nil); err == nil {
		t.Fatal("expected error from 503 upstream")
	}
}

func TestInitVerifierDisabledWhenUnset(t *testing.T) {
	InitVerifier("", "ignored")
	if Verifier() != nil {
		t.Fatal("verifier should be nil when no base URL is configured")
	}
	InitVerifier("https://verifier.example.com/", "k")
	v := Verifier()
	if v == nil {
		t.Fatal("verifier should be configured")
	}
	if v.BaseURL != "https://verifier.example.com" {
		t.Errorf("BaseURL = %q, trailing slash should be trimmed", v.BaseURL)
	}
}
