package service

import (
	"net/http/httptest"
	"testing"
)

func TestClassifyCredential(t *testing.T) {
	tests := []struct {
		raw    string
		bearer bool
		value  string
	}{
		{"Bearer abc123", true, "abc123"},
		{"  bearer   abc123 ", true, "abc123"},
		{"eyJhbGciOiJIUzI1NiJ9.eyJhdWQiOiJ4In0.sig", true, "eyJhbGciOiJIUzI1NiJ9.eyJhdWQiOiJ4In0.sig"},
		{"0123456789abcdef", false, "0123456789abcdef"},
		{"has.dot but space", false, "has.dot but space"},
		{"", false, ""},
	}
	for _, tt := range tests {
		got := ClassifyCredential(tt.raw)
		if got.Bearer != tt.bearer || got.Value != tt.value {
			t.Errorf("ClassifyCredential(%q) = %+v, want bearer=%v value=%q", tt.raw, got, tt.bearer, tt.value)
		}
	}
}

func TestCredentialApply(t *testing.T) {
	req := httptest.NewRequest("GET", "http://tmdb.test/3/movie/popular?page=2", nil)
	ClassifyCredential("v3key").Apply(req)
	if got := req.URL.Query().Get("api_key"); got != "v3key" {
		t.Errorf("expected api_key query param, got %q", got)
	}
	if req.URL.Query().Get("page") != "2" {
		t.Errorf("existing query params must be kept")
	}
	if req.Header.Get("Authorization") != "" {
		t.Errorf("api key credential must not set Authorization")
	}

	req = httptest.NewRequest("GET", "http://tmdb.test/3/movie/popular", nil)
	ClassifyCredential("a.b.c").Apply(req)
	if got := req.Header.Get("Authorization"); got != "Bearer a.b.c" {
		t.Errorf("unexpected Authorization %q", got)
	}
	if req.URL.Query().Has("api_key") {
		t.Errorf("bearer credential must not add api_key")
	}
}
