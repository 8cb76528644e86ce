package worldcat

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testClient(t *testing.T, bibHandler http.HandlerFunc) (*Client, *int) {
	t.Helper()

	tokenRequests := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		tokenRequests++
		user, pass, ok := r.BasicAuth()
		if !ok || user != "id" || pass != "secret" {
			http.Error(w, "bad credentials", http.StatusUnauthorized)
			return
		}
		if err := r.ParseForm(); err != nil || r.Form.Get("grant_type") != "client_credentials" {
			http.Error(w, "bad grant", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte(`{"access_token": "tok-1", "expires_in": 1200}`)); err != nil {
			t.Errorf("writing token response: %v", err)
		}
	})
	mux.HandleFunc("/bibs/", bibHandler)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := NewClient("id", "secret")
	client.TokenURL = server.URL + "/token"
	client.BaseURL = server.URL
	return client, &tokenRequests
}

func TestGetBib(t *testing.T) {
	client, tokenRequests := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			http.Error(w, "missing bearer token", http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte(sampleBibJSON)); err != nil {
			t.Errorf("writing bib response: %v", err)
		}
	})

	record, err := client.GetBib(context.Background(), "123456")
	if err != nil {
		t.Fatalf("GetBib: %v", err)
	}
	if record.Identifier.OCLCNumber != "123456" {
		t.Errorf("OCLC number = %q, want 123456", record.Identifier.OCLCNumber)
	}
	if got := record.Title.MainTitles[0].Text; got != "Blue Horizons" {
		t.Errorf("title = %q", got)
	}

	// Second call reuses the cached token.
	if _, err := client.GetBib(context.Background(), "123456"); err != nil {
		t.Fatalf("GetBib (second call): %v", err)
	}
	if *tokenRequests != 1 {
		t.Errorf("token requested %d times, want 1 (cached)", *tokenRequests)
	}
}

func TestGetBibServerError(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})

	if _, err := client.GetBib(context.Background(), "999"); err == nil {
		t.Fatal("non-200 response should be an error")
	}
}

func TestAccessTokenBadCredentials(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {})
	client.ClientSecret = "wrong"

	if _, err := client.GetBib(context.Background(), "123456"); err == nil {
		t.Fatal("rejected credentials should surface as an error")
	}
}
