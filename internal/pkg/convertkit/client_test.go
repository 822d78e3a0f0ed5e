package convertkit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(ts *httptest.Server) *Client {
	return &Client{
		APIKey:     "ck_key",
		APISecret:  "ck_secret",
		FormID:     "12345",
		APIBaseURL: ts.URL,
		HTTPClient: &http.Client{Timeout: 5 * time.Second},
	}
}

func TestSubscribePostsToForm(t *testing.T) {
	var gotPath string
	var gotBody map[string]string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"subscription":{"id":1}}`))
	}))
	defer ts.Close()

	c := newTestClient(ts)
	if err := c.Subscribe(context.Background(), "new@example.com", "Sam"); err != nil {
		t.Fatalf("Subscribe returned error: %v", err)
	}

	if gotPath != "/forms/12345/subscribe" {
		t.Fatalf("Subscribe hit %q, want /forms/12345/subscribe", gotPath)
	}
	if gotBody["email"] != "new@example.com" || gotBody["first_name"] != "Sam" || gotBody["api_key"] != "ck_key" {
		t.Fatalf("unexpected request body: %v", gotBody)
	}
}

func TestTagPostsToTagEndpoint(t *testing.T) {
	var gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	c := newTestClient(ts)
	if err := c.Tag(context.Background(), "777", "buyer@example.com"); err != nil {
		t.Fatalf("Tag returned error: %v", err)
	}
	if gotPath != "/tags/777/subscribe" {
		t.Fatalf("Tag hit %q, want /tags/777/subscribe", gotPath)
	}
}

func TestSubscribeSurfacesAPIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"Authorization Failed"}`))
	}))
	defer ts.Close()

	c := newTestClient(ts)
	err := c.Subscribe(context.Background(), "new@example.com", "")
	if err == nil {
		t.Fatal("expected error for 401 response")
	}
}

func TestCheckSubscriptionFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("email_address"); got != "sub@example.com" {
			t.Fatalf("lookup email = %q, want sub@example.com", got)
		}
		if got := r.URL.Query().Get("api_secret"); got != "ck_secret" {
			t.Fatalf("lookup used api_secret %q", got)
		}
		w.Write([]byte(`{"total_subscribers":1,"subscribers":[{"id":42,"state":"active"}]}`))
	}))
	defer ts.Close()

	c := newTestClient(ts)
	sub, err := c.CheckSubscription(context.Background(), "sub@example.com")
	if err != nil {
		t.Fatalf("CheckSubscription returned error: %v", err)
	}
	if sub == nil || sub.SubscriberID != 42 || sub.State != "active" {
		t.Fatalf("unexpected subscription: %+v", sub)
	}
}

func TestCheckSubscriptionNotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"total_subscribers":0,"subscribers":[]}`))
	}))
	defer ts.Close()

	c := newTestClient(ts)
	sub, err := c.CheckSubscription(context.Background(), "nobody@example.com")
	if err != nil {
		t.Fatalf("CheckSubscription returned error: %v", err)
	}
	if sub != nil {
		t.Fatalf("expected nil subscription, got %+v", sub)
	}
}

func TestUnconfiguredClientRefusesCalls(t *testing.T) {
	c := &Client{APIBaseURL: defaultAPIBaseURL, HTTPClient: &http.Client{Timeout: time.Second}}
	if err := c.Tag(context.Background(), "1", "a@example.com"); err == nil {
		t.Fatal("expected error from unconfigured client")
	}
}
