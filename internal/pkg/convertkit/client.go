package convertkit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shauncritzer/rewired/internal/pkg/env"
)

const defaultAPIBaseURL = "https://api.convertkit.com/v3"

// Client talks to the ConvertKit v3 API. All calls are best-effort from the
// caller's point of view; a failing marketing platform must never block a
// download or a purchase.
type Client struct {
	APIKey    string
	APISecret string
	FormID    string

	APIBaseURL string
	HTTPClient *http.Client
}

type Subscription struct {
	SubscriberID int64
	State        string
}

func NewClientFromEnv() *Client {
	return &Client{
		APIKey:     strings.TrimSpace(env.GetEnv("CONVERTKIT_API_KEY", "")),
		APISecret:  strings.TrimSpace(env.GetEnv("CONVERTKIT_API_SECRET", "")),
		FormID:     strings.TrimSpace(env.GetEnv("CONVERTKIT_FORM_ID", "")),
		APIBaseURL: strings.TrimSpace(env.GetEnv("CONVERTKIT_API_BASE_URL", defaultAPIBaseURL)),
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// IsConfigured reports whether the client can make API calls at all.
func (c *Client) IsConfigured() bool {
	return c.APIKey != ""
}

// Subscribe adds the email to the configured signup form.
func (c *Client) Subscribe(ctx context.Context, email, firstName string) error {
	if strings.TrimSpace(c.FormID) == "" {
		return errors.New("CONVERTKIT_FORM_ID is not configured")
	}
	return c.SubscribeToForm(ctx, c.FormID, email, firstName)
}

// SubscribeToForm adds the email to a specific form.
func (c *Client) SubscribeToForm(ctx context.Context, formID, email, firstName string) error {
	if strings.TrimSpace(email) == "" {
		return errors.New("email is required")
	}
	body := map[string]string{
		"api_key": c.APIKey,
		"email":   strings.TrimSpace(email),
	}
	if firstName != "" {
		body["first_name"] = firstName
	}
	return c.post(ctx, fmt.Sprintf("/forms/%s/subscribe", url.PathEscape(formID)), body)
}

// Tag attaches a tag to the email, creating the subscriber if needed.
func (c *Client) Tag(ctx context.Context, tagID, email string) error {
	if strings.TrimSpace(tagID) == "" {
		return errors.New("tag id is required")
	}
	if strings.TrimSpace(email) == "" {
		return errors.New("email is required")
	}
	body := map[string]string{
		"api_key": c.APIKey,
		"email":   strings.TrimSpace(email),
	}
	return c.post(ctx, fmt.Sprintf("/tags/%s/subscribe", url.PathEscape(tagID)), body)
}

// CheckSubscription looks the email up among active subscribers.
func (c *Client) CheckSubscription(ctx context.Context, email string) (*Subscription, error) {
	if strings.TrimSpace(c.APISecret) == "" {
		return nil, errors.New("CONVERTKIT_API_SECRET is not configured")
	}
	if strings.TrimSpace(email) == "" {
		return nil, errors.New("email is required")
	}

	u, err := url.Parse(strings.TrimRight(c.APIBaseURL, "/") + "/subscribers")
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("api_secret", c.APISecret)
	q.Set("email_address", strings.TrimSpace(email))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("convertkit subscriber lookup failed: status=%d body=%s", resp.StatusCode, string(body))
	}

	var out struct {
		Subscribers []struct {
			ID    int64  `json:"id"`
			State string `json:"state"`
		} `json:"subscribers"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}
	if len(out.Subscribers) == 0 {
		return nil, nil
	}

	return &Subscription{
		SubscriberID: out.Subscribers[0].ID,
		State:        out.Subscribers[0].State,
	}, nil
}

func (c *Client) post(ctx context.Context, path string, body map[string]string) error {
	if !c.IsConfigured() {
		return errors.New("CONVERTKIT_API_KEY is not configured")
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	endpoint := strings.TrimRight(c.APIBaseURL, "/") + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(string(payload)))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("convertkit request %s failed: status=%d body=%s", path, resp.StatusCode, string(respBody))
	}

	return nil
}
