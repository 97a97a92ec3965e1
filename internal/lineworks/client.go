package lineworks

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mkoike/shiftworks-backend/config"
	"github.com/mkoike/shiftworks-backend/pkg/utils"
)

// Client wraps the LINE WORKS REST API: the service-account token
// exchange, user-profile lookups, and message history. Calls are
// blocking; an upstream failure aborts the current request or run.
type Client struct {
	cfg  *config.Config
	http *http.Client
	now  func() time.Time

	token    string
	tokenExp time.Time
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: 10 * time.Second},
		now:  time.Now,
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   string `json:"expires_in"`
}

// UserProfile is the subset of the users API response we consume.
type UserProfile struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
}

// Message is one entry of a conversation's message history.
type Message struct {
	Body string `json:"body"`
}

type messagesResponse struct {
	Items []Message `json:"items"`
}

// AccessToken exchanges a signed assertion for a bearer token. The
// token is cached and reused until shortly before its one-hour expiry.
func (c *Client) AccessToken() (string, error) {
	if c.token != "" && c.now().Before(c.tokenExp) {
		return c.token, nil
	}

	assertion, err := utils.BuildServiceAssertion(
		c.cfg.LWClientID, c.cfg.LWServiceAccount, c.cfg.LWDomainID, c.cfg.LWPrivateKey, c.now())
	if err != nil {
		return "", err
	}

	form := url.Values{}
	form.Set("grant_type", "urn:ietf:params:oauth:grant-type:jwt-bearer")
	form.Set("assertion", assertion)

	resp, err := c.http.PostForm(c.cfg.LWTokenURL, form)
	if err != nil {
		return "", fmt.Errorf("token request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("token request returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("failed to decode token response: %v", err)
	}
	if tr.AccessToken == "" {
		return "", fmt.Errorf("token response contained no access_token")
	}

	c.token = tr.AccessToken
	// a minute of slack so we never send a token that expires in flight
	c.tokenExp = c.now().Add(time.Hour - time.Minute)
	return c.token, nil
}

// UserProfile resolves a webhook sender id to a display name.
func (c *Client) UserProfile(userID string) (*UserProfile, error) {
	var profile UserProfile
	u := fmt.Sprintf("%s/v1.0/users/%s", strings.TrimRight(c.cfg.LWAPIServer, "/"), url.PathEscape(userID))
	if err := c.getJSON(u, &profile); err != nil {
		return nil, err
	}
	if profile.DisplayName == "" {
		return nil, fmt.Errorf("profile for %s has no displayName", userID)
	}
	return &profile, nil
}

// Messages fetches the message history of a chat within [from, to].
func (c *Client) Messages(chatID string, from, to time.Time) ([]Message, error) {
	q := url.Values{}
	q.Set("startTime", from.Format("2006-01-02T15:04:05.000")+"Z")
	q.Set("endTime", to.Format("2006-01-02T15:04:05.000")+"Z")
	q.Set("limit", "100")
	u := fmt.Sprintf("%s/%s/conversation/v1/spaces/%s/messages?%s",
		strings.TrimRight(c.cfg.LWAPIServer, "/"),
		url.PathEscape(c.cfg.LWDomainID),
		url.PathEscape(chatID),
		q.Encode())

	var mr messagesResponse
	if err := c.getJSON(u, &mr); err != nil {
		return nil, err
	}
	return mr.Items, nil
}

func (c *Client) getJSON(u string, out interface{}) error {
	token, err := c.AccessToken()
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s failed: %v", u, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("GET %s returned %d: %s", u, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
