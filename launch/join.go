package launch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/lodestone-launcher/lodestone/core"
)

// joinTimeout bounds each of the two join-service calls. Failures are
// fatal for the launch attempt and never retried.
const joinTimeout = 5 * time.Second

// JoinClient talks to the join-authorization service that vouches for a
// session before the game connects. The issued token rides into the game
// as a JVM system property.
type JoinClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewJoinClient(baseURL string) *JoinClient {
	return &JoinClient{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: joinTimeout},
	}
}

type handshakeResponse struct {
	Challenge string `json:"challenge"`
}

type issueRequest struct {
	Challenge   string `json:"challenge"`
	UUID        string `json:"uuid"`
	Name        string `json:"name"`
	UserType    string `json:"userType"`
	Xuid        string `json:"xuid,omitempty"`
	AccessToken string `json:"accessToken,omitempty"`
}

type issueResponse struct {
	JoinToken string `json:"join_token"`
}

// FetchToken performs the two-step token exchange: fetch a challenge, then
// trade it together with the session identity for a join token.
func (c *JoinClient) FetchToken(ctx context.Context, session *core.Session) (string, error) {
	challenge, err := c.handshake(ctx)
	if err != nil {
		return "", fmt.Errorf("join token handshake: %w", err)
	}

	token, err := c.issue(ctx, challenge, session)
	if err != nil {
		return "", fmt.Errorf("join token issue: %w", err)
	}

	return token, nil
}

func (c *JoinClient) handshake(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/v1/handshake", nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", core.UserAgent)

	var body handshakeResponse
	if err := c.do(req, &body); err != nil {
		return "", err
	}
	if body.Challenge == "" {
		return "", fmt.Errorf("service returned no challenge")
	}
	return body.Challenge, nil
}

func (c *JoinClient) issue(ctx context.Context, challenge string, session *core.Session) (string, error) {
	payload, err := json.Marshal(issueRequest{
		Challenge:   challenge,
		UUID:        session.DashedUUID(),
		Name:        session.DisplayName,
		UserType:    session.UserType(),
		Xuid:        session.Xuid,
		AccessToken: session.AccessToken,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/issue", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", core.UserAgent)
	req.Header.Set("Content-Type", "application/json")

	var body issueResponse
	if err := c.do(req, &body); err != nil {
		return "", err
	}
	if body.JoinToken == "" {
		return "", fmt.Errorf("service returned no join token")
	}
	return body.JoinToken, nil
}

func (c *JoinClient) do(req *http.Request, out interface{}) error {
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused; the body content is not
		// part of the protocol on error.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("unexpected status %s from %s", resp.Status, req.URL.Path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response from %s: %w", req.URL.Path, err)
	}
	return nil
}
