// Package crewctl implements the command-line client for the Crewbase API.
package crewctl

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// APIError is a non-2xx response decoded from the server envelope.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s (%s)", e.Message, e.Code)
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

type envelope struct {
	Status  string          `json:"status"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Client talks to the Crewbase HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// do sends the request and decodes the envelope's data field into out.
func (c *Client) do(method, path string, body, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	req, err := http.NewRequest(method, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode >= 300 || env.Status != "success" {
		return &APIError{StatusCode: resp.StatusCode, Code: env.Code, Message: env.Message}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode data: %w", err)
		}
	}
	return nil
}

type Challenge struct {
	AppID  string `json:"appId"`
	AppKey string `json:"appKey"`
	Realm  string `json:"realm"`
	Nonce  string `json:"nonce"`
	Qop    string `json:"qop"`
}

type Profile struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	EmailVerified bool   `json:"emailVerified"`
}

type LoginResult struct {
	Profile     Profile `json:"profile"`
	AccessToken string  `json:"accessToken"`
	SessionID   string  `json:"sessionId"`
}

type Team struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatorID   string `json:"creatorId"`
}

type CreateAccountRequest struct {
	ID        string   `json:"id"`
	Email     string   `json:"email"`
	FirstName string   `json:"firstName,omitempty"`
	LastName  string   `json:"lastName,omitempty"`
	Password  string   `json:"password"`
	Roles     []string `json:"roles,omitempty"`
	TeamID    string   `json:"teamId,omitempty"`
}

type CreateTeamRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CreatorID   string `json:"creatorId,omitempty"`
}

func (c *Client) GetChallenge() (*Challenge, error) {
	var ch Challenge
	if err := c.do(http.MethodGet, "/auth/challenge", nil, &ch); err != nil {
		return nil, err
	}
	return &ch, nil
}

func (c *Client) Login(identity, context string) (*LoginResult, error) {
	body := map[string]string{"identity": identity, "context": context}
	var res LoginResult
	if err := c.do(http.MethodPost, "/auth/login", body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) CreateAccount(req *CreateAccountRequest) (*Profile, error) {
	var p Profile
	if err := c.do(http.MethodPost, "/accounts", req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) DeleteAccount(id string) error {
	return c.do(http.MethodDelete, "/accounts/"+id, nil, nil)
}

func (c *Client) CreateTeam(req *CreateTeamRequest) (*Team, error) {
	var team Team
	if err := c.do(http.MethodPost, "/teams", req, &team); err != nil {
		return nil, err
	}
	return &team, nil
}

func (c *Client) DeleteTeam(id string) error {
	return c.do(http.MethodDelete, "/teams/"+id, nil, nil)
}
