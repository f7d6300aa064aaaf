package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"mogul/internal/game"
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type HireResponse struct {
	Session  game.Session  `json:"session"`
	Employee game.Employee `json:"employee"`
}

type EndResponse struct {
	Session game.Session `json:"session"`
	Score   int          `json:"score"`
}

func (c *Client) NewGame(ctx context.Context, companyName string) (game.InitResult, error) {
	var out game.InitResult
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/games", map[string]any{
		"company_name": companyName,
	}, &out)
	return out, err
}

func (c *Client) State(ctx context.Context, gameID string) (game.State, error) {
	var out game.State
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/games/"+url.PathEscape(gameID), nil, &out)
	return out, err
}

func (c *Client) ProcessTurn(ctx context.Context, gameID string) (game.TurnResult, error) {
	var out game.TurnResult
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/games/"+url.PathEscape(gameID)+"/turn", map[string]any{}, &out)
	return out, err
}

func (c *Client) Hire(ctx context.Context, gameID, employeeID string) (HireResponse, error) {
	var out HireResponse
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/games/"+url.PathEscape(gameID)+"/employees/hire", map[string]any{
		"employee_id": employeeID,
	}, &out)
	return out, err
}

func (c *Client) Fire(ctx context.Context, gameID, employeeID string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost,
		"/v1/games/"+url.PathEscape(gameID)+"/employees/"+url.PathEscape(employeeID)+"/fire", map[string]any{}, &out)
	return out, err
}

func (c *Client) StartContract(ctx context.Context, gameID, contractID string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost,
		"/v1/games/"+url.PathEscape(gameID)+"/contracts/"+url.PathEscape(contractID)+"/start", map[string]any{}, &out)
	return out, err
}

func (c *Client) Assign(ctx context.Context, gameID, contractID, employeeID string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost,
		"/v1/games/"+url.PathEscape(gameID)+"/contracts/"+url.PathEscape(contractID)+"/assign", map[string]any{
			"employee_id": employeeID,
		}, &out)
	return out, err
}

func (c *Client) EndGame(ctx context.Context, gameID string) (EndResponse, error) {
	var out EndResponse
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/games/"+url.PathEscape(gameID)+"/end", map[string]any{}, &out)
	return out, err
}

func (c *Client) Resume(ctx context.Context, gameID string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/games/"+url.PathEscape(gameID)+"/resume", map[string]any{}, &out)
	return out, err
}

func (c *Client) Do(ctx context.Context, method, path string, body map[string]any) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, method, path, body, &out)
	return out, err
}

func (c *Client) jsonRequest(ctx context.Context, method, path string, in any, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("api status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
