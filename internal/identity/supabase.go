package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// Client provisions identities through the Supabase GoTrue admin API.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	serviceRoleKey string
	cb             *gobreaker.CircuitBreaker
	logger         *zap.Logger
}

func NewClient(httpClient *http.Client, baseURL, serviceRoleKey string, cb *gobreaker.CircuitBreaker, logger *zap.Logger) *Client {
	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		serviceRoleKey: serviceRoleKey,
		cb:             cb,
		logger:         logger,
	}
}

type createUserRequest struct {
	Email        string         `json:"email"`
	Password     string         `json:"password"`
	EmailConfirm bool           `json:"email_confirm"`
	UserMetadata map[string]any `json:"user_metadata"`
}

type createUserResponse struct {
	ID string `json:"id"`
}

func (c *Client) CreateIdentity(ctx context.Context, p CreateParams) (string, error) {
	payload, err := json.Marshal(createUserRequest{
		Email:        p.Handle,
		Password:     p.Secret,
		EmailConfirm: true,
		UserMetadata: map[string]any{
			"name":  p.Name,
			"phone": p.Phone,
			"role":  p.Role,
		},
	})
	if err != nil {
		return "", err
	}

	result, err := c.cb.Execute(func() (any, error) {
		body, err := c.doRequest(ctx, http.MethodPost, "/auth/v1/admin/users", payload)
		if err != nil {
			return nil, err
		}
		var created createUserResponse
		if err := json.Unmarshal(body, &created); err != nil {
			return nil, fmt.Errorf("failed to decode created identity: %w", err)
		}
		if created.ID == "" {
			return nil, fmt.Errorf("identity service returned no id")
		}
		return created.ID, nil
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

func (c *Client) DeleteIdentity(ctx context.Context, id string) error {
	_, err := c.cb.Execute(func() (any, error) {
		_, err := c.doRequest(ctx, http.MethodDelete, "/auth/v1/admin/users/"+id, nil)
		return nil, err
	})
	return err
}

func (c *Client) doRequest(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, err
	}

	req.Header.Set("apikey", c.serviceRoleKey)
	req.Header.Set("Authorization", "Bearer "+c.serviceRoleKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("identity: request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	// Deleting an already-removed identity is fine: the compensating call
	// must stay idempotent.
	if method == http.MethodDelete && resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("identity: non-2xx response",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)),
		)
		return nil, fmt.Errorf("identity service returned status %d", resp.StatusCode)
	}

	return body, nil
}
