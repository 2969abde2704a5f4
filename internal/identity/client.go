// Package identity is the client for the external identity provider.
//
// The provider owns credentials and session issuance. This service only ever
// talks to its admin API (create/update/delete identities, authenticate) and
// verifies the HS256 session tokens it issues.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/platefront/backoffice-backend/pkg/config"
	"github.com/platefront/backoffice-backend/pkg/errors"
	"github.com/platefront/backoffice-backend/pkg/logger"
)

// Metadata is the application metadata attached to a provider identity.
type Metadata struct {
	CompanyCode string `json:"company_code"`
	Role        string `json:"role"`
}

// Session is an authenticated provider session.
type Session struct {
	IdentityID string `json:"identity_id"`
	Token      string `json:"token"`
}

// Patch carries the identity fields an update may change. Nil fields are
// left untouched by the provider.
type Patch struct {
	Email    *string   `json:"email,omitempty"`
	Password *string   `json:"password,omitempty"`
	Metadata *Metadata `json:"metadata,omitempty"`
}

// Client talks to the identity provider's HTTP API.
type Client struct {
	baseURL   string
	apiKey    string
	jwtSecret []byte
	http      *http.Client
	logger    *logger.Logger
}

// NewClient creates a new identity provider client
func NewClient(cfg *config.IdentityConfig, log *logger.Logger) *Client {
	return &Client{
		baseURL:   cfg.BaseURL,
		apiKey:    cfg.APIKey,
		jwtSecret: []byte(cfg.JWTSecret),
		http:      &http.Client{Timeout: cfg.Timeout},
		logger:    log,
	}
}

// Authenticate exchanges credentials for a provider session.
func (c *Client) Authenticate(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]string{"email": email, "password": password}

	var session Session
	status, err := c.do(ctx, http.MethodPost, "/v1/sessions", body, &session)
	if err != nil {
		return nil, err
	}

	switch status {
	case http.StatusOK, http.StatusCreated:
		return &session, nil
	case http.StatusUnauthorized:
		return nil, errors.InvalidCredentials()
	default:
		return nil, errors.Internal("identity provider rejected authentication")
	}
}

// Create provisions a new identity and returns its id.
func (c *Client) Create(ctx context.Context, email, password string, meta Metadata) (string, error) {
	body := map[string]interface{}{
		"email":    email,
		"password": password,
		"metadata": meta,
	}

	var created struct {
		ID string `json:"id"`
	}
	status, err := c.do(ctx, http.MethodPost, "/v1/identities", body, &created)
	if err != nil {
		return "", err
	}

	switch status {
	case http.StatusOK, http.StatusCreated:
		return created.ID, nil
	case http.StatusConflict:
		return "", errors.Conflict("an identity with this login already exists")
	default:
		return "", fmt.Errorf("identity provider returned status %d", status)
	}
}

// Update applies a partial update to an identity.
func (c *Client) Update(ctx context.Context, id string, patch Patch) error {
	status, err := c.do(ctx, http.MethodPatch, "/v1/identities/"+id, patch, nil)
	if err != nil {
		return err
	}

	switch status {
	case http.StatusOK, http.StatusNoContent:
		return nil
	case http.StatusNotFound:
		return errors.NotFound("identity")
	default:
		return fmt.Errorf("identity provider returned status %d", status)
	}
}

// Delete removes an identity from the provider.
func (c *Client) Delete(ctx context.Context, id string) error {
	status, err := c.do(ctx, http.MethodDelete, "/v1/identities/"+id, nil, nil)
	if err != nil {
		return err
	}

	switch status {
	case http.StatusOK, http.StatusNoContent:
		return nil
	case http.StatusNotFound:
		return errors.NotFound("identity")
	default:
		return fmt.Errorf("identity provider returned status %d", status)
	}
}

// ResolveSession verifies a provider-issued session token and returns the
// identity id it was issued for. Verification is local: tokens are HS256 JWTs
// signed with the secret shared with the provider.
func (c *Client) ResolveSession(token string) (string, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.jwtSecret, nil
	})
	if err != nil || !parsed.Valid {
		return "", errors.Unauthorized("invalid session")
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.Unauthorized("invalid session")
	}

	identityID, _ := claims["sub"].(string)
	if identityID == "" {
		return "", errors.Unauthorized("invalid session")
	}

	return identityID, nil
}

// do issues a request against the provider and decodes its response envelope
// into out. It returns the HTTP status so callers can map it per operation.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) (int, error) {
	var reqBody *bytes.Buffer
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewBuffer(encoded)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return 0, errors.Internal("failed to create identity provider request")
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("path", path).Msg("identity provider unreachable")
		return 0, errors.Internal("identity provider unavailable")
	}
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < 300 {
		var envelope struct {
			Success bool            `json:"success"`
			Data    json.RawMessage `json:"data"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
			return resp.StatusCode, errors.Internal("failed to parse identity provider response")
		}
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return resp.StatusCode, errors.Internal("failed to parse identity provider response")
		}
	}

	return resp.StatusCode, nil
}
