package rest

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

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/altovivo/client-go/internal/domain"
	"github.com/altovivo/client-go/internal/domain/entity"
	"github.com/altovivo/client-go/internal/session"
	"github.com/altovivo/client-go/pkg/config"
	"github.com/altovivo/client-go/pkg/logger"
)

const refreshPath = "/auth/refresh"

// Client cliente HTTP del backend. Inyecta el bearer token de la sesión,
// correlaciona cada petición con un X-Request-ID y ante un 401 refresca el
// token una sola vez (colapsando refrescos concurrentes) antes de reintentar.
type Client struct {
	base    string
	http    *http.Client
	session *session.Store
	log     *logger.Logger
	refresh singleflight.Group
}

// New construye el cliente. La URL base no debe terminar en '/'.
func New(cfg config.APIConfig, store *session.Store, log *logger.Logger) *Client {
	return &Client{
		base:    strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout()},
		session: store,
		log:     log,
	}
}

// Get ejecuta GET path?params y decodifica la respuesta en out.
func (c *Client) Get(ctx context.Context, path string, params url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, params, nil, out, true)
}

// Post ejecuta POST path con body JSON y decodifica la respuesta en out (puede ser nil).
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out, true)
}

// Put ejecuta PUT path con body JSON.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out, true)
}

// Patch ejecuta PATCH path con body JSON.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out, true)
}

// Delete ejecuta DELETE path.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil, true)
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, body, out any, allowRefresh bool) error {
	endpoint := c.base + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("rest: serializar body: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("rest: construir petición: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	requestID := uuid.New().String()
	req.Header.Set("X-Request-ID", requestID)
	if tok := c.session.AccessToken(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("method", method).Str("path", path).Msg("fallo de transporte")
		return fmt.Errorf("rest: %s %s: %w: %w", method, path, domain.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Str("request_id", requestID).
		Msg("petición HTTP")

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil || resp.StatusCode == http.StatusNoContent {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("rest: decodificar respuesta de %s: %w", path, err)
		}
		return nil
	}

	apiErr := decodeError(resp)

	// 401: refrescar una sola vez y reintentar. El endpoint de refresh nunca
	// se refresca a sí mismo.
	if resp.StatusCode == http.StatusUnauthorized && path != refreshPath {
		if !allowRefresh || c.session.RefreshToken() == "" {
			c.session.Logout()
			return apiErr
		}
		if err := c.refreshTokens(ctx); err != nil {
			c.session.Logout()
			return apiErr
		}
		return c.do(ctx, method, path, params, body, out, false)
	}

	return apiErr
}

// refreshTokens intercambia el refresh token por un par nuevo. Peticiones
// concurrentes que reciben 401 a la vez comparten un único refresh.
func (c *Client) refreshTokens(ctx context.Context) error {
	_, err, _ := c.refresh.Do("refresh", func() (any, error) {
		payload := map[string]string{"refresh_token": c.session.RefreshToken()}
		var pair entity.TokenPair
		if err := c.do(ctx, http.MethodPost, refreshPath, nil, payload, &pair, false); err != nil {
			return nil, err
		}
		c.session.SetTokens(pair.AccessToken, pair.RefreshToken)
		return nil, nil
	})
	if err != nil {
		c.log.Info().Err(err).Msg("refresh de token falló, cerrando sesión")
	}
	return err
}

func decodeError(resp *http.Response) *APIError {
	apiErr := &APIError{Status: resp.StatusCode, Code: "UNKNOWN"}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil && len(raw) > 0 {
		var body struct {
			Code    string `json:"code"`
			Message string `json:"message"`
			Detail  string `json:"detail"`
		}
		if json.Unmarshal(raw, &body) == nil {
			if body.Code != "" {
				apiErr.Code = body.Code
			}
			apiErr.Message = body.Message
			if apiErr.Message == "" {
				apiErr.Message = body.Detail
			}
		}
	}
	return apiErr
}
