package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rogerio-castellano/yard-tracker/internal/models"
)

const (
	maxErrorBody = 64 << 10
	// Longer plain-text error bodies are replaced by the status text.
	maxPlainMessage = 200
)

// APIError is a non-2xx answer of the yard API.
type APIError struct {
	Status  int                 `json:"-"`
	Message string              `json:"message"`
	Title   string              `json:"title"`
	Errors  map[string][]string `json:"errors"`
}

func (e *APIError) Error() string {
	switch {
	case e.Message != "":
		return fmt.Sprintf("api returned %d: %s", e.Status, e.Message)
	case e.Title != "":
		return fmt.Sprintf("api returned %d: %s", e.Status, e.Title)
	}
	return fmt.Sprintf("api returned %d %s", e.Status, http.StatusText(e.Status))
}

func (e *APIError) APIMessage() string                    { return e.Message }
func (e *APIError) APITitle() string                      { return e.Title }
func (e *APIError) ValidationErrors() map[string][]string { return e.Errors }

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// Client talks to the yard REST API.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	logger  *zap.Logger
}

func New(baseURL, token string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// SetToken replaces the bearer token sent with every request.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	c.logger.Debug("api call",
		zap.String("method", method),
		zap.String("url", u),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	if resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if len(raw) > 0 && json.Unmarshal(raw, apiErr) != nil {
			apiErr.Message = plainMessage(raw)
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s %s: %w", method, path, err)
	}
	return nil
}

// plainMessage returns a non-JSON error body when it reads as a short
// one-line message. HTML pages and long dumps yield "".
func plainMessage(raw []byte) string {
	msg := strings.TrimSpace(string(raw))
	if len(msg) > maxPlainMessage || strings.ContainsAny(msg, "<\n") {
		return ""
	}
	return msg
}

// Login exchanges credentials for a token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	creds := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, http.MethodPost, "/login", nil, creds, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

// Location returns a vehicle with its latest tracking point.
func (c *Client) Location(ctx context.Context, vehicleID int) (models.VehicleLocation, error) {
	var loc models.VehicleLocation
	err := c.do(ctx, http.MethodGet, "/vehicles/"+strconv.Itoa(vehicleID)+"/location", nil, nil, &loc)
	return loc, err
}

// Park puts the vehicle in boxID, or in the first free box when boxID is 0.
func (c *Client) Park(ctx context.Context, plate string, boxID int) (models.Parking, error) {
	req := struct {
		Plate string `json:"plate"`
		BoxID *int   `json:"box_id,omitempty"`
	}{Plate: plate}
	if boxID > 0 {
		req.BoxID = &boxID
	}
	var p models.Parking
	err := c.do(ctx, http.MethodPost, "/parking/park", nil, req, &p)
	return p, err
}

func (c *Client) Release(ctx context.Context, boxID int) error {
	return c.do(ctx, http.MethodPost, "/parking/release/"+strconv.Itoa(boxID), nil, nil, nil)
}

// WhereIs returns the box the vehicle is parked in.
func (c *Client) WhereIs(ctx context.Context, plate string) (models.Parking, error) {
	var p models.Parking
	err := c.do(ctx, http.MethodGet, "/parking/by-plate/"+url.PathEscape(plate), nil, nil, &p)
	return p, err
}

func (c *Client) ParkingMap(ctx context.Context) (models.ParkingMap, error) {
	var m models.ParkingMap
	err := c.do(ctx, http.MethodGet, "/parking/map", nil, nil, &m)
	return m, err
}

func (c *Client) Clients() Resource[models.Client] {
	return Resource[models.Client]{c: c, path: "/clients"}
}

func (c *Client) Vehicles() Resource[models.Vehicle] {
	return Resource[models.Vehicle]{c: c, path: "/vehicles"}
}

func (c *Client) Yards() Resource[models.Yard] {
	return Resource[models.Yard]{c: c, path: "/yards"}
}

func (c *Client) Zones() Resource[models.Zone] {
	return Resource[models.Zone]{c: c, path: "/zones"}
}

func (c *Client) Boxes() Resource[models.Box] {
	return Resource[models.Box]{c: c, path: "/boxes"}
}
