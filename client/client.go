// Package client is a Go SDK for the smart rooms HTTP API.
package client

import (
	"bytes"
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultTimeout = 30 * time.Second

// Client calls the smart rooms API. It is safe for concurrent use.
type Client struct {
	http *resty.Client
}

// Option configures a Client
type Option func(*resty.Client)

// WithTimeout overrides the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *resty.Client) { c.SetTimeout(d) }
}

// WithHTTPClient replaces the underlying transport client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *resty.Client) {
		if hc.Transport != nil {
			c.SetTransport(hc.Transport)
		}
		if hc.Timeout > 0 {
			c.SetTimeout(hc.Timeout)
		}
	}
}

// New creates a client for the server at baseURL, e.g. http://localhost:5000
func New(baseURL string, opts ...Option) *Client {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(defaultTimeout).
		SetHeader("Accept", "application/json")
	for _, opt := range opts {
		opt(rc)
	}
	return &Client{http: rc}
}

func (c *Client) do(ctx context.Context, method, path string, result interface{}, configure func(*resty.Request)) error {
	req := c.http.R().SetContext(ctx).SetError(&errorBody{})
	if result != nil {
		req.SetResult(result)
	}
	if configure != nil {
		configure(req)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return &Error{Err: err}
	}
	if resp.IsError() {
		body, _ := resp.Error().(*errorBody)
		if body == nil {
			body = &errorBody{}
		}
		return body.toError(resp.StatusCode())
	}
	return nil
}

func (c *Client) Health(ctx context.Context) (*Health, error) {
	var out Health
	if err := c.do(ctx, http.MethodGet, "/api/health", &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListAreas returns all areas. insideOf and areaType narrow the list when set.
func (c *Client) ListAreas(ctx context.Context, insideOf, areaType string) ([]Area, error) {
	var out []Area
	err := c.do(ctx, http.MethodGet, "/api/areas", &out, func(r *resty.Request) {
		if insideOf != "" {
			r.SetQueryParam("inside_of", insideOf)
		}
		if areaType != "" {
			r.SetQueryParam("area_type", areaType)
		}
	})
	return out, err
}

// ListBuildings returns the top level areas
func (c *Client) ListBuildings(ctx context.Context) ([]Area, error) {
	return c.ListAreas(ctx, "", "building")
}

func (c *Client) GetArea(ctx context.Context, id string) (*Area, error) {
	var out Area
	err := c.do(ctx, http.MethodGet, "/api/areas/{id}", &out, func(r *resty.Request) {
		r.SetPathParam("id", id)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListChildren returns the areas directly inside id
func (c *Client) ListChildren(ctx context.Context, id string) ([]Area, error) {
	var out []Area
	err := c.do(ctx, http.MethodGet, "/api/areas/{id}/children", &out, func(r *resty.Request) {
		r.SetPathParam("id", id)
	})
	return out, err
}

// CreateArea sends a multipart form when image is set and JSON otherwise
func (c *Client) CreateArea(ctx context.Context, in AreaInput, image *Image) (*AreaCreated, error) {
	var out AreaCreated
	err := c.do(ctx, http.MethodPost, "/api/areas", &out, areaBody(in, image))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateArea replaces the area's fields. Without image and RemoveImage the stored image is kept.
func (c *Client) UpdateArea(ctx context.Context, id string, in AreaInput, image *Image) (*AreaUpdated, error) {
	var out AreaUpdated
	body := areaBody(in, image)
	err := c.do(ctx, http.MethodPut, "/api/areas/{id}", &out, func(r *resty.Request) {
		r.SetPathParam("id", id)
		body(r)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteArea removes an area with everything inside it
func (c *Client) DeleteArea(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/areas/{id}", nil, func(r *resty.Request) {
		r.SetPathParam("id", id)
	})
}

type areaJSON struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	AreaType    string `json:"area_type"`
	Description string `json:"description"`
	InsideOf    string `json:"inside_of,omitempty"`
	ImagePath   string `json:"image_path,omitempty"`
	RemoveImage bool   `json:"remove_image,omitempty"`
}

func areaBody(in AreaInput, image *Image) func(*resty.Request) {
	if image == nil {
		return func(r *resty.Request) {
			r.SetBody(areaJSON(in))
		}
	}

	fields := map[string]string{
		"name":        in.Name,
		"area_type":   in.AreaType,
		"description": in.Description,
		"inside_of":   in.InsideOf,
		"image_path":  in.ImagePath,
	}
	if in.ID != "" {
		fields["id"] = in.ID
	}
	if in.RemoveImage {
		fields["remove_image"] = strconv.FormatBool(true)
	}
	return func(r *resty.Request) {
		r.SetMultipartFormData(fields)
		r.SetFileReader("image", image.Filename, bytes.NewReader(image.Data))
	}
}

func (c *Client) ListSensors(ctx context.Context) ([]Sensor, error) {
	var out struct {
		Sensors []Sensor `json:"sensors"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/management/sensors-with-areas", &out, nil); err != nil {
		return nil, err
	}
	return out.Sensors, nil
}

// UpdateSensorStatus sets status to active, inactive or error
func (c *Client) UpdateSensorStatus(ctx context.Context, id, status string) error {
	return c.do(ctx, http.MethodPut, "/api/management/sensor/{id}/status", nil, func(r *resty.Request) {
		r.SetPathParam("id", id).SetBody(map[string]string{"status": status})
	})
}

func (c *Client) UpdateSensorCoordinates(ctx context.Context, id string, coords Coordinates) error {
	return c.do(ctx, http.MethodPut, "/api/management/sensor/{id}/coordinates", nil, func(r *resty.Request) {
		r.SetPathParam("id", id).SetBody(map[string]Coordinates{"coordinates": coords})
	})
}

func (c *Client) GetStatistics(ctx context.Context) (*Statistics, error) {
	var out struct {
		Statistics Statistics `json:"statistics"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/management/statistics", &out, nil); err != nil {
		return nil, err
	}
	return &out.Statistics, nil
}

// Login checks the credentials and returns the account on success
func (c *Client) Login(ctx context.Context, username, password string) (*User, error) {
	var out struct {
		User *User `json:"user"`
	}
	err := c.do(ctx, http.MethodPost, "/api/auth/login", &out, func(r *resty.Request) {
		r.SetBody(map[string]string{"username": username, "password": password})
	})
	if err != nil {
		return nil, err
	}
	return out.User, nil
}

func (c *Client) GetUser(ctx context.Context, id string) (*User, error) {
	var out struct {
		User *User `json:"user"`
	}
	err := c.do(ctx, http.MethodGet, "/api/auth/user/{id}", &out, func(r *resty.Request) {
		r.SetPathParam("id", id)
	})
	if err != nil {
		return nil, err
	}
	return out.User, nil
}
