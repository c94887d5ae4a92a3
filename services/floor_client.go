package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/LucasMargets11/mirubrodigital-sub002/floorplan"
	"github.com/LucasMargets11/mirubrodigital-sub002/models"
)

// FloorClient is the transport the engine consumes: an idempotent snapshot
// read for the live floor, and load/save for the configuration editor.
type FloorClient interface {
	FetchSnapshot(ctx context.Context) (models.FloorSnapshot, error)
	LoadConfiguration(ctx context.Context) (models.Configuration, error)
	SaveConfiguration(ctx context.Context, cfg models.Configuration) (models.Configuration, error)
}

type snapshotEnvelope struct {
	Status  bool                 `json:"status"`
	Message string               `json:"message"`
	Data    models.FloorSnapshot `json:"data"`
}

type configurationEnvelope struct {
	Status  bool                 `json:"status"`
	Message string               `json:"message"`
	Data    models.Configuration `json:"data"`
}

type errorEnvelope struct {
	Status  bool                       `json:"status"`
	Message string                     `json:"message"`
	Data    []floorplan.PlacementError `json:"data,omitempty"`
}

// HTTPFloorClient talks to the order/table service over its JSON envelope.
type HTTPFloorClient struct {
	http *resty.Client
}

func NewHTTPFloorClient(baseURL, token string) *HTTPFloorClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	if token != "" {
		client.SetAuthToken(token)
	}

	return &HTTPFloorClient{http: client}
}

// SetToken swaps the bearer token, e.g. after a login.
func (c *HTTPFloorClient) SetToken(token string) {
	c.http.SetAuthToken(token)
}

func (c *HTTPFloorClient) FetchSnapshot(ctx context.Context) (models.FloorSnapshot, error) {
	var result snapshotEnvelope
	var apiErr errorEnvelope

	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&result).
		SetError(&apiErr).
		Get("/floor/snapshot")
	if err != nil {
		return models.FloorSnapshot{}, fmt.Errorf("fetch snapshot: %w", err)
	}
	if resp.IsError() {
		return models.FloorSnapshot{}, fmt.Errorf("fetch snapshot: %s (status %d)", apiErr.Message, resp.StatusCode())
	}
	return result.Data, nil
}

func (c *HTTPFloorClient) LoadConfiguration(ctx context.Context) (models.Configuration, error) {
	var result configurationEnvelope
	var apiErr errorEnvelope

	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&result).
		SetError(&apiErr).
		Get("/floor/configuration")
	if err != nil {
		return models.Configuration{}, fmt.Errorf("load configuration: %w", err)
	}
	if resp.IsError() {
		return models.Configuration{}, fmt.Errorf("load configuration: %s (status %d)", apiErr.Message, resp.StatusCode())
	}
	return result.Data, nil
}

func (c *HTTPFloorClient) SaveConfiguration(ctx context.Context, cfg models.Configuration) (models.Configuration, error) {
	var result configurationEnvelope
	var apiErr errorEnvelope

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(cfg).
		SetResult(&result).
		SetError(&apiErr).
		Put("/admin/floor/configuration")
	if err != nil {
		return models.Configuration{}, fmt.Errorf("save configuration: %w", err)
	}
	if resp.StatusCode() == http.StatusUnprocessableEntity && len(apiErr.Data) > 0 {
		return models.Configuration{}, &floorplan.ValidationError{Errors: apiErr.Data}
	}
	if resp.IsError() {
		return models.Configuration{}, fmt.Errorf("save configuration: %s (status %d)", apiErr.Message, resp.StatusCode())
	}
	return result.Data, nil
}
