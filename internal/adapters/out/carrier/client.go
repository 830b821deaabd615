// Package carrier implements the CarrierGateway port against the shipping
// carrier's batch query endpoint. The adapter is read-only: it never creates
// labels or manifests, it only reports shipment lifecycle state.
package carrier

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/tracking"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/metrics"
)

// shipmentIDDelimiter joins shipment identifiers in the batch query string.
const shipmentIDDelimiter = ";"

// defaultRequestTimeout bounds one carrier round trip.
const defaultRequestTimeout = 30 * time.Second

// shipmentResponse is the carrier's wire representation of one shipment.
// Identifiers the carrier does not recognize are omitted from the response
// array rather than producing error entries.
type shipmentResponse struct {
	Reference      string     `json:"reference"`
	PrintedOn      *time.Time `json:"printedOn"`
	ManifestedOn   *time.Time `json:"manifestedOn"`
	ShippedOn      *time.Time `json:"shippedOn"`
	TrackingNumber *string    `json:"trackingNumber"`
}

// Client is an HTTP client for the carrier's batch shipment query endpoint.
// Implements ports.CarrierGateway.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a carrier gateway client. baseURL is the root of the
// carrier API; apiKey authenticates every request.
func NewClient(baseURL, apiKey string) (*Client, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}
	if apiKey == "" {
		return nil, errs.NewValueIsRequiredError("apiKey")
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: defaultRequestTimeout,
		},
	}, nil
}

// FetchShipments queries the carrier for the given shipment identifiers in a
// single request, joining them with semicolons as the carrier API expects.
// The response may cover only a subset of the requested identifiers; that is
// a normal partial response, not an error.
//
// Transport failures, non-2xx responses, and malformed payloads all wrap
// ports.ErrCarrierUnavailable so callers can classify them uniformly.
func (c *Client) FetchShipments(ctx context.Context, shipmentIDs []string) ([]tracking.Snapshot, error) {
	if len(shipmentIDs) == 0 {
		return []tracking.Snapshot{}, nil
	}

	query := url.Values{}
	query.Set("references", strings.Join(shipmentIDs, shipmentIDDelimiter))
	endpoint := fmt.Sprintf("%s/shipments?%s", c.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.CarrierRequestDuration.Observe(time.Since(started).Seconds())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ports.ErrCarrierUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: unexpected status %d", ports.ErrCarrierUnavailable, resp.StatusCode)
	}

	var payload []shipmentResponse
	if err = json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: malformed response: %w", ports.ErrCarrierUnavailable, err)
	}

	snapshots := make([]tracking.Snapshot, 0, len(payload))
	for _, shipment := range payload {
		snapshot, snapErr := tracking.NewSnapshot(
			shipment.Reference,
			shipment.PrintedOn,
			shipment.ManifestedOn,
			shipment.ShippedOn,
			shipment.TrackingNumber,
		)
		if snapErr != nil {
			return nil, fmt.Errorf("%w: malformed response: %w", ports.ErrCarrierUnavailable, snapErr)
		}
		snapshots = append(snapshots, snapshot)
	}

	return snapshots, nil
}
