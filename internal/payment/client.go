// Package payment is the client for the external payment processor. The
// processor is an opaque collaborator: this package knows its small
// charge contract and nothing about its internals.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"terrano-storefront/internal/observability"
)

var (
	ErrPaymentDeclined    = errors.New("payment declined")
	ErrPaymentUnavailable = errors.New("payment processor unavailable")
)

// ChargeRequest is the outbound charge contract.
type ChargeRequest struct {
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Reference string  `json:"reference"`
}

// ChargeResult is the processor's answer to a charge.
type ChargeResult struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// Client calls the payment processor over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a payment client for the given processor base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Charge submits a charge and waits for the processor's verdict.
// Transient transport failures are retried with backoff; a declined
// charge is returned as ErrPaymentDeclined and is never retried.
func (c *Client) Charge(ctx context.Context, charge ChargeRequest) (*ChargeResult, error) {
	body, err := json.Marshal(charge)
	if err != nil {
		return nil, fmt.Errorf("failed to encode charge: %w", err)
	}

	url := c.baseURL + "/v1/charges"

	start := time.Now()
	var resp *http.Response
	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, lastErr = c.httpClient.Do(req)
		if lastErr == nil && resp.StatusCode < http.StatusInternalServerError {
			break
		}
		if resp != nil {
			resp.Body.Close()
			resp = nil
		}
		if attempt < 3 {
			select {
			case <-ctx.Done():
				observability.PaymentRequestDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * time.Second):
			}
		}
	}

	if resp == nil {
		observability.PaymentRequestDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		return nil, fmt.Errorf("%w: %v", ErrPaymentUnavailable, lastErr)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusPaymentRequired || resp.StatusCode == http.StatusUnprocessableEntity:
		observability.PaymentRequestDuration.WithLabelValues("declined").Observe(time.Since(start).Seconds())
		return nil, ErrPaymentDeclined
	default:
		observability.PaymentRequestDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		return nil, fmt.Errorf("%w: unexpected status %d", ErrPaymentUnavailable, resp.StatusCode)
	}

	var result ChargeResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		observability.PaymentRequestDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		return nil, fmt.Errorf("%w: invalid response: %v", ErrPaymentUnavailable, err)
	}

	if result.Status != "succeeded" {
		observability.PaymentRequestDuration.WithLabelValues("declined").Observe(time.Since(start).Seconds())
		return nil, ErrPaymentDeclined
	}

	observability.PaymentRequestDuration.WithLabelValues("success").Observe(time.Since(start).Seconds())
	return &result, nil
}
