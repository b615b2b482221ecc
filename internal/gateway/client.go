// Package gateway performs the outbound call to the external model-serving
// endpoint and classifies its failures.
//
// One user-submitted message means exactly one gateway attempt. There is no
// automatic retry for any failure class: the gateway is metered per call,
// and a silent retry would silently duplicate cost. Failed cycles surface
// immediately and the fallback generator produces the response turn.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/atlasgrid/command-center/internal/config"
	"github.com/atlasgrid/command-center/pkg/models"
)

// Client calls the gateway's OpenAI-compatible chat completions endpoint.
type Client struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewClient creates a gateway client from configuration.
func NewClient(cfg config.GatewayConfig) *Client {
	return &Client{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		client:   &http.Client{Timeout: cfg.Timeout},
	}
}

// completionResponse is the subset of the gateway response we consume.
type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Invoke sends one request and returns the generated text on 2xx.
//
// Failure classification: HTTP 429 → RateLimited, HTTP 402 →
// PaymentRequired, transport/timeout errors → TransportFailure, any other
// non-2xx → UnexpectedGatewayError. All failures come back as *Error.
func (c *Client) Invoke(ctx context.Context, req *models.GatewayRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", &Error{Kind: models.ErrKindUnexpected, Err: fmt.Errorf("encode request: %w", err)}
	}

	url := c.endpoint + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", &Error{Kind: models.ErrKindUnexpected, Err: fmt.Errorf("create request: %w", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		return "", &Error{Kind: models.ErrKindTransport, Err: fmt.Errorf("request failed: %w", err)}
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(httpResp.Body, 4096))
		kind := classifyStatus(httpResp.StatusCode)

		log.Warn().
			Int("status", httpResp.StatusCode).
			Str("kind", string(kind)).
			Dur("duration", time.Since(start)).
			Msg("gateway call failed")

		return "", &Error{
			Kind:       kind,
			HTTPStatus: httpResp.StatusCode,
			Err:        fmt.Errorf("gateway returned %q", string(respBody)),
		}
	}

	var resp completionResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return "", &Error{
			Kind:       models.ErrKindUnexpected,
			HTTPStatus: httpResp.StatusCode,
			Err:        fmt.Errorf("decode response: %w", err),
		}
	}
	if len(resp.Choices) == 0 {
		return "", &Error{
			Kind:       models.ErrKindUnexpected,
			HTTPStatus: httpResp.StatusCode,
			Err:        fmt.Errorf("response contained no choices"),
		}
	}

	log.Debug().
		Str("model", req.Model).
		Dur("duration", time.Since(start)).
		Msg("gateway call completed")

	return resp.Choices[0].Message.Content, nil
}

func classifyStatus(status int) models.ErrorKind {
	switch status {
	case http.StatusTooManyRequests:
		return models.ErrKindRateLimited
	case http.StatusPaymentRequired:
		return models.ErrKindPaymentRequired
	default:
		return models.ErrKindUnexpected
	}
}
