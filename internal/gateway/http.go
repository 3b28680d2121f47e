package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/miFu278/ECommercePlatform-sub000/internal/config"
	"github.com/miFu278/ECommercePlatform-sub000/pkg/logger"
)

// HTTPClient talks JSON to the provider's REST API. Every call carries the
// configured timeout; a timed-out call surfaces as an error to the caller,
// who decides between retry and a terminal Failed status.
type HTTPClient struct {
	log     logger.Logger
	baseURL string
	apiKey  string
	httpc   *http.Client
}

func NewHTTPClient(log logger.Logger, cfg config.GatewayConfig) *HTTPClient {
	return &HTTPClient{
		log:     log,
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpc:   &http.Client{Timeout: cfg.Timeout},
	}
}

type createLinkRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Description string          `json:"description"`
	ReturnURL   string          `json:"return_url"`
	CancelURL   string          `json:"cancel_url"`
}

type createLinkResponse struct {
	TransactionID string `json:"transaction_id"`
	CheckoutURL   string `json:"checkout_url"`
}

func (c *HTTPClient) CreatePaymentLink(
	ctx context.Context,
	amount decimal.Decimal,
	currency, description, returnURL, cancelURL string,
) (*PaymentLink, error) {
	const op = "gateway.CreatePaymentLink"

	var resp createLinkResponse
	err := c.do(ctx, http.MethodPost, "/v1/payment-links", createLinkRequest{
		Amount:      amount,
		Currency:    currency,
		Description: description,
		ReturnURL:   returnURL,
		CancelURL:   cancelURL,
	}, &resp)
	if err != nil {
		c.log.Error(op, logger.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &PaymentLink{
		TransactionID: resp.TransactionID,
		CheckoutURL:   resp.CheckoutURL,
	}, nil
}

func (c *HTTPClient) Cancel(ctx context.Context, transactionID string) error {
	const op = "gateway.Cancel"

	if err := c.do(ctx, http.MethodPost, "/v1/payment-links/"+transactionID+"/cancel", nil, nil); err != nil {
		c.log.Error(op, logger.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

type statusResponse struct {
	Status string `json:"status"`
}

func (c *HTTPClient) Status(ctx context.Context, transactionID string) (string, error) {
	const op = "gateway.Status"

	var resp statusResponse
	if err := c.do(ctx, http.MethodGet, "/v1/payment-links/"+transactionID, nil, &resp); err != nil {
		c.log.Error(op, logger.Err(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return resp.Status, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	var body *bytes.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}

	if out != nil {
		if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}

	return nil
}

var _ Client = (*HTTPClient)(nil)
