// Package shipping adapts the Shippo REST API to the shipping.Carrier port.
package shipping

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/ecommerce/backend/internal/domain/shipping"
	"github.com/ecommerce/backend/internal/infrastructure/config"
)

var _ shipping.Carrier = (*ShippoClient)(nil)

const (
	defaultBaseURL = "https://api.goshippo.com"
	labelFileType  = "PDF"
	maxErrorBody   = 2048
)

// ErrShippoAPI wraps every non 2xx answer from Shippo
var ErrShippoAPI = errors.New("shippo: api error")

// ShippoClient talks to the Shippo REST API with synchronous (async=false)
// shipment and transaction requests
type ShippoClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *zap.Logger
}

// ShippoOption configures a ShippoClient
type ShippoOption func(*ShippoClient)

// WithHTTPClient replaces the HTTP client
func WithHTTPClient(c *http.Client) ShippoOption {
	return func(s *ShippoClient) {
		s.httpClient = c
	}
}

// WithRateLimit caps outgoing requests per second; zero disables limiting
func WithRateLimit(perSecond float64, burst int) ShippoOption {
	return func(s *ShippoClient) {
		if perSecond <= 0 {
			s.limiter = nil
			return
		}
		s.limiter = rate.NewLimiter(rate.Limit(perSecond), max(burst, 1))
	}
}

// NewShippoClient creates a client from the shippo config section
func NewShippoClient(cfg config.ShippoConfig, logger *zap.Logger, opts ...ShippoOption) (*ShippoClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("shippo: api key is required")
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("shippo: invalid base url: %w", err)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}

	c := &ShippoClient{
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(10), 5),
		logger:     logger.Named("shippo"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// SenderFromConfig converts the configured sender address
func SenderFromConfig(from config.SenderAddress) shipping.Address {
	return shipping.Address{
		Name:    from.Name,
		Street1: from.Street1,
		City:    from.City,
		State:   from.State,
		Zip:     from.Zip,
		Country: from.Country,
		Phone:   from.Phone,
		Email:   from.Email,
	}
}

// Name implements shipping.Carrier
func (c *ShippoClient) Name() shipping.MethodName {
	return shipping.MethodShippo
}

// GetRates creates a shipment and returns the rates quoted for it
func (c *ShippoClient) GetRates(ctx context.Context, req shipping.RateRequest) ([]shipping.Rate, error) {
	body := shipmentRequest{
		AddressFrom: toShippoAddress(req.From),
		AddressTo:   toShippoAddress(req.To),
		Parcels:     []shippoParcel{toShippoParcel(req.Parcel)},
		Async:       false,
	}

	var resp shipmentResponse
	if err := c.do(ctx, http.MethodPost, "/shipments/", body, &resp); err != nil {
		return nil, err
	}

	rates := make([]shipping.Rate, 0, len(resp.Rates))
	for _, r := range resp.Rates {
		converted, err := r.toDomain()
		if err != nil {
			c.logger.Warn("Skipping rate with unparsable amount",
				zap.String("rate_id", r.ObjectID),
				zap.String("amount", r.Amount))
			continue
		}
		rates = append(rates, converted)
	}

	c.logger.Debug("Shipment rated",
		zap.String("shipment_id", resp.ObjectID),
		zap.Int("rates", len(rates)))
	return rates, nil
}

// GetRate fetches a single rate by ID
func (c *ShippoClient) GetRate(ctx context.Context, rateID string) (*shipping.Rate, error) {
	var resp shippoRate
	if err := c.do(ctx, http.MethodGet, "/rates/"+url.PathEscape(rateID), nil, &resp); err != nil {
		return nil, err
	}
	r, err := resp.toDomain()
	if err != nil {
		return nil, fmt.Errorf("shippo: rate %s: %w", rateID, err)
	}
	return &r, nil
}

// PurchaseLabel buys a PDF label for rateID. A transaction Shippo refused is
// returned as a Label whose status is not SUCCESS, not as an error.
func (c *ShippoClient) PurchaseLabel(ctx context.Context, rateID string) (*shipping.Label, error) {
	body := transactionRequest{
		Rate:          rateID,
		LabelFileType: labelFileType,
		Async:         false,
	}

	var resp transactionResponse
	if err := c.do(ctx, http.MethodPost, "/transactions/", body, &resp); err != nil {
		return nil, err
	}

	label := &shipping.Label{
		Status:         resp.Status,
		TrackingNumber: resp.TrackingNumber,
		LabelURL:       resp.LabelURL,
		TrackingURL:    resp.TrackingURLProvider,
	}
	for _, m := range resp.Messages {
		if m.Text != "" {
			label.Messages = append(label.Messages, m.Text)
		}
	}
	return label, nil
}

func (c *ShippoClient) do(ctx context.Context, method, path string, in, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("shippo: %w", err)
		}
	}

	var reader io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("shippo: encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("shippo: build request: %w", err)
	}
	req.Header.Set("Authorization", "ShippoToken "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("shippo: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("Shippo request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("%w: %s %s returned %d: %s", ErrShippoAPI, method, path, resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("shippo: decode response: %w", err)
	}
	return nil
}

type shippoAddress struct {
	Name    string `json:"name"`
	Street1 string `json:"street1"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
}

type shippoParcel struct {
	Length       string `json:"length"`
	Width        string `json:"width"`
	Height       string `json:"height"`
	DistanceUnit string `json:"distance_unit"`
	Weight       string `json:"weight"`
	MassUnit     string `json:"mass_unit"`
}

type shipmentRequest struct {
	AddressFrom shippoAddress  `json:"address_from"`
	AddressTo   shippoAddress  `json:"address_to"`
	Parcels     []shippoParcel `json:"parcels"`
	Async       bool           `json:"async"`
}

type shipmentResponse struct {
	ObjectID string       `json:"object_id"`
	Status   string       `json:"status"`
	Rates    []shippoRate `json:"rates"`
}

type shippoServiceLevel struct {
	Name  string `json:"name"`
	Token string `json:"token"`
}

type shippoRate struct {
	ObjectID      string             `json:"object_id"`
	Provider      string             `json:"provider"`
	ServiceLevel  shippoServiceLevel `json:"servicelevel"`
	Amount        string             `json:"amount"`
	Currency      string             `json:"currency"`
	EstimatedDays int                `json:"estimated_days"`
}

func (r shippoRate) toDomain() (shipping.Rate, error) {
	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		return shipping.Rate{}, err
	}
	return shipping.Rate{
		ID:            r.ObjectID,
		Provider:      r.Provider,
		ServiceLevel:  r.ServiceLevel.Name,
		Amount:        amount,
		Currency:      r.Currency,
		EstimatedDays: r.EstimatedDays,
	}, nil
}

type transactionRequest struct {
	Rate          string `json:"rate"`
	LabelFileType string `json:"label_file_type"`
	Async         bool   `json:"async"`
}

type shippoMessage struct {
	Source string `json:"source"`
	Code   string `json:"code"`
	Text   string `json:"text"`
}

type transactionResponse struct {
	ObjectID            string          `json:"object_id"`
	Status              string          `json:"status"`
	TrackingNumber      string          `json:"tracking_number"`
	LabelURL            string          `json:"label_url"`
	TrackingURLProvider string          `json:"tracking_url_provider"`
	Messages            []shippoMessage `json:"messages"`
}

func toShippoAddress(a shipping.Address) shippoAddress {
	return shippoAddress{
		Name:    a.Name,
		Street1: a.Street1,
		City:    a.City,
		State:   a.State,
		Zip:     a.Zip,
		Country: a.Country,
		Phone:   a.Phone,
		Email:   a.Email,
	}
}

func toShippoParcel(p shipping.Parcel) shippoParcel {
	return shippoParcel{
		Length:       p.Length,
		Width:        p.Width,
		Height:       p.Height,
		DistanceUnit: p.DistanceUnit,
		Weight:       p.Weight,
		MassUnit:     p.MassUnit,
	}
}
