package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/boddenberg/finance-dashboard-bfa-go/internal/domain"
	"github.com/boddenberg/finance-dashboard-bfa-go/internal/infra/resilience"
	"github.com/boddenberg/finance-dashboard-bfa-go/internal/session"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("client")

// ServiceName labels errors and breaker state of the remote finance API.
const ServiceName = "finance-api"

const maxErrorBody = 4 << 10

// CallRecorder counts remote calls by endpoint.
type CallRecorder interface {
	IncrGatewayCall(endpoint string)
	IncrGatewayError(endpoint string)
}

type nopRecorder struct{}

func (nopRecorder) IncrGatewayCall(string)  {}
func (nopRecorder) IncrGatewayError(string) {}

// GatewayClient talks to the remote finance API (/finance/* and /auth/*).
// Every call carries the bearer token of the session found in ctx.
type GatewayClient struct {
	httpClient *http.Client
	baseURL    string
	cb         *gobreaker.CircuitBreaker
	cfg        resilience.Config
	bulkhead   *resilience.Bulkhead
	recorder   CallRecorder
}

// NewGatewayClient creates a new GatewayClient. recorder may be nil.
func NewGatewayClient(httpClient *http.Client, baseURL string, cb *gobreaker.CircuitBreaker, cfg resilience.Config, recorder CallRecorder) *GatewayClient {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &GatewayClient{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		cb:         cb,
		cfg:        cfg,
		bulkhead:   resilience.NewBulkhead(cfg.MaxConcurrency),
		recorder:   recorder,
	}
}

// BreakerState reports the circuit breaker state ("closed", "open", "half-open").
func (c *GatewayClient) BreakerState() string {
	return c.cb.State().String()
}

// IsClientError reports whether err is the remote API rejecting the request
// itself. Such answers are not retried and do not trip the breaker.
func IsClientError(err error) bool {
	var (
		notFound     *domain.ErrNotFound
		validation   *domain.ErrValidation
		unauthorized *domain.ErrUnauthorized
		forbidden    *domain.ErrForbidden
		conflict     *domain.ErrConflict
	)
	return errors.As(err, &notFound) || errors.As(err, &validation) ||
		errors.As(err, &unauthorized) || errors.As(err, &forbidden) ||
		errors.As(err, &conflict)
}

// call describes one remote request.
type call struct {
	method   string
	path     string
	endpoint string // route template, used as span name and metric label
	resource string // for ErrNotFound
	id       string
	body     any
	out      any
}

// do runs a call through the breaker, retry and bulkhead, decoding the JSON
// answer into c.out when it is not nil.
func (c *GatewayClient) do(ctx context.Context, cl call) error {
	ctx, span := tracer.Start(ctx, cl.endpoint)
	defer span.End()
	span.SetAttributes(
		attribute.String("http.method", cl.method),
		attribute.String("finance.resource", cl.resource),
	)
	if cl.id != "" {
		span.SetAttributes(attribute.String("finance.resource_id", cl.id))
	}

	var payload []byte
	if cl.body != nil {
		var err error
		if payload, err = json.Marshal(cl.body); err != nil {
			return fmt.Errorf("encode %s body: %w", cl.resource, err)
		}
	}

	c.recorder.IncrGatewayCall(cl.endpoint)
	_, err := c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			return c.roundTrip(ctx, cl, payload)
		})
	})
	if err == nil {
		return nil
	}

	c.recorder.IncrGatewayError(cl.endpoint)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	switch {
	case IsClientError(err):
		return err
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return &domain.ErrCircuitOpen{Service: ServiceName}
	case errors.Is(err, context.DeadlineExceeded):
		return &domain.ErrTimeout{Operation: cl.endpoint}
	default:
		return &domain.ErrExternalService{Service: ServiceName, Err: err}
	}
}

func (c *GatewayClient) roundTrip(ctx context.Context, cl call, payload []byte) error {
	if err := c.bulkhead.Acquire(ctx); err != nil {
		return err
	}
	defer c.bulkhead.Release()

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, cl.method, c.baseURL+cl.path, body)
	if err != nil {
		return resilience.Permanent(err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := session.TokenFromContext(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp, cl)
	}
	if cl.out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(cl.out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode %s response: %w", cl.resource, err)
	}
	return nil
}

// statusError maps a non-2xx answer to a domain error. 4xx answers other than
// 408 and 429 are permanent.
func statusError(resp *http.Response, cl call) error {
	msg := errorMessage(resp.Body)
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}

	var err error
	switch resp.StatusCode {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		err = &domain.ErrValidation{Field: cl.resource, Message: msg}
	case http.StatusUnauthorized:
		err = &domain.ErrUnauthorized{Message: msg}
	case http.StatusForbidden:
		err = &domain.ErrForbidden{Action: msg}
	case http.StatusNotFound:
		err = &domain.ErrNotFound{Resource: cl.resource, ID: cl.id}
	case http.StatusConflict:
		err = &domain.ErrConflict{Message: msg}
	case http.StatusRequestTimeout, http.StatusTooManyRequests:
		return fmt.Errorf("finance API returned status %d: %s", resp.StatusCode, msg)
	default:
		err = fmt.Errorf("finance API returned status %d: %s", resp.StatusCode, msg)
		if resp.StatusCode >= 500 {
			return err
		}
	}
	return resilience.Permanent(err)
}

// errorMessage extracts {"message": ...} (string or list) or {"error": ...}
// from an error body, falling back to the raw text.
func errorMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return ""
	}

	var body struct {
		Message json.RawMessage `json:"message"`
		Error   string          `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return strings.TrimSpace(string(raw))
	}

	var single string
	if err := json.Unmarshal(body.Message, &single); err == nil && single != "" {
		return single
	}
	var list []string
	if err := json.Unmarshal(body.Message, &list); err == nil && len(list) > 0 {
		return strings.Join(list, "; ")
	}
	return body.Error
}
