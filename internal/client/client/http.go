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

	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/logging"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	DefaultTimeout = 15 * time.Second
	maxBodyBytes   = 4 << 20
)

// HTTPClient implements API over HTTP/JSON. One instance is shared by the
// whole process.
type HTTPClient struct {
	baseURL string
	timeout time.Duration
	hc      *http.Client
	log     logging.Logger
}

type Option func(*HTTPClient)

// WithTransport replaces the base round tripper. It is still wrapped by the
// tracing transport.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *HTTPClient) { c.hc.Transport = otelhttp.NewTransport(rt) }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

func NewHTTPClient(baseURL string, timeout time.Duration, opts ...Option) *HTTPClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		hc:      &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
		log:     logging.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

var _ API = (*HTTPClient)(nil)

func (c *HTTPClient) Login(ctx context.Context, email, password string) (models.LoginResult, error) {
	var res models.LoginResult
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, call{method: http.MethodPost, path: "/api/auth/Login", body: body}, &res); err != nil {
		return models.LoginResult{}, err
	}
	if res.Token == "" {
		return models.LoginResult{}, &APIError{Status: http.StatusBadGateway, Message: "login response carries no token"}
	}
	return res, nil
}

func (c *HTTPClient) ChangePassword(ctx context.Context, token, newPassword string) error {
	body := map[string]string{"newPassword": newPassword}
	return c.do(ctx, call{method: http.MethodPost, path: "/api/auth/change-password-movill", token: token, body: body}, nil)
}

// ForgotPassword asks the backend to send a reset link and returns its
// plain-text reply.
func (c *HTTPClient) ForgotPassword(ctx context.Context, email string) (string, error) {
	var raw json.RawMessage
	body := map[string]string{"email": email}
	if err := c.do(ctx, call{method: http.MethodPost, path: "/api/auth/forgot-password-movil", body: body}, &raw); err != nil {
		return "", err
	}
	return messageFrom(raw), nil
}

// ResetPassword authenticates with the reset token from the emailed link.
func (c *HTTPClient) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	body := map[string]string{"newPassword": newPassword}
	return c.do(ctx, call{method: http.MethodPost, path: "/api/auth/reset-password", token: resetToken, body: body}, nil)
}

func (c *HTTPClient) Register(ctx context.Context, r models.Registration) error {
	return c.do(ctx, call{method: http.MethodPost, path: "/api/auth/register", body: r}, nil)
}

func (c *HTTPClient) Brands(ctx context.Context, token string) ([]models.Brand, error) {
	out := []models.Brand{}
	if err := c.do(ctx, call{method: http.MethodGet, path: "/marcas/getAll", token: token}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) Vehicles(ctx context.Context, token string) ([]models.Vehicle, error) {
	out := []models.Vehicle{}
	if err := c.do(ctx, call{method: http.MethodGet, path: "/vehiculo/obtener", token: token}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) VehiclesByBrand(ctx context.Context, token, brand string) ([]models.Vehicle, error) {
	out := []models.Vehicle{}
	path := "/vehiculo/marca/" + url.PathEscape(brand)
	if err := c.do(ctx, call{method: http.MethodGet, path: path, token: token}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateVehicle replaces the vehicle document. doc is sent verbatim.
func (c *HTTPClient) UpdateVehicle(ctx context.Context, token string, vehicleID int64, doc json.RawMessage) error {
	path := "/vehiculo/actualizar/" + strconv.FormatInt(vehicleID, 10)
	return c.do(ctx, call{method: http.MethodPut, path: path, token: token, body: doc}, nil)
}

func (c *HTTPClient) Services(ctx context.Context, token string) ([]models.Service, error) {
	out := []models.Service{}
	if err := c.do(ctx, call{method: http.MethodGet, path: "/servicios/obtener", token: token}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) CustomerByEmail(ctx context.Context, token, email string) (models.Customer, error) {
	var raw json.RawMessage
	path := "/cliente/email/" + url.PathEscape(email)
	if err := c.do(ctx, call{method: http.MethodGet, path: path, token: token}, &raw); err != nil {
		return models.Customer{}, err
	}
	if len(bytes.TrimSpace(raw)) == 0 || string(bytes.TrimSpace(raw)) == "null" {
		return models.Customer{}, &APIError{Status: http.StatusNotFound, Message: "customer not found"}
	}
	var cust models.Customer
	if err := json.Unmarshal(raw, &cust); err != nil {
		return models.Customer{}, fmt.Errorf("decode customer: %w", err)
	}
	return cust, nil
}

// RecordSale submits a sale. idempotencyKey, when set, is sent as the
// Idempotency-Key header so the backend can collapse a retried submission.
func (c *HTTPClient) RecordSale(ctx context.Context, token, idempotencyKey string, sale models.SaleRequest) (models.Sale, error) {
	var raw json.RawMessage
	req := call{method: http.MethodPost, path: "/ventas/vender", token: token, idempotencyKey: idempotencyKey, body: sale}
	if err := c.do(ctx, req, &raw); err != nil {
		return models.Sale{}, err
	}
	var out models.Sale
	if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &out); err != nil {
			c.log.Warn(ctx, "sale response not decodable", "error", err)
		}
	}
	return out, nil
}

func (c *HTTPClient) SalesByCustomer(ctx context.Context, token string, customerID int64) ([]models.Sale, error) {
	var raw json.RawMessage
	path := "/ventas/porCliente/" + strconv.FormatInt(customerID, 10)
	if err := c.do(ctx, call{method: http.MethodGet, path: path, token: token}, &raw); err != nil {
		return nil, err
	}
	return models.DecodeSales(raw)
}

type call struct {
	method         string
	path           string
	token          string
	idempotencyKey string
	body           any
}

// do performs one request bounded by the client timeout. out may be nil, a
// *json.RawMessage receiving the body as is, or any value to decode into.
func (c *HTTPClient) do(ctx context.Context, cl call, out any) error {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body io.Reader
	if cl.body != nil {
		b, err := json.Marshal(cl.body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", cl.method, cl.path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(reqCtx, cl.method, c.baseURL+cl.path, body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", cl.method, cl.path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cl.token != "" {
		req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+cl.token)
	}
	if cl.idempotencyKey != "" {
		req.Header.Set(common.IdempotencyKeyHeader, cl.idempotencyKey)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return c.mapError(ctx, cl, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return c.mapError(ctx, cl, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Message: messageFrom(data)}
		c.log.Warn(ctx, "api call rejected", "method", cl.method, "path", cl.path, "status", resp.StatusCode)
		return apiErr
	}

	switch dst := out.(type) {
	case nil:
		return nil
	case *json.RawMessage:
		*dst = append((*dst)[:0], data...)
		return nil
	default:
		if len(bytes.TrimSpace(data)) == 0 {
			return nil
		}
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode %s %s: %w", cl.method, cl.path, err)
		}
		return nil
	}
}

// mapError classifies a transport failure. Cancellation by the caller is
// passed through; everything else, timeouts included, is ErrUnavailable.
func (c *HTTPClient) mapError(ctx context.Context, cl call, err error) error {
	if ctx.Err() != nil {
		return fmt.Errorf("%s %s: %w", cl.method, cl.path, ctx.Err())
	}
	c.log.Warn(ctx, "api call failed", "method", cl.method, "path", cl.path, "error", err)
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s %s timed out after %s", ErrUnavailable, cl.method, cl.path, c.timeout)
	}
	return fmt.Errorf("%w: %s %s: %v", ErrUnavailable, cl.method, cl.path, err)
}

// messageFrom extracts a human-readable message from an error or text body.
func messageFrom(data []byte) string {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return ""
	}
	if trimmed[0] == '{' {
		var m struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if err := json.Unmarshal(trimmed, &m); err == nil {
			if m.Message != "" {
				return m.Message
			}
			return m.Error
		}
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return s
		}
	}
	return string(trimmed)
}
