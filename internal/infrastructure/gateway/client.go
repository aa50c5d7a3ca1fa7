// Package gateway is the data source backed by the game-world REST API.
package gateway

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/klauspost/compress/gzhttp"
	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"knkadmin/internal/core/apperror"
	appctx "knkadmin/internal/core/context"
	"knkadmin/internal/core/record"
	"knkadmin/internal/domain"
	"knkadmin/internal/dto"
	"knkadmin/internal/infrastructure/cache"
	"knkadmin/pkg/logger"
)

var tracer = otel.Tracer("knkadmin/gateway")

// Compile-time check that Client implements domain.DataSource.
var _ domain.DataSource = (*Client)(nil)

const (
	DefaultBaseURL = "http://localhost:5111/api"
	DefaultTimeout = 15 * time.Second

	maxBodySize = 8 << 20
)

// Config configures the API client.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client talks to the game API. Responses are decoded through the entity's codec into
// view-shape records. It never retries.
type Client struct {
	base      string
	http      *http.Client
	codecs    dto.Codecs
	endpoints map[string]Endpoint
	cache     *cache.ListCache
	log       *logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithCache enables list caching.
func WithCache(lc *cache.ListCache) Option {
	return func(c *Client) { c.cache = lc }
}

// WithCodecs replaces the codec table.
func WithCodecs(codecs dto.Codecs) Option {
	return func(c *Client) { c.codecs = codecs }
}

// WithLogger sets the logger.
func WithLogger(log *logger.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New creates a new API client.
func New(cfg Config, opts ...Option) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	c := &Client{
		base: strings.TrimRight(cfg.BaseURL, "/"),
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: gzhttp.Transport(http.DefaultTransport),
		},
		codecs:    dto.NewCodecs(),
		endpoints: DefaultEndpoints(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logger.Default()
	}
	c.log = c.log.WithComponent("gateway")
	return c
}

// HTTPClient returns the underlying HTTP client.
func (c *Client) HTTPClient() *http.Client { return c.http }

func (c *Client) endpoint(tag string) (Endpoint, error) {
	ep, ok := c.endpoints[tag]
	if !ok {
		return Endpoint{}, apperror.NewUnknownEntity(tag)
	}
	return ep, nil
}

// FetchList returns every record of tag.
func (c *Client) FetchList(ctx context.Context, tag string) ([]record.Record, error) {
	ep, err := c.endpoint(tag)
	if err != nil {
		return nil, err
	}
	if rows, ok := c.cache.Get(tag); ok {
		return rows, nil
	}

	body, err := c.do(ctx, http.MethodGet, ep.Controller, c.base+"/"+ep.Controller, nil)
	if err != nil {
		return nil, err
	}
	var rows []record.Record
	if codec, ok := c.codecs.Get(tag); ok {
		rows, err = codec.DecodeList(body)
	} else {
		rows, err = record.ListFromJSON(body)
	}
	if err != nil {
		return nil, apperror.NewFetchFailed(ep.Controller, err)
	}
	c.cache.Set(tag, rows)
	return rows, nil
}

// FetchOne returns the record of tag with id.
func (c *Client) FetchOne(ctx context.Context, tag string, id any) (record.Record, error) {
	ep, err := c.endpoint(tag)
	if err != nil {
		return record.Record{}, err
	}
	q := url.Values{"id": {record.Stringify(id)}}
	target := fmt.Sprintf("%s/%s/%s?%s", c.base, ep.Controller, ep.ByID, q.Encode())

	body, err := c.do(ctx, http.MethodGet, ep.ByID, target, nil)
	if isStatus(err, http.StatusNotFound) {
		return record.Record{}, apperror.NewNotFound(tag, id).WithCause(err)
	}
	if err != nil {
		return record.Record{}, err
	}
	if len(bytes.TrimSpace(body)) == 0 || gjson.ParseBytes(body).Type == gjson.Null {
		return record.Record{}, apperror.NewNotFound(tag, id)
	}
	return c.decodeOne(tag, ep.ByID, body)
}

// Create posts payload as the type's create DTO and returns the stored record.
func (c *Client) Create(ctx context.Context, tag string, payload record.Record) (record.Record, error) {
	ep, err := c.endpoint(tag)
	if err != nil {
		return record.Record{}, err
	}
	return c.write(ctx, tag, http.MethodPost, ep.Controller, c.base+"/"+ep.Controller, payload)
}

// Update puts payload to the record with id.
func (c *Client) Update(ctx context.Context, tag string, id any, payload record.Record) (record.Record, error) {
	ep, err := c.endpoint(tag)
	if err != nil {
		return record.Record{}, err
	}
	target := fmt.Sprintf("%s/%s/%s", c.base, ep.Controller, url.PathEscape(record.Stringify(id)))
	return c.write(ctx, tag, http.MethodPut, ep.Controller, target, payload)
}

// Delete removes the record with id.
func (c *Client) Delete(ctx context.Context, tag string, id any) error {
	ep, err := c.endpoint(tag)
	if err != nil {
		return err
	}
	target := fmt.Sprintf("%s/%s/%s", c.base, ep.Controller, url.PathEscape(record.Stringify(id)))
	defer c.cache.Invalidate(tag)
	_, err = c.do(ctx, http.MethodDelete, ep.Controller, target, nil)
	return err
}

func (c *Client) write(ctx context.Context, tag, method, op, target string, payload record.Record) (record.Record, error) {
	var (
		body []byte
		err  error
	)
	if codec, ok := c.codecs.Get(tag); ok {
		body, err = codec.EncodeCreate(payload)
	} else {
		body, err = payload.MarshalJSON()
	}
	if err != nil {
		return record.Record{}, apperror.NewInvalidInput(err.Error())
	}

	defer c.cache.Invalidate(tag)
	resp, err := c.do(ctx, method, op, target, body)
	if err != nil {
		return record.Record{}, err
	}
	if len(bytes.TrimSpace(resp)) == 0 || !gjson.ParseBytes(resp).IsObject() {
		return payload.Clone(), nil
	}
	return c.decodeOne(tag, op, resp)
}

func (c *Client) decodeOne(tag, op string, body []byte) (record.Record, error) {
	var (
		rec record.Record
		err error
	)
	if codec, ok := c.codecs.Get(tag); ok {
		rec, err = codec.DecodeOne(body)
	} else {
		rec, err = record.FromJSON(body)
	}
	if err != nil {
		return record.Record{}, apperror.NewFetchFailed(op, err)
	}
	return rec, nil
}

// do performs one request inside a span. Non-2xx responses become FETCH_FAILED with
// the server's message; transport errors become FETCH_FAILED or TIMEOUT_ERROR.
func (c *Client) do(ctx context.Context, method, op, target string, body []byte) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "gateway."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("http.url", target),
		))
	defer span.End()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if requestID := appctx.GetRequestID(ctx); requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}

	log := c.log.WithContext(ctx)
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Warnw("api request failed", "method", method, "url", target, "error", err)
		return nil, apperror.FromTransport(op, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		span.RecordError(err)
		return nil, apperror.FromTransport(op, err)
	}
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := errorMessage(data, resp.StatusCode)
		span.SetStatus(codes.Error, msg)
		log.Warnw("api request rejected", "method", method, "url", target, "status", resp.StatusCode, "message", msg)
		appErr := apperror.NewFetchFailed(op, errors.New(msg))
		appErr.Message = msg
		return nil, appErr.WithDetail("status", resp.StatusCode)
	}

	log.Debugw("api request", "method", method, "url", target, "status", resp.StatusCode, "duration", time.Since(start))
	return data, nil
}

func isStatus(err error, status int) bool {
	appErr, ok := apperror.AsAppError(err)
	if !ok {
		return false
	}
	s, _ := appErr.Details["status"].(int)
	return s == status
}

// errorMessage extracts a readable message from an error body.
func errorMessage(body []byte, status int) string {
	if gjson.ValidBytes(body) {
		res := gjson.ParseBytes(body)
		for _, key := range []string{"message", "Message", "title", "error", "detail"} {
			if v := res.Get(key); v.Exists() && v.Type == gjson.String && v.String() != "" {
				return v.String()
			}
		}
	}
	if text := strings.TrimSpace(string(body)); text != "" && len(text) < 200 && !strings.HasPrefix(text, "{") {
		return text
	}
	return fmt.Sprintf("%d %s", status, http.StatusText(status))
}
