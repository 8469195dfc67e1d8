// Package upload sends a file and its form fields to the backend as one
// multipart POST, keeping a blocking overlay up for the duration and turning
// whatever comes back into an Outcome.
//
// An upload ends in one of three ways:
//
//   - the server accepts it (2xx): the overlay comes down, a success toast is
//     shown and the body is decoded into the caller's result type;
//   - the server rejects it: the overlay comes down and the error body is
//     normalized into a Failure. This is not a Go error;
//   - no response arrives: the overlay comes down and the transport error is
//     returned as is. Uploads are never retried.
//
// The overlay is released on every path, panics included.
package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/InsulaLabs/counsel/client"
	"github.com/InsulaLabs/counsel/ui"
	"github.com/InsulaLabs/counsel/ui/overlay"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultSuccessMessage = "file uploaded"
	DefaultFailureMessage = "upload failed"
	DefaultMaxBytes       = 32 << 20

	tracerName = "github.com/InsulaLabs/counsel/upload"
)

// Poster sends one raw request body. *client.Client implements it.
type Poster interface {
	PostRaw(ctx context.Context, path string, body io.Reader, rc *client.RequestConfig) (*client.Response, error)
}

// Notifier receives the success notification. *toast.Toaster implements it.
type Notifier interface {
	Success(message string)
}

type nopNotifier struct{}

func (nopNotifier) Success(string) {}

type Uploader struct {
	poster         Poster
	overlays       *overlay.Registry
	notifier       Notifier
	logger         *slog.Logger
	successMessage string
	statusText     string
	maxBytes       int64
	metrics        *metrics
	gatherer       prometheus.Gatherer
	tracer         trace.Tracer
}

type Option func(*Uploader)

// WithOverlay shares an overlay registry, so uploads and other long
// operations replace each other's overlay instead of stacking.
func WithOverlay(r *overlay.Registry) Option {
	return func(u *Uploader) { u.overlays = r }
}

func WithNotifier(n Notifier) Option {
	return func(u *Uploader) { u.notifier = n }
}

func WithLogger(logger *slog.Logger) Option {
	return func(u *Uploader) { u.logger = logger }
}

func WithSuccessMessage(msg string) Option {
	return func(u *Uploader) { u.successMessage = msg }
}

// WithOverlayText sets the overlay text used when a call gives none.
func WithOverlayText(text string) Option {
	return func(u *Uploader) { u.statusText = text }
}

// WithMaxAttachmentBytes limits the attachment size; zero or less disables
// the limit.
func WithMaxAttachmentBytes(n int64) Option {
	return func(u *Uploader) { u.maxBytes = n }
}

func WithRegisterer(reg prometheus.Registerer) Option {
	return func(u *Uploader) {
		u.gatherer = nil
		if g, ok := reg.(prometheus.Gatherer); ok {
			u.gatherer = g
		}
		u.metrics = newMetrics(reg)
	}
}

func New(poster Poster, opts ...Option) *Uploader {
	u := &Uploader{
		poster:         poster,
		notifier:       nopNotifier{},
		logger:         slog.Default(),
		successMessage: DefaultSuccessMessage,
		statusText:     overlay.DefaultText,
		maxBytes:       DefaultMaxBytes,
		tracer:         otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(u)
	}
	u.logger = u.logger.WithGroup("upload")
	if u.overlays == nil {
		u.overlays = overlay.New(ui.Discard, u.logger)
	}
	if u.notifier == nil {
		u.notifier = nopNotifier{}
	}
	if u.metrics == nil {
		reg := prometheus.NewRegistry()
		u.metrics, u.gatherer = newMetrics(reg), reg
	}
	return u
}

// Metrics returns the gatherer holding the upload metrics.
func (u *Uploader) Metrics() prometheus.Gatherer {
	return u.gatherer
}

type callConfig struct {
	statusText string
	headers    http.Header
	query      url.Values
}

// CallOption adjusts a single upload.
type CallOption func(*callConfig)

func WithStatusText(text string) CallOption {
	return func(c *callConfig) { c.statusText = text }
}

// WithHeaders merges h into the request headers. Content-Type is always the
// multipart type of the body and cannot be overridden.
func WithHeaders(h http.Header) CallOption {
	return func(c *callConfig) {
		for k, vs := range h {
			for _, v := range vs {
				c.headers.Add(k, v)
			}
		}
	}
}

func WithQuery(key, value string) CallOption {
	return func(c *callConfig) { c.query.Add(key, value) }
}

// Upload posts fields to path and decodes an accepted response into T.
//
// The returned error is non-nil for fields that cannot be encoded and for
// transport failures. In the transport case the Outcome is also returned,
// with Kind KindTransport and Err set to the same error.
func Upload[T any](ctx context.Context, u *Uploader, path string, fields Fields, opts ...CallOption) (*Outcome[T], error) {
	call := &callConfig{
		statusText: u.statusText,
		headers:    http.Header{},
		query:      url.Values{},
	}
	for _, opt := range opts {
		opt(call)
	}

	ctx, span := u.tracer.Start(ctx, "counsel.upload", trace.WithAttributes(attribute.String("counsel.path", path)))
	defer span.End()

	handle := u.overlays.Acquire(call.statusText)
	defer handle.Release()

	body, err := encode(fields, u.maxBytes)
	if err != nil {
		handle.Release()
		u.metrics.record("invalid")
		span.RecordError(err)
		span.SetStatus(codes.Error, "encode")
		u.logger.Error("Failed to encode upload", "path", path, "error", err)
		return nil, err
	}
	u.metrics.uploadedBytes.Observe(float64(body.fileSize))

	call.headers.Set("Content-Type", body.contentType)
	u.logger.Debug("Uploading", "path", path, "file", body.fileName, "bytes", body.fileSize)

	resp, err := u.poster.PostRaw(ctx, path, bytes.NewReader(body.body), &client.RequestConfig{
		Headers: call.headers,
		Query:   call.query,
	})
	handle.Release()

	if err != nil {
		u.metrics.record(string(KindTransport))
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport failure")
		u.logger.Error("Upload failed before a response arrived", "path", path, "error", err)
		return &Outcome[T]{Kind: KindTransport, Err: err}, err
	}
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if !resp.OK() {
		apiErr := client.ParseErrorBody(resp.StatusCode, resp.Body, DefaultFailureMessage)
		u.metrics.record(string(KindRejected))
		span.SetStatus(codes.Error, "rejected")
		u.logger.Warn("Upload rejected", "path", path, "status_code", resp.StatusCode, "code", apiErr.Code, "message", apiErr.Message, "rid", apiErr.RequestID)
		return &Outcome[T]{
			Kind:       KindRejected,
			StatusCode: resp.StatusCode,
			Failure: &Failure{
				StatusCode: resp.StatusCode,
				Code:       apiErr.Code,
				Message:    apiErr.Message,
				RequestID:  apiErr.RequestID,
			},
			Raw: resp.Body,
		}, nil
	}

	u.notifier.Success(u.successMessage)
	u.metrics.record(string(KindSuccess))
	return decodeAccepted[T](u.logger, path, resp), nil
}

// acceptedBody is the envelope of an accepted upload. Every member is
// optional.
type acceptedBody struct {
	Code      *int            `json:"code"`
	Message   *string         `json:"message"`
	RID       *string         `json:"rid"`
	RequestID *string         `json:"requestId"`
	Data      json.RawMessage `json:"data"`
}

// decodeAccepted never fails: a body that does not fit T leaves Data at its
// zero value and is kept in Raw.
func decodeAccepted[T any](logger *slog.Logger, path string, resp *client.Response) *Outcome[T] {
	out := &Outcome[T]{
		Kind:       KindSuccess,
		StatusCode: resp.StatusCode,
		Code:       resp.StatusCode,
		Message:    DefaultSuccessMessage,
		Raw:        resp.Body,
	}

	raw := bytes.TrimSpace(resp.Body)
	if len(raw) == 0 {
		return out
	}

	src := raw
	var env acceptedBody
	if err := json.Unmarshal(raw, &env); err == nil {
		if env.Code != nil && *env.Code != 0 {
			out.Code = *env.Code
		}
		if env.Message != nil && *env.Message != "" {
			out.Message = *env.Message
		}
		switch {
		case env.RID != nil && *env.RID != "":
			out.RequestID = *env.RID
		case env.RequestID != nil && *env.RequestID != "":
			out.RequestID = *env.RequestID
		}
		if len(env.Data) > 0 && !bytes.Equal(env.Data, []byte("null")) {
			src = env.Data
		}
	}

	if err := json.Unmarshal(src, &out.Data); err != nil {
		var zero T
		out.Data = zero
		logger.Warn("Accepted upload body does not match the result type", "path", path, "status_code", resp.StatusCode, "error", err)
	}
	return out
}
