package httpclient

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-cleanhttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/qqconnect/errors"
	"github.com/kbukum/qqconnect/logger"
	"github.com/kbukum/qqconnect/observability"
)

// Verb selects how a call is sent.
type Verb string

const (
	// VerbGet sends parameters in the query string only.
	VerbGet Verb = "GET"
	// VerbPost also sends parameters as a form body.
	VerbPost Verb = "POST"
	// VerbUpload sends a multipart/form-data POST.
	VerbUpload Verb = "UPLOAD"
)

// Request describes one API call.
type Request struct {
	// Verb is the call style.
	Verb Verb
	// URL is the endpoint without query string.
	URL string
	// Token, when set, is sent as access_token.
	Token string
	// Params are the call parameters.
	Params Params
}

// Client executes API calls and decodes their responses.
type Client struct {
	httpClient  *http.Client
	config      Config
	log         *logger.Logger
	tracer      trace.Tracer
	instruments *observability.Instruments
	now         func() time.Time
}

type options struct {
	httpClient     *http.Client
	transport      http.RoundTripper
	log            *logger.Logger
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
	now            func() time.Time
}

// Option configures a Client.
type Option func(*options)

// WithHTTPClient uses hc for all calls. Config.Timeout is not applied to it.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.httpClient = hc }
}

// WithTransport sets the round tripper of the default http.Client.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) { o.transport = rt }
}

// WithLogger sets the logger. Defaults to the global logger.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithTracerProvider sets the tracer provider. Defaults to the otel global.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) { o.tracerProvider = tp }
}

// WithMeterProvider sets the meter provider. Defaults to the otel global.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) { o.meterProvider = mp }
}

// WithClock sets the time source used for multipart boundaries and timings.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// New creates a new client with the given configuration.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.now == nil {
		o.now = time.Now
	}
	if o.log == nil {
		o.log = logger.GetGlobalLogger()
	}

	hc := o.httpClient
	if hc == nil {
		transport := o.transport
		if transport == nil {
			pooled := cleanhttp.DefaultPooledTransport()
			tlsCfg, err := cfg.TLS.Build()
			if err != nil {
				return nil, errors.InvalidConfig("tls", err.Error()).WithCause(err)
			}
			if tlsCfg != nil {
				pooled.TLSClientConfig = tlsCfg
			}
			transport = pooled
		}
		hc = &http.Client{Transport: transport, Timeout: cfg.Timeout}
	}

	instruments, err := observability.NewInstruments(o.meterProvider)
	if err != nil {
		return nil, err
	}

	return &Client{
		httpClient:  hc,
		config:      cfg,
		log:         o.log.WithComponent("httpclient"),
		tracer:      observability.Tracer(o.tracerProvider),
		instruments: instruments,
		now:         o.now,
	}, nil
}

// Get issues a GET call.
func (c *Client) Get(ctx context.Context, target, token string, params Params) (*Result, error) {
	return c.Call(ctx, Request{Verb: VerbGet, URL: target, Token: token, Params: params})
}

// Post issues a form POST call.
func (c *Client) Post(ctx context.Context, target, token string, params Params) (*Result, error) {
	return c.Call(ctx, Request{Verb: VerbPost, URL: target, Token: token, Params: params})
}

// Upload issues a multipart POST call.
func (c *Client) Upload(ctx context.Context, target, token string, params Params) (*Result, error) {
	return c.Call(ctx, Request{Verb: VerbUpload, URL: target, Token: token, Params: params})
}

// Call sends req and decodes the response.
//
// Non-2xx responses are decoded like any other unless StrictStatus is set.
// A decoded object carrying "error" or a nonzero "ret" yields an
// *errors.APIError. A body that is not JSON is returned as raw text.
func (c *Client) Call(ctx context.Context, req Request) (*Result, error) {
	requestID := observability.RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	endpoint := stripQuery(req.URL)

	ctx, call := observability.BeginCall(ctx, c.tracer, c.instruments, string(req.Verb), endpoint, requestID, c.now())
	log := c.log.WithFields(logger.Fields(
		logger.FieldRequestID, requestID,
		logger.FieldMethod, string(req.Verb),
		logger.FieldEndpoint, endpoint,
	))
	log.Debug("api call")

	result, err := c.execute(ctx, req)

	outcome, status := observability.OutcomeOK, 0
	if result != nil {
		status = result.statusCode
	}
	switch {
	case errors.IsAPIError(err):
		outcome = observability.OutcomeAPIError
	case IsStatus(err):
		outcome = observability.OutcomeHTTPError
	case err != nil:
		outcome = observability.OutcomeTransport
	}
	call.End(ctx, outcome, status, err, c.now())

	fields := logger.Fields(logger.FieldStatus, status, observability.AttrOutcome, outcome)
	if err != nil {
		log.WithError(err).Debug("api call failed", fields)
		return nil, err
	}
	log.Debug("api call completed", fields)
	return result, nil
}

func (c *Client) execute(ctx context.Context, req Request) (*Result, error) {
	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		redactURLError(err)
		if stderrors.Is(ctx.Err(), context.DeadlineExceeded) || isTimeout(err) {
			return nil, NewTimeoutError(err)
		}
		// cancellation stays a connection error; errors.Is(err, context.Canceled) holds
		return nil, NewConnectionError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewConnectionError(err)
	}

	result := ParseBody(body)
	result.statusCode = resp.StatusCode
	result.header = resp.Header

	if apiErr := result.CheckAPIError(); apiErr != nil {
		return result, apiErr
	}
	if c.config.StrictStatus {
		if statusErr := ClassifyStatusCode(resp.StatusCode, body); statusErr != nil {
			return result, statusErr
		}
	}
	return result, nil
}

// buildRequest constructs an *http.Request from the client config and request.
func (c *Client) buildRequest(ctx context.Context, req Request) (*http.Request, error) {
	params := req.Params.Clone()
	if req.Token != "" {
		params["access_token"] = req.Token
	}
	if req.Verb != VerbGet {
		for _, k := range CommonParams {
			if _, ok := params[k]; !ok {
				params[k] = ""
			}
		}
	}

	encoded := EncodeQuery(params)
	target := appendQuery(req.URL, encoded)

	var (
		method      = http.MethodPost
		body        io.Reader
		contentType string
	)
	switch req.Verb {
	case VerbGet:
		method = http.MethodGet
	case VerbPost:
		body = strings.NewReader(encoded)
		contentType = "application/x-www-form-urlencoded"
	case VerbUpload:
		mp, err := EncodeMultipart(params, c.now())
		if err != nil {
			return nil, NewEncodeError(err)
		}
		body = bytes.NewReader(mp.Data)
		contentType = mp.ContentType()
	default:
		return nil, NewEncodeError(stderrors.New("unknown verb " + string(req.Verb)))
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, NewEncodeError(err)
	}

	for k, v := range c.config.Headers {
		httpReq.Header.Set(k, v)
	}
	httpReq.Header.Set("User-Agent", c.config.UserAgent)
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	return httpReq, nil
}

func isTimeout(err error) bool {
	var ne net.Error
	return stderrors.As(err, &ne) && ne.Timeout()
}

// redactURLError drops the query, which carries access_token, from a *url.Error.
func redactURLError(err error) {
	var ue *url.Error
	if stderrors.As(err, &ue) {
		ue.URL = stripQuery(ue.URL)
	}
}

// stripQuery returns target without its query string, for logs and spans.
func stripQuery(target string) string {
	u, err := url.Parse(target)
	if err != nil {
		if i := strings.IndexByte(target, '?'); i >= 0 {
			return target[:i]
		}
		return target
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}
