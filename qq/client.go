package qq

import (
	"context"
	"net/http"
	"sync"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/qqconnect/httpclient"
	"github.com/kbukum/qqconnect/logger"
	"github.com/kbukum/qqconnect/observability"
)

// Client is a QQ Connect API client. Credentials are fixed at construction;
// the token moves from absent to valid on ExchangeCode or SetToken and
// becomes expired as time passes.
type Client struct {
	cfg    Config
	http   *httpclient.Client
	log    *logger.Logger
	tracer trace.Tracer
	now    func() time.Time

	mu    sync.RWMutex
	token Token

	get    *Dispatcher
	post   *Dispatcher
	upload *Dispatcher
}

type options struct {
	now            func() time.Time
	log            *logger.Logger
	httpClient     *http.Client
	tracerProvider trace.TracerProvider
	httpOpts       []httpclient.Option
}

// Option configures a Client.
type Option func(*options)

// WithClock sets the time source used for token expiry.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithLogger sets the logger. Defaults to one built from Config.Logging,
// or the global logger when that is unset.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithHTTPClient sends all calls through hc.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.httpClient = hc }
}

// WithTracerProvider sets the tracer provider for API and HTTP spans.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) { o.tracerProvider = tp }
}

// WithHTTPOptions passes options through to the underlying httpclient.
func WithHTTPOptions(opts ...httpclient.Option) Option {
	return func(o *options) { o.httpOpts = append(o.httpOpts, opts...) }
}

// New creates a client from cfg.
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
		if cfg.loggingSet() {
			o.log = logger.New(&cfg.Logging, "qqconnect")
		} else {
			o.log = logger.GetGlobalLogger()
		}
	}

	httpOpts := []httpclient.Option{
		httpclient.WithLogger(o.log),
		httpclient.WithClock(o.now),
	}
	if o.httpClient != nil {
		httpOpts = append(httpOpts, httpclient.WithHTTPClient(o.httpClient))
	}
	if o.tracerProvider != nil {
		httpOpts = append(httpOpts, httpclient.WithTracerProvider(o.tracerProvider))
	}
	httpOpts = append(httpOpts, o.httpOpts...)

	hc, err := httpclient.New(cfg.HTTP, httpOpts...)
	if err != nil {
		return nil, err
	}

	c := &Client{
		cfg:    cfg,
		http:   hc,
		log:    o.log.WithComponent("qq").WithFields(logger.Fields("app_id", cfg.AppID)),
		tracer: observability.Tracer(o.tracerProvider),
		now:    o.now,
	}
	c.get = &Dispatcher{client: c, verb: httpclient.VerbGet}
	c.post = &Dispatcher{client: c, verb: httpclient.VerbPost}
	c.upload = &Dispatcher{client: c, verb: httpclient.VerbUpload}
	return c, nil
}

// AppID returns the application id.
func (c *Client) AppID() string { return c.cfg.AppID }

// Config returns a copy of the client configuration.
func (c *Client) Config() Config { return c.cfg }

// SetAccessToken installs a token obtained elsewhere. The cached openid is cleared.
func (c *Client) SetAccessToken(accessToken string, expiresAt time.Time) {
	c.SetToken(Token{AccessToken: accessToken, ExpiresAt: expiresAt})
}

// SetToken replaces the token, including its openid when set.
func (c *Client) SetToken(t Token) {
	c.mu.Lock()
	c.token = t
	c.mu.Unlock()
}

// Token returns a copy of the current token.
func (c *Client) Token() Token {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// IsExpired reports whether there is no token or it has expired.
func (c *Client) IsExpired() bool {
	return c.Token().Expired(c.now())
}

// Get returns the dispatcher for GET endpoints.
func (c *Client) Get() *Dispatcher { return c.get }

// Post returns the dispatcher for form POST endpoints.
func (c *Client) Post() *Dispatcher { return c.post }

// Upload returns the dispatcher for multipart endpoints.
func (c *Client) Upload() *Dispatcher { return c.upload }

// Call invokes a GET endpoint.
func (c *Client) Call(ctx context.Context, endpoint string, params httpclient.Params) (*httpclient.Result, error) {
	return c.get.Call(ctx, endpoint, params)
}

func (c *Client) cacheOpenID(accessToken, openid string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	// the token may have been replaced while resolving
	if c.token.AccessToken == accessToken {
		c.token.OpenID = openid
	}
}
