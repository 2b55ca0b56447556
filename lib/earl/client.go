// Package earl builds absolute urls for third-party endpoints and fetches
// them as json, text, parsed html or a redirect check.
package earl

import (
	"net/http"
	"time"

	"chatbot-backend/internal/telemetry"
	"chatbot-backend/lib/restyutil"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"golang.org/x/time/rate"
)

var tracer = otel.Tracer("chatbot.lib.earl")

const (
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "Mozilla/5.0 (compatible; chatbot-backend/1.0)"
)

type options struct {
	timeout    time.Duration
	userAgent  string
	transport  http.RoundTripper
	limiter    *rate.Limiter
	tel        telemetry.API
	tracerName string
	dump       restyutil.Output
}

type Option func(opts *options)

// WithTimeout bounds every request, including reading the body.
func WithTimeout(timeout time.Duration) Option {
	return func(opts *options) {
		opts.timeout = timeout
	}
}

func WithUserAgent(userAgent string) Option {
	return func(opts *options) {
		opts.userAgent = userAgent
	}
}

func WithTransport(transport http.RoundTripper) Option {
	return func(opts *options) {
		opts.transport = transport
	}
}

// WithLimiter makes every request wait on `limiter` before it is sent.
func WithLimiter(limiter *rate.Limiter) Option {
	return func(opts *options) {
		opts.limiter = limiter
	}
}

func WithTelemetry(tel telemetry.API) Option {
	return func(opts *options) {
		opts.tel = tel
	}
}

func WithTracerName(name string) Option {
	return func(opts *options) {
		opts.tracerName = name
	}
}

// WithDump writes every exchange to `output`, see restyutil.Dump.
func WithDump(output restyutil.Output) Option {
	return func(opts *options) {
		opts.dump = output
	}
}

// Client holds the http configuration shared by every Earl it creates, it is
// safe for concurrent use. Earls themselves are not.
type Client struct {
	http *resty.Client
	// head never follows redirects.
	head *resty.Client
	tel  telemetry.API
}

func NewClient(opts ...Option) *Client {
	o := options{
		timeout:    DefaultTimeout,
		userAgent:  DefaultUserAgent,
		tracerName: "earl/http",
	}
	for _, opt := range opts {
		opt(&o)
	}

	tel := telemetry.NewScopedAPI("earl", telemetry.OrDefault(o.tel))
	c := &Client{tel: tel}
	c.http = newResty(o, tel)
	c.head = newResty(o, tel)
	c.head.SetRedirectPolicy(resty.RedirectPolicyFunc(func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}))
	return c
}

func newResty(o options, tel telemetry.API) *resty.Client {
	client := resty.New()
	client.SetTimeout(o.timeout)
	client.SetHeader("user-agent", o.userAgent)
	if o.transport != nil {
		client.SetTransport(o.transport)
	}

	// instrumentation must be registered first so that its span is open
	// when the limiter hook fails.
	telemetry.InstrumentResty(client, tel, otel.Tracer(o.tracerName))
	if o.limiter != nil {
		limiter := o.limiter
		client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			return limiter.Wait(req.Context())
		})
	}
	if o.dump != nil {
		restyutil.Dump(client, o.dump)
	}
	return client
}
