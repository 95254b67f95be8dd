package customhttp

import (
	"net/http"

	"golang.org/x/time/rate"
)

type HTTPCommand interface {
	Do(req *http.Request) (resp *http.Response, err error)
}

type httpCommandFunc func(req *http.Request) (resp *http.Response, err error)

func (h httpCommandFunc) Do(req *http.Request) (resp *http.Response, err error) {
	return h(req)
}

type HTTPCommandBuilder struct {
	client      HTTPCommand
	middlewares []middleware
}

func New(options ...func(*HTTPCommandBuilder)) *HTTPCommandBuilder {
	builder := &HTTPCommandBuilder{
		client: http.DefaultClient,
	}

	for _, option := range options {
		option(builder)
	}
	return builder
}

// Build wraps the client with the configured middlewares. The request id is
// always attached first so every later middleware and log line can see it.
func (b *HTTPCommandBuilder) Build() HTTPCommand {
	mws := append([]middleware{requestIDMiddleware()}, b.middlewares...)
	mws = append(mws, loggingMiddleware())
	mw := chainMiddleware(mws...)
	return mw(b.client.Do)
}

// WithHTTPClient allows the user to supply their own http.Client
func WithHTTPClient(client HTTPCommand) func(*HTTPCommandBuilder) {
	return func(builder *HTTPCommandBuilder) {
		builder.client = client
	}
}

// WithRateLimit throttles outgoing calls to the backend. A nil limiter is ignored.
func WithRateLimit(limiter *rate.Limiter) func(*HTTPCommandBuilder) {
	return func(builder *HTTPCommandBuilder) {
		if limiter != nil {
			builder.middlewares = append(builder.middlewares, rateLimitMiddleware(limiter))
		}
	}
}
