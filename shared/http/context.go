package http

import (
	"context"
	"net/http"
)

// WithContext returns a copy of client that binds every outgoing request to ctx.
// Used with SDKs that build their own requests without a context.
func WithContext(ctx context.Context, client *http.Client) *http.Client {
	transport := client.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	bound := *client
	bound.Transport = &contextRoundTripper{ctx: ctx, roundTripper: transport}
	return &bound
}

type contextRoundTripper struct {
	ctx          context.Context
	roundTripper http.RoundTripper
}

func (rt *contextRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return rt.roundTripper.RoundTrip(req.WithContext(rt.ctx))
}
