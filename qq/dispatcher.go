package qq

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/kbukum/qqconnect/errors"
	"github.com/kbukum/qqconnect/httpclient"
	"github.com/kbukum/qqconnect/observability"
)

// Dispatcher calls signed API endpoints with one verb.
type Dispatcher struct {
	client *Client
	verb   httpclient.Verb
}

// Verb returns the verb the dispatcher sends with.
func (d *Dispatcher) Verb() httpclient.Verb { return d.verb }

// EndpointPath maps an endpoint name to its path: "user__get_user_info"
// becomes "user/get_user_info". Names already using "/" pass through.
func EndpointPath(name string) string {
	return strings.TrimPrefix(strings.ReplaceAll(name, "__", "/"), "/")
}

// Call invokes endpoint with params, adding access_token, openid,
// oauth_consumer_key and format=json. These override caller values of
// the same name. A missing or expired token fails before any request.
func (d *Dispatcher) Call(ctx context.Context, endpoint string, params httpclient.Params) (*httpclient.Result, error) {
	c := d.client
	if c.IsExpired() {
		return nil, errors.TokenRevoked()
	}

	path := EndpointPath(endpoint)
	ctx, span := observability.StartSpan(ctx, c.tracer, observability.SpanSignedAPI,
		attribute.String(observability.AttrVerb, string(d.verb)),
		attribute.String(observability.AttrEndpoint, path),
	)
	res, err := d.call(ctx, path, params)
	if apiErr, ok := errors.AsAPIError(err); ok {
		observability.SetSpanAttribute(ctx, observability.AttrAPICode, apiErr.Code)
	}
	observability.EndSpan(span, err)
	return res, err
}

func (d *Dispatcher) call(ctx context.Context, path string, params httpclient.Params) (*httpclient.Result, error) {
	c := d.client
	openid, err := c.OpenID(ctx)
	if err != nil {
		return nil, err
	}

	signed := params.Clone()
	signed["oauth_consumer_key"] = c.cfg.AppID
	signed["format"] = "json"
	signed["openid"] = openid

	return c.http.Call(ctx, httpclient.Request{
		Verb:   d.verb,
		URL:    c.cfg.APIURL + path,
		Token:  c.Token().AccessToken,
		Params: signed,
	})
}
