package qq

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/kbukum/qqconnect/errors"
	"github.com/kbukum/qqconnect/httpclient"
	"github.com/kbukum/qqconnect/logger"
	"github.com/kbukum/qqconnect/observability"
)

const (
	// DefaultGrantType is the grant_type of a code exchange.
	DefaultGrantType = "authorization_code"
	// DefaultTokenEndpoint is the token endpoint under AuthURL.
	DefaultTokenEndpoint = "token"
)

type tokenRequest struct {
	ClientID     string `url:"client_id"`
	ClientSecret string `url:"client_secret"`
	RedirectURI  string `url:"redirect_uri"`
	Code         string `url:"code"`
	GrantType    string `url:"grant_type"`
}

type exchangeOptions struct {
	redirectURI string
	grantType   string
	endpoint    string
}

// ExchangeOption customizes ExchangeCode.
type ExchangeOption func(*exchangeOptions)

// WithExchangeRedirectURI overrides the configured redirect URI.
func WithExchangeRedirectURI(uri string) ExchangeOption {
	return func(o *exchangeOptions) { o.redirectURI = uri }
}

// WithGrantType overrides the grant_type. Defaults to "authorization_code".
func WithGrantType(grantType string) ExchangeOption {
	return func(o *exchangeOptions) { o.grantType = grantType }
}

// WithTokenEndpoint sets the path under AuthURL. Defaults to "token".
func WithTokenEndpoint(endpoint string) ExchangeOption {
	return func(o *exchangeOptions) { o.endpoint = endpoint }
}

// ExchangeCode trades an authorization code for an access token. The
// token's expiry is the current time plus the returned expires_in. On
// success the token replaces the client's token and is returned.
func (c *Client) ExchangeCode(ctx context.Context, code string, opts ...ExchangeOption) (*Token, error) {
	o := exchangeOptions{grantType: DefaultGrantType, endpoint: DefaultTokenEndpoint}
	for _, opt := range opts {
		opt(&o)
	}

	redirect, err := c.redirectURI(o.redirectURI)
	if err != nil {
		return nil, err
	}

	ctx, span := observability.StartSpan(ctx, c.tracer, observability.SpanExchange,
		attribute.String(observability.AttrEndpoint, o.endpoint))
	tok, err := c.exchange(ctx, code, redirect, o)
	observability.EndSpan(span, err)
	if err != nil {
		c.log.WithError(err).Warn("code exchange failed")
		return nil, err
	}

	c.SetToken(*tok)
	c.log.Info("access token obtained", logger.Fields(
		"access_token", logger.Mask(tok.AccessToken),
		"expires_at", tok.ExpiresAt.Format(time.RFC3339),
	))
	return tok, nil
}

func (c *Client) exchange(ctx context.Context, code, redirect string, o exchangeOptions) (*Token, error) {
	params, err := httpclient.ParamsFromStruct(tokenRequest{
		ClientID:     c.cfg.AppID,
		ClientSecret: c.cfg.AppKey,
		RedirectURI:  redirect,
		Code:         code,
		GrantType:    o.grantType,
	})
	if err != nil {
		return nil, errors.Internal(err)
	}

	res, err := c.http.Get(ctx, c.cfg.AuthURL+o.endpoint, "", params)
	if err != nil {
		return nil, err
	}

	values, err := tokenValues(res)
	if err != nil {
		return nil, err
	}
	return parseToken(values, c.now())
}

// tokenValues reads the token response, which is form-encoded or a JSON object.
func tokenValues(res *httpclient.Result) (map[string]string, error) {
	out := make(map[string]string)
	if res.IsJSON() {
		for _, k := range res.Keys() {
			out[k] = res.String(k)
		}
		return out, nil
	}

	values, err := url.ParseQuery(strings.TrimSpace(res.Raw()))
	if err != nil {
		return nil, errors.InvalidResponse(fmt.Sprintf("token response is not form-encoded: %v", err)).WithCause(err)
	}
	for k, v := range values {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out, nil
}

// parseToken builds a Token from the response fields, resolving expires_in against now.
func parseToken(values map[string]string, now time.Time) (*Token, error) {
	accessToken := values["access_token"]
	if accessToken == "" {
		return nil, errors.InvalidResponse("token response has no access_token")
	}
	rawExpires, ok := values["expires_in"]
	if !ok {
		return nil, errors.InvalidResponse("token response has no expires_in")
	}
	seconds, err := strconv.ParseFloat(strings.TrimSpace(rawExpires), 64)
	if err != nil {
		return nil, errors.InvalidResponse(fmt.Sprintf("invalid expires_in %q", rawExpires)).WithCause(err)
	}

	tok := &Token{
		AccessToken:  accessToken,
		RefreshToken: values["refresh_token"],
		OpenID:       values["openid"],
		ExpiresAt:    now.Add(time.Duration(seconds * float64(time.Second))),
	}
	for k, v := range values {
		switch k {
		case "access_token", "expires_in", "refresh_token", "openid":
			continue
		}
		if tok.Extra == nil {
			tok.Extra = make(map[string]string)
		}
		tok.Extra[k] = v
	}
	return tok, nil
}
