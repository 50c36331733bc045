package qq

import (
	"context"

	"github.com/kbukum/qqconnect/errors"
	"github.com/kbukum/qqconnect/logger"
	"github.com/kbukum/qqconnect/observability"
)

// MeEndpoint is the openid lookup endpoint under AuthURL.
const MeEndpoint = "me"

// OpenID returns the openid of the authorized user, resolving and caching
// it on first use. Resolution needs a valid token.
func (c *Client) OpenID(ctx context.Context) (string, error) {
	tok := c.Token()
	if tok.OpenID != "" {
		return tok.OpenID, nil
	}
	if tok.Expired(c.now()) {
		return "", errors.MissingToken("a valid access token is required to resolve the openid")
	}

	ctx, span := observability.StartSpan(ctx, c.tracer, observability.SpanOpenID)
	openid, err := c.resolveOpenID(ctx, tok.AccessToken)
	observability.EndSpan(span, err)
	if err != nil {
		return "", err
	}

	c.cacheOpenID(tok.AccessToken, openid)
	c.log.Debug("openid resolved", logger.Fields(logger.FieldOpenID, openid))
	return openid, nil
}

func (c *Client) resolveOpenID(ctx context.Context, accessToken string) (string, error) {
	res, err := c.http.Get(ctx, c.cfg.AuthURL+MeEndpoint, accessToken, nil)
	if err != nil {
		return "", err
	}
	openid := res.String("openid")
	if openid == "" {
		return "", errors.InvalidResponse("openid missing from response")
	}
	return openid, nil
}
