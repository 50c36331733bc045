package qq

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/kbukum/qqconnect/errors"
	"github.com/kbukum/qqconnect/validation"
)

const (
	// DefaultState is sent when the caller gives no state.
	DefaultState = "default_state"
	// DefaultAuthorizeEndpoint is the authorization page under AuthURL.
	DefaultAuthorizeEndpoint = "authorize"
)

type authorizeOptions struct {
	redirectURI  string
	scopes       []string
	state        *string
	display      string
	responseType string
	endpoint     string
}

// AuthorizeOption customizes AuthorizeURL.
type AuthorizeOption func(*authorizeOptions)

// WithRedirectURI overrides the configured redirect URI.
func WithRedirectURI(uri string) AuthorizeOption {
	return func(o *authorizeOptions) { o.redirectURI = uri }
}

// WithScopes sets the requested scopes, sent comma-joined.
func WithScopes(scopes ...string) AuthorizeOption {
	return func(o *authorizeOptions) { o.scopes = append(o.scopes, scopes...) }
}

// WithState sets the state parameter. An explicit empty state is sent as is.
func WithState(state string) AuthorizeOption {
	return func(o *authorizeOptions) { o.state = &state }
}

// WithDisplay sets the display parameter, e.g. "mobile".
func WithDisplay(display string) AuthorizeOption {
	return func(o *authorizeOptions) { o.display = display }
}

// WithResponseType overrides the configured response_type.
func WithResponseType(rt string) AuthorizeOption {
	return func(o *authorizeOptions) { o.responseType = rt }
}

// WithAuthorizeEndpoint sets the path under AuthURL. Defaults to "authorize".
func WithAuthorizeEndpoint(endpoint string) AuthorizeOption {
	return func(o *authorizeOptions) { o.endpoint = endpoint }
}

// AuthorizeURL builds the URL the user is redirected to for authorization.
// It fails when no redirect URI is given and none is configured.
func (c *Client) AuthorizeURL(opts ...AuthorizeOption) (string, error) {
	o := authorizeOptions{
		responseType: c.cfg.ResponseType,
		endpoint:     DefaultAuthorizeEndpoint,
	}
	for _, opt := range opts {
		opt(&o)
	}

	redirect, err := c.redirectURI(o.redirectURI)
	if err != nil {
		return "", err
	}
	state := DefaultState
	if o.state != nil {
		state = *o.state
	}

	conf := oauth2.Config{
		ClientID:    c.cfg.AppID,
		RedirectURL: redirect,
		Endpoint:    oauth2.Endpoint{AuthURL: c.cfg.AuthURL + o.endpoint},
	}
	params := []oauth2.AuthCodeOption{
		oauth2.SetAuthURLParam("response_type", o.responseType),
		oauth2.SetAuthURLParam("scope", strings.Join(o.scopes, ",")),
		oauth2.SetAuthURLParam("state", state),
	}
	if o.display != "" {
		params = append(params, oauth2.SetAuthURLParam("display", o.display))
	}
	return conf.AuthCodeURL(state, params...), nil
}

// GenerateState returns a random value suitable for the state parameter.
func GenerateState() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// redirectURI picks the per-call override or the configured value. An
// override is held to the same URL rule as Config.RedirectURI.
func (c *Client) redirectURI(override string) (string, error) {
	if override == "" {
		if c.cfg.RedirectURI == "" {
			return "", errors.MissingRedirectURI()
		}
		return c.cfg.RedirectURI, nil
	}
	if err := validation.New().Var("redirect_uri", override, redirectURIRule).Err(); err != nil {
		return "", err
	}
	return override, nil
}
