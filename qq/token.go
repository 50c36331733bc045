package qq

import (
	"time"

	"golang.org/x/oauth2"
)

// Token is the user authorization state held by a Client.
type Token struct {
	AccessToken  string            `json:"access_token"`
	OpenID       string            `json:"openid,omitempty"`
	RefreshToken string            `json:"refresh_token,omitempty"`
	ExpiresAt    time.Time         `json:"expires_at"`
	Extra        map[string]string `json:"extra,omitempty"`
}

// Expired reports whether the token is absent or past its expiry at now.
func (t Token) Expired(now time.Time) bool {
	return t.AccessToken == "" || now.After(t.ExpiresAt)
}

// ExpiresIn returns the time left until expiry, zero once expired.
func (t Token) ExpiresIn(now time.Time) time.Duration {
	if t.Expired(now) {
		return 0
	}
	return t.ExpiresAt.Sub(now)
}

// OAuth2 returns the token as an *oauth2.Token. OpenID and Extra are
// available through its Extra method.
func (t Token) OAuth2() *oauth2.Token {
	extra := make(map[string]any, len(t.Extra)+1)
	for k, v := range t.Extra {
		extra[k] = v
	}
	if t.OpenID != "" {
		extra["openid"] = t.OpenID
	}
	tok := &oauth2.Token{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		Expiry:       t.ExpiresAt,
	}
	return tok.WithExtra(extra)
}

// TokenFromOAuth2 converts an *oauth2.Token, reading openid from its extras.
func TokenFromOAuth2(tok *oauth2.Token) Token {
	if tok == nil {
		return Token{}
	}
	t := Token{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		ExpiresAt:    tok.Expiry,
	}
	if openid, ok := tok.Extra("openid").(string); ok {
		t.OpenID = openid
	}
	return t
}
