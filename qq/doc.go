// Package qq is a client for the QQ Connect OAuth2 and Open API.
//
// A Client holds the application credentials and, once the user has
// authorized, an access token and the user's openid. The usual flow:
//
//	client, err := qq.New(qq.Config{AppID: "100200", AppKey: key, RedirectURI: cb})
//
//	// 1. send the user to the authorization page
//	http.Redirect(w, r, mustURL(client.AuthorizeURL(qq.WithScopes("get_user_info"))), http.StatusFound)
//
//	// 2. on callback, trade the code for a token
//	tok, err := client.ExchangeCode(ctx, r.URL.Query().Get("code"))
//
//	// 3. call the API
//	info, err := client.GetUserInfo(ctx)
//	res, err := client.Post().Call(ctx, "t__add_t", httpclient.Params{"content": "hi"})
//
// Signed calls made while the token is absent or expired fail with a
// TOKEN_EXPIRED error before any request is sent.
package qq
