// Package httpclient executes calls against the QQ Connect HTTP API.
//
// A call is a verb, an endpoint URL, an optional access token and a set of
// parameters. Parameters are always sent in the query string; POST also
// sends them as a form body and UPLOAD as a multipart body. The response is
// stripped of any callback( ... ) wrapper and decoded into a Result, and
// the two remote error shapes ({"error": ...} and a nonzero {"ret": ...})
// are reported as *errors.APIError.
//
//	client, err := httpclient.New(httpclient.Config{Timeout: 10 * time.Second})
//
//	res, err := client.Get(ctx, "https://graph.qq.com/oauth2.0/me", token, nil)
//	openid := res.String("openid")
//
// Non-2xx bodies are decoded like 2xx ones. Set Config.StrictStatus to get
// an *Error for a non-2xx response that carried no API error.
package httpclient
