// Package testutil provides a fake QQ Connect server for tests.
//
// The server answers the OAuth2 endpoints (token, me) and the Open API
// endpoints with canned bodies, and records every request it receives so
// tests can assert on the query, form and multipart content that was sent.
//
//	func TestMyFeature(t *testing.T) {
//	    srv := testutil.Setup(t)
//	    client, _ := qq.New(qq.Config{
//	        AppID: "100200", AppKey: "secret", RedirectURI: "https://example.com/cb",
//	        AuthURL: srv.AuthURL(), APIURL: srv.APIURL(),
//	    })
//	    // ...
//	    assert.Equal(t, 1, srv.Count(testutil.PathMe))
//	}
//
// Routes can be overridden per test with Set, and Reset restores the
// default routes and clears recorded requests between cases.
package testutil
