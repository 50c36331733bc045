package testutil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
)

// Paths served by default.
const (
	PathToken       = "/oauth2.0/token"
	PathMe          = "/oauth2.0/me"
	PathGetUserInfo = "/user/get_user_info"
	PathAddT        = "/t/add_t"
	PathAddPicT     = "/t/add_pic_t"
)

// Default canned values.
const (
	AppID       = "100200"
	AccessToken = "ABC"
	OpenID      = "OPENID"
	ExpiresIn   = 100
)

// DefaultRoutes returns the bodies served for each path.
func DefaultRoutes() map[string]Route {
	return map[string]Route{
		PathToken: {Body: fmt.Sprintf("access_token=%s&expires_in=%d", AccessToken, ExpiresIn)},
		PathMe:    {Body: fmt.Sprintf("callback( {\"client_id\":\"%s\",\"openid\":\"%s\"} );\n", AppID, OpenID)},
		PathGetUserInfo: {Body: `{"ret":0,"msg":"","is_lost":0,"nickname":"Tom","gender":"男",` +
			`"figureurl":"http://qzapp.qlogo.cn/qzapp/100200/OPENID/30","is_yellow_vip":"0","level":"0"}`},
		PathAddT:    {Body: `{"ret":0,"msg":"ok","errcode":0,"data":{"id":"12345","time":1700000000}}`},
		PathAddPicT: {Body: `{"ret":0,"msg":"ok","errcode":0,"data":{"id":"67890","time":1700000001}}`},
	}
}

// Route is a canned response.
type Route struct {
	Status int // defaults to 200
	Body   string
}

// Request is a recorded request.
type Request struct {
	Method      string
	Path        string
	Query       url.Values
	Form        url.Values // set for form-encoded bodies
	ContentType string
	Header      http.Header
	Body        []byte
}

// Server is a fake QQ Connect service.
type Server struct {
	srv *httptest.Server

	mu     sync.Mutex
	routes map[string]Route
	calls  map[string][]Request
}

// NewServer creates a server with the default routes. Call Start before use.
func NewServer() *Server {
	return &Server{
		routes: DefaultRoutes(),
		calls:  make(map[string][]Request),
	}
}

// Name returns the component name.
func (s *Server) Name() string { return "qq-fake-server" }

// Start begins serving on a loopback address.
func (s *Server) Start(_ context.Context) error {
	if s.srv != nil {
		return fmt.Errorf("%s: already started", s.Name())
	}
	s.srv = httptest.NewServer(http.HandlerFunc(s.handle))
	return nil
}

// Stop shuts the server down.
func (s *Server) Stop(_ context.Context) error {
	if s.srv == nil {
		return nil
	}
	s.srv.Close()
	s.srv = nil
	return nil
}

// Reset restores the default routes and clears recorded requests.
func (s *Server) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes = DefaultRoutes()
	s.calls = make(map[string][]Request)
	return nil
}

// URL returns the base URL of the running server.
func (s *Server) URL() string {
	if s.srv == nil {
		return ""
	}
	return s.srv.URL
}

// AuthURL returns the OAuth2 base URL, with trailing slash.
func (s *Server) AuthURL() string { return s.URL() + "/oauth2.0/" }

// APIURL returns the Open API base URL, with trailing slash.
func (s *Server) APIURL() string { return s.URL() + "/" }

// Set overrides the 200 response body for path.
func (s *Server) Set(path, body string) {
	s.SetRoute(path, Route{Body: body})
}

// SetRoute overrides the response for path.
func (s *Server) SetRoute(path string, r Route) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[path] = r
}

// Count returns the number of requests received for path.
func (s *Server) Count(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls[path])
}

// Total returns the number of requests received for all paths.
func (s *Server) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.calls {
		n += len(c)
	}
	return n
}

// Last returns the most recent request for path.
func (s *Server) Last(path string) (Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	calls := s.calls[path]
	if len(calls) == 0 {
		return Request{}, false
	}
	return calls[len(calls)-1], true
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	req := Request{
		Method:      r.Method,
		Path:        r.URL.Path,
		Query:       r.URL.Query(),
		ContentType: r.Header.Get("Content-Type"),
		Header:      r.Header.Clone(),
		Body:        body,
	}
	if strings.HasPrefix(req.ContentType, "application/x-www-form-urlencoded") {
		req.Form, _ = url.ParseQuery(string(body))
	}

	s.mu.Lock()
	s.calls[req.Path] = append(s.calls[req.Path], req)
	route, ok := s.routes[req.Path]
	s.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"ret":-1,"msg":"unknown endpoint"}`)
		return
	}
	if route.Status != 0 {
		w.WriteHeader(route.Status)
	}
	_, _ = io.WriteString(w, route.Body)
}
