package qq

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kbukum/qqconnect/logger"
	"github.com/kbukum/qqconnect/testutil"
)

const (
	testAppID    = testutil.AppID
	testAppKey   = "app-secret"
	testRedirect = "https://example.com/callback"
)

func testConfig(f *testutil.Server) Config {
	return Config{
		AppID:       testAppID,
		AppKey:      testAppKey,
		RedirectURI: testRedirect,
		AuthURL:     f.AuthURL(),
		APIURL:      f.APIURL(),
	}
}

// clock is a settable time source.
type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newClock() *clock {
	return &clock{t: time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)}
}

func newTestClient(t *testing.T, cfg Config, clk *clock, opts ...Option) *Client {
	t.Helper()
	opts = append([]Option{WithLogger(logger.Nop()), WithClock(clk.now)}, opts...)
	c, err := New(cfg, opts...)
	require.NoError(t, err)
	return c
}

// authorized returns a client holding a token valid for an hour.
func authorized(t *testing.T, f *testutil.Server, clk *clock) *Client {
	t.Helper()
	c := newTestClient(t, testConfig(f), clk)
	c.SetAccessToken("TOKEN", clk.now().Add(time.Hour))
	return c
}
