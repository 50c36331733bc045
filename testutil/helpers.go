package testutil

import (
	"context"
	"testing"
)

// Setup starts a fake server and stops it when the test ends.
func Setup(t testing.TB) *Server {
	t.Helper()
	s := NewServer()
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("failed to start %s: %v", s.Name(), err)
	}
	t.Cleanup(func() {
		if err := s.Stop(context.Background()); err != nil {
			t.Errorf("failed to stop %s: %v", s.Name(), err)
		}
	})
	return s
}

// MustLast returns the most recent request for path, failing the test if there is none.
func (s *Server) MustLast(t testing.TB, path string) Request {
	t.Helper()
	r, ok := s.Last(path)
	if !ok {
		t.Fatalf("no request to %s", path)
	}
	return r
}
