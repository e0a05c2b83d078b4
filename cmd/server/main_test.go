package main

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

type stubServer struct{ err error }

func (s stubServer) Shutdown(context.Context) error { return s.err }

type stubCloser struct {
	err    error
	closed *[]string
	name   string
}

func (c stubCloser) Close() error {
	*c.closed = append(*c.closed, c.name)
	return c.err
}

func TestShutdownLogsFailures(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	var closed []string

	shutdown(context.Background(), log, stubServer{err: errors.New("deadline exceeded")},
		closer{"watcher", stubCloser{closed: &closed, name: "watcher"}},
		closer{"lexicon store", stubCloser{err: errors.New("database locked"), closed: &closed, name: "store"}},
	)

	out := buf.String()
	t.Logf("log output:\n%s", out)
	for _, want := range []string{"http shutdown", "deadline exceeded", "close lexicon store", "database locked"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output lacks %q", want)
		}
	}
	if strings.Contains(out, "close watcher") {
		t.Error("successful close was logged as a failure")
	}
	if strings.Join(closed, ",") != "watcher,store" {
		t.Errorf("closed = %v, want watcher then store", closed)
	}
}

func TestShutdownQuiet(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	shutdown(context.Background(), log, stubServer{})
	if buf.Len() != 0 {
		t.Errorf("unexpected log output: %s", buf.String())
	}
}
