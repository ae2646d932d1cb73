package slog_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/readweb"
	"github.com/fwojciec/readweb/mock"
	rwslog "github.com/fwojciec/readweb/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fetching(html string, err error) *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(context.Context, string) (string, error) {
			return html, err
		},
	}
}

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("logs page size at debug", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer

		html, err := rwslog.NewLoggingFetcher(fetching("<html>content</html>", nil), newLogger(&buf)).Fetch(context.Background(), "https://docs.example.com/guide")

		require.NoError(t, err)
		assert.Equal(t, "<html>content</html>", html)
		output := buf.String()
		assert.Contains(t, output, "level=DEBUG")
		assert.Contains(t, output, "url=https://docs.example.com/guide")
		assert.Contains(t, output, "bytes=20")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs missing pages at info", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := fetching("", readweb.Errorf(readweb.ENOTFOUND, "page not found: 404"))

		_, err := rwslog.NewLoggingFetcher(inner, newLogger(&buf)).Fetch(context.Background(), "https://docs.example.com/gone")

		assert.Equal(t, readweb.ENOTFOUND, readweb.ErrorCode(err))
		assert.Contains(t, buf.String(), "level=INFO")
		assert.Contains(t, buf.String(), "page not found")
	})

	t.Run("logs other failures at warn with their code", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer

		_, err := rwslog.NewLoggingFetcher(fetching("", errors.New("network error")), newLogger(&buf)).Fetch(context.Background(), "https://docs.example.com/guide")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "level=WARN")
		assert.Contains(t, output, "code=internal")
		assert.Contains(t, output, `err="network error"`)
	})
}

func TestLoggingFetcher_Close(t *testing.T) {
	t.Parallel()

	closed := false
	inner := &mock.Fetcher{
		CloseFn: func() error {
			closed = true
			return nil
		},
	}

	require.NoError(t, rwslog.NewLoggingFetcher(inner, newLogger(&bytes.Buffer{})).Close())
	assert.True(t, closed)
}
