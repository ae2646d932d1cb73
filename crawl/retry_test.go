package crawl_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/readweb"
	"github.com/fwojciec/readweb/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchWithRetry(t *testing.T) {
	t.Parallel()

	noDelays := []time.Duration{0, 0, 0}

	t.Run("returns first success", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(_ context.Context, _ string) (string, error) {
			calls++
			if calls < 3 {
				return "", errors.New("connection reset")
			}
			return "<html></html>", nil
		}

		html, err := crawl.FetchWithRetry(context.Background(), "https://example.com", fetch, noDelays, nil)

		require.NoError(t, err)
		assert.Equal(t, "<html></html>", html)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after all attempts", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(_ context.Context, _ string) (string, error) {
			calls++
			return "", readweb.Errorf(readweb.EUNAVAILABLE, "status 503")
		}

		_, err := crawl.FetchWithRetry(context.Background(), "https://example.com", fetch, noDelays, nil)

		assert.Equal(t, readweb.EUNAVAILABLE, readweb.ErrorCode(err))
		assert.Equal(t, 4, calls)
	})

	t.Run("does not retry missing pages", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(_ context.Context, _ string) (string, error) {
			calls++
			return "", readweb.Errorf(readweb.ENOTFOUND, "status 404")
		}

		_, err := crawl.FetchWithRetry(context.Background(), "https://example.com", fetch, noDelays, nil)

		assert.Equal(t, readweb.ENOTFOUND, readweb.ErrorCode(err))
		assert.Equal(t, 1, calls)
	})

	t.Run("stops waiting when context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		fetch := func(_ context.Context, _ string) (string, error) {
			cancel()
			return "", errors.New("timeout")
		}

		_, err := crawl.FetchWithRetry(ctx, "https://example.com", fetch, []time.Duration{time.Hour}, nil)

		assert.ErrorIs(t, err, context.Canceled)
	})
}
