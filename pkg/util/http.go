package util

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

var ErrUnexpectedStatus = errors.New("unexpected response status")

var retryOnStatus = []int{http.StatusTooManyRequests, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout}

// GetWithRetry performs a GET and retries with exponential backoff when the
// upstream is rate limiting or temporarily unavailable. Any other non 200
// status fails straight away.
func GetWithRetry(ctx context.Context, httpClient *http.Client, requestURL string, headers map[string]string, maxRetries uint64) ([]byte, error) {
	retryBackoff := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxRetries), ctx)

	return backoff.RetryWithData(func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		for key, value := range headers {
			req.Header.Set(key, value)
		}

		resp, err := httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			statusErr := fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)

			if slices.Contains(retryOnStatus, resp.StatusCode) {
				log.Debug().Str("url", requestURL).Int("status", resp.StatusCode).Msg("Retrying request")
				return nil, statusErr
			}
			return nil, backoff.Permanent(statusErr)
		}

		return io.ReadAll(resp.Body)
	}, retryBackoff)
}
