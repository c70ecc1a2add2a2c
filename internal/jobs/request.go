package jobs

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/utils"
)

const (
	contentType     = "application/json"
	contentEncoding = "gzip"
	userAgent       = "spigell/resume-matcher"

	defaultTimeout = 15 * time.Second
	// Upper bound on bodies read from a source.
	maxBodySize = 8 << 20
	// Length of the body excerpt attached to status errors.
	maxErrorExcerpt = 300
)

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Code    int
	Excerpt string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("bad status %d: %s", e.Code, e.Excerpt)
}

type client struct {
	httpClient *http.Client
	logger     *zap.Logger
}

func newClient(timeout time.Duration, logger *zap.Logger) *client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &client{
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// getJSON issues a GET and decodes the body into a generic JSON value.
func (c *client) getJSON(ctx context.Context, endpoint string, q url.Values, headers map[string]string) (any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", contentType)
	req.Header.Set("Accept-Encoding", contentEncoding)
	req.Header.Set("User-Agent", userAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if q != nil {
		req.URL.RawQuery = q.Encode()
	}

	c.logger.Debug("make request", zap.String("url", redact(req.URL)))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzipReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gzipReader.Close()
		reader = gzipReader
	}

	data, err := io.ReadAll(io.LimitReader(reader, maxBodySize))
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &StatusError{Code: resp.StatusCode, Excerpt: utils.TruncateForLog(string(data), maxErrorExcerpt)}
	}

	var target any
	if err := json.Unmarshal(data, &target); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return target, nil
}

// redact hides credentials passed as query parameters.
func redact(u *url.URL) string {
	q := u.Query()
	for _, key := range []string{"app_key", "app_id", "api_key"} {
		if q.Has(key) {
			q.Set(key, "***")
		}
	}
	clone := *u
	clone.RawQuery = q.Encode()
	return clone.String()
}
