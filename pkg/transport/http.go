package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	logging "github.com/KonishchevDmitry/go-easy-logging"
)

// HTTPClient is a Client which uses net/http. Each request is served by its own goroutine, so the completion is always
// called asynchronously.
type HTTPClient struct {
	ctx     context.Context
	client  *http.Client
	options options
	metrics
}

var _ Client = &HTTPClient{}

func NewHTTPClient(ctx context.Context, opts ...Option) *HTTPClient {
	options := makeOptions(opts)
	return &HTTPClient{
		ctx:     ctx,
		client:  options.httpClient.OrElse(&http.Client{}),
		options: options,
		metrics: makeMetrics(),
	}
}

func (c *HTTPClient) Get(url *url.URL, completion Completion) {
	go func() {
		completion(c.get(url))
	}()
}

func (c *HTTPClient) get(url *url.URL) Outcome {
	ctx, cancel := context.WithTimeout(c.ctx, c.options.timeout)
	defer cancel()

	logging.L(ctx).Debugf("Fetching %s...", url)

	startTime := time.Now()
	response, err := c.fetch(ctx, url)
	c.requestDuration.Observe(time.Since(startTime).Seconds())
	if err != nil {
		logging.L(ctx).Warnf("Failed to fetch %s: %s.", url, err)
		c.requests.WithLabelValues(requestStatusFailure).Inc()
		return Failure(fmt.Errorf("failed to fetch %s: %w", url, err))
	}

	logging.L(ctx).Debugf("%s: the server returned %d status code with %d bytes of data.",
		url, response.StatusCode, len(response.Body))
	c.requests.WithLabelValues(requestStatusResponse).Inc()

	return Success(response.StatusCode, response.Body)
}

func (c *HTTPClient) fetch(ctx context.Context, url *url.URL) (*Response, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url.String(), nil)
	if err != nil {
		return nil, err
	}
	request.Header.Set("User-Agent", c.options.userAgent)

	response, err := c.client.Do(request)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := response.Body.Close(); err != nil {
			logging.L(ctx).Errorf("Failed to close HTTP client body: %s.", err)
		}
	}()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read the response: %w", err)
	}

	return &Response{
		StatusCode: response.StatusCode,
		Body:       body,
	}, nil
}
