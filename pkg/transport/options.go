package transport

import (
	"net/http"
	"time"

	"github.com/samber/mo"
)

const (
	defaultTimeout   = time.Minute
	defaultUserAgent = "github.com/KonishchevDmitry/feedloader"
)

type Option func(o *options)

type options struct {
	timeout    time.Duration
	userAgent  string
	httpClient mo.Option[*http.Client]
}

func makeOptions(opts []Option) options {
	options := options{
		timeout:   defaultTimeout,
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

// WithTimeout limits the whole request including reading of the response body.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.timeout = timeout
	}
}

func WithUserAgent(userAgent string) Option {
	return func(o *options) {
		o.userAgent = userAgent
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = mo.Some(client)
	}
}
