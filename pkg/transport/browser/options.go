package browser

import (
	"net/url"

	"github.com/samber/mo"
)

type options struct {
	remote  mo.Option[string]
	headful bool
}

type Option func(o *options)

// Remote connects to an already running browser instead of starting a new one.
func Remote(hostPort string) Option {
	return func(o *options) {
		url := url.URL{
			Scheme: "ws",
			Host:   hostPort,
		}
		o.remote = mo.Some(url.String())
	}
}

func Headful() Option {
	return func(o *options) {
		o.headful = true
	}
}
