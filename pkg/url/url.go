package url

import (
	"fmt"
	"net/url"
)

type URL = url.URL

func MustParse(value string) *url.URL {
	url, err := url.Parse(value)
	if err != nil {
		panic(fmt.Sprintf("Invalid URL: %s", value))
	}
	return url
}

// ParseAbsolute parses a URL which must have both scheme and host.
func ParseAbsolute(value string) (*url.URL, error) {
	url, err := url.Parse(value)
	if err != nil {
		return nil, fmt.Errorf("got an invalid URL: %q", value)
	}

	if !url.IsAbs() || url.Host == "" {
		return nil, fmt.Errorf("got a non-absolute URL: %q", value)
	}

	return url, nil
}
