// Package loader loads feed items from a remote server.
package loader

import (
	"net/http"
	"net/url"
	"sync/atomic"

	"github.com/KonishchevDmitry/feedloader/pkg/feed"
	"github.com/KonishchevDmitry/feedloader/pkg/transport"
)

// RemoteLoader loads the feed located at the specified URL using the provided transport. It doesn't own the transport
// and has no mutable state, so it may be used concurrently.
type RemoteLoader struct {
	url    *url.URL
	client transport.Client
}

func New(url *url.URL, client transport.Client) *RemoteLoader {
	return &RemoteLoader{
		url:    url,
		client: client,
	}
}

func (l *RemoteLoader) URL() *url.URL {
	return l.url
}

// Load issues a single request and calls the completion exactly once when the transport reports the outcome. The
// completion is called on the same goroutine the transport calls its completion on.
//
// Errors are never returned as is: the completion gets either feed.Connectivity or feed.InvalidData.
func (l *RemoteLoader) Load(completion func(result feed.LoadResult)) {
	var completed atomic.Bool

	l.client.Get(l.url, func(outcome transport.Outcome) {
		if !completed.CompareAndSwap(false, true) {
			return
		}
		completion(classify(outcome))
	})
}

func classify(outcome transport.Outcome) feed.LoadResult {
	response, err := outcome.Get()
	if err != nil {
		return feed.Failure(feed.Connectivity)
	}

	if response.StatusCode != http.StatusOK {
		return feed.Failure(feed.InvalidData)
	}

	items, err := feed.Decode(response.Body)
	if err != nil {
		return feed.Failure(feed.InvalidData)
	}

	return feed.Success(items)
}
