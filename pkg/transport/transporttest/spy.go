// Package transporttest provides a transport.Client test double which records the requests and completes them only
// when the test asks it to.
package transporttest

import (
	"net/url"
	"testing"

	"github.com/KonishchevDmitry/feedloader/internal/util"
	"github.com/KonishchevDmitry/feedloader/pkg/transport"
	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
)

type Spy struct {
	t        testing.TB
	lock     util.GuardedLock
	requests []*request
}

type request struct {
	url        *url.URL
	completion mo.Option[transport.Completion]
}

var _ transport.Client = &Spy{}

func NewSpy(t testing.TB) *Spy {
	return &Spy{t: t}
}

func (s *Spy) Get(url *url.URL, completion transport.Completion) {
	s.lock.Do(func() {
		s.requests = append(s.requests, &request{
			url:        url,
			completion: mo.Some(completion),
		})
	})
}

// URLs returns the requested URLs in the order of Get calls.
func (s *Spy) URLs() []*url.URL {
	var urls []*url.URL
	s.lock.Do(func() {
		for _, request := range s.requests {
			urls = append(urls, request.url)
		}
	})
	return urls
}

// Pending returns the number of requests which haven't been completed yet.
func (s *Spy) Pending() int {
	var count int
	s.lock.Do(func() {
		for _, request := range s.requests {
			if request.completion.IsPresent() {
				count++
			}
		}
	})
	return count
}

func (s *Spy) CompleteWithError(err error, index int) {
	s.Complete(index, transport.Failure(err))
}

func (s *Spy) CompleteWithStatus(statusCode int, body []byte, index int) {
	s.Complete(index, transport.Success(statusCode, body))
}

// Complete calls the completion of the request with the specified index. Each request can be completed only once.
// It may be called from any goroutine: misuse is reported as a test error.
func (s *Spy) Complete(index int, outcome transport.Outcome) {
	s.t.Helper()

	var completion transport.Completion
	s.lock.Do(func() {
		if !assert.Less(s.t, index, len(s.requests), "There is no request #%d", index) {
			return
		}

		request := s.requests[index]
		pending, ok := request.completion.Get()
		if !assert.True(s.t, ok, "Request #%d has already been completed", index) {
			return
		}

		request.completion = mo.None[transport.Completion]()
		completion = pending
	})

	if completion != nil {
		completion(outcome)
	}
}
