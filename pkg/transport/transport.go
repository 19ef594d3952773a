// Package transport defines the capability the feed loader uses to talk to a remote server, together with its
// implementations.
package transport

import (
	"net/url"

	"github.com/samber/mo"
)

type Response struct {
	StatusCode int
	Body       []byte
}

// Outcome is either a response or an error meaning that no response has been obtained.
type Outcome = mo.Result[Response]

type Completion func(outcome Outcome)

// Client performs GET requests. Get must call the completion exactly once per call, either inline or from any other
// goroutine.
type Client interface {
	Get(url *url.URL, completion Completion)
}

func Success(statusCode int, body []byte) Outcome {
	return mo.Ok(Response{
		StatusCode: statusCode,
		Body:       body,
	})
}

func Failure(err error) Outcome {
	return mo.Err[Response](err)
}
