package transporttest

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/KonishchevDmitry/feedloader/pkg/transport"
	"github.com/KonishchevDmitry/feedloader/pkg/url"
	"github.com/stretchr/testify/require"
)

func TestSpy(t *testing.T) {
	t.Parallel()

	first, second := url.MustParse("https://first.url"), url.MustParse("https://second.url")

	spy := NewSpy(t)
	require.Empty(t, spy.URLs())

	var outcomes []transport.Outcome
	record := func(outcome transport.Outcome) {
		outcomes = append(outcomes, outcome)
	}

	spy.Get(first, record)
	spy.Get(second, record)
	spy.Get(first, record)
	require.Equal(t, []*url.URL{first, second, first}, spy.URLs())
	require.Equal(t, 3, spy.Pending())

	err := errors.New("some error")
	spy.CompleteWithStatus(http.StatusOK, []byte("body"), 1)
	spy.CompleteWithError(err, 2)
	require.Equal(t, 1, spy.Pending())

	require.Equal(t, []transport.Outcome{
		transport.Success(http.StatusOK, []byte("body")),
		transport.Failure(err),
	}, outcomes)
}

func TestSpyCompletionMayIssueRequests(t *testing.T) {
	t.Parallel()

	spy := NewSpy(t)
	spy.Get(url.MustParse("https://a.url"), func(transport.Outcome) {
		spy.Get(url.MustParse("https://b.url"), func(transport.Outcome) {})
	})

	spy.CompleteWithStatus(http.StatusOK, nil, 0)
	require.Len(t, spy.URLs(), 2)
	require.Equal(t, 1, spy.Pending())
}

func TestSpyReportsMisuse(t *testing.T) {
	t.Parallel()

	recorder := &errorRecorder{}
	spy := NewSpy(recorder)

	var completions int
	spy.Get(url.MustParse("https://a.url"), func(transport.Outcome) {
		completions++
	})

	spy.CompleteWithStatus(http.StatusOK, nil, 0)
	require.Empty(t, recorder.errors)

	done := make(chan struct{})
	go func() {
		defer close(done)
		spy.CompleteWithStatus(http.StatusOK, nil, 0)
		spy.CompleteWithError(errors.New("some error"), 1)
	}()
	<-done

	require.Equal(t, 1, completions)
	require.Len(t, recorder.errors, 2)
	require.Contains(t, recorder.errors[0], "Request #0 has already been completed")
	require.Contains(t, recorder.errors[1], "There is no request #1")
}

type errorRecorder struct {
	testing.TB
	errors []string
}

func (r *errorRecorder) Helper() {}

func (r *errorRecorder) Errorf(format string, args ...any) {
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

func (r *errorRecorder) Name() string {
	return "errorRecorder"
}
