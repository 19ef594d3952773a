package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/KonishchevDmitry/feedloader/pkg/feed"
	"github.com/KonishchevDmitry/feedloader/pkg/test/testutil"
	"github.com/KonishchevDmitry/feedloader/pkg/transport"
	"github.com/KonishchevDmitry/feedloader/pkg/transport/transporttest"
	"github.com/KonishchevDmitry/feedloader/pkg/url"
	"github.com/MakeNowJust/heredoc"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	server := newServer(t)
	var output bytes.Buffer

	err := load(testutil.Context(t), &output, url.MustParse(server.URL+"/feed"), transport.NewHTTPClient(testutil.Context(t)))
	require.NoError(t, err)
	require.Equal(t, heredoc.Doc(`
		2e17b013-f283-45e4-b010-5a03ad6776c6	https://a.url	-	-
		8c2f41b9-0a6e-4bde-9d3c-54a1a0e6b3f7	http://another-url.com/image.png	a description	a location
	`), output.String())
}

func TestLoadFailure(t *testing.T) {
	t.Parallel()

	server := newServer(t)

	err := load(testutil.Context(t), io.Discard, url.MustParse(server.URL+"/missing"), transport.NewHTTPClient(testutil.Context(t)))
	require.ErrorIs(t, err, feed.InvalidData)
	require.EqualError(t, err, "failed to load "+server.URL+"/missing: invalid data")
}

func TestLoadCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(testutil.Context(t))
	cancel()

	err := load(ctx, io.Discard, url.MustParse("https://a.url"), transporttest.NewSpy(t))
	require.ErrorIs(t, err, context.Canceled)
}

func TestCommand(t *testing.T) {
	t.Parallel()

	server := newServer(t)
	var output bytes.Buffer

	command := newCommand()
	command.SetArgs([]string{"--timeout", "10s", "--user-agent", "test", server.URL + "/feed"})
	command.SetOut(&output)
	command.SetErr(io.Discard)

	require.NoError(t, command.ExecuteContext(t.Context()))
	require.Contains(t, output.String(), "2e17b013-f283-45e4-b010-5a03ad6776c6")
}

func TestCommandInvalidArguments(t *testing.T) {
	t.Parallel()

	for name, args := range map[string][]string{
		"no URL":                  {},
		"relative URL":            {"a.url"},
		"browser with UA":         {"--browser", "--user-agent", "test", "https://a.url"},
		"both browser transport":  {"--browser", "--remote-browser", "localhost:9222", "https://a.url"},
		"headful without browser": {"--headful", "https://a.url"},
		"headful remote browser":  {"--headful", "--remote-browser", "localhost:9222", "https://a.url"},
	} {
		t.Run(name, func(t *testing.T) {
			command := newCommand()
			command.SetArgs(args)
			command.SetOut(io.Discard)
			command.SetErr(io.Discard)
			require.Error(t, command.ExecuteContext(t.Context()))
		})
	}
}

func TestBrowserOptions(t *testing.T) {
	t.Parallel()

	require.Empty(t, browserOptions(flags{browser: true}))
	require.Len(t, browserOptions(flags{browser: true, headful: true}), 1)
	require.Len(t, browserOptions(flags{remoteBrowser: "localhost:9222"}), 1)
}

func newServer(t *testing.T) *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/feed" {
			http.NotFound(w, r)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, heredoc.Doc(`
			{
				"items": [{
					"id": "2e17b013-f283-45e4-b010-5a03ad6776c6",
					"imageURL": "https://a.url"
				}, {
					"id": "8c2f41b9-0a6e-4bde-9d3c-54a1a0e6b3f7",
					"description": "a description",
					"location": "a location",
					"imageURL": "http://another-url.com/image.png"
				}]
			}
		`))
	}))
	t.Cleanup(server.Close)
	return server
}
