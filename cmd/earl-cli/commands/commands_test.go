package commands

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"chatbot-backend/internal/telemetry"
	"chatbot-backend/lib/dom"
	"chatbot-backend/lib/earl"
	"chatbot-backend/lib/settle"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/stretchr/testify/require"
)

func TestOpenURL(t *testing.T) {
	client := earl.NewClient()

	e, err := openURL(client, "https://x.test/a/b?q=1&q=2&lang=en")
	require.NoError(t, err)
	require.Equal(t, "/a/b", e.BasicPathname())
	require.Equal(t, "https://x.test/a/b?lang=en&q=2", e.String())

	_, err = openURL(client, "x.test/a")
	require.Error(t, err)
}

func TestOpenURLKeepsEscapes(t *testing.T) {
	client := earl.NewClient()

	e, err := openURL(client, "https://en.wiktionary.org/wiki/AC%2FDC?x=1")
	require.NoError(t, err)
	require.Equal(t, "/wiki/AC%2FDC", e.BasicPathname())
	require.Equal(t, "https://en.wiktionary.org/wiki/AC%2FDC?x=1", e.String())

	e, err = openURL(client, "https://en.wiktionary.org/wiki/caf%C3%A9")
	require.NoError(t, err)
	require.Equal(t, "https://en.wiktionary.org/wiki/caf%C3%A9", e.String())
}

func TestChildRows(t *testing.T) {
	root, err := dom.Parse(strings.NewReader(`<html><body><ul> <li class="a">one</li> <!-- c --> <li id="x">two</li></ul></body></html>`))
	require.NoError(t, err)
	ul, err := dom.Stroll(nil, "test", false, root, dom.Path{
		dom.At(0, "html"),
		dom.At(1, "body"),
		dom.At(0, "ul"),
	})
	require.NoError(t, err)

	require.Equal(t, []table.Row{
		{0, "text", "#text", ""},
		{1, "element", "li.a", "one"},
		{2, "text", "#text", ""},
		{3, "comment", "#comment", ""},
		{4, "text", "#text", ""},
		{5, "element", "li#x", "two"},
	}, childRows(ul.Children, false))

	require.Equal(t, []table.Row{
		{1, "element", "li.a", "one"},
		{3, "comment", "#comment", ""},
		{5, "element", "li#x", "two"},
	}, childRows(ul.Children, true))
}

func TestRedirectTasks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/old" {
			http.Redirect(w, r, "/new", http.StatusMovedPermanently)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := earl.NewClient(
		earl.WithTelemetry(&telemetry.Recorder{}),
		earl.WithTransport(roundTripperFunc(func(req *http.Request) (*http.Response, error) {
			if req.URL.Host == "broken.test" {
				return nil, errors.New("tls: handshake failure")
			}
			return http.DefaultTransport.RoundTrip(req)
		})),
	)
	tasks, err := redirectTasks(client, []string{
		server.URL + "/old",
		server.URL + "/new",
		"https://broken.test/",
	})
	require.NoError(t, err)

	outcomes := settle.All(context.Background(), 2, tasks...)
	require.Equal(t, "redirected", describeRedirect(outcomes[0]))
	require.Equal(t, "not redirected", describeRedirect(outcomes[1]))
	require.Equal(t, settle.Failed, outcomes[2].State)
	require.Contains(t, describeRedirect(outcomes[2]), "error:")
	require.Equal(t, "found in 2 of 3 sources, 1 errored", settle.Summarize(outcomes))

	require.Equal(t, "inconclusive", describeRedirect(settle.Outcome[earl.Redirect]{State: settle.NotFound}))
}

type roundTripperFunc func(req *http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func TestTruncate(t *testing.T) {
	require.Equal(t, "short", truncate("short", 10))
	require.Equal(t, "abc...", truncate("abc defgh", 4))
}
