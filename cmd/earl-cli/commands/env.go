package commands

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"chatbot-backend/internal/config"
	"chatbot-backend/internal/telemetry"
	"chatbot-backend/lib/earl"

	"github.com/jedib0t/go-pretty/v6/table"
)

type envKeyType int

var envKey envKeyType

type env struct {
	Config config.Config
	Tel    telemetry.API
	Client *earl.Client
}

func withEnv(ctx context.Context, value *env) context.Context {
	return context.WithValue(ctx, envKey, value)
}

func getEnv(ctx context.Context) *env {
	return ctx.Value(envKey).(*env)
}

// openURL splits an absolute url into an Earl, the path becomes the basic
// pathname with its escapes intact.
func openURL(client *earl.Client, raw string) (*earl.Earl, error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("%q is not an absolute url", raw)
	}

	query := map[string]string{}
	for key, values := range parsed.Query() {
		if len(values) > 0 {
			query[key] = values[len(values)-1]
		}
	}
	origin := url.URL{Scheme: parsed.Scheme, User: parsed.User, Host: parsed.Host}
	return client.New(origin.String(), parsed.EscapedPath(), query)
}

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return strings.TrimSpace(string(runes[:n])) + "..."
}
