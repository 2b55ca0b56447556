// Package restyutil writes every exchange of a resty client to an output,
// used to inspect what a scraper actually received.
package restyutil

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"

	"chatbot-backend/internal/telemetry"

	"github.com/go-resty/resty/v2"
)

type Output interface {
	Write(id string, contents string)
}

// FilesystemOutput writes each exchange to its own file in a directory.
type FilesystemOutput struct {
	directory string
}

// NewFilesystemOutput creates `dir` if needed, files from a previous run are
// overwritten as ids restart from 1.
func NewFilesystemOutput(dir string) (FilesystemOutput, error) {
	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		return FilesystemOutput{}, err
	}
	return FilesystemOutput{directory: dir}, nil
}

func (o FilesystemOutput) Write(id string, contents string) {
	err := os.WriteFile(filepath.Join(o.directory, id+".txt"), []byte(contents), 0o600)
	if err != nil {
		slog.Warn("failed to write exchange dump", "id", id, "err", err)
	}
}

// Dump registers a hook that writes every response of `client` to
// `output`. Urls are redacted, headers are written as received.
func Dump(client *resty.Client, output Output) {
	var counter uint64
	client.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		id := atomic.AddUint64(&counter, 1)
		output.Write(
			fmt.Sprintf("%04d-%s", id, strings.ToLower(res.Request.Method)),
			FormatExchange(res),
		)
		return nil
	})
}

func formatHeaders(out *strings.Builder, headers http.Header) {
	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, v := range headers[k] {
			fmt.Fprintf(out, "%s: %s\n", k, v)
		}
	}
}

// FormatExchange renders the request line and headers followed by the
// response status, headers and body.
func FormatExchange(res *resty.Response) string {
	var out strings.Builder

	out.WriteString("---- REQUEST ----\n\n")
	fmt.Fprintf(&out, "%s %s\n\n", res.Request.Method, telemetry.RedactURL(res.Request.URL))
	if res.Request.RawRequest != nil {
		formatHeaders(&out, res.Request.RawRequest.Header)
	}

	out.WriteString("\n---- RESPONSE ----\n\n")
	out.WriteString(res.Status())
	if res.RawResponse != nil {
		if location, err := res.RawResponse.Location(); err == nil {
			fmt.Fprintf(&out, " -> %s", telemetry.RedactURL(location.String()))
		}
	}
	out.WriteString("\n\n")
	formatHeaders(&out, res.Header())
	out.WriteString("\n")
	out.Write(res.Body())
	return out.String()
}
