package earl

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"syscall"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const report_check_redirect = "earl.check-redirect"

// Redirect is the outcome of CheckRedirect. The zero value is
// RedirectUnknown, which is neither a redirect nor a non-redirect.
type Redirect int

const (
	RedirectUnknown Redirect = iota
	Redirected
	NotRedirected
)

func (r Redirect) String() string {
	switch r {
	case Redirected:
		return "redirected"
	case NotRedirected:
		return "not redirected"
	}
	return "unknown"
}

// Known reports whether the check reached a conclusion.
func (r Redirect) Known() bool {
	return r == Redirected || r == NotRedirected
}

// CheckRedirect issues a HEAD without following redirects.
//
// A 3xx status is Redirected and any other status is NotRedirected. A
// failure that is likely transient (reset connection, timeout, the server
// hanging up) is RedirectUnknown with a nil error, any other failure is
// RedirectUnknown with a *TransportError.
func (e *Earl) CheckRedirect(ctx context.Context) (Redirect, error) {
	ctx, span := e.startSpan(ctx, "earl:CheckRedirect")
	defer span.End()

	res, err := e.client.head.R().
		SetContext(ctx).
		Head(e.String())
	if err != nil {
		span.RecordError(err)
		if isTransient(err) {
			e.client.tel.ReportWarning(report_check_redirect, e.Redacted(), err)
			span.SetStatus(codes.Ok, "inconclusive")
			return RedirectUnknown, nil
		}
		terr := &TransportError{Method: http.MethodHead, URL: e.Redacted(), Err: err}
		e.client.tel.ReportBroken(report_check_redirect, terr)
		span.SetStatus(codes.Error, "failed to fetch")
		return RedirectUnknown, terr
	}

	status := res.StatusCode()
	span.SetAttributes(attribute.Int("status", status))
	if status >= 300 && status < 400 {
		return Redirected, nil
	}
	return NotRedirected, nil
}

func isTransient(err error) bool {
	switch {
	case errors.Is(err, syscall.ECONNRESET),
		errors.Is(err, syscall.ECONNABORTED),
		errors.Is(err, syscall.EPIPE),
		errors.Is(err, syscall.ETIMEDOUT),
		errors.Is(err, io.EOF),
		errors.Is(err, io.ErrUnexpectedEOF),
		errors.Is(err, context.DeadlineExceeded):
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
