package earl

import (
	"bytes"
	"context"
	"encoding/json"
	"mime"
	"net/http"

	"chatbot-backend/lib/dom"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	report_fetch_json            = "earl.fetch-json"
	report_fetch_json_with_error = "earl.fetch-json-with-error"
	report_fetch_text            = "earl.fetch-text"
	report_fetch_document        = "earl.fetch-document"
)

func (e *Earl) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return tracer.Start(ctx, name, trace.WithAttributes(
		attribute.String("endpoint", e.name),
		attribute.String("url", e.Redacted()),
	))
}

// get issues a GET, a non-nil error is always a *TransportError.
func (e *Earl) get(ctx context.Context, reportId string) (*resty.Response, error) {
	res, err := e.client.http.R().
		SetContext(ctx).
		Get(e.String())
	if err != nil {
		terr := &TransportError{Method: http.MethodGet, URL: e.Redacted(), Err: err}
		e.client.tel.ReportBroken(reportId, terr)
		return nil, terr
	}
	return res, nil
}

func (e *Earl) decodeJSON(res *resty.Response, reportId string, v any) error {
	err := json.Unmarshal(res.Body(), v)
	if err != nil {
		perr := &ParseError{
			URL:         e.Redacted(),
			ContentType: res.Header().Get("Content-Type"),
			Err:         err,
		}
		e.client.tel.ReportBroken(reportId, perr)
		return perr
	}
	return nil
}

// FetchJSON issues a GET and decodes the body into `v`. The status code is
// not checked, error bodies are decoded like any other.
func (e *Earl) FetchJSON(ctx context.Context, v any) error {
	ctx, span := e.startSpan(ctx, "earl:FetchJSON")
	defer span.End()

	res, err := e.get(ctx, report_fetch_json)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return err
	}
	err = e.decodeJSON(res, report_fetch_json, v)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to decode json")
		return err
	}
	return nil
}

// JSON is FetchJSON for a value of type T.
func JSON[T any](ctx context.Context, e *Earl) (T, error) {
	var out T
	err := e.FetchJSON(ctx, &out)
	return out, err
}

// FetchJSONWithError is FetchJSON for endpoints that sometimes answer with
// an html error page. If the response is not `application/json` it returns
// false and a nil error, the body is dropped.
func (e *Earl) FetchJSONWithError(ctx context.Context, v any) (bool, error) {
	ctx, span := e.startSpan(ctx, "earl:FetchJSONWithError")
	defer span.End()

	res, err := e.get(ctx, report_fetch_json_with_error)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return false, err
	}

	contentType := res.Header().Get("Content-Type")
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType != "application/json" {
		e.client.tel.ReportWarning(
			report_fetch_json_with_error,
			e.Redacted(),
			res.StatusCode(),
			contentType,
		)
		span.SetStatus(codes.Ok, "not json")
		return false, nil
	}

	err = e.decodeJSON(res, report_fetch_json_with_error, v)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to decode json")
		return false, err
	}
	return true, nil
}

// FetchText issues a GET and returns the body.
func (e *Earl) FetchText(ctx context.Context) (string, error) {
	ctx, span := e.startSpan(ctx, "earl:FetchText")
	defer span.End()

	res, err := e.get(ctx, report_fetch_text)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return "", err
	}
	return string(res.Body()), nil
}

// FetchDocument issues a GET and parses the body as html.
func (e *Earl) FetchDocument(ctx context.Context) (*goquery.Document, error) {
	ctx, span := e.startSpan(ctx, "earl:FetchDocument")
	defer span.End()

	res, err := e.get(ctx, report_fetch_document)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		perr := &ParseError{
			URL:         e.Redacted(),
			ContentType: res.Header().Get("Content-Type"),
			Err:         err,
		}
		e.client.tel.ReportBroken(report_fetch_document, perr)
		span.RecordError(perr)
		span.SetStatus(codes.Error, "failed to parse html")
		return nil, perr
	}
	return doc, nil
}

// FetchDOM issues a GET and returns the root-level nodes of the parsed
// document, ready for dom.Stroll.
func (e *Earl) FetchDOM(ctx context.Context) ([]dom.Node, error) {
	doc, err := e.FetchDocument(ctx)
	if err != nil {
		return nil, err
	}
	if len(doc.Nodes) == 0 {
		return nil, nil
	}
	return dom.FromHTML(doc.Nodes[0]), nil
}
