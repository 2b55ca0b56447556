package htmlutil

import (
	"context"
	"strings"

	"chatbot-backend/lib/dom"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"go.opentelemetry.io/otel/codes"
)

var mdConverter = converter.NewConverter(
	converter.WithPlugins(
		base.NewBasePlugin(),
		commonmark.NewCommonmarkPlugin(),
		table.NewTablePlugin(),
	),
)

// Markdown renders `nodes` as markdown, which is what chat replies are
// written in. Relative links are resolved against `domain`, an empty
// domain leaves them as they are.
func Markdown(ctx context.Context, domain string, nodes ...dom.Node) (string, error) {
	_, span := tracer.Start(ctx, "Markdown")
	defer span.End()

	rendered, err := dom.RenderString(nodes...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to render html")
		return "", err
	}

	md, err := mdConverter.ConvertString(rendered, converter.WithDomain(domain))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to convert to markdown")
		return "", err
	}
	return strings.TrimSpace(md), nil
}
