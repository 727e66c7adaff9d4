package report

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
)

// ContentSnapshot converts a crawled page's raw HTML into markdown for
// embedding alongside a content brief, so a writer can see what currently
// exists on the page they're asked to improve without opening a browser.
// Grounded on rohmanhakim-docs-crawler's internal/mdconvert rules.go
// converter setup (base + commonmark + table plugins).
func ContentSnapshot(html string) (string, error) {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	md, err := conv.ConvertString(html)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(md), nil
}
