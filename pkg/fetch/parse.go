package fetch

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/net/html"

	"github.com/veltran/swoop/internal/htmlq"
	"github.com/veltran/swoop/pkg/domain"
)

// parseDocument extracts the title and the inner HTML of each configured
// container from a fetched document. A missing container is logged and
// skipped; a document matching none of the containers is an error, since
// rendering it would blank the page.
func parseDocument(r io.Reader, containers []string, logger *slog.Logger) (string, []domain.Block, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", nil, fmt.Errorf("parse html: %w", err)
	}

	title := htmlq.TextContent(htmlq.FindFirst(doc, func(n *html.Node) bool {
		return n.Data == "title"
	}))

	blocks := make([]domain.Block, 0, len(containers))
	for _, sel := range containers {
		match, err := htmlq.MatcherFor(sel)
		if err != nil {
			return "", nil, err
		}
		node := htmlq.FindFirst(doc, match)
		if node == nil {
			logger.Warn("container not found in fetched document", "container", sel)
			continue
		}
		blocks = append(blocks, domain.Block{Container: sel, HTML: htmlq.InnerHTML(node)})
	}
	if len(blocks) == 0 {
		return "", nil, fmt.Errorf("no content containers found (looked for %s)", strings.Join(containers, ", "))
	}

	return title, blocks, nil
}
