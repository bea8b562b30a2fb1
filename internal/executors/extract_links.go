package executors

import (
	"context"
	"net/url"
	"os"
	"strings"

	"golang.org/x/net/html"

	"github.com/thanhauco/scrapeflow/internal/engine"
	"github.com/thanhauco/scrapeflow/internal/journal"
)

// ExtractLinks parses the scraped body as HTML when the recorded
// response_headers look HTML-ish, resolving discovered hrefs against
// params.url into absolute links. Non-HTML bodies produce an empty link
// set rather than an error: this executor augments a scrape, it doesn't
// gate on one.
func ExtractLinks() engine.Executor {
	return engine.Taskify("extract_links", func(ctx context.Context, rc *engine.RunContext, key string, status journal.StatusData) (any, error) {
		scraped, _ := status.ExecutorOutput(scraperName).(map[string]any)
		if !looksLikeHTML(scraped) {
			return map[string]any{"links": []string{}, "count": 0}, nil
		}

		base, _ := status.Params()["url"].(string)
		body, err := os.ReadFile(scrapePath(rc.Dir, key))
		if err != nil {
			return nil, engine.Recoverable("read scrape file for %s: %v", key, err)
		}

		links := parseLinks(base, body)
		return map[string]any{"links": links, "count": len(links)}, nil
	})
}

func looksLikeHTML(scraped map[string]any) bool {
	headers, _ := scraped["response_headers"].(map[string]any)
	ct, _ := headers["Content-Type"].(string)
	return ct == "" || strings.Contains(strings.ToLower(ct), "html")
}

func parseLinks(base string, body []byte) []string {
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil
	}

	doc, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return nil
	}

	seen := make(map[string]struct{})
	var links []string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key != "href" {
					continue
				}
				resolved, err := baseURL.Parse(attr.Val)
				if err != nil {
					continue
				}
				abs := resolved.String()
				if _, dup := seen[abs]; !dup {
					seen[abs] = struct{}{}
					links = append(links, abs)
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)
	return links
}
