// Package preview fetches best-effort link metadata (title, description,
// image) for pre-filling the idea creation form. It is a convenience
// collaborator: callers bound it with a context timeout and drop the result
// on any failure rather than blocking idea creation.
package preview

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/net/html"
)

// maxBodyBytes caps how much of a page is read while looking for metadata.
// Interesting tags live in <head>, well before this limit.
const maxBodyBytes = 512 * 1024

// Preview holds whatever metadata could be extracted from a page. Any field
// may be empty.
type Preview struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
}

// Fetch downloads the page at rawURL and extracts Open Graph and standard
// meta tags. The caller controls the timeout through ctx; client may be nil,
// in which case http.DefaultClient is used.
func Fetch(ctx context.Context, client *http.Client, rawURL string) (Preview, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Preview{}, fmt.Errorf("failed to build preview request: %w", err)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := client.Do(req)
	if err != nil {
		return Preview{}, fmt.Errorf("failed to fetch '%s': %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Preview{}, fmt.Errorf("unexpected status %d fetching '%s'", resp.StatusCode, rawURL)
	}

	return parse(io.LimitReader(resp.Body, maxBodyBytes))
}

// parse walks the HTML token stream collecting the page <title> and the
// og:title / og:description / og:image / description meta tags. Open Graph
// values win over their plain counterparts.
func parse(r io.Reader) (Preview, error) {
	var p Preview
	var pageTitle, metaDescription string
	inTitle := false

	z := html.NewTokenizer(r)
	for {
		switch z.Next() {
		case html.ErrorToken:
			if z.Err() != io.EOF {
				return Preview{}, fmt.Errorf("failed to parse page: %w", z.Err())
			}
			if p.Title == "" {
				p.Title = pageTitle
			}
			if p.Description == "" {
				p.Description = metaDescription
			}
			return p, nil

		case html.StartTagToken, html.SelfClosingTagToken:
			token := z.Token()
			switch token.Data {
			case "title":
				inTitle = true
			case "meta":
				var name, property, content string
				for _, attr := range token.Attr {
					switch attr.Key {
					case "name":
						name = attr.Val
					case "property":
						property = attr.Val
					case "content":
						content = attr.Val
					}
				}
				switch property {
				case "og:title":
					p.Title = content
				case "og:description":
					p.Description = content
				case "og:image":
					p.Image = content
				}
				if name == "description" {
					metaDescription = content
				}
			case "body":
				// Metadata lives in <head>; stop once the body starts.
				if p.Title == "" {
					p.Title = pageTitle
				}
				if p.Description == "" {
					p.Description = metaDescription
				}
				return p, nil
			}

		case html.TextToken:
			if inTitle {
				pageTitle = strings.TrimSpace(z.Token().Data)
				inTitle = false
			}

		case html.EndTagToken:
			if z.Token().Data == "title" {
				inTitle = false
			}
		}
	}
}
