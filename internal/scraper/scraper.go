// Package scraper fetches the full article body for selected stories. Feed
// entries often carry only a teaser; main stories read better when the
// summary works from the complete text.
package scraper

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// ArticleContent is the extracted article body.
type ArticleContent struct {
	Title   string
	Content string
	URL     string
}

const (
	requestTimeout  = 15 * time.Second
	politenessDelay = 500 * time.Millisecond
	maxContentChars = 4000
)

// Site-specific selector cascades, tried in order. The generic cascade
// handles everything else.
var siteSelectors = map[string][]string{
	"fiercebiotech.com": {".article-body p", ".field--name-body p", "article p"},
	"statnews.com":      {".article-content p", ".entry-content p", "article p"},
	"genengnews.com":    {".entry-content p", ".article-content p", "article p"},
	"endpts.com":        {".article__body p", ".post-content p", "article p"},
	"biopharmadive.com": {".article-body p", ".medium-article-body p", "article p"},
}

var genericSelectors = []string{
	"article p",
	".article p",
	".content p",
	".post-content p",
	".entry-content p",
	"main p",
	"#content p",
}

// ExtractFullArticle downloads and extracts the article at url.
func ExtractFullArticle(url string) (*ArticleContent, error) {
	client := &http.Client{Timeout: requestTimeout}

	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	content := cleanContent(extractBody(doc, url))
	if content == "" {
		return nil, fmt.Errorf("no extractable content")
	}

	return &ArticleContent{
		Title:   strings.TrimSpace(doc.Find("h1").First().Text()),
		Content: content,
		URL:     url,
	}, nil
}

func extractBody(doc *goquery.Document, url string) string {
	selectors := genericSelectors
	for site, cascade := range siteSelectors {
		if strings.Contains(url, site) {
			selectors = append(append([]string{}, cascade...), genericSelectors...)
			break
		}
	}

	var paragraphs []string
	for _, selector := range selectors {
		doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
			text := strings.TrimSpace(s.Text())
			if len(text) > 20 {
				paragraphs = append(paragraphs, text)
			}
		})
		if len(paragraphs) >= 3 {
			break
		}
		paragraphs = paragraphs[:0]
	}
	return strings.Join(paragraphs, "\n\n")
}

// Boilerplate that shows up inside article bodies on the covered sites.
var junkIndicators = []string{
	"subscribe to",
	"sign up for",
	"newsletter",
	"cookie",
	"advertisement",
	"read more:",
	"related:",
	"follow us",
	"all rights reserved",
}

func cleanContent(content string) string {
	if content == "" {
		return ""
	}

	var kept []string
	for _, paragraph := range strings.Split(content, "\n\n") {
		paragraph = strings.Join(strings.Fields(paragraph), " ")
		if len(paragraph) < 30 {
			continue
		}
		lower := strings.ToLower(paragraph)
		junk := false
		for _, indicator := range junkIndicators {
			if strings.Contains(lower, indicator) {
				junk = true
				break
			}
		}
		if !junk {
			kept = append(kept, paragraph)
		}
	}

	result := strings.Join(kept, "\n\n")

	// Cap length on a paragraph boundary.
	if len(result) > maxContentChars {
		paragraphs := strings.Split(result, "\n\n")
		var selected []string
		total := 0
		for _, p := range paragraphs {
			if total+len(p) >= maxContentChars {
				break
			}
			selected = append(selected, p)
			total += len(p) + 2
		}
		if len(selected) > 0 {
			result = strings.Join(selected, "\n\n")
		}
	}
	return result
}

// ExtractArticles fetches full content for the given URLs sequentially, with
// a politeness delay between requests. Failures are logged and skipped.
func ExtractArticles(urls []string, maxArticles int) map[string]*ArticleContent {
	result := make(map[string]*ArticleContent)

	for i, url := range urls {
		if i >= maxArticles {
			break
		}
		if i > 0 {
			time.Sleep(politenessDelay)
		}

		content, err := ExtractFullArticle(url)
		if err != nil {
			log.Printf("Could not extract %s: %v", url, err)
			continue
		}
		if len(content.Content) > 100 {
			result[url] = content
			log.Printf("Extracted %d chars from %s", len(content.Content), url)
		}
	}
	return result
}
