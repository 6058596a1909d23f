// Package feed loads the source list and fetches feed entries into
// candidates for the curation engine.
package feed

import (
	"html"
	"log"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/mmcdole/gofeed"
	"gopkg.in/yaml.v3"

	"github.com/biowire/biodigest/internal/article"
)

// SourcesConfig is the YAML source list:
//
// feeds:
//   - https://www.fiercebiotech.com/rss/xml
type SourcesConfig struct {
	Feeds []string `yaml:"feeds"`
}

// LoadSources reads the feed URL list from a YAML file.
func LoadSources(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg SourcesConfig
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, err
	}
	return cfg.Feeds, nil
}

// FetchAll downloads and parses every feed, returning the combined candidate
// list. A failing feed is logged and skipped; it never aborts the run.
func FetchAll(urls []string) []article.Candidate {
	parser := gofeed.NewParser()
	var candidates []article.Candidate
	successCount := 0

	for _, feedURL := range urls {
		feed, err := parser.ParseURL(feedURL)
		if err != nil {
			log.Printf("Error parsing feed %s: %v", feedURL, err)
			continue
		}
		for _, item := range feed.Items {
			candidates = append(candidates, FromItem(item))
		}
		successCount++
		log.Printf("Loaded %d articles from %s", len(feed.Items), feedURL)
	}

	log.Printf("Processed feeds: %d/%d ok", successCount, len(urls))
	return candidates
}

// FromItem converts one feed entry into a candidate. A missing or unparsable
// publish date is left as the zero time; the candidate is kept either way.
func FromItem(item *gofeed.Item) article.Candidate {
	c := article.Candidate{
		Title:    item.Title,
		URL:      item.Link,
		SourceID: Domain(item.Link),
	}

	switch {
	case item.PublishedParsed != nil:
		c.PublishedAt = *item.PublishedParsed
	case item.UpdatedParsed != nil:
		c.PublishedAt = *item.UpdatedParsed
	}

	content := item.Content
	if content == "" {
		content = item.Description
	}
	c.Content = CleanContent(content)
	return c
}

var tagPattern = regexp.MustCompile(`<[^>]+>`)

// CleanContent strips HTML tags, decodes entities, and collapses whitespace.
func CleanContent(content string) string {
	content = tagPattern.ReplaceAllString(content, " ")
	content = html.UnescapeString(content)
	return strings.Join(strings.Fields(content), " ")
}

// Domain extracts the lowercased host of a link, without a www. prefix.
// Links that do not parse yield "unknown".
func Domain(link string) string {
	if link == "" {
		return "unknown"
	}
	u, err := url.Parse(link)
	if err != nil || u.Host == "" {
		return "unknown"
	}
	return strings.TrimPrefix(strings.ToLower(u.Host), "www.")
}
