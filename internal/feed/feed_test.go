package feed

import (
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
)

func TestFromItem(t *testing.T) {
	published := time.Date(2026, 8, 30, 8, 15, 0, 0, time.UTC)
	item := &gofeed.Item{
		Title:           "Gene therapy clears phase 2",
		Link:            "https://www.example.com/news/gene-therapy?utm=rss",
		Description:     "<p>The candidate &amp; its backers advanced.</p>",
		PublishedParsed: &published,
	}

	c := FromItem(item)
	if c.Title != "Gene therapy clears phase 2" {
		t.Errorf("title = %q", c.Title)
	}
	if c.SourceID != "example.com" {
		t.Errorf("source = %q, want example.com", c.SourceID)
	}
	if !c.PublishedAt.Equal(published) {
		t.Errorf("published = %v", c.PublishedAt)
	}
	if c.Content != "The candidate & its backers advanced." {
		t.Errorf("content = %q", c.Content)
	}
}

func TestFromItemMissingDate(t *testing.T) {
	c := FromItem(&gofeed.Item{Title: "undated", Link: "https://example.com/x"})
	if !c.PublishedAt.IsZero() {
		t.Errorf("missing dates should stay zero, got %v", c.PublishedAt)
	}
}

func TestCleanContent(t *testing.T) {
	in := "<div>Line one.</div>\n\n  <b>Line&nbsp;two</b> &lt;tagged&gt;"
	want := "Line one. Line two <tagged>"
	if got := CleanContent(in); got != want {
		t.Errorf("CleanContent = %q, want %q", got, want)
	}
}

func TestDomain(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "unknown"},
		{"https://www.Example.com/a/b", "example.com"},
		{"https://news.example.org/story", "news.example.org"},
		{"not a url", "unknown"},
	}
	for _, tt := range tests {
		if got := Domain(tt.in); got != tt.want {
			t.Errorf("Domain(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
