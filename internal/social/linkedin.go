// Package social builds share-ready posts from a finished digest script.
package social

import (
	"fmt"
	"regexp"
	"strings"
)

const hashtags = "#Biotech #Biotechnology #Science #Innovation #Healthcare #Research"

var htmlTag = regexp.MustCompile(`<[^>]+>`)

// ExtractTitles pulls story titles out of a digest script: "Story N:" lines
// before the quick hits section and bullet lines inside it. Extraction stops
// at the first section header after the quick hits.
func ExtractTitles(script string) []string {
	var titles []string
	inQuickHits := false

	for _, raw := range strings.Split(script, "\n") {
		line := strings.TrimSpace(raw)

		if line == "=== QUICK HITS ===" {
			inQuickHits = true
			continue
		}
		if inQuickHits && strings.HasPrefix(line, "===") {
			break
		}

		switch {
		case !inQuickHits && strings.HasPrefix(line, "Story ") && strings.Contains(line, ":"):
			title := strings.TrimSpace(line[strings.Index(line, ":")+1:])
			titles = append(titles, htmlTag.ReplaceAllString(title, ""))
		case inQuickHits && strings.HasPrefix(line, "• "):
			title := strings.TrimSpace(line[len("• "):])
			titles = append(titles, htmlTag.ReplaceAllString(title, ""))
		}
	}
	return titles
}

// LinkedInPost renders a post with one markdown link per story. Titles
// missing from urlByTitle are listed without a link. The compact variant
// drops the blank line between entries.
func LinkedInPost(script string, urlByTitle map[string]string, compact bool) string {
	titles := ExtractTitles(script)
	if len(titles) == 0 {
		return "No articles found in script."
	}

	var lines []string
	lines = append(lines, "🔬 This Week's Top Biotech News", "")
	if compact {
		lines = append(lines, "Key developments in biotechnology:", "")
	} else {
		lines = append(lines, "Here are the key developments in biotechnology this week:", "")
	}

	for i, title := range titles {
		if url, ok := urlByTitle[title]; ok {
			lines = append(lines, fmt.Sprintf("%d. [%s](%s)", i+1, title, url))
		} else {
			lines = append(lines, fmt.Sprintf("%d. %s", i+1, title))
		}
		if !compact {
			lines = append(lines, "")
		}
	}
	if compact {
		lines = append(lines, "")
	}
	lines = append(lines, hashtags)
	return strings.Join(lines, "\n")
}
