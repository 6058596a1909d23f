// Package script turns a curated selection into the spoken digest script.
package script

import (
	"fmt"
	"sort"
	"strings"

	"github.com/biowire/biodigest/internal/article"
)

const (
	// summarySentenceLimit caps a quick-hit summary; longer first sentences
	// fall back to the second sentence or a clause break.
	summarySentenceLimit = 200

	opening = "Welcome to this week's biotech news roundup. I'm your host, and today " +
		"we're covering the latest developments in biotechnology, from breakthrough " +
		"discoveries to industry updates."
	closing = "That wraps up this week's biotech news. Thanks for listening, and " +
		"we'll see you next week with more updates from the world of biotechnology."
)

// clauseBreaks are scanned in order when a first sentence runs long and no
// short second sentence exists.
var clauseBreaks = []string{" and ", " but ", " however, ", " although ", " while ", " though "}

// Generate renders the full script: opening, main stories with detailed
// summaries, quick hits with one-sentence summaries, a trends paragraph,
// the closing, and a sources appendix.
func Generate(sel article.Selection) string {
	all := sel.All()
	if len(all) == 0 {
		return "No articles selected for script generation."
	}

	var lines []string
	push := func(ss ...string) { lines = append(lines, ss...) }

	push("=== BIOTECH WEEKLY PODCAST ===", "", opening, "")

	push("=== MAIN STORIES ===", "")
	for i, story := range sel.MainStories {
		push(fmt.Sprintf("Story %d: %s", i+1, story.Candidate.Title), "")
		push(DetailedSummary(story.Candidate.Content), "", "---", "")
	}

	if len(sel.QuickHits) > 0 {
		push("=== QUICK HITS ===", "")
		push("Now for some quick updates from around the biotech world:", "")
		for _, hit := range sel.QuickHits {
			push("• " + hit.Candidate.Title)
			push("  " + BriefSummary(hit.Candidate.Content))
			push("")
		}
	}

	push("=== TRENDS & INSIGHTS ===", "")
	push(trends(all), "", closing, "")
	push(sourcesSummary(all))

	return strings.Join(lines, "\n")
}

// DetailedSummary keeps the first two sentences of the content.
func DetailedSummary(content string) string {
	sentences := strings.Split(content, ". ")
	if len(sentences) > 1 {
		summary := sentences[0] + "."
		if len(sentences) > 2 {
			summary += " " + sentences[1] + "."
		}
		return summary
	}
	if len(content) > summarySentenceLimit {
		return content[:summarySentenceLimit] + "..."
	}
	return content
}

// BriefSummary returns one complete sentence, never a mid-word cut. A first
// sentence over the limit is replaced by a short second sentence or split at
// a clause break; the last resort trims to a word boundary near 150 chars.
func BriefSummary(content string) string {
	sentences := strings.Split(content, ". ")

	first := strings.TrimSpace(sentences[0])
	if first != "" {
		first = ensureTerminated(first)
		if len(first) > summarySentenceLimit {
			if len(sentences) >= 2 {
				second := strings.TrimSpace(sentences[1])
				if second != "" && len(second) <= summarySentenceLimit {
					return ensureTerminated(second)
				}
			}
			for _, brk := range clauseBreaks {
				if idx := strings.Index(first, brk); idx >= 0 && idx <= summarySentenceLimit {
					return first[:idx] + "."
				}
			}
		}
		if len(first) <= summarySentenceLimit {
			return first
		}
	}

	if len(content) > 150 {
		words := strings.Fields(content[:150])
		if len(words) > 3 {
			// Drop the last word: it may be cut mid-way.
			return ensureTerminated(strings.Join(words[:len(words)-1], " "))
		}
	}
	return ensureTerminated(strings.TrimSpace(content))
}

func ensureTerminated(s string) string {
	if strings.HasSuffix(s, ".") || strings.HasSuffix(s, "!") || strings.HasSuffix(s, "?") {
		return s
	}
	return s + "."
}

func trends(all []article.ScoredArticle) string {
	topicCounts := make(map[article.Topic]int)
	var topicOrder []article.Topic
	sourceSet := make(map[string]struct{})
	for _, a := range all {
		if _, ok := topicCounts[a.Topic]; !ok {
			topicOrder = append(topicOrder, a.Topic)
		}
		topicCounts[a.Topic]++
		sourceSet[a.Candidate.SourceID] = struct{}{}
	}
	sort.SliceStable(topicOrder, func(i, j int) bool {
		return topicCounts[topicOrder[i]] > topicCounts[topicOrder[j]]
	})

	var b strings.Builder
	b.WriteString("Looking at this week's developments, ")
	if len(topicOrder) > 0 {
		fmt.Fprintf(&b, "the focus has been on %s research, ", topicLabel(topicOrder[0]))
		if len(topicOrder) > 1 {
			fmt.Fprintf(&b, "followed by %s. ", topicLabel(topicOrder[1]))
		} else {
			b.WriteString("showing a concentrated effort in this area. ")
		}
	}
	fmt.Fprintf(&b, "We're seeing coverage from %d different sources, ", len(sourceSet))
	b.WriteString("indicating broad industry interest in these developments.")
	return b.String()
}

func topicLabel(t article.Topic) string {
	return strings.ReplaceAll(string(t), "_", " ")
}

func sourcesSummary(all []article.ScoredArticle) string {
	counts := make(map[string]int)
	for _, a := range all {
		counts[a.Candidate.SourceID]++
	}
	sources := make([]string, 0, len(counts))
	for src := range counts {
		sources = append(sources, src)
	}
	sort.Slice(sources, func(i, j int) bool {
		if counts[sources[i]] != counts[sources[j]] {
			return counts[sources[i]] > counts[sources[j]]
		}
		return sources[i] < sources[j]
	})

	var lines []string
	lines = append(lines, "=== SOURCES SUMMARY ===", "")
	lines = append(lines, "This podcast was compiled from the following sources:", "")
	for _, src := range sources {
		plural := ""
		if counts[src] > 1 {
			plural = "s"
		}
		lines = append(lines, fmt.Sprintf("• %s: %d article%s", src, counts[src], plural))
	}
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("Total sources: %d", len(counts)))
	lines = append(lines, fmt.Sprintf("Total articles: %d", len(all)))
	return strings.Join(lines, "\n")
}
