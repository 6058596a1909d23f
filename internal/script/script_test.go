package script

import (
	"strings"
	"testing"

	"github.com/biowire/biodigest/internal/article"
	"github.com/biowire/biodigest/internal/curate"
)

func scored(title, source, content string, topic article.Topic) article.ScoredArticle {
	return article.ScoredArticle{
		CanonicalRecord: article.CanonicalRecord{
			Candidate: article.Candidate{
				Title:    title,
				URL:      "https://" + source + "/x",
				Content:  content,
				SourceID: source,
			},
			Occurrences: 1,
		},
		Topic: topic,
	}
}

func TestGenerateSections(t *testing.T) {
	sel := article.Selection{
		MainStories: []article.ScoredArticle{
			scored("Gene therapy approved", "fiercebiotech.com",
				"The FDA approved a new gene therapy. The decision followed a pivotal trial. More details came later.",
				curate.Therapeutics),
			scored("CRISPR milestone", "statnews.com",
				"Researchers edited a faulty gene in vivo. Patients showed durable response.",
				curate.Genetics),
		},
		QuickHits: []article.ScoredArticle{
			scored("Series B for diagnostics firm", "endpts.com",
				"The startup raised eighty million dollars. Proceeds fund a pivotal study.",
				curate.Industry),
		},
	}

	out := Generate(sel)

	for _, want := range []string{
		"=== BIOTECH WEEKLY PODCAST ===",
		"=== MAIN STORIES ===",
		"Story 1: Gene therapy approved",
		"Story 2: CRISPR milestone",
		"=== QUICK HITS ===",
		"• Series B for diagnostics firm",
		"=== TRENDS & INSIGHTS ===",
		"=== SOURCES SUMMARY ===",
		"Total sources: 3",
		"Total articles: 3",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("script missing %q", want)
		}
	}

	// Story sections come in order.
	if strings.Index(out, "=== MAIN STORIES ===") > strings.Index(out, "=== QUICK HITS ===") {
		t.Error("quick hits rendered before main stories")
	}
	if !strings.Contains(out, "We're seeing coverage from 3 different sources") {
		t.Error("trends paragraph missing source count")
	}
}

func TestGenerateEmptySelection(t *testing.T) {
	out := Generate(article.Selection{})
	if !strings.Contains(out, "No articles selected") {
		t.Errorf("unexpected output for empty selection: %q", out)
	}
}

func TestGenerateSkipsQuickHitsWhenNone(t *testing.T) {
	sel := article.Selection{
		MainStories: []article.ScoredArticle{
			scored("Solo story", "statnews.com", "One sentence here. And a second one.", curate.General),
		},
	}
	out := Generate(sel)
	if strings.Contains(out, "=== QUICK HITS ===") {
		t.Error("quick hits section rendered with no quick hits")
	}
}

func TestDetailedSummary(t *testing.T) {
	got := DetailedSummary("First sentence here. Second sentence here. Third sentence here.")
	if got != "First sentence here. Second sentence here." {
		t.Errorf("DetailedSummary = %q", got)
	}

	// Single sentence, no split point: returned unchanged when short.
	if got := DetailedSummary("Just one short blurb"); got != "Just one short blurb" {
		t.Errorf("DetailedSummary short = %q", got)
	}

	long := strings.Repeat("x", 250)
	if got := DetailedSummary(long); got != long[:200]+"..." {
		t.Errorf("DetailedSummary long = %q", got)
	}
}

func TestBriefSummaryFirstSentence(t *testing.T) {
	got := BriefSummary("Company announces trial results. Shares jumped on the news.")
	if got != "Company announces trial results." {
		t.Errorf("BriefSummary = %q", got)
	}
}

func TestBriefSummaryAddsTerminator(t *testing.T) {
	if got := BriefSummary("no punctuation at all"); got != "no punctuation at all." {
		t.Errorf("BriefSummary = %q", got)
	}
}

func TestBriefSummaryPrefersShortSecondSentence(t *testing.T) {
	long := strings.Repeat("w", 210)
	got := BriefSummary(long + ". Short second sentence here.")
	if got != "Short second sentence here." {
		t.Errorf("BriefSummary = %q", got)
	}
}

func TestBriefSummaryClauseBreak(t *testing.T) {
	first := strings.Repeat("a", 100) + " and " + strings.Repeat("b", 120)
	got := BriefSummary(first)
	if got != strings.Repeat("a", 100)+"." {
		t.Errorf("BriefSummary = %q", got)
	}
}

func TestBriefSummaryWordBoundaryFallback(t *testing.T) {
	// One 300-char sentence with no clause breaks forces the word-boundary cut.
	words := strings.Repeat("alpha beta gamma delta ", 14)
	got := BriefSummary(words)
	if len(got) > 151 {
		t.Errorf("fallback summary too long: %d chars", len(got))
	}
	if !strings.HasSuffix(got, ".") {
		t.Errorf("fallback summary unterminated: %q", got)
	}
	if strings.Contains(got, "  ") {
		t.Errorf("fallback summary has mid-word damage: %q", got)
	}
}
