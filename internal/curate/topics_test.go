package curate

import (
	"testing"

	"github.com/biowire/biodigest/internal/article"
)

func topicRecord(title, content string) article.CanonicalRecord {
	return article.CanonicalRecord{
		Candidate:   article.Candidate{Title: title, Content: content},
		Occurrences: 1,
	}
}

func TestTopicOf(t *testing.T) {
	tests := []struct {
		name  string
		title string
		body  string
		want  article.Topic
	}{
		{"cancer", "tumor biology update", "new oncology data on carcinoma progression", Cancer},
		{"genetics", "crispr edits dna", "the genome work targets a single gene", Genetics},
		{"microbiome", "gut bacteria mapped", "microbial diversity in the microbiome", Microbiome},
		{"infectious", "pathogen surveillance", "virus mutation tracked before vaccine rollout", InfectiousDisease},
		{"general fallback", "opinion piece", "nothing matching any vocabulary at all", General},
	}
	for _, tt := range tests {
		if got := TopicOf(topicRecord(tt.title, tt.body)); got != tt.want {
			t.Errorf("%s: TopicOf = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestTopicOfDeterministic(t *testing.T) {
	rec := topicRecord("crispr trial", "gene therapy study for tumor treatment")
	first := TopicOf(rec)
	for i := 0; i < 50; i++ {
		if got := TopicOf(rec); got != first {
			t.Fatalf("classification changed between calls: %q vs %q", first, got)
		}
	}
}

func TestTopicOfTieBreaksByDeclarationOrder(t *testing.T) {
	// One therapeutics keyword and one cancer keyword: therapeutics is
	// declared first and must win the tie.
	rec := topicRecord("drug news", "briefly mentions a tumor")
	if got := TopicOf(rec); got != Therapeutics {
		t.Errorf("TopicOf = %q, want %q on tie", got, Therapeutics)
	}
}

func TestCategoriesCoverKeywordTable(t *testing.T) {
	if len(Categories) != len(topicKeywords) {
		t.Fatalf("Categories has %d entries, keyword table has %d", len(Categories), len(topicKeywords))
	}
	for _, topic := range Categories {
		if len(topicKeywords[topic]) == 0 {
			t.Errorf("category %q has no keywords", topic)
		}
	}
}
