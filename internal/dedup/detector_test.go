package dedup

import (
	"testing"
	"time"

	"github.com/biowire/biodigest/internal/article"
)

func candidate(title, url, content string) article.Candidate {
	return article.Candidate{
		Title:       title,
		URL:         url,
		PublishedAt: time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC),
		Content:     content,
		SourceID:    "example.com",
	}
}

func TestAddIdenticalCandidateTwice(t *testing.T) {
	ix := NewIndex()
	c := candidate("Gene therapy milestone", "https://example.com/a", "Full story text.")

	first := ix.Add(c)
	second := ix.Add(c)

	if first.Duplicate {
		t.Error("first sighting classified as duplicate")
	}
	if !second.Duplicate || second.Method != MethodURL {
		t.Errorf("second sighting = %+v, want URL duplicate", second)
	}
	recs := ix.Records()
	if len(recs) != 1 {
		t.Fatalf("got %d canonical records, want 1", len(recs))
	}
	if recs[0].Occurrences != 2 {
		t.Errorf("occurrences = %d, want 2", recs[0].Occurrences)
	}
}

func TestURLTrackingParametersCollapse(t *testing.T) {
	ix := NewIndex()
	ix.Add(candidate("Story A", "https://example.com/a", "text a"))
	res := ix.Add(candidate("Story A again", "https://example.com/a?utm=1", "text a again"))
	ix.Add(candidate("Story B", "https://example.com/b", "text b"))

	if !res.Duplicate || res.Method != MethodURL {
		t.Errorf("tracking-parameter variant = %+v, want URL duplicate", res)
	}
	recs := ix.Records()
	if len(recs) != 2 {
		t.Fatalf("got %d canonical records, want 2", len(recs))
	}
	if recs[0].Occurrences != 2 {
		t.Errorf("record A occurrences = %d, want 2", recs[0].Occurrences)
	}
	if recs[1].Occurrences != 1 {
		t.Errorf("record B occurrences = %d, want 1", recs[1].Occurrences)
	}
}

func TestTitleDuplicateAcrossSources(t *testing.T) {
	ix := NewIndex()
	ix.Add(candidate("BREAKING: Trial succeeds", "https://one.example/x", "body one"))
	res := ix.Add(candidate("Trial succeeds", "https://two.example/y", "body two"))
	if !res.Duplicate || res.Method != MethodTitle {
		t.Errorf("got %+v, want exact-title duplicate", res)
	}
}

func TestContentFingerprintDuplicate(t *testing.T) {
	ix := NewIndex()
	ix.Add(candidate("Headline one here today", "https://one.example/x", "Shared   body TEXT"))
	res := ix.Add(candidate("A totally unrelated wording", "https://two.example/y", "shared body text"))
	if !res.Duplicate || res.Method != MethodContent {
		t.Errorf("got %+v, want content duplicate", res)
	}
}

func TestFuzzyTitleDuplicate(t *testing.T) {
	ix := NewIndex()
	ix.Add(candidate("novel cancer immunotherapy shows strong results", "https://one.example/x", "body one"))
	res := ix.Add(candidate("novel cancer immunotherapy shows strong result", "https://two.example/y", "body two"))
	if !res.Duplicate || res.Method != MethodSimilarTitle {
		t.Errorf("got %+v, want fuzzy-title duplicate", res)
	}

	far := ix.Add(candidate("quarterly earnings at a diagnostics firm", "https://three.example/z", "body three"))
	if far.Duplicate {
		t.Errorf("dissimilar title classified duplicate: %+v", far)
	}
}

func TestFallbackKeyOnlyExactMatch(t *testing.T) {
	ix := NewIndex()
	empty := article.Candidate{}
	first := ix.Add(empty)
	second := ix.Add(empty)
	if first.Duplicate {
		t.Error("first empty candidate marked duplicate")
	}
	if second.Key != first.Key {
		t.Error("structurally identical candidates should share the fallback key")
	}
	recs := ix.Records()
	if len(recs) != 1 || recs[0].Occurrences != 2 {
		t.Fatalf("fallback records = %+v, want one record with 2 occurrences", recs)
	}

	other := ix.Add(article.Candidate{SourceID: "different"})
	if other.Key == first.Key {
		t.Error("structurally different candidates must not share a fallback key")
	}
}

func TestRepresentativeFrozenAtFirstSighting(t *testing.T) {
	ix := NewIndex()
	ix.Add(candidate("First wording", "https://example.com/a", "original body"))
	ix.Add(candidate("Second wording", "https://example.com/a?ref=home", "replacement body"))

	recs := ix.Records()
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1", len(recs))
	}
	if recs[0].Candidate.Title != "First wording" {
		t.Errorf("representative title = %q, want first-seen wording", recs[0].Candidate.Title)
	}
	if recs[0].Candidate.Content != "original body" {
		t.Errorf("representative content replaced: %q", recs[0].Candidate.Content)
	}
}

func TestRecordsPreserveFirstSeenOrder(t *testing.T) {
	ix := NewIndex()
	ix.Add(candidate("Alpha headline wording", "https://example.com/1", "a"))
	ix.Add(candidate("Beta headline wording x", "https://example.com/2", "b"))
	ix.Add(candidate("Gamma completely different", "https://example.com/3", "c"))

	recs := ix.Records()
	for i, rec := range recs {
		if rec.FirstSeen != i {
			t.Errorf("record %d has FirstSeen %d", i, rec.FirstSeen)
		}
	}
}
