// Package curate turns deduplicated canonical records into a scored,
// topic-diverse, two-tier selection for a fixed-length digest.
package curate

import (
	"strings"

	"time"

	"github.com/biowire/biodigest/internal/article"
)

// impactKeyword weights a domain term. Every keyword whose text appears in
// the article contributes its full weight once, regardless of how many times
// it occurs.
type impactKeyword struct {
	text   string
	weight float64
}

// Regulatory and discovery terms outrank treatment terms, which outrank
// business and research-activity terms.
var impactKeywords = []impactKeyword{
	{"clinical trial", 5},
	{"fda", 5},
	{"approval", 5},
	{"breakthrough", 4},
	{"discovery", 4},
	{"first", 4},
	{"novel", 4},
	{"treatment", 3},
	{"cure", 3},
	{"drug", 3},
	{"therapy", 3},
	{"funding", 2},
	{"investment", 2},
	{"partnership", 2},
	{"collaboration", 2},
	{"study", 2},
	{"research", 2},
	{"development", 2},
}

const (
	occurrenceBonus    = 2.0
	lengthBonusCutoff  = 300
	recencyFreshDays   = 1
	recencyRecentDays  = 3
	recencyFreshBonus  = 2.0
	recencyRecentBonus = 1.0
)

// Impact computes the newsworthiness heuristic for one canonical record:
// keyword weights + occurrences*2 + length bonus + recency bonus against now.
// Never negative; monotonic in each contributing factor. A zero published
// time contributes no recency bonus.
func Impact(rec article.CanonicalRecord, now time.Time) float64 {
	text := strings.ToLower(rec.Candidate.Title + " " + rec.Candidate.Content)

	var score float64
	for _, kw := range impactKeywords {
		if strings.Contains(text, kw.text) {
			score += kw.weight
		}
	}

	score += float64(rec.Occurrences) * occurrenceBonus

	if len(rec.Candidate.Content) > lengthBonusCutoff {
		score++
	}

	if !rec.Candidate.PublishedAt.IsZero() {
		days := int(now.Sub(rec.Candidate.PublishedAt).Hours() / 24)
		switch {
		case days <= recencyFreshDays:
			score += recencyFreshBonus
		case days <= recencyRecentDays:
			score += recencyRecentBonus
		}
	}

	if score < 0 {
		score = 0
	}
	return score
}
