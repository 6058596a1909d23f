package curate

import (
	"testing"
	"time"

	"github.com/biowire/biodigest/internal/article"
)

var scoreNow = time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

func record(title, content string, occurrences int, published time.Time) article.CanonicalRecord {
	return article.CanonicalRecord{
		Key:         "url:https://example.com/" + title,
		Candidate:   article.Candidate{Title: title, Content: content, PublishedAt: published},
		Occurrences: occurrences,
	}
}

func TestImpactKeywordWeights(t *testing.T) {
	base := record("quiet quarter for the sector", "nothing notable here", 1, time.Time{})
	fda := record("fda clears quiet quarter", "nothing notable here", 1, time.Time{})

	got := Impact(base, scoreNow)
	if got != 2 { // occurrence bonus only
		t.Errorf("baseline score = %v, want 2", got)
	}
	if diff := Impact(fda, scoreNow) - got; diff != 5 {
		t.Errorf("fda keyword added %v, want 5", diff)
	}
}

func TestImpactKeywordCountedOncePerText(t *testing.T) {
	once := record("fda decision", "", 1, time.Time{})
	thrice := record("fda fda fda decision", "", 1, time.Time{})
	if Impact(once, scoreNow) != Impact(thrice, scoreNow) {
		t.Error("repeated keyword occurrences must not add weight")
	}
}

func TestImpactOccurrenceBonus(t *testing.T) {
	one := record("a quiet day", "", 1, time.Time{})
	four := record("a quiet day", "", 4, time.Time{})
	if diff := Impact(four, scoreNow) - Impact(one, scoreNow); diff != 6 {
		t.Errorf("occurrence bonus for +3 occurrences = %v, want 6", diff)
	}
}

func TestImpactLengthBonus(t *testing.T) {
	long := record("a quiet day", string(make([]byte, 301)), 1, time.Time{})
	short := record("a quiet day", string(make([]byte, 300)), 1, time.Time{})
	if diff := Impact(long, scoreNow) - Impact(short, scoreNow); diff != 1 {
		t.Errorf("length bonus = %v, want 1", diff)
	}
}

func TestImpactRecencyBonus(t *testing.T) {
	tests := []struct {
		name      string
		published time.Time
		want      float64
	}{
		{"same day", scoreNow.Add(-6 * time.Hour), 2},
		{"two days old", scoreNow.Add(-2 * 24 * time.Hour), 1},
		{"one week old", scoreNow.Add(-7 * 24 * time.Hour), 0},
		{"missing timestamp", time.Time{}, 0},
	}
	base := Impact(record("a quiet day", "", 1, time.Time{}), scoreNow)
	for _, tt := range tests {
		got := Impact(record("a quiet day", "", 1, tt.published), scoreNow) - base
		if got != tt.want {
			t.Errorf("%s: recency bonus = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestImpactMonotonicity(t *testing.T) {
	less := record("study released", "", 2, scoreNow.Add(-5*24*time.Hour))
	more := record("novel study released", "", 2, scoreNow.Add(-5*24*time.Hour))
	if Impact(more, scoreNow) < Impact(less, scoreNow) {
		t.Error("additional matched keyword lowered the score")
	}

	fresher := record("study released", "", 2, scoreNow.Add(-2*time.Hour))
	if Impact(fresher, scoreNow) < Impact(less, scoreNow) {
		t.Error("fresher timestamp lowered the score")
	}

	seen := record("study released", "", 3, scoreNow.Add(-5*24*time.Hour))
	if Impact(seen, scoreNow) < Impact(less, scoreNow) {
		t.Error("additional occurrence lowered the score")
	}
}

func TestImpactNeverNegative(t *testing.T) {
	if got := Impact(article.CanonicalRecord{Occurrences: 1}, scoreNow); got < 0 {
		t.Errorf("score = %v, want >= 0", got)
	}
}
