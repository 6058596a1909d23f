// Package article holds the data types shared across the curation pipeline.
package article

import "time"

// Candidate is a raw article as produced by the feed layer. It is immutable
// once constructed; a zero PublishedAt means the feed carried no usable
// timestamp.
type Candidate struct {
	Title       string
	URL         string
	PublishedAt time.Time
	Content     string
	SourceID    string
}

// CanonicalRecord is the stored representative for one canonical key. The
// Candidate is frozen at first sighting; only Occurrences changes afterwards.
type CanonicalRecord struct {
	Key         string
	Candidate   Candidate
	Occurrences int
	FirstSeen   int // insertion order within the run, starting at 0
}

// Topic is a closed-set category label assigned by keyword voting.
type Topic string

// ScoredArticle is a canonical record annotated with its impact score and topic.
type ScoredArticle struct {
	CanonicalRecord
	Impact float64
	Topic  Topic
}

// Selection is the two-tier output of the curation selector. Both tiers are
// internally ordered by descending impact and are disjoint.
type Selection struct {
	MainStories []ScoredArticle
	QuickHits   []ScoredArticle

	// EstimatedDuration is the sum of the fixed per-story time units.
	EstimatedDuration time.Duration

	// Plan is the 60/30/10 time split derived from the requested duration.
	// It informs reporting only; it does not size the tiers.
	Plan DurationPlan
}

// DurationPlan is the reporting-time split of a target episode length.
type DurationPlan struct {
	MainStories time.Duration
	QuickHits   time.Duration
	Analysis    time.Duration
}

// All returns main stories followed by quick hits.
func (s Selection) All() []ScoredArticle {
	out := make([]ScoredArticle, 0, len(s.MainStories)+len(s.QuickHits))
	out = append(out, s.MainStories...)
	out = append(out, s.QuickHits...)
	return out
}
