// Package dedup implements the duplicate detector and occurrence tracker for
// a single curation run. An Index is built fresh per run, fed candidates one
// at a time, and discarded afterwards; nothing is persisted.
package dedup

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
	"time"

	"github.com/biowire/biodigest/internal/article"
)

// Method names the rule that matched a candidate.
type Method string

const (
	MethodURL          Method = "url"
	MethodTitle        Method = "title"
	MethodContent      Method = "content"
	MethodSimilarTitle Method = "similar_title"
	MethodNew          Method = "new"
)

// Result is the outcome of classifying one candidate.
type Result struct {
	Duplicate bool
	Method    Method
	Key       string
}

// Index is the per-run duplicate detection state: the seen-signal sets and
// the canonical record map. Not safe for concurrent use; the engine is a
// single-pass batch.
type Index struct {
	seenURLs         map[string]struct{}
	seenTitles       map[string]struct{}
	titleOrder       []string
	seenFingerprints map[string]struct{}

	records map[string]*article.CanonicalRecord
	order   []string
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{
		seenURLs:         make(map[string]struct{}),
		seenTitles:       make(map[string]struct{}),
		seenFingerprints: make(map[string]struct{}),
		records:          make(map[string]*article.CanonicalRecord),
	}
}

// rule is one step of the detection chain. Rules run in declaration order and
// the first match wins; keeping them in a list keeps the priority auditable.
type rule struct {
	method Method
	match  func(ix *Index, url, title, fp string) bool
}

var detectionRules = []rule{
	{MethodURL, func(ix *Index, url, _, _ string) bool {
		_, ok := ix.seenURLs[url]
		return url != "" && ok
	}},
	{MethodTitle, func(ix *Index, _, title, _ string) bool {
		_, ok := ix.seenTitles[title]
		return title != "" && ok
	}},
	{MethodContent, func(ix *Index, _, _, fp string) bool {
		_, ok := ix.seenFingerprints[fp]
		return fp != "" && ok
	}},
	{MethodSimilarTitle, func(ix *Index, _, title, _ string) bool {
		if title == "" {
			return false
		}
		// O(seen titles) scan; fine for runs of a few hundred candidates.
		for _, seen := range ix.titleOrder {
			if Ratio(title, seen) >= SimilarityThreshold {
				return true
			}
		}
		return false
	}},
}

// Classify decides whether the candidate duplicates something already seen.
// New candidates register their signals into the seen sets.
func (ix *Index) Classify(c article.Candidate) Result {
	url := NormalizeURL(c.URL)
	title := NormalizeTitle(c.Title)
	fp := Fingerprint(c.Content)
	key := CanonicalKey(c)

	for _, r := range detectionRules {
		if r.match(ix, url, title, fp) {
			return Result{Duplicate: true, Method: r.method, Key: key}
		}
	}

	if url != "" {
		ix.seenURLs[url] = struct{}{}
	}
	if title != "" {
		if _, ok := ix.seenTitles[title]; !ok {
			ix.seenTitles[title] = struct{}{}
			ix.titleOrder = append(ix.titleOrder, title)
		}
	}
	if fp != "" {
		ix.seenFingerprints[fp] = struct{}{}
	}
	return Result{Duplicate: false, Method: MethodNew, Key: key}
}

// Track records an occurrence under the canonical key. It runs for every
// candidate, duplicate or not: the first sighting freezes the representative,
// later sightings only bump the count.
func (ix *Index) Track(c article.Candidate, key string) {
	if rec, ok := ix.records[key]; ok {
		rec.Occurrences++
		return
	}
	ix.records[key] = &article.CanonicalRecord{
		Key:         key,
		Candidate:   c,
		Occurrences: 1,
		FirstSeen:   len(ix.order),
	}
	ix.order = append(ix.order, key)
}

// Add classifies the candidate and tracks its occurrence in one step.
func (ix *Index) Add(c article.Candidate) Result {
	res := ix.Classify(c)
	ix.Track(c, res.Key)
	return res
}

// Records returns the canonical records in first-seen order.
func (ix *Index) Records() []article.CanonicalRecord {
	out := make([]article.CanonicalRecord, 0, len(ix.order))
	for _, key := range ix.order {
		out = append(out, *ix.records[key])
	}
	return out
}

// Len reports the number of canonical records.
func (ix *Index) Len() int { return len(ix.order) }

// CanonicalKey derives the stable identifier for a candidate: normalized URL,
// else normalized title, else content fingerprint, else a structural digest
// of the whole candidate. Fallback keys match only by exact equality.
func CanonicalKey(c article.Candidate) string {
	if url := NormalizeURL(c.URL); url != "" {
		return "url:" + url
	}
	if title := NormalizeTitle(c.Title); title != "" {
		return "title:" + title
	}
	if fp := Fingerprint(c.Content); fp != "" {
		return "content:" + fp
	}
	var published string
	if !c.PublishedAt.IsZero() {
		published = c.PublishedAt.UTC().Format(time.RFC3339)
	}
	sum := md5.Sum([]byte(strings.Join([]string{c.Title, c.URL, published, c.Content, c.SourceID}, "|")))
	return "fallback:" + hex.EncodeToString(sum[:])
}
