// Package query filters canonical records by publication date and derives
// the metadata block that heads a filtered report.
package query

import (
	"fmt"
	"sort"
	"time"

	"github.com/biowire/biodigest/internal/article"
	"github.com/biowire/biodigest/internal/feed"
	"github.com/biowire/biodigest/internal/report"
)

const dateLayout = "2006-01-02"

// Range is an inclusive day-granularity date range.
type Range struct {
	Start time.Time
	End   time.Time
}

// ParseRange parses "YYYY-MM-DD" start and end strings.
func ParseRange(start, end string) (Range, error) {
	s, err := time.Parse(dateLayout, start)
	if err != nil {
		return Range{}, fmt.Errorf("parsing start date %q: %w", start, err)
	}
	e, err := time.Parse(dateLayout, end)
	if err != nil {
		return Range{}, fmt.Errorf("parsing end date %q: %w", end, err)
	}
	if e.Before(s) {
		return Range{}, fmt.Errorf("end date %s before start date %s", end, start)
	}
	return Range{Start: s, End: e}, nil
}

// LastDays returns the range covering the past n days up to today.
func LastDays(n int, now time.Time) Range {
	end := truncateToDay(now)
	return Range{Start: end.AddDate(0, 0, -(n - 1)), End: end}
}

func (r Range) String() string {
	return r.Start.Format(dateLayout) + " to " + r.End.Format(dateLayout)
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// FilterByDate keeps records whose publication day falls inside the range.
// Records without a publication timestamp are excluded: a digest cannot
// vouch for their recency.
func FilterByDate(records []article.CanonicalRecord, r Range) []article.CanonicalRecord {
	var out []article.CanonicalRecord
	for _, rec := range records {
		if rec.Candidate.PublishedAt.IsZero() {
			continue
		}
		day := truncateToDay(rec.Candidate.PublishedAt)
		if day.Before(r.Start) || day.After(r.End) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// Describe computes the metadata header for a set of filtered records.
func Describe(records []article.CanonicalRecord, requested Range, sourceFile string, now time.Time) report.Metadata {
	meta := report.Metadata{
		RequestedRange: requested.String(),
		ActualRange:    "N/A",
		TotalArticles:  len(records),
		GeneratedAt:    now,
		SourceFile:     sourceFile,
		PeakHour:       "N/A",
		Occurrences:    report.OccurrenceStats(records),
	}
	if len(records) == 0 {
		return meta
	}

	var minDay, maxDay time.Time
	domainCounts := make(map[string]int)
	hourCounts := make(map[int]int)
	totalContent := 0

	for _, rec := range records {
		if ts := rec.Candidate.PublishedAt; !ts.IsZero() {
			day := truncateToDay(ts)
			if minDay.IsZero() || day.Before(minDay) {
				minDay = day
			}
			if day.After(maxDay) {
				maxDay = day
			}
			hourCounts[ts.Hour()]++
		}
		if rec.Candidate.URL != "" {
			domainCounts[feed.Domain(rec.Candidate.URL)]++
		}
		totalContent += len(rec.Candidate.Content)
	}

	if !minDay.IsZero() {
		meta.ActualRange = minDay.Format(dateLayout) + " to " + maxDay.Format(dateLayout)
	}
	meta.UniqueSources = len(domainCounts)
	meta.TopSources = topSources(domainCounts, 5)
	meta.AvgContentLength = totalContent / len(records)

	if len(hourCounts) > 0 {
		peakHour, peakCount := 0, -1
		for hour, count := range hourCounts {
			if count > peakCount || (count == peakCount && hour < peakHour) {
				peakHour, peakCount = hour, count
			}
		}
		meta.PeakHour = fmt.Sprintf("%02d:00 (%d articles)", peakHour, peakCount)
	}
	return meta
}

func topSources(counts map[string]int, limit int) []report.SourceCount {
	sources := make([]report.SourceCount, 0, len(counts))
	for domain, count := range counts {
		sources = append(sources, report.SourceCount{Domain: domain, Count: count})
	}
	sort.Slice(sources, func(i, j int) bool {
		if sources[i].Count != sources[j].Count {
			return sources[i].Count > sources[j].Count
		}
		return sources[i].Domain < sources[j].Domain
	})
	if len(sources) > limit {
		sources = sources[:limit]
	}
	return sources
}
