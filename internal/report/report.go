// Package report reads and writes the record-oriented text format the
// pipeline stages exchange: a metadata header, an ARTICLE DETAILS marker,
// then one block per article.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/biowire/biodigest/internal/article"
)

const (
	// DetailsMarker separates the free-form metadata header from the
	// article blocks. Readers skip everything before it.
	DetailsMarker = "ARTICLE DETAILS"

	timeLayout = "2006-01-02 15:04:05"
)

var (
	wideDivider    = strings.Repeat("=", 70)
	sectionDivider = strings.Repeat("=", 60)
	blockSeparator = strings.Repeat("-", 30)
)

// OccurrenceStats counts how many records were seen a given number of times.
func OccurrenceStats(records []article.CanonicalRecord) map[int]int {
	stats := make(map[int]int)
	for _, rec := range records {
		stats[rec.Occurrences]++
	}
	return stats
}

func writeOccurrenceStats(b *strings.Builder, stats map[int]int) {
	counts := make([]int, 0, len(stats))
	for n := range stats {
		counts = append(counts, n)
	}
	sort.Ints(counts)
	for _, n := range counts {
		fmt.Fprintf(b, "  %d occurrence(s): %d articles\n", n, stats[n])
	}
}

// Summary renders the raw deduplicated article summary, the first artifact
// of a run.
func Summary(records []article.CanonicalRecord, generatedAt time.Time) string {
	var b strings.Builder

	b.WriteString("ARTICLES SUMMARY (DUPLICATES REMOVED)\n")
	b.WriteString(wideDivider + "\n\n")
	fmt.Fprintf(&b, "Total unique articles: %d\n", len(records))
	fmt.Fprintf(&b, "Generated: %s\n\n", generatedAt.Format(timeLayout))

	b.WriteString("Occurrence Statistics:\n")
	writeOccurrenceStats(&b, OccurrenceStats(records))
	b.WriteString("\n" + wideDivider + "\n\n")

	for i, rec := range records {
		fmt.Fprintf(&b, "Article %d\n", i+1)
		b.WriteString(blockSeparator + "\n")
		fmt.Fprintf(&b, "Title: %s\n", rec.Candidate.Title)
		fmt.Fprintf(&b, "URL: %s\n", rec.Candidate.URL)
		if !rec.Candidate.PublishedAt.IsZero() {
			fmt.Fprintf(&b, "Published: %s\n", rec.Candidate.PublishedAt.Format(timeLayout))
		}
		fmt.Fprintf(&b, "Occurrences: %d\n", rec.Occurrences)
		content := rec.Candidate.Content
		if len(content) > 500 {
			content = content[:500] + "..."
		}
		fmt.Fprintf(&b, "Content: %s\n", content)
		b.WriteString("\n" + wideDivider + "\n\n")
	}
	return b.String()
}

// Metadata is the header block of a filtered report.
type Metadata struct {
	RequestedRange   string
	ActualRange      string
	TotalArticles    int
	GeneratedAt      time.Time
	SourceFile       string
	UniqueSources    int
	TopSources       []SourceCount
	AvgContentLength int
	PeakHour         string
	Occurrences      map[int]int
}

// SourceCount pairs a source domain with its article count.
type SourceCount struct {
	Domain string
	Count  int
}

// Filtered renders the metadata report plus article blocks consumed by the
// selection and script stages.
func Filtered(records []article.CanonicalRecord, meta Metadata) string {
	var b strings.Builder

	b.WriteString("FILTERED ARTICLES - METADATA REPORT\n")
	b.WriteString(sectionDivider + "\n\n")

	b.WriteString("QUERY INFORMATION:\n")
	b.WriteString(strings.Repeat("-", 20) + "\n")
	fmt.Fprintf(&b, "Date Range Requested: %s\n", meta.RequestedRange)
	fmt.Fprintf(&b, "Actual Date Range: %s\n", meta.ActualRange)
	fmt.Fprintf(&b, "Total Articles Found: %d\n", meta.TotalArticles)
	fmt.Fprintf(&b, "Generated At: %s\n", meta.GeneratedAt.Format(timeLayout))
	fmt.Fprintf(&b, "Source File: %s\n\n", meta.SourceFile)

	b.WriteString("SOURCE ANALYSIS:\n")
	b.WriteString(strings.Repeat("-", 15) + "\n")
	fmt.Fprintf(&b, "Unique Sources: %d\n", meta.UniqueSources)
	b.WriteString("Top Sources:\n")
	for _, src := range meta.TopSources {
		fmt.Fprintf(&b, "  %s: %d articles\n", src.Domain, src.Count)
	}
	b.WriteString("\n")

	b.WriteString("CONTENT ANALYSIS:\n")
	b.WriteString(strings.Repeat("-", 16) + "\n")
	fmt.Fprintf(&b, "Average Content Length: %d characters\n", meta.AvgContentLength)
	fmt.Fprintf(&b, "Peak Publishing Hour: %s\n\n", meta.PeakHour)

	b.WriteString("OCCURRENCE DISTRIBUTION:\n")
	b.WriteString(strings.Repeat("-", 23) + "\n")
	writeOccurrenceStats(&b, meta.Occurrences)
	b.WriteString("\n")

	b.WriteString(sectionDivider + "\n")
	b.WriteString(DetailsMarker + "\n")
	b.WriteString(sectionDivider + "\n\n")

	for i, rec := range records {
		fmt.Fprintf(&b, "Article %d\n", i+1)
		b.WriteString(blockSeparator + "\n")
		fmt.Fprintf(&b, "Title: %s\n", rec.Candidate.Title)
		fmt.Fprintf(&b, "URL: %s\n", rec.Candidate.URL)
		fmt.Fprintf(&b, "Source: %s\n", rec.Candidate.SourceID)
		if !rec.Candidate.PublishedAt.IsZero() {
			fmt.Fprintf(&b, "Published: %s\n", rec.Candidate.PublishedAt.Format(timeLayout))
		}
		fmt.Fprintf(&b, "Occurrences: %d\n", rec.Occurrences)
		fmt.Fprintf(&b, "Content Length: %d characters\n", len(rec.Candidate.Content))
		fmt.Fprintf(&b, "Content: %s\n", rec.Candidate.Content)
		b.WriteString("\n" + sectionDivider + "\n\n")
	}
	return b.String()
}

// Parse reads article blocks out of report text. Everything before the
// ARTICLE DETAILS marker is skipped when the marker is present; content
// continuation lines (anything not starting with '=') are joined with a
// space; an unparsable Published timestamp becomes the zero time and the
// record is kept.
func Parse(text string) []article.CanonicalRecord {
	lines := strings.Split(text, "\n")

	start := 0
	for i, line := range lines {
		if strings.TrimSpace(line) == DetailsMarker {
			start = i + 1
			break
		}
	}

	var records []article.CanonicalRecord
	var current *article.CanonicalRecord

	flush := func() {
		if current != nil {
			records = append(records, *current)
			current = nil
		}
	}

	for i := start; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])

		if strings.HasPrefix(line, "Article ") && i+1 < len(lines) &&
			strings.Contains(lines[i+1], blockSeparator) {
			flush()
			current = &article.CanonicalRecord{Occurrences: 1, FirstSeen: len(records)}
			i++ // skip the separator line
			continue
		}
		if current == nil {
			continue
		}

		switch {
		case strings.HasPrefix(line, "Title: "):
			current.Candidate.Title = line[len("Title: "):]
		case strings.HasPrefix(line, "URL: "):
			current.Candidate.URL = line[len("URL: "):]
		case strings.HasPrefix(line, "Source: "):
			current.Candidate.SourceID = line[len("Source: "):]
		case strings.HasPrefix(line, "Published: "):
			if ts, err := time.Parse(timeLayout, line[len("Published: "):]); err == nil {
				current.Candidate.PublishedAt = ts
			}
		case strings.HasPrefix(line, "Occurrences: "):
			var n int
			if _, err := fmt.Sscanf(line[len("Occurrences: "):], "%d", &n); err == nil && n >= 1 {
				current.Occurrences = n
			}
		case strings.HasPrefix(line, "Content: "):
			content := line[len("Content: "):]
			j := i + 1
			for j < len(lines) && !strings.HasPrefix(strings.TrimSpace(lines[j]), "=") {
				if trimmed := strings.TrimSpace(lines[j]); trimmed != "" {
					content += " " + trimmed
				}
				j++
			}
			current.Candidate.Content = content
			i = j - 1
		}
	}
	flush()
	return records
}
