package curate

import (
	"sort"
	"time"

	"github.com/biowire/biodigest/internal/article"
)

// Tier caps and per-story time units. These are a fixed "standard episode"
// format: the requested target duration shapes only the reporting split, not
// the caps.
const (
	MaxMainStories   = 6
	MaxQuickHits     = 12
	mainStoryWindow  = 10
	quickHitWindow   = 15
	maxPerTopicMain  = 2
	maxPerTopicTotal = 3

	MainStoryUnit = 180 * time.Second
	QuickHitUnit  = 20 * time.Second
)

// Select scores and classifies every record, sorts by impact, and greedily
// fills the two tiers under the topic-diversity caps. Equal scores keep their
// incoming (first-seen) order. Total over any input, including empty.
func Select(records []article.CanonicalRecord, targetDuration time.Duration, now time.Time) article.Selection {
	scored := make([]article.ScoredArticle, len(records))
	for i, rec := range records {
		scored[i] = article.ScoredArticle{
			CanonicalRecord: rec,
			Impact:          Impact(rec, now),
			Topic:           TopicOf(rec),
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Impact > scored[j].Impact
	})

	sel := article.Selection{
		Plan: article.DurationPlan{
			MainStories: targetDuration * 6 / 10,
			QuickHits:   targetDuration * 3 / 10,
			Analysis:    targetDuration / 10,
		},
	}
	topicCount := make(map[article.Topic]int)
	taken := make(map[int]bool) // index into scored

	// Main-story tier: scan the top of the sorted list once; rejected
	// records are not revisited for this tier.
	window := len(scored)
	if window > mainStoryWindow {
		window = mainStoryWindow
	}
	for i := 0; i < window && len(sel.MainStories) < MaxMainStories; i++ {
		a := scored[i]
		if topicCount[a.Topic] >= maxPerTopicMain {
			continue
		}
		sel.MainStories = append(sel.MainStories, a)
		topicCount[a.Topic]++
		taken[i] = true
		sel.EstimatedDuration += MainStoryUnit
	}

	// Quick-hit tier: everything not accepted above stays in score order,
	// including main-tier rejects.
	considered := 0
	for i := 0; i < len(scored) && len(sel.QuickHits) < MaxQuickHits; i++ {
		if taken[i] {
			continue
		}
		if considered >= quickHitWindow {
			break
		}
		considered++
		a := scored[i]
		if topicCount[a.Topic] >= maxPerTopicTotal {
			continue
		}
		sel.QuickHits = append(sel.QuickHits, a)
		topicCount[a.Topic]++
		sel.EstimatedDuration += QuickHitUnit
	}

	return sel
}
