// Package storage persists which stories past digests already covered so a
// story never headlines two weeks in a row.
package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/biowire/biodigest/internal/article"
	"github.com/biowire/biodigest/internal/feed"
)

// CoveredStory is one story a published digest included.
type CoveredStory struct {
	Hash      string    `json:"hash"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Topic     string    `json:"topic"`
	Source    string    `json:"source"`
	CoveredAt time.Time `json:"covered_at"`
}

// CoverageCache manages covered stories in a JSON file.
type CoverageCache struct {
	filePath string
	ttlHours int
	items    map[string]CoveredStory
	mu       sync.RWMutex
}

func NewCoverageCache(filePath string, ttlHours int) *CoverageCache {
	return &CoverageCache{
		filePath: filePath,
		ttlHours: ttlHours,
		items:    make(map[string]CoveredStory),
	}
}

// Load reads the cache file, dropping entries older than the TTL. A missing
// or empty file yields an empty cache.
func (cc *CoverageCache) Load() error {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	if _, err := os.Stat(cc.filePath); os.IsNotExist(err) {
		return nil
	}

	data, err := os.ReadFile(cc.filePath)
	if err != nil {
		return fmt.Errorf("failed to read cache file: %v", err)
	}
	if len(data) == 0 {
		return nil
	}

	var items []CoveredStory
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("failed to unmarshal cache: %v", err)
	}

	cutoff := time.Now().Add(-time.Duration(cc.ttlHours) * time.Hour)
	for _, item := range items {
		if item.CoveredAt.After(cutoff) {
			cc.items[item.Hash] = item
		}
	}
	return nil
}

func (cc *CoverageCache) Save() error {
	cc.mu.RLock()
	items := make([]CoveredStory, 0, len(cc.items))
	for _, item := range cc.items {
		items = append(items, item)
	}
	cc.mu.RUnlock()

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache: %v", err)
	}
	if err := os.WriteFile(cc.filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write cache file: %v", err)
	}
	return nil
}

// StoryHash builds a stable identity for a story from its normalized title
// and source domain, so the same story reposted under a fresh URL path still
// matches.
func StoryHash(title, url string) string {
	normalized := strings.ToLower(strings.TrimSpace(title))
	normalized = strings.Join(strings.Fields(normalized), " ")

	h := sha256.New()
	h.Write([]byte(normalized + "|" + feed.Domain(url)))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// IsCovered reports whether the story appeared in a digest within the TTL.
func (cc *CoverageCache) IsCovered(title, url string) bool {
	cc.mu.RLock()
	defer cc.mu.RUnlock()

	item, exists := cc.items[StoryHash(title, url)]
	if !exists {
		return false
	}
	cutoff := time.Now().Add(-time.Duration(cc.ttlHours) * time.Hour)
	return item.CoveredAt.After(cutoff)
}

// MarkCovered records every story in a published selection.
func (cc *CoverageCache) MarkCovered(sel article.Selection) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	now := time.Now()
	for _, story := range sel.All() {
		hash := StoryHash(story.Candidate.Title, story.Candidate.URL)
		cc.items[hash] = CoveredStory{
			Hash:      hash,
			Title:     story.Candidate.Title,
			URL:       story.Candidate.URL,
			Topic:     string(story.Topic),
			Source:    story.Candidate.SourceID,
			CoveredAt: now,
		}
	}
}

// FilterCovered drops records whose story a recent digest already ran.
func (cc *CoverageCache) FilterCovered(records []article.CanonicalRecord) []article.CanonicalRecord {
	var out []article.CanonicalRecord
	for _, rec := range records {
		if cc.IsCovered(rec.Candidate.Title, rec.Candidate.URL) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// Cleanup removes expired items from memory.
func (cc *CoverageCache) Cleanup() {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	cutoff := time.Now().Add(-time.Duration(cc.ttlHours) * time.Hour)
	for hash, item := range cc.items {
		if item.CoveredAt.Before(cutoff) {
			delete(cc.items, hash)
		}
	}
}

// GetStats returns cache statistics.
func (cc *CoverageCache) GetStats() map[string]int {
	cc.mu.RLock()
	defer cc.mu.RUnlock()

	return map[string]int{
		"total_items": len(cc.items),
	}
}
