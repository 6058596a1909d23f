package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mu sync.RWMutex

	// Counters
	CandidatesProcessed int64
	DuplicatesFiltered  int64
	ArticlesScraped     int64
	StoriesSelected     int64
	GeminiRequests      int64
	GeminiFailures      int64
	DigestsDelivered    int64

	// Timings
	LastRunDuration    time.Duration
	AverageRunDuration time.Duration
	TotalRunDuration   time.Duration
	RunCount           int64

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) AddCandidatesProcessed(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CandidatesProcessed += int64(n)
}

func (m *Metrics) AddDuplicatesFiltered(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicatesFiltered += int64(n)
}

func (m *Metrics) AddArticlesScraped(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesScraped += int64(n)
}

func (m *Metrics) AddStoriesSelected(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StoriesSelected += int64(n)
}

func (m *Metrics) IncrementGeminiRequests() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GeminiRequests++
}

func (m *Metrics) IncrementGeminiFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GeminiFailures++
}

func (m *Metrics) IncrementDigestsDelivered() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DigestsDelivered++
}

func (m *Metrics) RecordRunDuration(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastRunDuration = duration
	m.TotalRunDuration += duration
	m.RunCount++

	if m.RunCount > 0 {
		m.AverageRunDuration = m.TotalRunDuration / time.Duration(m.RunCount)
	}
}

func (m *Metrics) SetLastRun() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunTime = time.Now()
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"candidates_processed":    m.CandidatesProcessed,
		"duplicates_filtered":     m.DuplicatesFiltered,
		"articles_scraped":        m.ArticlesScraped,
		"stories_selected":        m.StoriesSelected,
		"gemini_requests":         m.GeminiRequests,
		"gemini_failures":         m.GeminiFailures,
		"digests_delivered":       m.DigestsDelivered,
		"last_run_duration_ms":    m.LastRunDuration.Milliseconds(),
		"average_run_duration_ms": m.AverageRunDuration.Milliseconds(),
		"last_run_time":           m.LastRunTime.Format(time.RFC3339),
		"last_error_time":         m.LastErrorTime.Format(time.RFC3339),
		"last_error":              m.LastError,
		"is_healthy":              m.IsHealthy,
	}
}
