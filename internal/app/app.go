// Package app wires the digest pipeline: fetch, dedup, filter, select,
// script, publish. Each run writes its artifacts under a timestamped
// directory with raw/, processed/ and final/ stages.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/biowire/biodigest/internal/article"
	"github.com/biowire/biodigest/internal/config"
	"github.com/biowire/biodigest/internal/curate"
	"github.com/biowire/biodigest/internal/dedup"
	"github.com/biowire/biodigest/internal/feed"
	"github.com/biowire/biodigest/internal/gemini"
	"github.com/biowire/biodigest/internal/logger"
	"github.com/biowire/biodigest/internal/metrics"
	"github.com/biowire/biodigest/internal/query"
	"github.com/biowire/biodigest/internal/ratelimit"
	"github.com/biowire/biodigest/internal/report"
	"github.com/biowire/biodigest/internal/scraper"
	"github.com/biowire/biodigest/internal/script"
	"github.com/biowire/biodigest/internal/social"
	"github.com/biowire/biodigest/internal/storage"
	"github.com/biowire/biodigest/internal/telegram"
)

// minContentForScript is the content length below which a story is worth a
// full-page scrape before scripting.
const minContentForScript = 300

type App struct {
	cfg    *config.Config
	cache  *storage.CoverageCache
	gemini *gemini.Client
	budget *ratelimit.GeminiBudget
}

func New(cfg *config.Config) (*App, error) {
	a := &App{
		cfg:    cfg,
		cache:  storage.NewCoverageCache(cfg.CacheFilePath, cfg.CacheTTLHours),
		budget: ratelimit.NewGeminiBudget(cfg.MaxGeminiRequests),
	}

	if err := a.cache.Load(); err != nil {
		return nil, fmt.Errorf("loading coverage cache: %w", err)
	}

	if cfg.GeminiAPIKey != "" {
		client, err := gemini.NewClient(cfg.GeminiAPIKey)
		if err != nil {
			return nil, fmt.Errorf("creating gemini client: %w", err)
		}
		a.gemini = client
	}
	return a, nil
}

func (a *App) Close() {
	if a.gemini != nil {
		a.gemini.Close()
	}
}

// RunPaths holds the artifact locations of one pipeline run.
type RunPaths struct {
	RunDir          string
	PipelineLog     string
	RawSummary      string
	FilteredReport  string
	PodcastScript   string
	LinkedInPost    string
	LinkedInCompact string
	SummaryReport   string
}

func newRunPaths(outputDir string, now time.Time) RunPaths {
	runDir := filepath.Join(outputDir, "run_"+now.Format("20060102_150405"))
	return RunPaths{
		RunDir:          runDir,
		PipelineLog:     filepath.Join(runDir, "pipeline_log.txt"),
		RawSummary:      filepath.Join(runDir, "raw", "articles_summary.txt"),
		FilteredReport:  filepath.Join(runDir, "processed", "filtered_articles.txt"),
		PodcastScript:   filepath.Join(runDir, "final", "podcast_script.txt"),
		LinkedInPost:    filepath.Join(runDir, "final", "linkedin_post.txt"),
		LinkedInCompact: filepath.Join(runDir, "final", "linkedin_post_compact.txt"),
		SummaryReport:   filepath.Join(runDir, "pipeline_summary.txt"),
	}
}

func (p RunPaths) setup() error {
	for _, dir := range []string{
		p.RunDir,
		filepath.Join(p.RunDir, "raw"),
		filepath.Join(p.RunDir, "processed"),
		filepath.Join(p.RunDir, "final"),
	} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating run directory %s: %w", dir, err)
		}
	}
	return nil
}

// Run executes the full pipeline once.
func (a *App) Run(ctx context.Context) error {
	started := time.Now()
	paths := newRunPaths(a.cfg.OutputDir, started)
	if err := paths.setup(); err != nil {
		return err
	}

	// Mirror log output into the run directory so every run carries its own
	// pipeline log.
	if logFile, err := os.Create(paths.PipelineLog); err == nil {
		defer logFile.Close()
		logger.InitWithWriter(a.cfg.Debug, logFile)
	} else {
		logger.Warn("could not create pipeline log", "error", err)
	}
	logger.Info("pipeline run started", "run_dir", paths.RunDir)

	// Step 1: fetch and deduplicate.
	records, err := a.collectArticles()
	if err != nil {
		metrics.Global.SetError(err.Error())
		return err
	}
	if err := os.WriteFile(paths.RawSummary, []byte(report.Summary(records, time.Now())), 0644); err != nil {
		return fmt.Errorf("writing raw summary: %w", err)
	}
	logger.Info("articles collected", "unique", len(records))

	// Step 2: drop stories recent digests already ran, then filter by date.
	records = a.cache.FilterCovered(records)
	window := query.LastDays(a.cfg.DigestWindowDays, started)
	filtered := query.FilterByDate(records, window)
	meta := query.Describe(filtered, window, paths.RawSummary, time.Now())
	if err := os.WriteFile(paths.FilteredReport, []byte(report.Filtered(filtered, meta)), 0644); err != nil {
		return fmt.Errorf("writing filtered report: %w", err)
	}
	logger.Info("articles filtered", "window", window.String(), "kept", len(filtered))

	// Step 3: enrich thin stories and select the digest.
	filtered = a.enrichContent(filtered)
	selection := curate.Select(filtered, a.cfg.TargetDuration, time.Now())
	metrics.Global.AddStoriesSelected(len(selection.All()))
	logger.Info("stories selected",
		"main", len(selection.MainStories),
		"quick", len(selection.QuickHits),
		"estimated_duration", selection.EstimatedDuration)

	// Step 4: script generation, with optional narrative polish.
	digest := script.Generate(selection)
	digest = a.polish(ctx, digest)
	if err := os.WriteFile(paths.PodcastScript, []byte(digest), 0644); err != nil {
		return fmt.Errorf("writing podcast script: %w", err)
	}

	// Step 5: social posts.
	urlByTitle := make(map[string]string)
	for _, story := range selection.All() {
		urlByTitle[story.Candidate.Title] = story.Candidate.URL
	}
	post := social.LinkedInPost(digest, urlByTitle, false)
	compact := social.LinkedInPost(digest, urlByTitle, true)
	if err := os.WriteFile(paths.LinkedInPost, []byte(post), 0644); err != nil {
		return fmt.Errorf("writing linkedin post: %w", err)
	}
	if err := os.WriteFile(paths.LinkedInCompact, []byte(compact), 0644); err != nil {
		return fmt.Errorf("writing compact linkedin post: %w", err)
	}

	// Step 6: optional delivery.
	if a.cfg.TelegramToken != "" && len(selection.All()) > 0 {
		if err := telegram.SendDigest(ctx, a.cfg.TelegramToken, a.cfg.TelegramChatID, digest); err != nil {
			logger.Error("digest delivery failed", "error", err)
		} else {
			metrics.Global.IncrementDigestsDelivered()
		}
	}

	// Step 7: remember what this digest covered.
	a.cache.MarkCovered(selection)
	if err := a.cache.Save(); err != nil {
		logger.Warn("saving coverage cache failed", "error", err)
	}

	if err := a.writeSummaryReport(paths, window, selection, started); err != nil {
		logger.Warn("writing pipeline summary failed", "error", err)
	}

	metrics.Global.RecordRunDuration(time.Since(started))
	metrics.Global.SetLastRun()
	logger.Info("pipeline run finished", "elapsed", time.Since(started))
	return nil
}

// collectArticles fetches every configured feed and folds the candidates
// through the duplicate detector.
func (a *App) collectArticles() ([]article.CanonicalRecord, error) {
	sources, err := feed.LoadSources(a.cfg.SourcesConfigPath)
	if err != nil {
		return nil, fmt.Errorf("loading sources: %w", err)
	}

	candidates := feed.FetchAll(sources)
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no articles fetched from %d feeds", len(sources))
	}
	metrics.Global.AddCandidatesProcessed(len(candidates))

	index := dedup.NewIndex()
	duplicates := 0
	for _, c := range candidates {
		if res := index.Add(c); res.Duplicate {
			duplicates++
			logger.Debug("duplicate filtered", "method", string(res.Method), "title", c.Title)
		}
	}
	metrics.Global.AddDuplicatesFiltered(duplicates)
	logger.Info("deduplication done", "candidates", len(candidates), "duplicates", duplicates)

	return index.Records(), nil
}

// enrichContent scrapes full pages for records whose feed content is too
// thin to summarize.
func (a *App) enrichContent(records []article.CanonicalRecord) []article.CanonicalRecord {
	var thin []string
	for _, rec := range records {
		if len(rec.Candidate.Content) < minContentForScript && rec.Candidate.URL != "" {
			thin = append(thin, rec.Candidate.URL)
		}
	}
	if len(thin) == 0 {
		return records
	}

	extracted := scraper.ExtractArticles(thin, a.cfg.ScrapeMaxArticles)
	if len(extracted) == 0 {
		return records
	}
	metrics.Global.AddArticlesScraped(len(extracted))

	for i, rec := range records {
		if full, ok := extracted[rec.Candidate.URL]; ok && len(full.Content) > len(rec.Candidate.Content) {
			records[i].Candidate.Content = full.Content
		}
	}
	return records
}

// polish runs the script through Gemini when a client is configured and the
// request budget allows; on any failure the extractive script stands.
func (a *App) polish(ctx context.Context, digest string) string {
	if a.gemini == nil {
		return digest
	}
	if err := a.budget.Use(); err != nil {
		logger.Warn("skipping script polish", "error", err)
		return digest
	}
	metrics.Global.IncrementGeminiRequests()

	polished, err := a.gemini.PolishScript(ctx, digest)
	if err != nil {
		metrics.Global.IncrementGeminiFailures()
		logger.Warn("script polish failed, keeping extractive script", "error", err)
		return digest
	}
	return polished
}

func (a *App) writeSummaryReport(paths RunPaths, window query.Range, sel article.Selection, started time.Time) error {
	f, err := os.Create(paths.SummaryReport)
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Fprintf(f, "BIOTECH NEWS PIPELINE SUMMARY\n")
	fmt.Fprintf(f, "==================================================\n\n")
	fmt.Fprintf(f, "Run Directory: %s\n", paths.RunDir)
	fmt.Fprintf(f, "Started: %s\n", started.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(f, "Date Range: %s\n", window.String())
	fmt.Fprintf(f, "Main Stories: %d\n", len(sel.MainStories))
	fmt.Fprintf(f, "Quick Hits: %d\n", len(sel.QuickHits))
	fmt.Fprintf(f, "Estimated Duration: %s\n\n", sel.EstimatedDuration)

	fmt.Fprintf(f, "GENERATED FILES:\n")
	fmt.Fprintf(f, "--------------------\n")
	fmt.Fprintf(f, "Raw Articles: %s\n", paths.RawSummary)
	fmt.Fprintf(f, "Filtered Articles: %s\n", paths.FilteredReport)
	fmt.Fprintf(f, "Podcast Script: %s\n", paths.PodcastScript)
	fmt.Fprintf(f, "LinkedIn Post (Standard): %s\n", paths.LinkedInPost)
	fmt.Fprintf(f, "LinkedIn Post (Compact): %s\n", paths.LinkedInCompact)
	fmt.Fprintf(f, "Pipeline Log: %s\n", paths.PipelineLog)
	return nil
}
