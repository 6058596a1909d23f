package curate

import (
	"strings"

	"github.com/biowire/biodigest/internal/article"
)

// Topic labels. General is the all-zero fallback, never voted for directly.
const (
	Therapeutics      article.Topic = "therapeutics"
	Diagnostics       article.Topic = "diagnostics"
	Research          article.Topic = "research"
	Industry          article.Topic = "industry"
	Technology        article.Topic = "technology"
	Genetics          article.Topic = "genetics"
	Microbiome        article.Topic = "microbiome"
	Cancer            article.Topic = "cancer"
	RareDisease       article.Topic = "rare_disease"
	InfectiousDisease article.Topic = "infectious_disease"
	General           article.Topic = "general"
)

// Categories lists the closed topic set in declaration order. Vote ties go to
// the earlier entry, so this order is part of the classifier contract.
var Categories = []article.Topic{
	Therapeutics,
	Diagnostics,
	Research,
	Industry,
	Technology,
	Genetics,
	Microbiome,
	Cancer,
	RareDisease,
	InfectiousDisease,
}

var topicKeywords = map[article.Topic][]string{
	Therapeutics:      {"treatment", "therapy", "drug", "cure", "clinical trial", "fda", "approval"},
	Diagnostics:       {"diagnostic", "detection", "screening", "test", "biomarker"},
	Research:          {"research", "study", "discovery", "breakthrough", "novel"},
	Industry:          {"funding", "investment", "partnership", "collaboration", "company"},
	Technology:        {"technology", "platform", "tool", "device", "ai", "machine learning"},
	Genetics:          {"gene", "genetic", "dna", "rna", "genome", "crispr"},
	Microbiome:        {"microbiome", "bacteria", "microbial", "gut"},
	Cancer:            {"cancer", "oncology", "tumor", "carcinoma", "leukemia"},
	RareDisease:       {"rare disease", "orphan", "genetic disorder"},
	InfectiousDisease: {"infection", "virus", "bacterial", "pathogen", "vaccine"},
}

// TopicOf classifies a record by keyword vote over title + content. The
// category with the most matching keywords wins; ties break toward the
// first-declared category; no matches at all yield General.
func TopicOf(rec article.CanonicalRecord) article.Topic {
	text := strings.ToLower(rec.Candidate.Title + " " + rec.Candidate.Content)

	best := General
	bestVotes := 0
	for _, topic := range Categories {
		votes := 0
		for _, kw := range topicKeywords[topic] {
			if strings.Contains(text, kw) {
				votes++
			}
		}
		if votes > bestVotes {
			best = topic
			bestVotes = votes
		}
	}
	return best
}
