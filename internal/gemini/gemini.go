package gemini

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const (
	modelName = "gemini-1.5-flash"

	// maxPromptChars bounds the script text sent for polishing. Scripts
	// past the limit are cut at a sentence boundary.
	maxPromptChars = 12000
)

type Client struct {
	client *genai.Client
}

func NewClient(apiKey string) (*Client, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{client: client}, nil
}

func (c *Client) Close() {
	if c.client != nil {
		c.client.Close()
	}
}

// requiredSections must survive polishing; downstream stages key off them.
var requiredSections = []string{
	"=== MAIN STORIES ===",
	"=== QUICK HITS ===",
	"=== TRENDS & INSIGHTS ===",
}

// PolishScript asks the model to rewrite the digest script's summaries into
// flowing spoken narration while keeping the section structure intact. On
// any failure the caller should fall back to the extractive script.
func (c *Client) PolishScript(ctx context.Context, script string) (string, error) {
	model := c.client.GenerativeModel(modelName)

	script = strings.ReplaceAll(script, "\r", "")
	script = strings.TrimSpace(script)
	if utf8.RuneCountInString(script) > maxPromptChars {
		runes := []rune(script)
		trimmed := string(runes[:maxPromptChars])
		if idx := strings.LastIndex(trimmed, ". "); idx > 2000 {
			trimmed = trimmed[:idx+1]
		}
		script = trimmed + "\n[TRUNCATED]"
	}

	prompt := fmt.Sprintf(`You are editing a weekly biotech news podcast script.

SCRIPT:
%s

TASK:
Rewrite the story summaries into natural spoken narration a host would read
aloud. Smooth the transitions between stories.

REQUIREMENTS:
- Keep every section header line (the lines wrapped in ===) exactly as is.
- Keep every "Story N:" line and every quick-hit bullet title unchanged.
- Do not invent facts that are not in the script.
- Do not add markdown formatting or commentary about the task.
- Reply with the full rewritten script only.
`, script)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from Gemini")
	}

	response := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	polished, err := sanitizeResponse(response)
	if err != nil {
		return "", err
	}
	return polished, nil
}

var codeFence = regexp.MustCompile("(?s)^```[a-z]*\n(.*)\n```$")

// sanitizeResponse strips wrapping the model sometimes adds and verifies the
// section structure survived the rewrite.
func sanitizeResponse(response string) (string, error) {
	response = strings.TrimSpace(response)

	if m := codeFence.FindStringSubmatch(response); m != nil {
		response = strings.TrimSpace(m[1])
	}

	// Drop a leading meta line ("Here is the rewritten script:" and the like).
	if idx := strings.Index(response, "==="); idx > 0 {
		head := response[:idx]
		if !strings.Contains(head, "\n\n") && strings.Contains(strings.ToLower(head), "script") {
			log.Printf("Warning: dropping preamble line from model response")
			response = strings.TrimSpace(response[idx:])
		}
	}

	for _, section := range requiredSections {
		if !strings.Contains(response, section) {
			return "", fmt.Errorf("polished script lost section %q", section)
		}
	}
	return response, nil
}
