// Package chat assembles grounded conversational turns for the assistant
// persona. Every outbound message carries the certification catalog, the
// current business rules, and the latest recommendation results so the model
// answers from session state rather than inventing context.
package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/catalog"
	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/experience"
	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/llm"
	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/prompts"
	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/types"
)

// personalMarkers are the phrases that signal the user is asking about their
// own background, which makes it worth inlining a CV summary into the turn.
var personalMarkers = []string{
	"my",
	"i have",
	"i am",
	"experience",
	"skill",
	"certification",
	"recommend",
}

// BuildSystemPrompt composes the assistant persona, the catalog rendered for
// prompting, and CV availability guidance into a single system preamble.
func BuildSystemPrompt(entries []types.CertificateCatalogEntry, cvCount int) string {
	base := prompts.MustGet("chat.json", "system-base")
	guidance := prompts.MustGet("chat.json", "recommendation-guidance")

	var cvContext, uploadNote string
	if cvCount > 0 {
		cvContext = prompts.Format(prompts.MustGet("chat.json", "cv-context-present"), map[string]string{
			"CvCount": fmt.Sprintf("%d", cvCount),
		})
		uploadNote = prompts.MustGet("chat.json", "cv-uploaded-note")
	} else {
		cvContext = prompts.MustGet("chat.json", "cv-context-absent")
		uploadNote = prompts.MustGet("chat.json", "encourage-upload")
	}

	var b strings.Builder
	b.WriteString(strings.TrimSpace(base))
	b.WriteString("\n\n**Available Certifications Catalog:**\n")
	b.WriteString(catalog.PromptString(entries))
	b.WriteString("\n\n")
	b.WriteString(cvContext)
	b.WriteString("\n\n")
	b.WriteString(guidance)
	b.WriteString("\n\n")
	b.WriteString(uploadNote)
	return b.String()
}

// SummarizeRecommendations renders the last recommendation set as a short
// plain-text digest for grounding. Nil or empty results get a fixed marker so
// the model knows nothing has been generated yet.
func SummarizeRecommendations(recs *types.RecommendationResult) string {
	if recs == nil || len(recs.Candidates) == 0 {
		return "No recommendations generated yet."
	}

	var lines []string
	for _, candidate := range recs.Candidates {
		name := candidate.CandidateName
		if name == "" {
			name = "Candidate"
		}
		lines = append(lines, fmt.Sprintf("Candidate: %s", name))
		for _, rec := range candidate.Recommendations {
			certName := rec.CertName
			if certName == "" {
				certName = "Certification"
			}
			reason := rec.Reason
			if reason == "" {
				reason = "Reason not provided"
			}
			line := fmt.Sprintf("- %s", certName)
			if rec.CertID != "" {
				line += fmt.Sprintf(" [%s]", rec.CertID)
			}
			lines = append(lines, line+": "+reason)
		}
		lines = append(lines, "")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// BuildContextMessage appends the rules and recommendation digest to the user
// message so every turn is self-grounding regardless of history length.
func BuildContextMessage(userMessage string, rules []string, recs *types.RecommendationResult) string {
	rulesText := "No explicit business rules provided."
	if len(rules) > 0 {
		numbered := make([]string, len(rules))
		for i, rule := range rules {
			numbered[i] = fmt.Sprintf("%d. %s", i+1, rule)
		}
		rulesText = strings.Join(numbered, "\n")
	}

	return fmt.Sprintf("%s\n\n[Context]\nBusiness rules:\n%s\n\nLatest recommendations:\n%s",
		userMessage, rulesText, SummarizeRecommendations(recs))
}

// EnhanceWithCvSummary inlines a one-line-per-CV digest when the message
// sounds personal and CVs are available. Other messages pass through as-is.
func EnhanceWithCvSummary(message string, cvs []types.UploadedCv) string {
	if len(cvs) == 0 || !mentionsPersonalBackground(message) {
		return message
	}

	summaries := make([]string, len(cvs))
	for i, cv := range cvs {
		summaries[i] = summarizeCv(cv)
	}
	return fmt.Sprintf("%s\n\n[Context: %d CV(s) available. Summary: %s]",
		message, len(cvs), strings.Join(summaries, "\n"))
}

func mentionsPersonalBackground(message string) bool {
	lower := strings.ToLower(message)
	for _, marker := range personalMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

func summarizeCv(cv types.UploadedCv) string {
	totalYears := experience.TotalYears(cv.Structured.Experience)

	var roles []string
	for _, exp := range cv.Structured.Experience {
		if exp.JobTitle != "" {
			roles = append(roles, exp.JobTitle)
		}
		if len(roles) == 3 {
			break
		}
	}
	recentRoles := strings.Join(roles, ", ")
	if recentRoles == "" {
		recentRoles = "N/A"
	}

	skillList := cv.Structured.Skills
	if len(skillList) > 10 {
		skillList = skillList[:10]
	}
	skills := strings.Join(skillList, ", ")
	if skills == "" {
		skills = "N/A"
	}

	return fmt.Sprintf("%s: %g years experience, recent roles: %s, skills: %s",
		cv.Name, totalYears, recentRoles, skills)
}

// Turn is one chat exchange ready to send: the fully grounded prompt plus the
// prior history that precedes it on the wire.
type Turn struct {
	Prompt  string
	History []types.ChatMessage
}

// BuildTurn prepares a grounded turn for the raw user message. The system
// preamble is folded into the prompt because the transport has no separate
// system role.
func BuildTurn(message string, entries []types.CertificateCatalogEntry, rules []string, cvs []types.UploadedCv, recs *types.RecommendationResult, history []types.ChatMessage) Turn {
	systemPrompt := BuildSystemPrompt(entries, len(cvs))

	enhanced := EnhanceWithCvSummary(message, cvs)
	grounded := BuildContextMessage(enhanced, rules, recs)
	prompt := fmt.Sprintf("%s\n\nUser message:\n%s", strings.TrimSpace(systemPrompt), grounded)

	return Turn{Prompt: prompt, History: history}
}

// Send runs one grounded exchange and returns the reply plus the updated
// history. The history grows by exactly two entries: the raw user message and
// the model reply. Grounding context never enters the stored history.
func Send(ctx context.Context, client llm.Client, message string, entries []types.CertificateCatalogEntry, rules []string, cvs []types.UploadedCv, recs *types.RecommendationResult, history []types.ChatMessage) (string, []types.ChatMessage, error) {
	turn := BuildTurn(message, entries, rules, cvs, recs, history)

	reply, err := client.Generate(ctx, turn.Prompt, turn.History, llm.TierStandard)
	if err != nil {
		return "", history, err
	}

	updated := make([]types.ChatMessage, 0, len(history)+2)
	updated = append(updated, history...)
	updated = append(updated,
		types.ChatMessage{Text: message, IsUser: true},
		types.ChatMessage{Text: reply, IsUser: false},
	)
	return reply, updated, nil
}
