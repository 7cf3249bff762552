package pipeline

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/extraction"
	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/llm"
	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/recommend"
	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/review"
	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/session"
	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/store"
	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/types"
)

// scriptedClient answers extraction and analysis prompts differently, like
// the real model would.
type scriptedClient struct {
	mu       sync.Mutex
	respond  func(prompt string) (string, error)
	prompts  []string
	inFlight int
	maxSeen  int
}

func (s *scriptedClient) Generate(_ context.Context, prompt string, _ []types.ChatMessage, _ llm.ModelTier) (string, error) {
	s.mu.Lock()
	s.inFlight++
	if s.inFlight > s.maxSeen {
		s.maxSeen = s.inFlight
	}
	s.prompts = append(s.prompts, prompt)
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.inFlight--
		s.mu.Unlock()
	}()
	return s.respond(prompt)
}

func (s *scriptedClient) Close() error { return nil }

func isAnalysisPrompt(prompt string) bool {
	return strings.Contains(prompt, "--- CV for:")
}

const cvResponse = `{"experience":[{"jobTitle":"Engineer","company":"Acme","period":"2018 - 2022","description":"Work"}],"skills":["Go"]}`

func analysisResponse(names ...string) string {
	var candidates []string
	for _, name := range names {
		candidates = append(candidates,
			`{"candidateName":"`+name+`","recommendations":[{"certId":"aws_ccp","certName":"AWS Certified Cloud Practitioner (CCP)","reason":"Fits","rulesApplied":[]}]}`)
	}
	return `{"candidates":[` + strings.Join(candidates, ",") + `]}`
}

func defaultRespond(prompt string) (string, error) {
	if isAnalysisPrompt(prompt) {
		return analysisResponse("Candidate One", "Candidate Two"), nil
	}
	return cvResponse, nil
}

func textFile(name, content string) extraction.File {
	return extraction.File{Name: name, Mime: extraction.MimePlainText, Data: []byte(content)}
}

func newRunner(t *testing.T, respond func(string) (string, error)) (*Runner, *scriptedClient, *session.Session) {
	t.Helper()
	sess, err := session.Load(context.Background(), store.NewMemory())
	require.NoError(t, err)
	client := &scriptedClient{respond: respond}
	return NewRunner(client, sess), client, sess
}

func TestRun_FullPipeline(t *testing.T) {
	runner, client, sess := newRunner(t, defaultRespond)

	var events []ProgressEvent
	result, err := runner.Run(context.Background(), RunOptions{
		Files: []extraction.File{
			textFile("a.txt", "cv text for a"),
			textFile("b.txt", "cv text for b"),
		},
		OnProgress: func(e ProgressEvent) { events = append(events, e) },
	})
	require.NoError(t, err)

	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", result.RunID.String())

	require.Len(t, result.Cvs, 2)
	assert.Equal(t, "a.txt", result.Cvs[0].Name)
	assert.Equal(t, "b.txt", result.Cvs[1].Name)
	assert.Equal(t, "Engineer", result.Cvs[0].Structured.Experience[0].JobTitle)

	require.NotNil(t, result.Recommendations)
	require.Len(t, result.Recommendations.Candidates, 2)
	assert.Equal(t, "Candidate One", result.Recommendations.Candidates[0].CandidateName)

	require.Len(t, result.Drafts, 2)
	assert.Equal(t, "a.txt", result.Drafts[0].Name)
	assert.Equal(t, 4.0, result.Drafts[0].TotalYearsExperience)

	// Session committed the run
	assert.Len(t, sess.UploadedCvs(), 2)
	assert.NotNil(t, sess.LastRecommendations())

	// One extraction call per document plus one analysis call, analysis last
	require.Len(t, client.prompts, 3)
	assert.True(t, isAnalysisPrompt(client.prompts[2]), "recommendation runs after all documents")

	var steps []string
	for _, e := range events {
		steps = append(steps, e.Step)
	}
	assert.Contains(t, steps, StepRecommendation)
	assert.Contains(t, steps, StepDrafts)
}

func TestRun_SequentialByDefault(t *testing.T) {
	runner, client, _ := newRunner(t, defaultRespond)

	_, err := runner.Run(context.Background(), RunOptions{
		Files: []extraction.File{
			textFile("a.txt", "a"),
			textFile("b.txt", "b"),
			textFile("c.txt", "c"),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, client.maxSeen, "documents are parsed one at a time unless configured otherwise")
}

func TestRun_StaleSelectionRejected(t *testing.T) {
	runner, _, _ := newRunner(t, defaultRespond)
	files := []extraction.File{textFile("a.txt", "a"), textFile("b.txt", "b")}

	_, err := runner.Run(context.Background(), RunOptions{Files: files})
	require.NoError(t, err)

	// Same files again, order swapped
	_, err = runner.Run(context.Background(), RunOptions{
		Files: []extraction.File{files[1], files[0]},
	})
	var staleErr *review.StaleSelectionError
	require.ErrorAs(t, err, &staleErr)

	// A different selection goes through
	_, err = runner.Run(context.Background(), RunOptions{
		Files: []extraction.File{files[0], textFile("c.txt", "c")},
	})
	assert.NoError(t, err)
}

func TestRun_AbortOnError(t *testing.T) {
	runner, _, sess := newRunner(t, defaultRespond)

	_, err := runner.Run(context.Background(), RunOptions{
		Files: []extraction.File{
			textFile("a.txt", "a"),
			{Name: "bad.bin", Mime: "application/octet-stream", Data: []byte{0x00}},
		},
		BatchPolicy: extraction.AbortOnError,
	})
	require.Error(t, err)

	var unsupportedErr *extraction.UnsupportedFileTypeError
	assert.ErrorAs(t, err, &unsupportedErr)
	assert.Empty(t, sess.UploadedCvs(), "a failed run leaves the session untouched")
	assert.Nil(t, sess.LastRecommendations())
}

func TestRun_SkipFailed(t *testing.T) {
	respond := func(prompt string) (string, error) {
		if isAnalysisPrompt(prompt) {
			return analysisResponse("Candidate One"), nil
		}
		return cvResponse, nil
	}
	runner, _, sess := newRunner(t, respond)

	result, err := runner.Run(context.Background(), RunOptions{
		Files: []extraction.File{
			{Name: "bad.bin", Mime: "application/octet-stream", Data: []byte{0x00}},
			textFile("a.txt", "a"),
		},
		BatchPolicy: extraction.SkipFailed,
	})
	require.NoError(t, err)

	require.Len(t, result.Cvs, 1)
	assert.Equal(t, "a.txt", result.Cvs[0].Name)
	assert.Len(t, sess.UploadedCvs(), 1)
}

func TestRun_AllFilesFail(t *testing.T) {
	runner, client, _ := newRunner(t, defaultRespond)

	_, err := runner.Run(context.Background(), RunOptions{
		Files: []extraction.File{
			{Name: "bad.bin", Mime: "application/octet-stream", Data: []byte{0x00}},
		},
		BatchPolicy: extraction.SkipFailed,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no files could be processed")
	assert.Empty(t, client.prompts, "no analysis without any extracted documents")
}

func TestRun_RecommendationFormatErrorIsFatal(t *testing.T) {
	respond := func(prompt string) (string, error) {
		if isAnalysisPrompt(prompt) {
			return "I cannot produce JSON today.", nil
		}
		return cvResponse, nil
	}
	runner, _, sess := newRunner(t, respond)

	_, err := runner.Run(context.Background(), RunOptions{
		Files: []extraction.File{textFile("a.txt", "a")},
	})
	require.Error(t, err)

	var formatErr *recommend.InvalidRecommendationFormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Empty(t, sess.UploadedCvs())

	// The failed run did not poison the staleness guard
	assert.NoError(t, sess.CheckSelection([]string{"a.txt"}))
}

func TestRun_NoFiles(t *testing.T) {
	runner, _, _ := newRunner(t, defaultRespond)
	_, err := runner.Run(context.Background(), RunOptions{})
	require.Error(t, err)
}
