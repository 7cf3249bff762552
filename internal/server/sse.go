package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/pipeline"
)

// SSEWriter streams the events of one analysis run as Server-Sent Events:
// a "progress" event per pipeline step, then either "complete" with the full
// run result or "error".
type SSEWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// completeEvent is the terminal payload carrying the finished run
type completeEvent struct {
	RunID  string          `json:"runId"`
	Result AnalyzeResponse `json:"result"`
}

// NewSSEWriter prepares the response for event streaming
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	return &SSEWriter{w: w, flusher: flusher}, nil
}

// WriteProgress forwards one pipeline progress event to the client
func (s *SSEWriter) WriteProgress(event pipeline.ProgressEvent) {
	s.writeEvent("progress", event) //nolint:errcheck
}

func (s *SSEWriter) writeEvent(event string, data any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(s.w, "event: %s\n", event); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", jsonData); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// WriteError reports a failed run
func (s *SSEWriter) WriteError(message string) {
	s.writeEvent("error", map[string]string{"error": message}) //nolint:errcheck
}

// WriteComplete sends the terminal event with the finished run result
func (s *SSEWriter) WriteComplete(result AnalyzeResponse) {
	s.writeEvent("complete", completeEvent{RunID: result.RunID, Result: result}) //nolint:errcheck
}
