package server

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/chat"
	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/extraction"
	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/pipeline"
	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/review"
	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/rules"
	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/types"
)

// maxUploadBytes caps the in-memory part of a multipart upload
const maxUploadBytes = 32 << 20

// AnalyzeResponse represents the response for /analyze
type AnalyzeResponse struct {
	RunID           string                      `json:"runId"`
	Cvs             []types.UploadedCv          `json:"cvs"`
	Drafts          []types.DraftCv             `json:"drafts"`
	Recommendations *types.RecommendationResult `json:"recommendations"`
}

// RulesRequest represents the request body for PUT /rules
type RulesRequest struct {
	RulesText string `json:"rulesText"`
}

// ChatRequest represents the request body for /chat
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse represents the response for /chat
type ChatResponse struct {
	Reply   string              `json:"reply"`
	History []types.ChatMessage `json:"history"`
}

// handleAnalyze runs the full analysis over the uploaded files
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	files, err := s.collectUploads(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.runner.Run(r.Context(), pipeline.RunOptions{
		Files:         files,
		MaxConcurrent: s.maxConcurrent,
		BatchPolicy:   s.batchPolicy,
		Verbose:       s.verbose,
	})
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, analyzeResponse(result))
}

// handleAnalyzeStream runs the analysis and streams progress via SSE
func (s *Server) handleAnalyzeStream(w http.ResponseWriter, r *http.Request) {
	files, err := s.collectUploads(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	result, err := s.runner.Run(r.Context(), pipeline.RunOptions{
		Files:         files,
		MaxConcurrent: s.maxConcurrent,
		BatchPolicy:   s.batchPolicy,
		Verbose:       s.verbose,
		OnProgress: sse.WriteProgress,
	})
	if err != nil {
		sse.WriteError(err.Error())
		return
	}

	sse.WriteComplete(analyzeResponse(result))
}

func analyzeResponse(result *pipeline.Result) AnalyzeResponse {
	return AnalyzeResponse{
		RunID:           result.RunID.String(),
		Cvs:             result.Cvs,
		Drafts:          result.Drafts,
		Recommendations: result.Recommendations,
	}
}

// collectUploads reads the "files" parts of a multipart upload
func (s *Server) collectUploads(r *http.Request) ([]extraction.File, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, fmt.Errorf("invalid multipart request: %w", err)
	}

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		return nil, fmt.Errorf("no files provided; use multipart field 'files'")
	}

	files := make([]extraction.File, 0, len(headers))
	for _, header := range headers {
		file, err := readUpload(header)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	return files, nil
}

func readUpload(header *multipart.FileHeader) (extraction.File, error) {
	part, err := header.Open()
	if err != nil {
		return extraction.File{}, fmt.Errorf("failed to open upload %s: %w", header.Filename, err)
	}
	defer part.Close()

	data, err := io.ReadAll(part)
	if err != nil {
		return extraction.File{}, fmt.Errorf("failed to read upload %s: %w", header.Filename, err)
	}

	mime := header.Header.Get("Content-Type")
	if mime == "" || mime == "application/octet-stream" {
		mime = mimeFromFilename(header.Filename)
	}

	return extraction.File{Name: header.Filename, Mime: mime, Data: data}, nil
}

// mimeFromFilename infers the document type when the client did not provide
// a usable Content-Type for the part.
func mimeFromFilename(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return extraction.MimePDF
	case ".docx":
		return extraction.MimeDocx
	case ".txt":
		return extraction.MimePlainText
	default:
		return "application/octet-stream"
	}
}

// handleGetRecommendations returns the latest recommendation set
func (s *Server) handleGetRecommendations(w http.ResponseWriter, _ *http.Request) {
	recs := s.sess.LastRecommendations()
	if recs == nil {
		s.errorResponse(w, http.StatusNotFound, "no recommendations generated yet")
		return
	}
	s.jsonResponse(w, http.StatusOK, recs)
}

// handleGetRules returns the active business rules
func (s *Server) handleGetRules(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string][]string{"rules": s.sess.Rules()})
}

// handleUpdateRules normalizes free-form rules text and replaces the active
// rule set. A response the model cannot shape into a rule list leaves the
// prior rules untouched.
func (s *Server) handleUpdateRules(w http.ResponseWriter, r *http.Request) {
	var req RulesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	normalized, err := rules.Normalize(r.Context(), s.client, req.RulesText)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	if err := s.sess.SetRules(r.Context(), normalized); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	if err := s.sess.AppendChatNote(r.Context(), "I've updated my recommendation logic based on your new rules."); err != nil {
		log.Printf("failed to append rules note to chat: %v", err)
	}

	s.jsonResponse(w, http.StatusOK, map[string][]string{"rules": normalized})
}

// handleGetCatalog returns the active certification catalog
func (s *Server) handleGetCatalog(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.sess.Catalog())
}

// handleUpdateCatalog replaces the catalog wholesale after validation
func (s *Server) handleUpdateCatalog(w http.ResponseWriter, r *http.Request) {
	var entries []types.CertificateCatalogEntry
	if err := json.NewDecoder(r.Body).Decode(&entries); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := s.sess.SetCatalog(r.Context(), entries); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, entries)
}

// handleListDrafts returns the editable drafts from the latest analysis
func (s *Server) handleListDrafts(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.sess.Drafts())
}

// handleUpdateDraft applies edits to one draft by name
func (s *Server) handleUpdateDraft(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	var edits review.DraftEdits
	if err := json.NewDecoder(r.Body).Decode(&edits); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	updated, ok := s.sess.UpdateDraft(name, edits)
	if !ok {
		s.errorResponse(w, http.StatusNotFound, fmt.Sprintf("draft not found: %s", name))
		return
	}

	s.jsonResponse(w, http.StatusOK, updated)
}

// handleSubmit merges the current drafts into the submitted set
func (s *Server) handleSubmit(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.sess.Submit())
}

// handleListSubmitted returns the accumulated submitted records
func (s *Server) handleListSubmitted(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.sess.Submitted())
}

// handleChat runs one grounded chat exchange
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		s.errorResponse(w, http.StatusBadRequest, "message is required")
		return
	}

	reply, history, err := chat.Send(r.Context(), s.client, req.Message,
		s.sess.Catalog(), s.sess.Rules(), s.sess.UploadedCvs(),
		s.sess.LastRecommendations(), s.sess.ChatHistory())
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	if err := s.sess.SetChatHistory(r.Context(), history); err != nil {
		log.Printf("failed to persist chat history: %v", err)
	}

	s.jsonResponse(w, http.StatusOK, ChatResponse{Reply: reply, History: history})
}
