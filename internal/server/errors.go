package server

import (
	"errors"
	"net/http"

	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/extraction"
	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/llm"
	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/parsing"
	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/recommend"
	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/review"
	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/rules"
)

// HTTPStatus maps a domain error to the appropriate HTTP status code.
// Errors may arrive wrapped by the pipeline, so matching unwraps.
func HTTPStatus(err error) int {
	var (
		staleErr       *review.StaleSelectionError
		ruleFormatErr  *rules.InvalidRuleFormatError
		recFormatErr   *recommend.InvalidRecommendationFormatError
		unsupportedErr *extraction.UnsupportedFileTypeError
		decodeErr      *extraction.DecodeError
		apiErr         *parsing.APICallError
		proxyErr       *llm.ProxyError
	)

	switch {
	case errors.As(err, &staleErr):
		return http.StatusConflict
	case errors.As(err, &ruleFormatErr), errors.As(err, &recFormatErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &unsupportedErr), errors.As(err, &decodeErr):
		return http.StatusBadRequest
	case errors.As(err, &apiErr), errors.As(err, &proxyErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
