package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/khmer-numerals/internal/batch"
	"github.com/khmer-numerals/internal/metrics"
	"github.com/khmer-numerals/pkg/ctxutil"
	"github.com/khmer-numerals/pkg/khmer"
)

// ConvertHandler serves the conversion endpoints.
type ConvertHandler struct {
	conv     *khmer.Converter
	system   khmer.NumeralSystem
	maxBytes int64
	metrics  metrics.Recorder
	log      *slog.Logger
}

// NewConvertHandler creates a ConvertHandler. system is the output numeral
// system used when a request does not name one.
func NewConvertHandler(
	conv *khmer.Converter,
	system khmer.NumeralSystem,
	maxBytes int64,
	rec metrics.Recorder,
	logger *slog.Logger,
) *ConvertHandler {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &ConvertHandler{
		conv:     conv,
		system:   system,
		maxBytes: maxBytes,
		metrics:  rec,
		log:      logger.With("handler", "convert"),
	}
}

type wordsRequest struct {
	Text   string `json:"text"`
	System string `json:"system"`
}

type numeralRequest struct {
	Text string `json:"text"`
}

type convertResponse struct {
	Result string `json:"result"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// WordsToNumeral handles POST /v1/words-to-numeral.
func (h *ConvertHandler) WordsToNumeral(w http.ResponseWriter, r *http.Request) {
	var req wordsRequest
	if !h.decode(w, r, &req) {
		return
	}

	system := h.system
	if req.System != "" {
		s, err := khmer.ParseNumeralSystem(req.System)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_system", err.Error())
			return
		}
		system = s
	}

	p := batch.Processor{Converter: h.conv, Direction: batch.WordsToNumeral, System: system, Metrics: h.metrics}
	h.respond(w, r, req.Text, p.Convert)
}

// NumeralToWords handles POST /v1/numeral-to-words.
func (h *ConvertHandler) NumeralToWords(w http.ResponseWriter, r *http.Request) {
	var req numeralRequest
	if !h.decode(w, r, &req) {
		return
	}

	p := batch.Processor{Converter: h.conv, Direction: batch.NumeralToWords, Metrics: h.metrics}
	h.respond(w, r, req.Text, p.Convert)
}

func (h *ConvertHandler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	body := http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request_too_large", "request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return false
	}
	return true
}

func (h *ConvertHandler) respond(w http.ResponseWriter, r *http.Request, text string, convert func(string) (string, error)) {
	result, err := convert(text)
	if err != nil {
		h.handleError(w, r, text, err)
		return
	}
	writeJSON(w, http.StatusOK, convertResponse{Result: result})
}

func (h *ConvertHandler) handleError(w http.ResponseWriter, r *http.Request, text string, err error) {
	code := khmer.ErrorCode(err)
	if code == "internal_error" {
		h.log.ErrorContext(r.Context(), "conversion failed",
			slog.String("error", err.Error()),
			slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
		)
		writeError(w, http.StatusInternalServerError, code, "internal server error")
		return
	}

	h.log.DebugContext(r.Context(), "conversion rejected",
		slog.String("code", code),
		slog.String("input", text),
		slog.String("error", err.Error()),
		slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
	)
	writeError(w, http.StatusUnprocessableEntity, code, err.Error())
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: message, Code: code})
}
