package chat

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog"
)

const (
	msgInvalid  = "Invalid message"
	msgInternal = "Internal server error"
	msgTooLarge = "Message too large"

	IntentHeader = "X-Assistant-Intent"

	DefaultMaxBodyBytes = 64 << 10
)

type Handler struct {
	svc          Service
	validator    *requestValidator
	maxBodyBytes int64
}

func NewHandler(svc Service, maxBodyBytes int64) (*Handler, error) {
	v, err := newRequestValidator()
	if err != nil {
		return nil, err
	}
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}
	return &Handler{svc: svc, validator: v, maxBodyBytes: maxBodyBytes}, nil
}

type chatResponse struct {
	Response string `json:"response"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// HandleChat — POST {message, history}
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	log := zerolog.Ctx(r.Context())

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		log.Debug().Err(err).Msg("[chat] read body")
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteError(w, http.StatusRequestEntityTooLarge, msgTooLarge)
			return
		}
		WriteError(w, http.StatusBadRequest, msgInvalid)
		return
	}

	if err := h.validator.Validate(body); err != nil {
		log.Debug().Err(err).Msg("[chat] rejected body")
		WriteError(w, http.StatusBadRequest, msgInvalid)
		return
	}

	var payload struct {
		Message string          `json:"message"`
		History json.RawMessage `json:"history"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		WriteError(w, http.StatusBadRequest, msgInvalid)
		return
	}

	reply, err := h.svc.Reply(r.Context(), Request{
		Message: payload.Message,
		History: decodeHistory(payload.History, log),
	})
	switch {
	case errors.Is(err, ErrInvalidInput):
		WriteError(w, http.StatusBadRequest, msgInvalid)
		return
	case err != nil:
		WriteError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	w.Header().Set(IntentHeader, string(reply.Intent))
	WriteJSON(w, http.StatusOK, chatResponse{Response: reply.Response})
}

// HandleWelcome returns the greeting clients show before the first question.
func (h *Handler) HandleWelcome(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, chatResponse{Response: h.svc.Welcome()})
}

func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	switch {
	case errors.Is(err, ErrNoHitLog):
		WriteError(w, http.StatusNotFound, "Stats are not enabled")
		return
	case err != nil:
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("[chat] stats")
		WriteError(w, http.StatusInternalServerError, msgInternal)
		return
	}
	if stats == nil {
		stats = []IntentCount{}
	}
	WriteJSON(w, http.StatusOK, stats)
}

func decodeHistory(raw json.RawMessage, log *zerolog.Logger) []Message {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var history []Message
	if err := json.Unmarshal(raw, &history); err != nil {
		log.Debug().Err(err).Msg("[chat] ignoring malformed history")
		return nil
	}
	return history
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, errorResponse{Error: msg})
}
