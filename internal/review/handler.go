package review

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/legal-bench/backend/internal/config"
	"github.com/legal-bench/backend/internal/generator"
	"github.com/legal-bench/backend/internal/models"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

const (
	defaultQuantity = 5
	maxQuantity     = 20
)

// Generate runs one generation batch, streaming progress as server-sent
// events: "chunk" per streamed fragment, "question" per parsed slot,
// "slot_error" per failed slot, and a final "done" with the batch outcome.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if !config.IsValidTopic(req.Topic) {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "invalid topic"})
		return
	}
	if !config.IsValidModel(req.Model) {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "invalid model"})
		return
	}
	if req.Quantity <= 0 {
		req.Quantity = defaultQuantity
	}
	if req.Quantity > maxQuantity {
		req.Quantity = maxQuantity
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	flusher, _ := w.(http.Flusher)

	writeEvent := func(event string, v any) {
		data, err := json.Marshal(v)
		if err != nil {
			return
		}
		fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
		if flusher != nil {
			flusher.Flush()
		}
	}

	collected, err := h.service.StartBatch(r.Context(), req.Topic, req.Model, req.Quantity,
		func(slot int, ev generator.Event) {
			switch {
			case ev.Chunk != "":
				writeEvent("chunk", map[string]any{"slot": slot, "text": ev.Chunk})
			case ev.Parsed != nil:
				writeEvent("question", map[string]any{"slot": slot, "question": ev.Parsed})
			case ev.Err != "":
				writeEvent("slot_error", map[string]any{"slot": slot, "error": ev.Err})
			}
		})

	done := map[string]any{
		"collected": collected,
		"requested": req.Quantity,
		"snapshot":  h.service.Snapshot(),
	}
	if err != nil {
		done["error"] = err.Error()
	}
	writeEvent("done", done)
}

func (h *Handler) Snapshot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Snapshot())
}

func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	saved, snap, err := h.service.Approve()
	if err != nil {
		writeStateError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.ApproveResponse{Saved: saved, Snapshot: snap})
}

func (h *Handler) Skip(w http.ResponseWriter, r *http.Request) {
	snap, err := h.service.Skip()
	if err != nil {
		writeStateError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (h *Handler) Back(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Back())
}

func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Reset())
}

func (h *Handler) AnalyzeReference(w http.ResponseWriter, r *http.Request) {
	var req models.ReferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.Text == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "text is required"})
		return
	}
	if !config.IsValidModel(req.Model) {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "invalid model"})
		return
	}

	set := h.service.AnalyzeReference(r.Context(), req.Text, req.Model)
	status := http.StatusOK
	if set.Count == 0 {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, set)
}

func (h *Handler) ReferenceAnswers(w http.ResponseWriter, r *http.Request) {
	var req models.ReferenceAnswersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	set, err := h.service.ApplyReferenceAnswers(req.Answers)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, set)
}

func (h *Handler) ClearReference(w http.ResponseWriter, r *http.Request) {
	h.service.ClearReference()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetReference(w http.ResponseWriter, r *http.Request) {
	set := h.service.Reference()
	if set == nil {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "no reference set loaded"})
		return
	}
	writeJSON(w, http.StatusOK, set)
}

func writeStateError(w http.ResponseWriter, err error) {
	var se *StateError
	if errors.As(err, &se) {
		writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: se.Error()})
		return
	}
	writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
