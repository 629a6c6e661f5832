package evaluation

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/legal-bench/backend/internal/config"
	"github.com/legal-bench/backend/internal/models"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req models.EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if len(req.Models) == 0 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "select at least one model"})
		return
	}
	for _, name := range req.Models {
		if !config.IsValidModel(name) {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "invalid model " + name})
			return
		}
	}
	if req.Topic != "" && !config.IsValidTopic(req.Topic) {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "invalid topic"})
		return
	}

	results, err := h.service.Run(r.Context(), req.Models, req.Topic)
	if err != nil {
		if errors.Is(err, ErrNoQuestions) {
			writeJSON(w, http.StatusUnprocessableEntity, models.ErrorResponse{Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Evaluation failed: " + err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, models.EvaluateResponse{Evaluated: len(results), Results: results})
}

func (h *Handler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.Leaderboard()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load results"})
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *Handler) Results(w http.ResponseWriter, r *http.Request) {
	results, err := h.service.Results()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load results"})
		return
	}
	writeJSON(w, http.StatusOK, results)
}

func (h *Handler) Questions(w http.ResponseWriter, r *http.Request) {
	topic := r.URL.Query().Get("topic")
	if topic != "" && !config.IsValidTopic(topic) {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "invalid topic"})
		return
	}
	questions, err := h.service.Questions(topic)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load questions"})
		return
	}
	writeJSON(w, http.StatusOK, questions)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
