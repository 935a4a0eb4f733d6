package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/vncsmyrnk/curator/internal/core/ports"
)

type ActivityHandler struct {
	service ports.ActivityService
}

func NewActivityHandler(service ports.ActivityService) *ActivityHandler {
	return &ActivityHandler{
		service: service,
	}
}

type activityRequest struct {
	UserID     uuid.UUID `json:"user_id"`
	ContentID  string    `json:"content_id"`
	Rating     *int      `json:"rating"`
	ReviewText string    `json:"review_text"`
}

type watchlistRequest struct {
	UserID    uuid.UUID `json:"user_id"`
	ContentID string    `json:"content_id"`
}

func (h *ActivityHandler) RecordActivity(w http.ResponseWriter, r *http.Request) {
	var req activityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.UserID == uuid.Nil || req.ContentID == "" {
		http.Error(w, "user_id and content_id are required", http.StatusBadRequest)
		return
	}

	record, err := h.service.RecordActivity(r.Context(), ports.ActivityInput{
		UserID:     req.UserID,
		ContentID:  req.ContentID,
		Rating:     req.Rating,
		ReviewText: req.ReviewText,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(record)
}

func (h *ActivityHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		http.Error(w, "Invalid user id", http.StatusBadRequest)
		return
	}

	records, err := h.service.GetHistory(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(records)
}

func (h *ActivityHandler) AddToWatchlist(w http.ResponseWriter, r *http.Request) {
	var req watchlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.UserID == uuid.Nil || req.ContentID == "" {
		http.Error(w, "user_id and content_id are required", http.StatusBadRequest)
		return
	}

	item, err := h.service.AddToWatchlist(r.Context(), req.UserID, req.ContentID)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(item)
}

func (h *ActivityHandler) RemoveFromWatchlist(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		http.Error(w, "Invalid user id", http.StatusBadRequest)
		return
	}
	contentID := chi.URLParam(r, "contentId")

	if err := h.service.RemoveFromWatchlist(r.Context(), userID, contentID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ActivityHandler) GetWatchlist(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		http.Error(w, "Invalid user id", http.StatusBadRequest)
		return
	}

	items, err := h.service.GetWatchlist(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}
