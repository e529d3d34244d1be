package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/streamhub/stream-service/internal/domain"
	"github.com/streamhub/stream-service/internal/service"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	streamSvc *service.StreamService
	userSvc   *service.UserService
	chatSvc   *service.ChatService
}

func NewHandler(stream *service.StreamService, user *service.UserService, chat *service.ChatService) *Handler {
	return &Handler{
		streamSvc: stream,
		userSvc:   user,
		chatSvc:   chat,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func streamIDParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil
}

// GET /api/streams?category=
func (h *Handler) ListStreams(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	streams, err := h.streamSvc.List(r.Context(), category)
	if err != nil {
		slog.Error("handler.ListStreams:", slog.Any("err", err))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Message: "Failed to fetch streams"})
		return
	}
	if streams == nil {
		streams = []domain.StreamView{}
	}

	writeJSON(w, http.StatusOK, streams)
}

// GET /api/streams/{id}
func (h *Handler) GetStream(w http.ResponseWriter, r *http.Request) {
	id, ok := streamIDParam(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: "Invalid stream ID"})
		return
	}

	stream, err := h.streamSvc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrStreamNotFound) || errors.Is(err, domain.ErrUserNotFound) {
			writeJSON(w, http.StatusNotFound, ErrorResponse{Message: "Stream not found"})
			return
		}
		slog.Error("handler.GetStream:", slog.Any("err", err))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Message: "Failed to fetch stream"})
		return
	}

	writeJSON(w, http.StatusOK, stream)
}

// GET /api/streams/{id}/chat
func (h *Handler) GetChatHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := streamIDParam(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: "Invalid stream ID"})
		return
	}

	messages, err := h.chatSvc.History(r.Context(), id)
	if err != nil {
		slog.Error("handler.GetChatHistory:", slog.Any("err", err))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Message: "Failed to fetch chat messages"})
		return
	}
	if messages == nil {
		messages = []domain.ChatEvent{}
	}

	writeJSON(w, http.StatusOK, messages)
}

// POST /api/streams/{id}/donations
func (h *Handler) CreateDonation(w http.ResponseWriter, r *http.Request) {
	id, ok := streamIDParam(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: "Invalid stream ID"})
		return
	}

	var req DonationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: "Invalid donation data"})
		return
	}

	donation, _, err := h.chatSvc.SubmitDonation(r.Context(), id, req.UserID, req.Amount, req.Message)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			writeJSON(w, http.StatusNotFound, ErrorResponse{Message: "User not found"})
			return
		}
		if !errors.Is(err, domain.ErrInvalidAmount) {
			slog.Error("handler.CreateDonation:", slog.Any("err", err))
		}
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: "Invalid donation data"})
		return
	}

	writeJSON(w, http.StatusCreated, DonationResponse{
		ID:        donation.ID,
		StreamID:  donation.StreamID,
		UserID:    donation.UserID,
		Amount:    donation.Amount,
		Message:   donation.Message,
		Timestamp: domain.FormatTimestamp(donation.Timestamp),
	})
}

// GET /api/streams/{id}/recommended
func (h *Handler) GetRecommended(w http.ResponseWriter, r *http.Request) {
	id, ok := streamIDParam(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: "Invalid stream ID"})
		return
	}

	streams, err := h.streamSvc.Recommended(r.Context(), id)
	if err != nil {
		slog.Error("handler.GetRecommended:", slog.Any("err", err))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Message: "Failed to fetch recommended streams"})
		return
	}
	if streams == nil {
		streams = []domain.StreamView{}
	}

	writeJSON(w, http.StatusOK, streams)
}

// GET /api/categories
func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.streamSvc.Categories(r.Context())
	if err != nil {
		slog.Error("handler.GetCategories:", slog.Any("err", err))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Message: "Failed to fetch categories"})
		return
	}
	if categories == nil {
		categories = []string{}
	}

	writeJSON(w, http.StatusOK, categories)
}

// POST /api/auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: "Username and password are required"})
		return
	}
	if req.Username == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: "Username and password are required"})
		return
	}

	user, err := h.userSvc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeJSON(w, http.StatusUnauthorized, ErrorResponse{Message: "Invalid username or password"})
			return
		}
		slog.Error("handler.Login:", slog.Any("err", err))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Message: "Login failed"})
		return
	}

	writeJSON(w, http.StatusOK, user.View())
}
