package user

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/moneymuse/internal/auth"
	"github.com/MrJamesThe3rd/moneymuse/internal/storage"
	"github.com/MrJamesThe3rd/moneymuse/internal/user"
)

type Handler struct {
	svc   *user.Service
	files storage.FileStore
}

func NewHandler(svc *user.Service, files storage.FileStore) *Handler {
	return &Handler{svc: svc, files: files}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/me", h.me)
	r.Put("/me", h.update)
	r.Put("/me/password", h.changePassword)
	r.Delete("/me", h.delete)
	r.Post("/me/avatar", h.uploadAvatar)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, user.ErrNotFound):
		http.Error(w, "user not found", http.StatusNotFound)
	case errors.Is(err, user.ErrEmailTaken):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, user.ErrInvalidCredentials):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func ownerID(r *http.Request) uuid.UUID {
	id, _ := auth.OwnerID(r.Context())
	return id
}

type profileResponse struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	AvatarURL string     `json:"avatar_url,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func toResponse(u *user.User) profileResponse {
	return profileResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.Get(r.Context(), ownerID(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(u))
}

type updateProfileRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	u, err := h.svc.UpdateProfile(r.Context(), ownerID(r), user.UpdateProfileParams{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		if errors.Is(err, user.ErrNotFound) || errors.Is(err, user.ErrEmailTaken) {
			writeError(w, err)
			return
		}

		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	writeJSON(w, http.StatusOK, toResponse(u))
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	err := h.svc.ChangePassword(r.Context(), ownerID(r), req.CurrentPassword, req.NewPassword)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) || errors.Is(err, user.ErrInvalidCredentials) {
			writeError(w, err)
			return
		}

		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), ownerID(r)); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type avatarResponse struct {
	AvatarURL string `json:"avatar_url"`
}

func (h *Handler) uploadAvatar(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(5 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	url, err := h.files.Save("avatars", filepath.Ext(header.Filename), file)
	if err != nil {
		slog.Error("failed to store avatar", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if err := h.svc.SetAvatar(r.Context(), ownerID(r), url); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, avatarResponse{AvatarURL: url})
}
