package handlers

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/KCCPMG/ReadingList/internal/auth"
	"github.com/KCCPMG/ReadingList/internal/services"
)

// UserHandler handles HTTP requests for registration, login, and the
// authenticated user's tags and links.
type UserHandler struct {
	service services.UserServiceProvider
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserServiceProvider) *UserHandler {
	return &UserHandler{service: service}
}

// AuthPayload defines the structure for login requests.
type AuthPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterPayload defines the structure for registration requests.
type RegisterPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TagPayload defines the structure for tag creation requests.
type TagPayload struct {
	TagText string `json:"tagText"`
}

// LinkPayload defines the structure for link creation requests.
type LinkPayload struct {
	URL     string   `json:"url"`
	Title   string   `json:"title"`
	IconURL string   `json:"iconUrl"`
	Tags    []string `json:"tags"`
}

// Register handles new user registration.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload RegisterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.service.CreateAndSave(payload.Username, payload.Email, payload.Password)
	if err != nil {
		log.Warn().Err(err).Str("username", payload.Username).Msg("Failed to register user")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, user)
}

// Login handles user authentication and token issuance. The password hash
// never leaves the service layer.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload AuthPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.SafeLogin(payload.Username, payload.Password)
	if err != nil {
		log.Warn().Err(err).Str("username", payload.Username).Msg("Failed authentication attempt")
		respondError(w, err)
		return
	}

	// Set Secure flag based on environment.
	isProd := os.Getenv("APP_ENV") == "production"

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    result.Token,
		Expires:  time.Now().Add(24 * time.Hour),
		HttpOnly: true,
		Secure:   isProd,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
	})

	respondJSON(w, http.StatusOK, result)
}

// GetMe returns the currently authenticated user.
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFrom(r.Context())
	if !ok {
		log.Error().Msg("Could not retrieve user from request context")
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// AddTag creates a new tag on the authenticated user.
func (h *UserHandler) AddTag(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFrom(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	var payload TagPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.service.AddTag(user.ID, payload.TagText)
	if err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Str("tag", payload.TagText).Msg("Failed to add tag")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, updated)
}

// RemoveTag deletes one of the authenticated user's tags by text.
func (h *UserHandler) RemoveTag(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFrom(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	text := chi.URLParam(r, "text")
	updated, err := h.service.RemoveTag(user.ID, text)
	if err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Str("tag", text).Msg("Failed to remove tag")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

// AddLink saves a new link on the authenticated user's reading list.
func (h *UserHandler) AddLink(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFrom(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	var payload LinkPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.service.AddLink(user.ID, payload.URL, payload.Title, payload.IconURL, payload.Tags)
	if err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Str("url", payload.URL).Msg("Failed to add link")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, updated)
}
