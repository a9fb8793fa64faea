package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/devhire/devhire/pkg/models"
	"github.com/devhire/devhire/pkg/repository"
	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"
)

type ProfileHandler struct {
	userRepo repository.UserRepo
}

func NewProfileHandler(ur repository.UserRepo) *ProfileHandler {
	return &ProfileHandler{userRepo: ur}
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		errorJSON(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.userRepo.GetUserByID(r.Context(), userID)
	if err != nil {
		serverError(w, "profile: lookup user", err)
		return
	}
	if user == nil {
		errorJSON(w, "User not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		errorJSON(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var upd models.UserUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		errorJSON(w, "Invalid request", http.StatusBadRequest)
		return
	}
	// password changes go through the dedicated endpoint
	upd.PasswordHash = nil

	ctx := r.Context()
	if err := h.userRepo.UpdateUser(ctx, userID, upd); err != nil {
		serverError(w, "profile: update user", err)
		return
	}

	user, err := h.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		serverError(w, "profile: reload user", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"message": "Profile updated successfully", "user": user})
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (h *ProfileHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		errorJSON(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req updatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		errorJSON(w, "Missing fields", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	user, err := h.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		serverError(w, "password: lookup user", err)
		return
	}
	if user == nil {
		errorJSON(w, "User not found", http.StatusNotFound)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)) != nil {
		errorJSON(w, "Current password is incorrect", http.StatusBadRequest)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		serverError(w, "password: hash", err)
		return
	}

	hashStr := string(hash)
	if err := h.userRepo.UpdateUser(ctx, userID, models.UserUpdate{PasswordHash: &hashStr}); err != nil {
		serverError(w, "password: update", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Password updated successfully"})
}

type connectWalletRequest struct {
	Wallet string `json:"wallet"`
}

func (h *ProfileHandler) ConnectWallet(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		errorJSON(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req connectWalletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.Wallet == "" {
		errorJSON(w, "Missing wallet address", http.StatusBadRequest)
		return
	}

	if err := h.userRepo.UpdateUser(r.Context(), userID, models.UserUpdate{Wallet: &req.Wallet}); err != nil {
		serverError(w, "wallet: update", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Wallet connected successfully"})
}

// GetByID is the public profile lookup. The password hash is excluded from
// JSON serialization at the model level.
func (h *ProfileHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		errorJSON(w, "Invalid user id", http.StatusBadRequest)
		return
	}

	user, err := h.userRepo.GetUserByID(r.Context(), id)
	if err != nil {
		serverError(w, "profile: lookup user", err)
		return
	}
	if user == nil {
		errorJSON(w, "User not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

func (h *ProfileHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	f := models.UserFilter{
		Query: q.Get("q"),
		Limit: 20,
	}
	if skills := q.Get("skills"); skills != "" {
		f.Skills = splitCSV(skills)
	}
	// exclude the caller when the search is authenticated
	if userID, ok := userIDFrom(r); ok {
		f.ExcludeID = userID
	}

	users, err := h.userRepo.SearchUsers(r.Context(), f)
	if err != nil {
		serverError(w, "profile: search users", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"users": users})
}
