package internal

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"asset-inventory-api/internal/auth"
	"asset-inventory-api/internal/models"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

const userSelect = `
	SELECT id, email, password_hash, first_name, last_name, roles, is_active,
	       created_at, updated_at, last_login_at
	FROM users`

func scanUser(row *sql.Row) (*models.User, error) {
	var user models.User
	var firstName, lastName sql.NullString
	var lastLoginAt sql.NullTime
	var roles pq.StringArray

	err := row.Scan(
		&user.ID, &user.Email, &user.PasswordHash, &firstName, &lastName,
		&roles, &user.IsActive, &user.CreatedAt, &user.UpdatedAt, &lastLoginAt,
	)
	if err != nil {
		return nil, err
	}

	if firstName.Valid {
		user.FirstName = &firstName.String
	}
	if lastName.Valid {
		user.LastName = &lastName.String
	}
	if lastLoginAt.Valid {
		user.LastLoginAt = &lastLoginAt.Time
	}
	user.Roles = roles
	return &user, nil
}

// loginUser handles user authentication
func (s *Server) loginUser(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Email == "" || req.Password == "" {
		http.Error(w, "Email and password are required", http.StatusBadRequest)
		return
	}

	user, err := scanUser(s.DB.QueryRowContext(r.Context(),
		userSelect+" WHERE email = $1 AND is_active = true", req.Email))
	if err == sql.ErrNoRows {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	if _, err := s.DB.ExecContext(r.Context(), "UPDATE users SET last_login_at = now() WHERE id = $1", user.ID); err != nil {
		// a stale last_login_at is not worth failing the login for
		log.Printf("failed to update last_login_at: %v", err)
	}

	token, err := s.JWTManager.GenerateToken(user.ID, user.Email, user.Roles)
	if err != nil {
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.TokenCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(s.Cfg.JWTExpiry),
	})

	writeJSON(w, http.StatusOK, models.LoginResponse{
		Token: token,
		User:  user.Redacted(),
	})
}

// logoutUser clears the session cookie. Tokens are stateless, so the bearer
// token itself stays valid until it expires.
func (s *Server) logoutUser(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.TokenCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	w.WriteHeader(http.StatusNoContent)
}

// getUserProfile handles getting current user's profile
func (s *Server) getUserProfile(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	if userID == uuid.Nil {
		http.Error(w, "User ID not found in context", http.StatusInternalServerError)
		return
	}

	user, err := scanUser(s.DB.QueryRowContext(r.Context(), userSelect+" WHERE id = $1", userID))
	if err == sql.ErrNoRows {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, user.Redacted())
}

// changePassword handles password changes
func (s *Server) changePassword(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	if userID == uuid.Nil {
		http.Error(w, "User ID not found in context", http.StatusInternalServerError)
		return
	}

	var req models.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.CurrentPassword == "" || req.NewPassword == "" {
		http.Error(w, "Current password and new password are required", http.StatusBadRequest)
		return
	}

	var currentPasswordHash string
	err := s.DB.QueryRowContext(r.Context(), `SELECT password_hash FROM users WHERE id = $1`, userID).Scan(&currentPasswordHash)
	if err == sql.ErrNoRows {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(currentPasswordHash), []byte(req.CurrentPassword)); err != nil {
		http.Error(w, "Current password is incorrect", http.StatusBadRequest)
		return
	}

	newPasswordHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "Failed to hash new password", http.StatusInternalServerError)
		return
	}

	_, err = s.DB.ExecContext(r.Context(), `UPDATE users SET password_hash = $1, updated_at = now() WHERE id = $2`, string(newPasswordHash), userID)
	if err != nil {
		http.Error(w, "Failed to update password", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
