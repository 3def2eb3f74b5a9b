package http

import (
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	authmw "github.com/mind-engage/mindengage-practice/internal/auth/middleware"
	"github.com/mind-engage/mindengage-practice/internal/rbac"
)

type changePasswordReq struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// POST /users/change-password
func ChangePasswordHandler(users *authmw.UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := authmw.SubjectFromContext(r.Context())
		if userID == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		// the admin account lives in config (ADMIN_PASS_HASH), not in the users table
		if rbac.RoleFromContext(r.Context()) == authmw.RoleAdmin {
			writeJSON(w, http.StatusForbidden, map[string]string{"error": "admin password is configured, not stored"})
			return
		}

		var req changePasswordReq
		if !decode(w, r, &req) {
			return
		}
		if len(req.NewPassword) < 6 {
			http.Error(w, "new password too short", http.StatusBadRequest)
			return
		}

		u, err := users.ByID(r.Context(), userID)
		if errors.Is(err, authmw.ErrUserNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		if err != nil {
			writeError(w, err)
			return
		}
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.OldPassword)) != nil {
			http.Error(w, "incorrect old password", http.StatusForbidden)
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			writeError(w, err)
			return
		}
		if err := users.SetPasswordHash(r.Context(), userID, string(hash)); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
