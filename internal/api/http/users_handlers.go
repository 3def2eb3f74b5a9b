package http

import (
	"net/http"
	"strings"

	authmw "github.com/mind-engage/mindengage-practice/internal/auth/middleware"
)

// GET /users?role=
func ListUsersHandler(users *authmw.UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := users.List(r.Context(), strings.TrimSpace(r.URL.Query().Get("role")))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}
