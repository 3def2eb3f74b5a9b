package http

import (
	"net/http"

	"github.com/mind-engage/mindengage-practice/internal/exam"
)

// GET /categories
func ListCategoriesHandler(store exam.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cats, err := store.Categories(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, cats)
	}
}
