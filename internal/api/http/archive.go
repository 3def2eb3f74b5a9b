package http

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mind-engage/mindengage-practice/internal/results"
)

// GET /results/{sessionId}/archive  -> the archived JSON report as stored in the blob store
func ArchiveHandler(store *results.SQLStore, archive *results.ArchiveSink) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := store.Get(r.Context(), chi.URLParam(r, "sessionId"))
		if err != nil {
			writeError(w, err)
			return
		}
		if !canSee(r, res.UserID, "result:view-all") {
			writeError(w, results.ErrNotFound)
			return
		}
		rc, err := archive.Open(r.Context(), res)
		if err != nil {
			writeError(w, err)
			return
		}
		defer rc.Close()
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="`+res.SessionID+`.json"`)
		_, _ = io.Copy(w, rc)
	}
}
