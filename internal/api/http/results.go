package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	authmw "github.com/mind-engage/mindengage-practice/internal/auth/middleware"
	"github.com/mind-engage/mindengage-practice/internal/rbac"
	"github.com/mind-engage/mindengage-practice/internal/results"
	"github.com/mind-engage/mindengage-practice/internal/session"
)

// GET /results/{sessionId}
// The stored copy is preferred; a session still in memory covers a result whose
// write has not landed yet.
func GetResultHandler(store *results.SQLStore, mgr *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "sessionId")
		res, err := store.Get(r.Context(), id)
		if errors.Is(err, results.ErrNotFound) {
			if s, gerr := mgr.Get(id); gerr == nil {
				if cached, ok := s.Result(); ok {
					res, err = cached, nil
				}
			}
		}
		if err != nil {
			writeError(w, err)
			return
		}
		if !canSee(r, res.UserID, "result:view-all") {
			writeError(w, results.ErrNotFound)
			return
		}
		writeJSON(w, http.StatusOK, results.NewReport(res))
	}
}

// GET /results?test_id=&user_id=&limit=&offset=
// Students only ever see their own results; admins may filter by user.
func ListResultsHandler(store *results.SQLStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		opts := results.ListOpts{
			UserID: authmw.SubjectFromContext(r.Context()),
			TestID: strings.TrimSpace(q.Get("test_id")),
			Limit:  parseIntDefault(q.Get("limit"), 50),
			Offset: parseIntDefault(q.Get("offset"), 0),
		}
		if rbac.Can(r.Context(), "result:view-all") {
			opts.UserID = strings.TrimSpace(q.Get("user_id"))
		}
		list, err := store.List(r.Context(), opts)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}
