package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mind-engage/mindengage-practice/internal/exam"
)

// GET /bank/questions?q=&category=&limit=&offset=
func ListQuestionsHandler(store exam.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		list, err := store.ListQuestions(r.Context(), exam.ListOpts{
			Q:        strings.TrimSpace(q.Get("q")),
			Category: strings.TrimSpace(q.Get("category")),
			Limit:    parseIntDefault(q.Get("limit"), 0),
			Offset:   parseIntDefault(q.Get("offset"), 0),
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

// GET /bank/questions/{id}
func GetQuestionHandler(store exam.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := store.GetQuestion(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, q)
	}
}

// POST /bank/questions creates; PUT /bank/questions/{id} replaces an existing question.
func PutQuestionHandler(store exam.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var q exam.Question
		if !decode(w, r, &q) {
			return
		}
		status := http.StatusCreated
		if id := chi.URLParam(r, "id"); id != "" {
			if _, err := store.GetQuestion(r.Context(), id); err != nil {
				writeError(w, err)
				return
			}
			q.ID = id
			status = http.StatusOK
		} else if q.ID != "" {
			if _, err := store.GetQuestion(r.Context(), q.ID); err == nil {
				writeJSON(w, http.StatusConflict, map[string]string{"error": "question " + q.ID + " already exists"})
				return
			}
		}
		saved, err := store.PutQuestion(r.Context(), q)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, status, saved)
	}
}

// DELETE /bank/questions/{id}
func DeleteQuestionHandler(store exam.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.DeleteQuestion(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
