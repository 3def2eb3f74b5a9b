package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	authmw "github.com/mind-engage/mindengage-practice/internal/auth/middleware"
	"github.com/mind-engage/mindengage-practice/internal/exam"
	"github.com/mind-engage/mindengage-practice/internal/rbac"
	"github.com/mind-engage/mindengage-practice/internal/session"
)

// lowTimeSeconds is where the timer turns into a warning.
const lowTimeSeconds = 300

type sessionResponse struct {
	session.View
	LowTime bool `json:"low_time"`
}

func respondView(w http.ResponseWriter, status int, s *session.Session) {
	v := s.Snapshot()
	writeJSON(w, status, sessionResponse{
		View:    v,
		LowTime: v.State == session.StateRunning && v.RemainingSeconds < lowTimeSeconds,
	})
}

// canSee reports whether the caller may act on something owned by owner.
func canSee(r *http.Request, owner, allPerm string) bool {
	if owner != "" && owner == authmw.SubjectFromContext(r.Context()) {
		return true
	}
	return rbac.Can(r.Context(), allPerm)
}

// loadSession resolves {id} and hides sessions of other users behind a 404.
func loadSession(w http.ResponseWriter, r *http.Request, mgr *session.Manager) (*session.Session, bool) {
	s, err := mgr.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	if !canSee(r, s.Owner(), "session:view-all") {
		writeError(w, session.ErrNotFound)
		return nil, false
	}
	return s, true
}

// POST /sessions {category}
func CreateSessionHandler(mgr *session.Manager, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Category string `json:"category"`
		}
		if !decode(w, r, &req) {
			return
		}
		s, err := mgr.Create(r.Context(), req.Category, authmw.SubjectFromContext(r.Context()))
		if err != nil {
			log.Info("create session rejected", zap.String("category", req.Category), zap.Error(err))
			writeError(w, err)
			return
		}
		respondView(w, http.StatusCreated, s)
	}
}

// GET /sessions/{id}
func GetSessionHandler(mgr *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s, ok := loadSession(w, r, mgr); ok {
			respondView(w, http.StatusOK, s)
		}
	}
}

// POST /sessions/{id}/start
func StartSessionHandler(mgr *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := loadSession(w, r, mgr)
		if !ok {
			return
		}
		if err := s.Start(); err != nil {
			writeError(w, err)
			return
		}
		respondView(w, http.StatusOK, s)
	}
}

// PUT /sessions/{id}/answers/{qid} {value}
func SelectAnswerHandler(mgr *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := loadSession(w, r, mgr)
		if !ok {
			return
		}
		var req struct {
			Value *exam.Answer `json:"value"`
		}
		if !decode(w, r, &req) {
			return
		}
		if req.Value == nil {
			http.Error(w, "value required", http.StatusBadRequest)
			return
		}
		if err := s.SelectAnswer(chi.URLParam(r, "qid"), *req.Value); err != nil {
			writeError(w, err)
			return
		}
		respondView(w, http.StatusOK, s)
	}
}

// POST /sessions/{id}/flags/{qid}
func ToggleFlagHandler(mgr *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := loadSession(w, r, mgr)
		if !ok {
			return
		}
		flagged, err := s.ToggleFlag(chi.URLParam(r, "qid"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"question_id": chi.URLParam(r, "qid"), "flagged": flagged})
	}
}

// POST /sessions/{id}/goto {index}
func GoToHandler(mgr *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := loadSession(w, r, mgr)
		if !ok {
			return
		}
		var req struct {
			Index int `json:"index"`
		}
		if !decode(w, r, &req) {
			return
		}
		if _, err := s.GoTo(req.Index); err != nil {
			writeError(w, err)
			return
		}
		respondView(w, http.StatusOK, s)
	}
}

// NavigateHandler serves /next and /previous.
func NavigateHandler(mgr *session.Manager, step func(*session.Session) (int, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := loadSession(w, r, mgr)
		if !ok {
			return
		}
		if _, err := step(s); err != nil {
			writeError(w, err)
			return
		}
		respondView(w, http.StatusOK, s)
	}
}

// POST /sessions/{id}/submit
func SubmitSessionHandler(mgr *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := loadSession(w, r, mgr)
		if !ok {
			return
		}
		res, err := s.Submit()
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}
