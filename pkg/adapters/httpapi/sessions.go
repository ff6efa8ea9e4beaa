package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/veldtlabs/breadboard"
)

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	id, err := s.sessions.Create(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.logger.Info("session created", "session", id)
	s.writeJSON(w, http.StatusCreated, map[string]uuid.UUID{"id": id})
}

func (s *Server) listSessions(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.sessions.List())
}

func (s *Server) closeSession(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}
	if err := s.sessions.Close(id); err != nil {
		s.writeError(w, err)
		return
	}
	s.logger.Info("session closed", "session", id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) postEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}

	var body eventRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	ev, err := decodeEvent(body)
	if err != nil {
		s.writeError(w, err)
		return
	}

	var resp sessionStateResponse
	err = s.sessions.With(r.Context(), id, func(ctx context.Context, ed *breadboard.Editor) error {
		if err := ed.Handle(ctx, ev); err != nil {
			return err
		}
		resp = sessionState(ed)
		return nil
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) postUndo(w http.ResponseWriter, r *http.Request) {
	s.postHistoryStep(w, r, (*breadboard.Editor).Undo)
}

func (s *Server) postRedo(w http.ResponseWriter, r *http.Request) {
	s.postHistoryStep(w, r, (*breadboard.Editor).Redo)
}

func (s *Server) postHistoryStep(w http.ResponseWriter, r *http.Request, step func(*breadboard.Editor) error) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}

	var resp sessionStateResponse
	err := s.sessions.With(r.Context(), id, func(ctx context.Context, ed *breadboard.Editor) error {
		if err := step(ed); err != nil {
			return err
		}
		resp = sessionState(ed)
		return nil
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) getDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}

	var resp documentResponse
	err := s.sessions.With(r.Context(), id, func(ctx context.Context, ed *breadboard.Editor) error {
		resp = documentFromDomain(ed.Document())
		return nil
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) getHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}

	var resp historyResponse
	err := s.sessions.With(r.Context(), id, func(ctx context.Context, ed *breadboard.Editor) error {
		h := ed.History()
		resp = historyResponse{
			Descriptions: h.Descriptions(),
			Cursor:       h.Cursor(),
			CanUndo:      h.CanUndo(),
			CanRedo:      h.CanRedo(),
			UndoNext:     h.UndoDescription(),
			RedoNext:     h.RedoDescription(),
			Clean:        h.IsClean(),
		}
		return nil
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid session id", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}
