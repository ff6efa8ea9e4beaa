package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (s *Server) listDefinitions(w http.ResponseWriter, r *http.Request) {
	defs, err := s.catalog.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	out := make([]definitionSummary, 0, len(defs))
	for _, def := range defs {
		out = append(out, summarize(def))
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) getDefinition(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid definition id", http.StatusBadRequest)
		return
	}

	def, err := s.catalog.Resolve(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, def)
}
