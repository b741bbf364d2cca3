package web

import (
	"net/http"

	"github.com/vbonduro/labinv/internal/domain"
)

func (s *Server) handleListLocations(w http.ResponseWriter, r *http.Request) {
	locs, err := s.service.ListLocations(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, locs)
}

func (s *Server) handleGetLocation(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	loc, err := s.service.GetLocation(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, loc)
}

func (s *Server) handleCreateLocation(w http.ResponseWriter, r *http.Request) {
	var draft domain.LocationDraft
	if err := decodeJSON(w, r, &draft); err != nil {
		s.writeError(w, r, err)
		return
	}
	loc, err := s.service.CreateLocation(r.Context(), draft)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, loc)
}

func (s *Server) handleUpdateLocation(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var draft domain.LocationDraft
	if err := decodeJSON(w, r, &draft); err != nil {
		s.writeError(w, r, err)
		return
	}
	loc, err := s.service.UpdateLocation(r.Context(), id, draft)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, loc)
}

// handleDeleteLocation answers 409 location_in_use while items still
// reference the location.
func (s *Server) handleDeleteLocation(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.service.DeleteLocation(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
