package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"campusevents/internal/domain"
)

type societyResponse struct {
	Profile profileResponse `json:"profile"`
	Events  []eventResponse `json:"events"`
}

func (s *Server) myRegistrations(w http.ResponseWriter, r *http.Request) {
	who := identityFrom(r.Context())
	if !who.IsAuthenticated() {
		s.respondError(w, r, domain.ErrAuthRequired)
		return
	}
	regs, err := s.interactions.Registrations(r.Context(), who.UID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	out := make([]snapshotResponse, len(regs))
	for i, reg := range regs {
		out[i] = toSnapshotResponse(reg.Snapshot, reg.CreatedAt)
	}
	RespondWithJSON(w, http.StatusOK, out)
}

func (s *Server) myFavourites(w http.ResponseWriter, r *http.Request) {
	who := identityFrom(r.Context())
	if !who.IsAuthenticated() {
		s.respondError(w, r, domain.ErrAuthRequired)
		return
	}
	saved, err := s.interactions.SavedPosts(r.Context(), who.UID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	out := make([]snapshotResponse, len(saved))
	for i, sp := range saved {
		out[i] = toSnapshotResponse(sp.Snapshot, sp.CreatedAt)
	}
	RespondWithJSON(w, http.StatusOK, out)
}

func (s *Server) myProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.profiles.Me(r.Context(), identityFrom(r.Context()))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toProfileResponse(p))
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	who := identityFrom(r.Context())
	if !who.IsAuthenticated() {
		s.respondError(w, r, domain.ErrAuthRequired)
		return
	}
	var req profileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	p, err := s.profiles.Update(r.Context(), who, req.toInput())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toProfileResponse(p))
}

func (s *Server) society(w http.ResponseWriter, r *http.Request) {
	p, events, err := s.profiles.Society(r.Context(), mux.Vars(r)["uid"])
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, societyResponse{Profile: toProfileResponse(p), Events: toEventList(events)})
}
