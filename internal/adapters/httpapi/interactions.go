package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
)

type likeResponse struct {
	Liked      bool `json:"liked"`
	LikesCount int  `json:"likesCount"`
}

type saveResponse struct {
	Saved bool `json:"saved"`
}

type registerResponse struct {
	AttendeesCount int `json:"attendeesCount"`
}

type statusResponse struct {
	Liked bool `json:"liked"`
	Saved bool `json:"saved"`
}

func (s *Server) toggleLike(w http.ResponseWriter, r *http.Request) {
	state, err := s.interactions.ToggleLike(r.Context(), mux.Vars(r)["id"], identityFrom(r.Context()).UID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, likeResponse{Liked: state.Liked, LikesCount: state.LikesCount})
}

func (s *Server) toggleSave(w http.ResponseWriter, r *http.Request) {
	state, err := s.interactions.ToggleSave(r.Context(), mux.Vars(r)["id"], identityFrom(r.Context()).UID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, saveResponse{Saved: state.Saved})
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	count, err := s.interactions.Register(r.Context(), mux.Vars(r)["id"], identityFrom(r.Context()).UID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, registerResponse{AttendeesCount: count})
}

func (s *Server) listComments(w http.ResponseWriter, r *http.Request) {
	comments, err := s.interactions.Comments(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	out := make([]commentResponse, len(comments))
	for i, c := range comments {
		out[i] = toCommentResponse(c)
	}
	RespondWithJSON(w, http.StatusOK, out)
}

func (s *Server) postComment(w http.ResponseWriter, r *http.Request) {
	var req commentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	c, err := s.interactions.PostComment(r.Context(), mux.Vars(r)["id"], identityFrom(r.Context()).UID, req.Text)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	RespondWithJSON(w, http.StatusCreated, toCommentResponse(c))
}

// interactionStatus reports whether the caller liked or saved the event.
// Anonymous callers get both false.
func (s *Server) interactionStatus(w http.ResponseWriter, r *http.Request) {
	who := identityFrom(r.Context())
	if !who.IsAuthenticated() {
		RespondWithJSON(w, http.StatusOK, statusResponse{})
		return
	}
	st, err := s.interactions.Status(r.Context(), mux.Vars(r)["id"], who.UID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, statusResponse{Liked: st.Liked, Saved: st.Saved})
}
