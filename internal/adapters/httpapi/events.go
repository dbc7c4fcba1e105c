package httpapi

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"campusevents/internal/application"
	"campusevents/internal/domain"
	"campusevents/internal/domain/entities"
	"campusevents/internal/domain/feed"
)

// listEvents serves a named feed. Without a mode every event is returned.
func (s *Server) listEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	mode := feed.Mode(q.Get("mode"))
	if mode == "" {
		mode = feed.ModeAll
	}
	events, err := s.events.Feed(r.Context(), application.FeedRequest{
		Mode:   mode,
		Search: q.Get("q"),
		UserID: identityFrom(r.Context()).UID,
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toEventList(events))
}

// searchEvents runs the advanced search. List filters accept repeated
// parameters or comma separated values.
func (s *Server) searchEvents(w http.ResponseWriter, r *http.Request) {
	c, err := s.parseCriteria(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	events, err := s.events.Search(r.Context(), c)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toEventList(events))
}

func (s *Server) parseCriteria(r *http.Request) (feed.Criteria, error) {
	q := r.URL.Query()
	c := feed.Criteria{
		Departments: multiValue(q["department"]),
		Location:    strings.TrimSpace(q.Get("location")),
	}
	for _, t := range multiValue(q["type"]) {
		c.Types = append(c.Types, entities.EventType(t))
	}
	for _, cat := range multiValue(q["category"]) {
		c.Categories = append(c.Categories, entities.Category(cat))
	}

	// Without a when parameter the search shows upcoming events; "Any" lifts it.
	switch when := q.Get("when"); {
	case !q.Has("when"):
		c.When = feed.WhenUpcoming
	case when == "" || when == "Any":
		c.When = feed.WhenAny
	case feed.When(when) == feed.WhenUpcoming || feed.When(when) == feed.WhenPast:
		c.When = feed.When(when)
	default:
		return feed.Criteria{}, domain.Validation("when must be Upcoming, Past or Any, got %q", when)
	}

	if raw := q.Get("from"); raw != "" {
		t, ok := entities.ParseDateTime(raw, s.loc)
		if !ok {
			return feed.Criteria{}, domain.Validation("from is not a date: %q", raw)
		}
		c.From = t
	}
	if raw := q.Get("to"); raw != "" {
		t, ok := entities.ParseDateTime(raw, s.loc)
		if !ok {
			return feed.Criteria{}, domain.Validation("to is not a date: %q", raw)
		}
		c.To = t
	}
	return c, nil
}

func multiValue(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func (s *Server) getEvent(w http.ResponseWriter, r *http.Request) {
	event, err := s.events.GetEvent(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toEventResponse(event))
}

func (s *Server) createEvent(w http.ResponseWriter, r *http.Request) {
	who := identityFrom(r.Context())
	if !who.IsAuthenticated() {
		s.respondError(w, r, domain.ErrAuthRequired)
		return
	}
	in, err := s.decodeEvent(w, r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	event, err := s.events.CreateEvent(r.Context(), who, in)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	RespondWithJSON(w, http.StatusCreated, toEventResponse(event))
}

func (s *Server) updateEvent(w http.ResponseWriter, r *http.Request) {
	who := identityFrom(r.Context())
	if !who.IsAuthenticated() {
		s.respondError(w, r, domain.ErrAuthRequired)
		return
	}
	in, err := s.decodeEvent(w, r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	event, err := s.events.UpdateEvent(r.Context(), who, mux.Vars(r)["id"], in)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toEventResponse(event))
}

func (s *Server) decodeEvent(w http.ResponseWriter, r *http.Request) (application.EventInput, error) {
	var req eventRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return application.EventInput{}, err
	}
	return req.toInput(s.loc)
}

func (s *Server) deleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := s.events.DeleteEvent(r.Context(), identityFrom(r.Context()), mux.Vars(r)["id"]); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) calendarLink(w http.ResponseWriter, r *http.Request) {
	link, err := s.events.CalendarLink(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, map[string]string{"url": link})
}
