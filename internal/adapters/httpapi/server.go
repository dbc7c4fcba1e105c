// Package httpapi exposes the event, interaction and profile use cases as a
// JSON API under /api/v1.
package httpapi

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"campusevents/internal/domain/entities"
	"campusevents/internal/ports/input"
	"campusevents/internal/ports/output"
)

// Verifier turns a bearer token into an identity.
type Verifier interface {
	Verify(raw string) (entities.Identity, error)
}

// Metrics records request outcomes and serves the scrape endpoint.
type Metrics interface {
	ObserveRequest(method, route string, status int, elapsed time.Duration)
	Handler() http.Handler
}

type Options struct {
	Events       input.EventUseCase
	Interactions input.InteractionUseCase
	Profiles     input.ProfileUseCase
	Verifier     Verifier
	Translator   output.T
	// Metrics is optional.
	Metrics        Metrics
	Location       *time.Location
	RequestTimeout time.Duration
	AllowedOrigins []string
	Log            zerolog.Logger
}

type Server struct {
	events       input.EventUseCase
	interactions input.InteractionUseCase
	profiles     input.ProfileUseCase
	verifier     Verifier
	tr           output.T
	metrics      Metrics
	loc          *time.Location
	timeout      time.Duration
	log          zerolog.Logger
	now          func() time.Time
}

func newServer(opts Options) *Server {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	return &Server{
		events:       opts.Events,
		interactions: opts.Interactions,
		profiles:     opts.Profiles,
		verifier:     opts.Verifier,
		tr:           opts.Translator,
		metrics:      opts.Metrics,
		loc:          loc,
		timeout:      opts.RequestTimeout,
		log:          opts.Log.With().Str("component", "http").Logger(),
		now:          time.Now,
	}
}

// NewRouter builds the API handler, CORS included.
func NewRouter(opts Options) http.Handler {
	s := newServer(opts)
	r := mux.NewRouter()

	r.HandleFunc("/health", s.health).Methods(http.MethodGet)
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/health", s.health).Methods(http.MethodGet)

	// Events. /events/search must be registered before /events/{id}.
	api.HandleFunc("/events", s.listEvents).Methods(http.MethodGet)
	api.HandleFunc("/events", s.createEvent).Methods(http.MethodPost)
	api.HandleFunc("/events/search", s.searchEvents).Methods(http.MethodGet)
	api.HandleFunc("/events/{id}", s.getEvent).Methods(http.MethodGet)
	api.HandleFunc("/events/{id}", s.updateEvent).Methods(http.MethodPut)
	api.HandleFunc("/events/{id}", s.deleteEvent).Methods(http.MethodDelete)
	api.HandleFunc("/events/{id}/calendar", s.calendarLink).Methods(http.MethodGet)

	// Interactions
	api.HandleFunc("/events/{id}/like", s.toggleLike).Methods(http.MethodPost)
	api.HandleFunc("/events/{id}/save", s.toggleSave).Methods(http.MethodPost)
	api.HandleFunc("/events/{id}/register", s.register).Methods(http.MethodPost)
	api.HandleFunc("/events/{id}/comments", s.listComments).Methods(http.MethodGet)
	api.HandleFunc("/events/{id}/comments", s.postComment).Methods(http.MethodPost)
	api.HandleFunc("/events/{id}/interactions", s.interactionStatus).Methods(http.MethodGet)

	// Caller
	api.HandleFunc("/me/registrations", s.myRegistrations).Methods(http.MethodGet)
	api.HandleFunc("/me/favourites", s.myFavourites).Methods(http.MethodGet)
	api.HandleFunc("/me/profile", s.myProfile).Methods(http.MethodGet)
	api.HandleFunc("/me/profile", s.updateProfile).Methods(http.MethodPut)

	api.HandleFunc("/societies/{uid}", s.society).Methods(http.MethodGet)

	r.Use(s.recoverMiddleware)
	r.Use(s.observeMiddleware)
	api.Use(s.timeoutMiddleware)
	api.Use(s.identityMiddleware)

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", "Accept-Language"},
		MaxAge:         300,
	}).Handler(r)
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "campusevents"})
}
