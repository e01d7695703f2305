package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"eventmanager/internal/delivery/http/controllers"
	"eventmanager/internal/delivery/http/middleware"
	"eventmanager/internal/domain"
)

// Services bundles what the router needs to build its controllers.
type Services struct {
	Events    domain.EventService
	Attendees domain.AttendeeService
	Venues    domain.VenueService
	Users     domain.UserService
	Stats     domain.StatsService
	Verifier  domain.TokenVerifier
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(logger *slog.Logger, svc Services, allowedOrigins []string) http.Handler {
	events := controllers.NewEventController(logger, svc.Events)
	attendees := controllers.NewAttendeeController(logger, svc.Attendees)
	venues := controllers.NewVenueController(logger, svc.Venues)
	users := controllers.NewUserController(logger, svc.Users, svc.Stats)
	requireAuth := middleware.RequireAuth(svc.Verifier, svc.Users, logger)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(allowedOrigins))

	r.Get("/health", controllers.Health)

	// Public reads
	r.Get("/events", events.ListEvents)
	r.Get("/events/{eventID}", events.GetEvent)
	r.Get("/venues", venues.ListVenues)
	r.Get("/venues/{venueID}", venues.GetVenue)
	r.Get("/venues/{venueID}/availability", venues.CheckAvailability)

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)

		r.Post("/events", events.CreateEvent)
		r.Put("/events/{eventID}", events.UpdateEvent)
		r.Delete("/events/{eventID}", events.DeleteEvent)
		r.Get("/events/{eventID}/attendees", events.ListAttendees)
		r.Delete("/events/{eventID}/attendees/{userID}", events.RemoveAttendee)

		r.Post("/events/{eventID}/registrations", attendees.Register)
		r.Delete("/events/{eventID}/registrations", attendees.Unregister)

		r.Get("/me/registrations", attendees.ListMyRegistrations)
		r.Get("/me/events", events.ListMyEvents)

		r.Post("/venues", venues.CreateVenue)
		r.Put("/venues/{venueID}", venues.UpdateVenue)

		r.Route("/admin", func(r chi.Router) {
			r.Get("/users", users.ListUsers)
			r.Post("/users", users.CreateUser)
			r.Patch("/users/{userID}/role", users.UpdateRole)
			r.Delete("/users/{userID}", users.DeleteUser)
			r.Get("/stats", users.Statistics)
		})
	})

	// Swagger
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}
