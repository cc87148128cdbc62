package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"planpact/internal/delivery/http/controllers"
)

// Controllers groups the handlers mounted by NewRouter.
type Controllers struct {
	Auth   *controllers.AuthController
	Users  *controllers.UserController
	Pacts  *controllers.PactController
	Guests *controllers.GuestController
	RSVPs  *controllers.RSVPController
}

// NewRouter initializes the HTTP router with all application routes.
// requireAuth wraps every route except registration, login and the API docs.
func NewRouter(c Controllers, requireAuth func(http.HandlerFunc) http.HandlerFunc) *http.ServeMux {
	mux := http.NewServeMux()

	// Auth
	mux.HandleFunc("POST /auth/register", c.Auth.Register)
	mux.HandleFunc("POST /auth/login", c.Auth.Login)

	// Users
	mux.HandleFunc("GET /users/me", requireAuth(c.Users.GetMe))
	mux.HandleFunc("PATCH /users/me", requireAuth(c.Users.UpdateMe))
	mux.HandleFunc("PUT /users/me/password", requireAuth(c.Users.ChangePassword))
	mux.HandleFunc("DELETE /users/me", requireAuth(c.Users.DeleteMe))

	// Pacts
	mux.HandleFunc("POST /pacts", requireAuth(c.Pacts.CreatePact))
	mux.HandleFunc("GET /pacts", requireAuth(c.Pacts.ListPacts))
	mux.HandleFunc("GET /pacts/{pactID}", requireAuth(c.Pacts.GetPact))
	mux.HandleFunc("PUT /pacts/{pactID}", requireAuth(c.Pacts.UpdatePact))
	mux.HandleFunc("DELETE /pacts/{pactID}", requireAuth(c.Pacts.DeletePact))
	mux.HandleFunc("POST /pacts/{pactID}/cancel", requireAuth(c.Pacts.CancelPact))
	mux.HandleFunc("POST /pacts/{pactID}/reminders", requireAuth(c.Pacts.SendReminders))

	// Guests and responses
	mux.HandleFunc("POST /pacts/{pactID}/guests", requireAuth(c.Guests.AddGuests))
	mux.HandleFunc("GET /pacts/{pactID}/guests", requireAuth(c.Guests.ListGuests))
	mux.HandleFunc("POST /pacts/{pactID}/rsvp", requireAuth(c.RSVPs.RecordRSVP))
	mux.HandleFunc("GET /pacts/{pactID}/rsvps", requireAuth(c.RSVPs.ListRSVPs))
	mux.HandleFunc("GET /pacts/{pactID}/stats", requireAuth(c.RSVPs.GetStats))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
