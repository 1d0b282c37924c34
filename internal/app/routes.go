package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/riandyrn/otelchi"
)

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)
	r.MethodNotAllowed(app.methodNotAllowedResponse)

	r.Use(otelchi.Middleware(serviceName, otelchi.WithChiRoutes(r)))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(app.requestLogger)
	r.Use(app.recoverPanic)
	r.Use(app.sessionManager.LoadAndSave)

	r.Get("/health", app.GetHealth)
	r.Get("/openapi.json", app.GetOpenAPI)

	r.Group(func(r chi.Router) {
		r.Use(app.validateRequest)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", app.Signup)
			r.Post("/admin/signup", app.AdminSignup)
			r.Post("/login", app.Login)
			r.Post("/admin/login", app.AdminLogin)
			r.Post("/logout", app.Logout)
			r.With(app.requireAuthentication).Get("/me", app.GetCurrentUser)
			r.Post("/password/forgot", app.ForgotPassword)
			r.Put("/password/reset", app.ResetPassword)
		})

		r.Get("/movies", app.ListMovies)
		r.Get("/movies/{movieId}", app.GetMovie)
		r.Get("/movies/{movieId}/seats", app.GetMovieSeats)
		r.Get("/movies/{movieId}/shows", app.ListMovieShows)

		r.Get("/shows", app.ListShows)
		r.Get("/shows/{showId}", app.GetShow)
		r.Get("/shows/{showId}/seats", app.GetShowSeats)

		r.Get("/screens", app.ListScreens)

		r.Post("/bookings", app.CreateBooking)

		r.Get("/notifications", app.ListNotifications)
	})

	r.Group(func(r chi.Router) {
		r.Use(app.requireAdmin)
		r.Use(app.validateRequest)

		r.Post("/movies", app.CreateMovie)
		r.Put("/movies/prices", app.UpdateMoviePrices)
		r.Put("/movies/{movieId}", app.UpdateMovie)
		r.Delete("/movies/{movieId}", app.DeactivateMovie)
		r.Patch("/movies/{movieId}/seats", app.UpdateMovieSeatStatus)
		r.Post("/movies/{movieId}/seats/generate", app.GenerateMovieSeats)
		r.Post("/movies/{movieId}/seats/reset", app.ResetMovieSeats)
		r.Post("/movies/{movieId}/shows", app.CreateShow)
		r.Get("/movies/{movieId}/bookings", app.ListMovieBookings)

		r.Delete("/shows/{showId}", app.DeleteShow)
		r.Patch("/shows/{showId}/seats", app.UpdateShowSeatStatus)
		r.Post("/shows/{showId}/seats/generate", app.RegenerateShowSeats)
		r.Post("/shows/{showId}/seats/reset", app.ResetShowSeats)

		r.Post("/screens", app.CreateScreen)
		r.Put("/screens/{screenId}", app.UpdateScreen)
		r.Delete("/screens/{screenId}", app.DeleteScreen)

		r.Get("/bookings", app.ListBookings)
		r.Delete("/bookings/{bookingId}", app.CancelBooking)

		r.Get("/users", app.ListUsers)
		r.Post("/users/sync", app.SyncUsers)
		r.Patch("/users/{userId}/block", app.SetUserBlocked)
		r.Get("/users/{userId}/bookings", app.ListUserBookings)

		r.Post("/notifications", app.CreateNotification)

		r.Get("/stats", app.GetStats)
	})

	return r
}
