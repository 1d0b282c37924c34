package app

import (
	"context"
	"net/http"

	"github.com/metinatakli/movie-booking-system/api"
	"github.com/metinatakli/movie-booking-system/internal/domain"
	"github.com/oapi-codegen/runtime/types"
)

func (app *Application) CreateBooking(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input api.CreateBookingRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	req := domain.BookingRequest{
		Username:   input.Username,
		UserID:     input.UserId,
		UserEmail:  input.UserEmail,
		MovieID:    input.MovieId,
		ShowID:     input.ShowId,
		Seats:      input.Seats,
		TotalPrice: *input.TotalPrice,
	}

	booking, err := app.bookingService.Book(r.Context(), req)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	logger.Info("booking created", "booking_id", booking.ID, "username", booking.Username)

	app.invalidateStats(context.WithoutCancel(r.Context()))

	if booking.UserEmail != nil && *booking.UserEmail != "" {
		app.sendBookingConfirmation(r, booking)
	}

	resp := api.CreateBookingResponse{BookingId: booking.ID}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) sendBookingConfirmation(r *http.Request, booking *domain.Booking) {
	logger := app.contextGetLogger(r)
	ctx := context.WithoutCancel(r.Context())

	app.background(func() {
		title := ""

		movie, err := app.movieRepo.GetById(ctx, booking.MovieID)
		if err != nil {
			logger.Warn("movie lookup for confirmation email failed", "movie_id", booking.MovieID, "error", err)
		} else {
			title = movie.Title
		}

		data := map[string]any{
			"bookingID":  booking.ID,
			"username":   booking.Username,
			"movieTitle": title,
			"seats":      domain.JoinSeatList(booking.Seats),
			"totalPrice": booking.TotalPrice.StringFixed(2),
		}

		err = app.mailer.Send(*booking.UserEmail, "booking_confirmation.tmpl", data)
		if err != nil {
			logger.Error("failed to send booking confirmation", "booking_id", booking.ID, "error", err)
			return
		}

		logger.Info("booking confirmation sent", "booking_id", booking.ID)
	})
}

func (app *Application) CancelBooking(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	bookingId, err := app.readIDParam(r, "bookingId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	booking, err := app.bookingService.Cancel(r.Context(), bookingId)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	logger.Info("booking cancelled", "booking_id", booking.ID, "seats", domain.JoinSeatList(booking.Seats))

	app.invalidateStats(context.WithoutCancel(r.Context()))

	w.WriteHeader(http.StatusNoContent)
}

func (app *Application) ListBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := app.bookingRepo.GetAll(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.writeBookings(w, r, bookings)
}

func (app *Application) ListMovieBookings(w http.ResponseWriter, r *http.Request) {
	movieId, err := app.readIDParam(r, "movieId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	bookings, err := app.bookingRepo.GetByMovieId(r.Context(), movieId)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.writeBookings(w, r, bookings)
}

func (app *Application) ListUserBookings(w http.ResponseWriter, r *http.Request) {
	userId, err := app.readIDParam(r, "userId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user, err := app.userRepo.GetById(r.Context(), userId)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	bookings, err := app.bookingRepo.GetByUsername(r.Context(), user.Username)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.writeBookings(w, r, bookings)
}

func (app *Application) writeBookings(w http.ResponseWriter, r *http.Request, bookings []domain.BookingSummary) {
	resp := api.BookingListResponse{
		Bookings: make([]api.BookingResponse, len(bookings)),
	}

	for i := range bookings {
		resp.Bookings[i] = toBookingResponse(&bookings[i])
	}

	err := app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toBookingResponse(b *domain.BookingSummary) api.BookingResponse {
	resp := api.BookingResponse{
		Id:          b.ID,
		Username:    b.Username,
		UserId:      b.UserID,
		UserEmail:   b.UserEmail,
		MovieId:     b.MovieID,
		ShowId:      b.ShowID,
		SeatScope:   string(b.Scope),
		Seats:       b.Seats,
		TotalPrice:  b.TotalPrice,
		BookingTime: b.CreatedAt,
		MovieTitle:  b.MovieTitle,
		ShowTime:    b.ShowTime,
		ShowFormat:  b.ShowFormat,
	}

	if b.ShowDate != nil {
		resp.ShowDate = &types.Date{Time: *b.ShowDate}
	}

	return resp
}
