package app

import (
	"net/http"
	"strings"

	"github.com/metinatakli/movie-booking-system/api"
	"github.com/metinatakli/movie-booking-system/internal/domain"
)

func (app *Application) GetMovieSeats(w http.ResponseWriter, r *http.Request) {
	app.seatMap(w, r, domain.OwnerMovie, "movieId")
}

func (app *Application) GetShowSeats(w http.ResponseWriter, r *http.Request) {
	app.seatMap(w, r, domain.OwnerShow, "showId")
}

func (app *Application) UpdateMovieSeatStatus(w http.ResponseWriter, r *http.Request) {
	app.updateSeatStatus(w, r, domain.OwnerMovie, "movieId")
}

func (app *Application) UpdateShowSeatStatus(w http.ResponseWriter, r *http.Request) {
	app.updateSeatStatus(w, r, domain.OwnerShow, "showId")
}

func (app *Application) ResetMovieSeats(w http.ResponseWriter, r *http.Request) {
	app.resetSeats(w, r, domain.OwnerMovie, "movieId")
}

func (app *Application) ResetShowSeats(w http.ResponseWriter, r *http.Request) {
	app.resetSeats(w, r, domain.OwnerShow, "showId")
}

// GenerateMovieSeats adds the requested rows, or the default layout when the
// body is empty. Existing seats are left alone.
func (app *Application) GenerateMovieSeats(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	movieId, err := app.readIDParam(r, "movieId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input api.GenerateSeatsRequest

	err = app.readOptionalJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	specs := domain.DefaultMovieRowSpecs
	if len(input.Rows) > 0 {
		specs = toDomainRowSpecs(input.Rows)
	}

	inserted, err := app.seatRepo.Generate(r.Context(), domain.MovieOwner(movieId), specs)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	logger.Info("seats generated", "movie_id", movieId, "inserted", inserted)
	app.invalidateStats(r.Context())

	err = app.writeJSON(w, http.StatusOK, api.CountResponse{Count: inserted}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) RegenerateShowSeats(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	showId, err := app.readIDParam(r, "showId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	inserted, err := app.showRepo.RegenerateSeats(r.Context(), showId)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	logger.Info("show seats regenerated", "show_id", showId, "inserted", inserted)
	app.invalidateStats(r.Context())

	err = app.writeJSON(w, http.StatusOK, api.CountResponse{Count: inserted}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) seatMap(w http.ResponseWriter, r *http.Request, kind domain.OwnerKind, param string) {
	id, err := app.readIDParam(r, param)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	owner := domain.SeatOwner{Kind: kind, ID: id}

	seats, err := app.seatRepo.List(r.Context(), owner)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toSeatMapResponse(owner, seats), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// updateSeatStatus is the admin override. It does not touch the ledger.
func (app *Application) updateSeatStatus(w http.ResponseWriter, r *http.Request, kind domain.OwnerKind, param string) {
	logger := app.contextGetLogger(r)

	id, err := app.readIDParam(r, param)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input api.UpdateSeatStatusRequest

	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	owner := domain.SeatOwner{Kind: kind, ID: id}
	seats := domain.ParseSeatList(input.Seats)

	updated, err := app.seatRepo.SetStatus(r.Context(), owner, seats, domain.SeatStatus(input.Status))
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	logger.Info("seat status overridden", "owner", owner.String(), "status", input.Status, "updated", updated)
	app.invalidateStats(r.Context())

	err = app.writeJSON(w, http.StatusOK, api.CountResponse{Count: updated}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) resetSeats(w http.ResponseWriter, r *http.Request, kind domain.OwnerKind, param string) {
	logger := app.contextGetLogger(r)

	id, err := app.readIDParam(r, param)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	owner := domain.SeatOwner{Kind: kind, ID: id}

	updated, err := app.seatRepo.ResetAll(r.Context(), owner)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	logger.Info("seats reset", "owner", owner.String(), "updated", updated)
	app.invalidateStats(r.Context())

	err = app.writeJSON(w, http.StatusOK, api.CountResponse{Count: updated}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toSeatMapResponse(owner domain.SeatOwner, seats []domain.Seat) api.SeatMapResponse {
	resp := api.SeatMapResponse{
		Owner:   string(owner.Kind),
		OwnerId: owner.ID,
		Seats:   make([]api.SeatResponse, len(seats)),
	}

	for i, seat := range seats {
		switch seat.Status {
		case domain.SeatBooked:
			resp.Booked++
		default:
			resp.Available++
		}

		resp.Seats[i] = api.SeatResponse{
			Id:         seat.ID,
			SeatNumber: seat.Number,
			Status:     string(seat.Status),
		}
	}

	return resp
}

func toDomainRowSpecs(rows []api.RowSpec) []domain.RowSpec {
	specs := make([]domain.RowSpec, len(rows))

	for i, row := range rows {
		specs[i] = domain.RowSpec{
			From:        strings.ToUpper(row.From),
			To:          strings.ToUpper(row.To),
			SeatsPerRow: row.SeatsPerRow,
		}
	}

	return specs
}
