package app

import (
	"net/http"

	"github.com/metinatakli/movie-booking-system/api"
	"github.com/metinatakli/movie-booking-system/internal/domain"
	"github.com/oapi-codegen/runtime/types"
)

func (app *Application) ListShows(w http.ResponseWriter, r *http.Request) {
	shows, err := app.showRepo.GetAll(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.writeShows(w, r, shows)
}

func (app *Application) ListMovieShows(w http.ResponseWriter, r *http.Request) {
	movieId, err := app.readIDParam(r, "movieId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	shows, err := app.showRepo.GetByMovieId(r.Context(), movieId)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	app.writeShows(w, r, shows)
}

func (app *Application) GetShow(w http.ResponseWriter, r *http.Request) {
	showId, err := app.readIDParam(r, "showId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	show, err := app.showRepo.GetById(r.Context(), showId)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toShowResponse(show), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateShow(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	movieId, err := app.readIDParam(r, "movieId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input api.CreateShowRequest

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

	show := &domain.Show{
		MovieID:  movieId,
		ScreenID: input.ScreenId,
		Date:     input.ShowDate.Time,
		Time:     input.ShowTime,
		Format:   domain.DefaultFormat,
	}
	if input.Format != nil {
		show.Format = *input.Format
	}

	err = app.showRepo.Create(r.Context(), show)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	logger.Info("show scheduled",
		"show_id", show.ID,
		"movie_id", show.MovieID,
		"screen_id", show.ScreenID,
		"seats", show.Rows*show.Cols)
	app.invalidateStats(r.Context())

	err = app.writeJSON(w, http.StatusCreated, toShowResponse(show), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// DeleteShow removes the show and its seats. Bookings of the show stay in the
// ledger without a show reference.
func (app *Application) DeleteShow(w http.ResponseWriter, r *http.Request) {
	showId, err := app.readIDParam(r, "showId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.showRepo.Delete(r.Context(), showId)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	app.invalidateStats(r.Context())

	w.WriteHeader(http.StatusNoContent)
}

func (app *Application) writeShows(w http.ResponseWriter, r *http.Request, shows []domain.Show) {
	resp := api.ShowListResponse{
		Shows: make([]api.ShowResponse, len(shows)),
	}

	for i := range shows {
		resp.Shows[i] = toShowResponse(&shows[i])
	}

	err := app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toShowResponse(show *domain.Show) api.ShowResponse {
	return api.ShowResponse{
		Id:           show.ID,
		MovieId:      show.MovieID,
		ScreenId:     show.ScreenID,
		ShowDate:     types.Date{Time: show.Date},
		ShowTime:     show.Time,
		Format:       show.Format,
		MovieTitle:   show.MovieTitle,
		Language:     show.Language,
		ClassicPrice: show.ClassicPrice,
		PrimePrice:   show.PrimePrice,
		Picture:      show.Picture,
		ScreenName:   show.ScreenName,
		Rows:         show.Rows,
		Cols:         show.Cols,
		CreatedAt:    show.CreatedAt,
	}
}
