package app

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/metinatakli/movie-booking-system/api"
	"github.com/metinatakli/movie-booking-system/internal/domain"
	"github.com/oapi-codegen/runtime/types"
)

func (app *Application) ListMovies(w http.ResponseWriter, r *http.Request) {
	includeInactive := false

	if raw := r.URL.Query().Get("include_inactive"); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			app.badRequestResponse(w, r, errors.New("include_inactive must be a boolean"))
			return
		}
		includeInactive = value
	}

	movies, err := app.movieRepo.GetAll(r.Context(), includeInactive)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.MovieListResponse{
		Movies: make([]api.MovieResponse, len(movies)),
	}

	for i := range movies {
		resp.Movies[i] = toMovieResponse(&movies[i])
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetMovie(w http.ResponseWriter, r *http.Request) {
	movieId, err := app.readIDParam(r, "movieId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	movie, err := app.movieRepo.GetById(r.Context(), movieId)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toMovieResponse(movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateMovie(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input api.MovieRequest

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

	movie := toDomainMovie(input)

	err = app.movieRepo.Create(r.Context(), movie)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	logger.Info("movie created", "movie_id", movie.ID, "title", movie.Title)
	app.invalidateStats(r.Context())

	err = app.writeJSON(w, http.StatusCreated, toMovieResponse(movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	movieId, err := app.readIDParam(r, "movieId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input api.MovieRequest

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

	existing, err := app.movieRepo.GetById(r.Context(), movieId)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	movie := mergeMovie(existing, input)

	err = app.movieRepo.Update(r.Context(), movie)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toMovieResponse(movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeactivateMovie(w http.ResponseWriter, r *http.Request) {
	movieId, err := app.readIDParam(r, "movieId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.movieRepo.Deactivate(r.Context(), movieId)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	app.invalidateStats(r.Context())

	w.WriteHeader(http.StatusNoContent)
}

func (app *Application) UpdateMoviePrices(w http.ResponseWriter, r *http.Request) {
	var input api.UpdatePricesRequest

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

	count, err := app.movieRepo.UpdatePrices(r.Context(), input.ClassicPrice, input.PrimePrice)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, api.CountResponse{Count: count}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toDomainMovie(input api.MovieRequest) *domain.Movie {
	movie := &domain.Movie{
		Title:        input.Title,
		ShowDate:     input.ShowDate.Time,
		ShowTime:     input.ShowTime,
		Language:     domain.DefaultLanguage,
		Format:       domain.DefaultFormat,
		ClassicPrice: domain.DefaultClassicPrice,
		PrimePrice:   domain.DefaultPrimePrice,
		Picture:      domain.DefaultPicture,
	}

	mergeMovie(movie, input)

	if input.Price == nil {
		movie.Price = movie.ClassicPrice
	}

	return movie
}

// mergeMovie overwrites the fields of movie that input sets.
func mergeMovie(movie *domain.Movie, input api.MovieRequest) *domain.Movie {
	movie.Title = input.Title
	movie.ShowDate = input.ShowDate.Time
	movie.ShowTime = input.ShowTime

	if input.Language != nil {
		movie.Language = *input.Language
	}
	if input.Format != nil {
		movie.Format = *input.Format
	}
	if input.ClassicPrice != nil {
		movie.ClassicPrice = *input.ClassicPrice
	}
	if input.PrimePrice != nil {
		movie.PrimePrice = *input.PrimePrice
	}
	if input.Picture != nil {
		movie.Picture = *input.Picture
	}

	if input.Price != nil {
		movie.Price = *input.Price
	}

	return movie
}

func toMovieResponse(movie *domain.Movie) api.MovieResponse {
	return api.MovieResponse{
		Id:           movie.ID,
		Title:        movie.Title,
		ShowDate:     types.Date{Time: movie.ShowDate},
		ShowTime:     movie.ShowTime,
		Language:     movie.Language,
		Format:       movie.Format,
		Price:        movie.Price,
		ClassicPrice: movie.ClassicPrice,
		PrimePrice:   movie.PrimePrice,
		Picture:      movie.Picture,
		IsActive:     movie.IsActive,
		CreatedAt:    movie.CreatedAt,
		UpdatedAt:    movie.UpdatedAt,
	}
}
