package integration_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/metinatakli/movie-booking-system/api"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type CatalogTestSuite struct {
	BaseSuite
}

func TestCatalogSuite(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	suite.Run(t, new(CatalogTestSuite))
}

func (s *CatalogTestSuite) TestCreateMovie() {
	scenarios := []Scenario{
		{
			Name:             "returns 401 without a session",
			Method:           "POST",
			URL:              "/movies",
			Body:             strings.NewReader(`{"title": "Interstellar", "show_date": "2025-06-20", "show_time": "20:00"}`),
			ExpectedStatus:   401,
			ExpectedResponse: `{"message": "You must be authenticated to access this resource"}`,
		},
		{
			Name:           "creates a movie with defaults and its seat grid",
			Method:         "POST",
			URL:            "/movies",
			AsAdmin:        true,
			Body:           strings.NewReader(`{"title": "Interstellar", "show_date": "2025-06-20", "show_time": "20:00"}`),
			ExpectedStatus: 201,
			ExpectedResponse: `{
				"id": 1,
				"title": "Interstellar",
				"show_date": "2025-06-20",
				"show_time": "20:00",
				"language": "English",
				"format": "2D",
				"price": "381.36",
				"classic_price": "381.36",
				"prime_price": "481.36",
				"picture": "https://via.placeholder.com/300x400",
				"is_active": true
			}`,
			AfterTestFunc: func(t testing.TB, app *TestApp, res *http.Response) {
				statuses := movieSeatStatuses(t, app.DB, 1)
				require.Len(t, statuses, DefaultSeatCount)
				require.Contains(t, statuses, "A1")
				require.Contains(t, statuses, "G12")
				require.Empty(t, bookedSeats(statuses))
			},
		},
	}

	for _, scenario := range scenarios {
		scenario.Run(s.T(), s.app)
	}
}

func (s *CatalogTestSuite) TestGenerateSeatsIsIdempotent() {
	t := s.T()

	admin := adminSession(t, s.app)
	movieId := createMovie(t, s.app, admin, TestMovieTitle)
	url := fmt.Sprintf("/movies/%d/seats/generate", movieId)

	rec := doRequest(t, s.app, http.MethodPost, url, "", admin)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.JSONEq(t, `{"count": 0}`, rec.Body.String())

	rec = doRequest(t, s.app, http.MethodPost, url, `{"rows": [{"from": "h", "to": "H", "seats_per_row": 5}]}`, admin)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.JSONEq(t, `{"count": 5}`, rec.Body.String())

	require.Len(t, movieSeatStatuses(t, s.app.DB, movieId), DefaultSeatCount+5)

	rec = doRequest(t, s.app, http.MethodPost, fmt.Sprintf("/movies/%d/seats/generate", movieId+100), "", admin)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func (s *CatalogTestSuite) TestSeatStatusAdministration() {
	t := s.T()

	admin := adminSession(t, s.app)
	movieId := createMovie(t, s.app, admin, TestMovieTitle)

	rec := doRequest(t, s.app, http.MethodPatch, fmt.Sprintf("/movies/%d/seats", movieId),
		`{"seats": "A1, A2, B7", "status": "booked"}`, admin)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.JSONEq(t, `{"count": 3}`, rec.Body.String())

	rec = doRequest(t, s.app, http.MethodGet, fmt.Sprintf("/movies/%d/seats", movieId), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var seatMap api.SeatMapResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&seatMap))
	require.Equal(t, "movie", seatMap.Owner)
	require.Equal(t, 3, seatMap.Booked)
	require.Equal(t, DefaultSeatCount-3, seatMap.Available)

	rec = doRequest(t, s.app, http.MethodPost, fmt.Sprintf("/movies/%d/seats/reset", movieId), "", admin)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	require.Empty(t, bookedSeats(movieSeatStatuses(t, s.app.DB, movieId)))
}

func (s *CatalogTestSuite) TestScreensAndShows() {
	t := s.T()

	admin := adminSession(t, s.app)
	movieId := createMovie(t, s.app, admin, TestMovieTitle)
	screenId := createScreen(t, s.app, admin, TestScreenName, 3, 4)

	rec := doRequest(t, s.app, http.MethodPost, "/screens", fmt.Sprintf(`{"name": %q, "rows": 5, "cols": 5}`, TestScreenName), admin)
	require.Equal(t, http.StatusConflict, rec.Code)

	showId := createShow(t, s.app, admin, movieId, screenId)

	// The show gets its own 3x4 grid copied from the screen.
	statuses := showSeatStatuses(t, s.app.DB, showId)
	require.Len(t, statuses, 12)
	for _, number := range []string{"A1", "A4", "B2", "C4"} {
		require.Equal(t, "available", statuses[number])
	}
	require.NotContains(t, statuses, "D1")
	require.NotContains(t, statuses, "A5")

	body := fmt.Sprintf(`{"screen_id": %d, "show_date": %q, "show_time": %q}`, screenId, TestMovieShowDate, TestMovieShowTime)
	rec = doRequest(t, s.app, http.MethodPost, fmt.Sprintf("/movies/%d/shows", movieId), body, admin)
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = doRequest(t, s.app, http.MethodDelete, fmt.Sprintf("/screens/%d", screenId), "", admin)
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = doRequest(t, s.app, http.MethodPost, fmt.Sprintf("/shows/%d/seats/generate", showId), "", admin)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"count": 0}`, rec.Body.String())

	rec = doRequest(t, s.app, http.MethodGet, fmt.Sprintf("/movies/%d/shows", movieId), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var shows api.ShowListResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&shows))
	require.Len(t, shows.Shows, 1)
	require.Equal(t, TestScreenName, shows.Shows[0].ScreenName)
}

func (s *CatalogTestSuite) TestDeactivateMovie() {
	t := s.T()

	admin := adminSession(t, s.app)
	movieId := createMovie(t, s.app, admin, TestMovieTitle)
	createMovie(t, s.app, admin, "Dune")

	rec := doRequest(t, s.app, http.MethodDelete, fmt.Sprintf("/movies/%d", movieId), "", admin)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(t, s.app, http.MethodGet, "/movies", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var movies api.MovieListResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&movies))
	require.Len(t, movies.Movies, 1)
	require.Equal(t, "Dune", movies.Movies[0].Title)

	rec = doRequest(t, s.app, http.MethodGet, "/movies?include_inactive=true", "")
	require.Equal(t, http.StatusOK, rec.Code)

	require.NoError(t, json.NewDecoder(rec.Body).Decode(&movies))
	require.Len(t, movies.Movies, 2)
}
