package app

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/metinatakli/movie-booking-system/api"
	"github.com/metinatakli/movie-booking-system/internal/domain"
	"github.com/metinatakli/movie-booking-system/internal/mocks"
	"github.com/oapi-codegen/runtime/types"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type CatalogTestSuite struct {
	suite.Suite
	app         *Application
	showRepo    *mocks.MockShowRepo
	screenRepo  *mocks.MockScreenRepo
	redisClient *mocks.MockRedisClient
}

func (s *CatalogTestSuite) SetupTest() {
	s.showRepo = new(mocks.MockShowRepo)
	s.screenRepo = new(mocks.MockScreenRepo)
	s.redisClient = new(mocks.MockRedisClient)

	s.app = newTestApplication(func(a *Application) {
		a.showRepo = s.showRepo
		a.screenRepo = s.screenRepo
		a.redis = s.redisClient
	})
}

func TestCatalogSuite(t *testing.T) {
	suite.Run(t, new(CatalogTestSuite))
}

func (s *CatalogTestSuite) TestCreateShow() {
	showDate := time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		movieId        string
		input          any
		setupMocks     func()
		wantStatus     int
		wantErrMessage string
		wantResponse   *api.ShowResponse
	}{
		{
			name:           "should fail on invalid movie id",
			movieId:        "-1",
			input:          api.CreateShowRequest{},
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: "invalid movieId parameter",
		},
		{
			name:    "should fail without a screen",
			movieId: "1",
			input: api.CreateShowRequest{
				ShowDate: types.Date{Time: showDate},
				ShowTime: "20:00",
			},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: "is required",
		},
		{
			name:    "should reject a second show in the same slot",
			movieId: "1",
			input: api.CreateShowRequest{
				ScreenId: 2,
				ShowDate: types.Date{Time: showDate},
				ShowTime: "20:00",
			},
			setupMocks: func() {
				s.showRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Show")).Return(domain.ErrDuplicateShow)
			},
			wantStatus:     http.StatusConflict,
			wantErrMessage: domain.ErrDuplicateShow.Error(),
		},
		{
			name:    "should report a missing movie or screen",
			movieId: "1",
			input: api.CreateShowRequest{
				ScreenId: 9,
				ShowDate: types.Date{Time: showDate},
				ShowTime: "20:00",
			},
			setupMocks: func() {
				s.showRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Show")).Return(domain.ErrRecordNotFound)
			},
			wantStatus:     http.StatusNotFound,
			wantErrMessage: ErrNotFound,
		},
		{
			name:    "should schedule the show with the default format",
			movieId: "1",
			input: api.CreateShowRequest{
				ScreenId: 2,
				ShowDate: types.Date{Time: showDate},
				ShowTime: "20:00",
			},
			setupMocks: func() {
				s.showRepo.On("Create", mock.Anything, mock.MatchedBy(func(show *domain.Show) bool {
					return show.MovieID == 1 && show.ScreenID == 2 && show.Format == domain.DefaultFormat
				})).Run(func(args mock.Arguments) {
					show := args.Get(1).(*domain.Show)
					show.ID = 11
					show.ScreenName = "Audi 1"
					show.Rows = 3
					show.Cols = 4
				}).Return(nil)
				s.redisClient.On("Del", mock.Anything, []string{statsCacheKey}).Return(redis.NewIntResult(1, nil))
			},
			wantStatus: http.StatusCreated,
			wantResponse: &api.ShowResponse{
				Id:         11,
				MovieId:    1,
				ScreenId:   2,
				ShowDate:   types.Date{Time: showDate},
				ShowTime:   "20:00",
				Format:     domain.DefaultFormat,
				ScreenName: "Audi 1",
				Rows:       3,
				Cols:       4,
			},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			defer s.showRepo.AssertExpectations(s.T())
			defer s.redisClient.AssertExpectations(s.T())

			if tt.setupMocks != nil {
				tt.setupMocks()
			}

			w, r := executeRequest(s.T(), http.MethodPost, "/movies/"+tt.movieId+"/shows", tt.input)
			r = withURLParams(r, map[string]string{"movieId": tt.movieId})

			s.app.CreateShow(w, r)

			s.Equal(tt.wantStatus, w.Code)

			if tt.wantResponse != nil {
				var response api.ShowResponse
				err := json.NewDecoder(w.Body).Decode(&response)
				s.Require().NoError(err, "Failed to decode response")

				diff := cmp.Diff(tt.wantResponse, &response, cmpopts.IgnoreFields(api.ShowResponse{}, "ClassicPrice", "PrimePrice"))
				s.Empty(diff, "Response mismatch (-want +got):\n%s", diff)
			}

			checkErrorResponse(s.T(), w, struct {
				wantStatus     int
				wantErrMessage string
			}{
				wantStatus:     tt.wantStatus,
				wantErrMessage: tt.wantErrMessage,
			})
		})
	}
}

func (s *CatalogTestSuite) TestDeleteShow() {
	tests := []struct {
		name       string
		showId     string
		setupMocks func()
		wantStatus int
	}{
		{
			name:   "should delete the show",
			showId: "11",
			setupMocks: func() {
				s.showRepo.On("Delete", mock.Anything, 11).Return(nil)
				s.redisClient.On("Del", mock.Anything, []string{statsCacheKey}).Return(redis.NewIntResult(1, nil))
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name:   "should return not found for unknown shows",
			showId: "12",
			setupMocks: func() {
				s.showRepo.On("Delete", mock.Anything, 12).Return(domain.ErrRecordNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			defer s.showRepo.AssertExpectations(s.T())
			defer s.redisClient.AssertExpectations(s.T())

			tt.setupMocks()

			w, r := executeRequest(s.T(), http.MethodDelete, "/shows/"+tt.showId, nil)
			r = withURLParams(r, map[string]string{"showId": tt.showId})

			s.app.DeleteShow(w, r)

			s.Equal(tt.wantStatus, w.Code)
		})
	}
}

func (s *CatalogTestSuite) TestListMovieShows() {
	s.showRepo.On("GetByMovieId", mock.Anything, 5).Return([]domain.Show{
		{ID: 1, MovieID: 5, ScreenID: 1, Time: "10:00", Format: "2D"},
		{ID: 2, MovieID: 5, ScreenID: 1, Time: "13:00", Format: "IMAX"},
	}, nil)
	defer s.showRepo.AssertExpectations(s.T())

	w, r := executeRequest(s.T(), http.MethodGet, "/movies/5/shows", nil)
	r = withURLParams(r, map[string]string{"movieId": "5"})

	s.app.ListMovieShows(w, r)

	s.Equal(http.StatusOK, w.Code)

	var response api.ShowListResponse
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&response))
	s.Len(response.Shows, 2)
	s.Equal("IMAX", response.Shows[1].Format)
}

func (s *CatalogTestSuite) TestCreateScreen() {
	tests := []struct {
		name           string
		input          api.ScreenRequest
		setupMocks     func()
		wantStatus     int
		wantErrMessage string
	}{
		{
			name:           "should reject more than 26 rows",
			input:          api.ScreenRequest{Name: "Audi 9", Rows: 27, Cols: 10},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: "must be at most 26",
		},
		{
			name:           "should reject an empty grid",
			input:          api.ScreenRequest{Name: "Audi 9", Rows: 3, Cols: 0},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: "must be at least 1",
		},
		{
			name:  "should reject a duplicate name",
			input: api.ScreenRequest{Name: "Audi 1", Rows: 3, Cols: 4},
			setupMocks: func() {
				s.screenRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Screen")).Return(domain.ErrDuplicateScreen)
			},
			wantStatus:     http.StatusConflict,
			wantErrMessage: domain.ErrDuplicateScreen.Error(),
		},
		{
			name:  "should create the screen",
			input: api.ScreenRequest{Name: "Audi 2", Rows: 5, Cols: 8},
			setupMocks: func() {
				s.screenRepo.On("Create", mock.Anything, &domain.Screen{Name: "Audi 2", Rows: 5, Cols: 8}).Return(nil)
			},
			wantStatus: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			defer s.screenRepo.AssertExpectations(s.T())

			if tt.setupMocks != nil {
				tt.setupMocks()
			}

			w, r := executeRequest(s.T(), http.MethodPost, "/screens", tt.input)

			s.app.CreateScreen(w, r)

			s.Equal(tt.wantStatus, w.Code)

			checkErrorResponse(s.T(), w, struct {
				wantStatus     int
				wantErrMessage string
			}{
				wantStatus:     tt.wantStatus,
				wantErrMessage: tt.wantErrMessage,
			})
		})
	}
}

func (s *CatalogTestSuite) TestDeleteScreenInUse() {
	s.screenRepo.On("Delete", mock.Anything, 1).Return(domain.ErrScreenInUse)
	defer s.screenRepo.AssertExpectations(s.T())

	w, r := executeRequest(s.T(), http.MethodDelete, "/screens/1", nil)
	r = withURLParams(r, map[string]string{"screenId": "1"})

	s.app.DeleteScreen(w, r)

	s.Equal(http.StatusConflict, w.Code)

	var response api.ErrorResponse
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&response))
	s.Equal(domain.ErrScreenInUse.Error(), response.Message)
}
