package app

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/metinatakli/movie-booking-system/api"
	"github.com/stretchr/testify/require"
)

func withOpenAPIRouter(t *testing.T) func(*Application) {
	return func(a *Application) {
		doc, err := api.GetSwagger()
		require.NoError(t, err)
		doc.Servers = nil

		router, err := gorillamux.NewRouter(doc)
		require.NoError(t, err)

		a.openapi = doc
		a.openapiRouter = router
	}
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name           string
		setupSession   bool
		role           string
		wantStatus     int
		wantErrMessage string
	}{
		{
			name:           "anonymous request",
			wantStatus:     http.StatusUnauthorized,
			wantErrMessage: ErrUnauthorized,
		},
		{
			name:           "regular user",
			setupSession:   true,
			role:           "user",
			wantStatus:     http.StatusForbidden,
			wantErrMessage: ErrAdminRequired,
		},
		{
			name:         "admin",
			setupSession: true,
			role:         "admin",
			wantStatus:   http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApplication()

			w, r := executeRequest(t, http.MethodGet, "/stats", nil)

			if tt.setupSession {
				r = setupTestSessionWithRole(t, app, r, 1, tt.role)
			}

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, 1, app.contextGetUserId(r))
				w.WriteHeader(http.StatusNoContent)
			})

			handler := app.sessionManager.LoadAndSave(app.requireAdmin(next))
			handler.ServeHTTP(w, r)

			require.Equal(t, tt.wantStatus, w.Code)

			checkErrorResponse(t, w, struct {
				wantStatus     int
				wantErrMessage string
			}{
				wantStatus:     tt.wantStatus,
				wantErrMessage: tt.wantErrMessage,
			})
		})
	}
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		url            string
		body           any
		wantStatus     int
		wantErrMessage string
		wantField      string
	}{
		{
			name:       "valid booking passes through",
			method:     http.MethodPost,
			url:        "/bookings",
			body:       `{"username": "alice", "movie_id": 1, "seats": "A1,A2", "total_price": "762.72"}`,
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "missing required property",
			method:     http.MethodPost,
			url:        "/bookings",
			body:       `{"username": "alice", "seats": "A1"}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantField:  "body",
		},
		{
			name:       "missing total price",
			method:     http.MethodPost,
			url:        "/bookings",
			body:       `{"username": "alice", "movie_id": 1, "seats": "A1"}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantField:  "body",
		},
		{
			name:       "wrong property type",
			method:     http.MethodPost,
			url:        "/bookings",
			body:       `{"username": "alice", "movie_id": "one", "seats": "A1"}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantField:  "body",
		},
		{
			name:           "badly formed JSON",
			method:         http.MethodPost,
			url:            "/bookings",
			body:           `{"username": `,
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: "body contains badly-formed JSON",
		},
		{
			name:       "non numeric path parameter",
			method:     http.MethodGet,
			url:        "/movies/abc",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "undocumented route is left to the router",
			method:     http.MethodGet,
			url:        "/not-documented",
			wantStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApplication(withOpenAPIRouter(t))

			w, r := executeRequest(t, tt.method, tt.url, tt.body)

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			})

			app.validateRequest(next).ServeHTTP(w, r)

			require.Equal(t, tt.wantStatus, w.Code)

			if tt.wantField != "" {
				var resp api.ValidationErrorResponse
				require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
				require.Equal(t, ErrFailedValidation, resp.Message)
				require.NotEmpty(t, resp.ValidationErrors)
				require.Equal(t, tt.wantField, resp.ValidationErrors[0].Field)
				return
			}

			checkErrorResponse(t, w, struct {
				wantStatus     int
				wantErrMessage string
			}{
				wantStatus:     tt.wantStatus,
				wantErrMessage: tt.wantErrMessage,
			})
		})
	}
}

func TestRecoverPanic(t *testing.T) {
	app := newTestApplication()

	w, r := executeRequest(t, http.MethodGet, "/movies", nil)

	handler := app.recoverPanic(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	handler.ServeHTTP(w, r)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, "close", w.Header().Get("Connection"))

	checkErrorResponse(t, w, struct {
		wantStatus     int
		wantErrMessage string
	}{
		wantStatus:     http.StatusInternalServerError,
		wantErrMessage: ErrInternalServer,
	})
}
