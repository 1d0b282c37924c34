package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const sessionCookieName = "session_id"

var keysToIgnore = map[string]struct{}{
	"timestamp":    {},
	"request_id":   {},
	"created_at":   {},
	"updated_at":   {},
	"booking_time": {},
	"last_active":  {},
}

func prepareRequest(
	method, path string,
	body io.Reader,
	headers map[string]string,
	cookies []http.Cookie) (*http.Request, error) {

	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	for i := range cookies {
		req.AddCookie(&cookies[i])
	}

	return req, nil
}

func compareResponse(t *testing.T, body io.Reader, expectedResponse string) {
	var actual any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))
	cleanValue(actual)

	var expected any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	if diff := cmp.Diff(expected, actual); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

// cleanValue drops fields whose values depend on when the test ran.
func cleanValue(v any) {
	switch v := v.(type) {
	case map[string]any:
		for k := range v {
			if _, ok := keysToIgnore[k]; ok {
				delete(v, k)
				continue
			}
			cleanValue(v[k])
		}
	case []any:
		for _, item := range v {
			cleanValue(item)
		}
	}
}

func truncateAll(t testing.TB, db *pgxpool.Pool) {
	_, err := db.Exec(context.Background(), `
		TRUNCATE notifications, bookings, show_seats, seats, shows, screens, movies, tokens, users
		RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
}

func insertUser(t testing.TB, db *pgxpool.Pool, name, email, password, role string, blocked bool) int {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	var id int
	err = db.QueryRow(context.Background(), `
		INSERT INTO users (username, name, email, password_hash, role, is_blocked)
		VALUES ($1, $2, $1, $3, $4, $5)
		ON CONFLICT (username) DO UPDATE
		SET password_hash = EXCLUDED.password_hash, role = EXCLUDED.role, is_blocked = EXCLUDED.is_blocked
		RETURNING id`,
		email, name, hash, role, blocked).Scan(&id)
	require.NoError(t, err)

	return id
}

// login signs in through the HTTP API and returns the session cookie.
func login(t testing.TB, app *TestApp, path, email, password string) http.Cookie {
	body := fmt.Sprintf(`{"email": %q, "password": %q}`, email, password)

	rec := doRequest(t, app, http.MethodPost, path, body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookieName {
			return *c
		}
	}

	t.Fatalf("login response carried no %s cookie", sessionCookieName)
	return http.Cookie{}
}

func adminSession(t testing.TB, app *TestApp) http.Cookie {
	insertUser(t, app.DB, "Admin", TestAdminEmail, TestAdminPassword, "admin", false)
	return login(t, app, "/auth/admin/login", TestAdminEmail, TestAdminPassword)
}

func doRequest(t testing.TB, app *TestApp, method, path, body string, cookies ...http.Cookie) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req, err := prepareRequest(method, path, reader, nil, cookies)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	app.App.Routes().ServeHTTP(rec, req)

	return rec
}

func decodeID(t testing.TB, rec *httptest.ResponseRecorder, key string) int {
	var resp map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	id, ok := resp[key].(float64)
	require.True(t, ok, "response has no numeric %q: %v", key, resp)

	return int(id)
}

func createMovie(t testing.TB, app *TestApp, admin http.Cookie, title string) int {
	body := fmt.Sprintf(`{"title": %q, "show_date": %q, "show_time": %q}`, title, TestMovieShowDate, TestMovieShowTime)

	rec := doRequest(t, app, http.MethodPost, "/movies", body, admin)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	return decodeID(t, rec, "id")
}

func createScreen(t testing.TB, app *TestApp, admin http.Cookie, name string, rows, cols int) int {
	body := fmt.Sprintf(`{"name": %q, "rows": %d, "cols": %d}`, name, rows, cols)

	rec := doRequest(t, app, http.MethodPost, "/screens", body, admin)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	return decodeID(t, rec, "id")
}

func createShow(t testing.TB, app *TestApp, admin http.Cookie, movieId, screenId int) int {
	body := fmt.Sprintf(`{"screen_id": %d, "show_date": %q, "show_time": %q}`, screenId, TestMovieShowDate, TestMovieShowTime)

	rec := doRequest(t, app, http.MethodPost, fmt.Sprintf("/movies/%d/shows", movieId), body, admin)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	return decodeID(t, rec, "id")
}

func seatStatuses(t testing.TB, db *pgxpool.Pool, table, column string, ownerId int) map[string]string {
	rows, err := db.Query(context.Background(),
		fmt.Sprintf("SELECT seat_number, status FROM %s WHERE %s = $1", table, column), ownerId)
	require.NoError(t, err)
	defer rows.Close()

	statuses := make(map[string]string)
	for rows.Next() {
		var number, status string
		require.NoError(t, rows.Scan(&number, &status))
		statuses[number] = status
	}
	require.NoError(t, rows.Err())

	return statuses
}

func movieSeatStatuses(t testing.TB, db *pgxpool.Pool, movieId int) map[string]string {
	return seatStatuses(t, db, "seats", "movie_id", movieId)
}

func showSeatStatuses(t testing.TB, db *pgxpool.Pool, showId int) map[string]string {
	return seatStatuses(t, db, "show_seats", "show_id", showId)
}

func countRows(t testing.TB, db *pgxpool.Pool, query string, args ...any) int {
	var n int
	require.NoError(t, db.QueryRow(context.Background(), query, args...).Scan(&n))
	return n
}

func bookedSeats(statuses map[string]string) []string {
	var booked []string
	for number, status := range statuses {
		if status == "booked" {
			booked = append(booked, number)
		}
	}
	return booked
}
