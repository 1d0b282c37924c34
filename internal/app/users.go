package app

import (
	"net/http"

	"github.com/metinatakli/movie-booking-system/api"
)

func (app *Application) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := app.userRepo.GetAll(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.UserListResponse{
		Users: make([]api.UserResponse, len(users)),
	}

	for i := range users {
		resp.Users[i] = toUserResponse(&users[i])
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// SyncUsers backfills the directory with usernames that only appear in the
// booking ledger.
func (app *Application) SyncUsers(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	count, err := app.userRepo.SyncFromBookings(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	logger.Info("users synced from bookings", "inserted", count)
	app.invalidateStats(r.Context())

	err = app.writeJSON(w, http.StatusOK, api.CountResponse{Count: count}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) SetUserBlocked(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	userId, err := app.readIDParam(r, "userId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input api.BlockUserRequest

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

	err = app.userRepo.SetBlocked(r.Context(), userId, *input.Blocked)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	logger.Info("user block flag updated", "user_id", userId, "blocked", *input.Blocked)

	w.WriteHeader(http.StatusNoContent)
}
