package app

import (
	"net/http"
	"strings"

	"github.com/metinatakli/movie-booking-system/api"
)

func (app *Application) ListNotifications(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.URL.Query().Get("username"))

	notifications, err := app.notificationRepo.GetAll(r.Context(), username)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.NotificationListResponse{
		Notifications: make([]api.NotificationResponse, len(notifications)),
	}

	for i, n := range notifications {
		resp.Notifications[i] = api.NotificationResponse{
			Id:        n.ID,
			Username:  n.Username,
			Message:   n.Message,
			CreatedAt: n.CreatedAt,
			Delivered: n.Delivered,
		}
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// CreateNotification targets the listed usernames, or everyone when none are
// given.
func (app *Application) CreateNotification(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input api.CreateNotificationRequest

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

	count := 1

	if len(input.Usernames) == 0 {
		err = app.notificationRepo.Broadcast(r.Context(), input.Message)
	} else {
		count, err = app.notificationRepo.CreateForUsers(r.Context(), input.Message, input.Usernames)
	}
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	logger.Info("notification created", "recipients", len(input.Usernames), "rows", count)

	err = app.writeJSON(w, http.StatusCreated, api.CountResponse{Count: count}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
