package app

import (
	"net/http"

	"github.com/metinatakli/movie-booking-system/api"
	"github.com/metinatakli/movie-booking-system/internal/domain"
)

func (app *Application) ListScreens(w http.ResponseWriter, r *http.Request) {
	screens, err := app.screenRepo.GetAll(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.ScreenListResponse{
		Screens: make([]api.ScreenResponse, len(screens)),
	}

	for i := range screens {
		resp.Screens[i] = toScreenResponse(&screens[i])
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateScreen(w http.ResponseWriter, r *http.Request) {
	var input api.ScreenRequest

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

	screen := &domain.Screen{
		Name: input.Name,
		Rows: input.Rows,
		Cols: input.Cols,
	}

	err = app.screenRepo.Create(r.Context(), screen)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, toScreenResponse(screen), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// UpdateScreen changes the grid of future shows only; existing show seats
// stay as generated.
func (app *Application) UpdateScreen(w http.ResponseWriter, r *http.Request) {
	screenId, err := app.readIDParam(r, "screenId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input api.ScreenRequest

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

	screen := &domain.Screen{
		ID:   screenId,
		Name: input.Name,
		Rows: input.Rows,
		Cols: input.Cols,
	}

	err = app.screenRepo.Update(r.Context(), screen)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toScreenResponse(screen), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteScreen(w http.ResponseWriter, r *http.Request) {
	screenId, err := app.readIDParam(r, "screenId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.screenRepo.Delete(r.Context(), screenId)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toScreenResponse(screen *domain.Screen) api.ScreenResponse {
	return api.ScreenResponse{
		Id:        screen.ID,
		Name:      screen.Name,
		Rows:      screen.Rows,
		Cols:      screen.Cols,
		CreatedAt: screen.CreatedAt,
	}
}
