package main

import (
	"net/http"
)

func (app *application) infoHandler(w http.ResponseWriter, r *http.Request) {
	evlp := envelope{
		"hostname": app.host.Name,
		"pid":      app.host.PID(),
		"status":   "operational",
	}
	err := app.writeJSON(w, http.StatusOK, nil, evlp)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
