package main

import (
	"net/http"
)

func (app *application) healthcheckHandler(w http.ResponseWriter, r *http.Request) {
	evlp := envelope{
		"status": "healthy",
		"server": app.host.Name,
	}
	err := app.writeJSON(w, http.StatusOK, nil, evlp)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
