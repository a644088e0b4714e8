package main

import (
	"net/http"

	"lbdemo/load-balancer-app/internal/data"
)

func (app *application) homeHandler(w http.ResponseWriter, r *http.Request) {
	evlp := envelope{
		"status":  "running",
		"app":     data.DisplayName,
		"server":  app.host.Name,
		"message": "Welcome to the Load Balancer Application",
	}
	err := app.writeJSON(w, http.StatusOK, nil, evlp)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
