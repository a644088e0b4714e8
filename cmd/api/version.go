package main

import (
	"net/http"

	"lbdemo/load-balancer-app/internal/data"
)

func (app *application) versionHandler(w http.ResponseWriter, r *http.Request) {
	evlp := envelope{
		"api_version": data.APIVersion,
		"app_name":    data.AppName,
		"server":      app.host.Name,
	}
	err := app.writeJSON(w, http.StatusOK, nil, evlp)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
