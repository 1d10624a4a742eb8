package handlers

import "net/http"

type Handler interface {
	//* status api
	ListStatusIDs(w http.ResponseWriter, r *http.Request)
	GetServiceStatus(w http.ResponseWriter, r *http.Request)
	Version(w http.ResponseWriter, r *http.Request)
	Healthz(w http.ResponseWriter, r *http.Request)
	Readyz(w http.ResponseWriter, r *http.Request)
	//* services registry
	GetServices(w http.ResponseWriter, r *http.Request)
	PostService(w http.ResponseWriter, r *http.Request)
	PatchService(w http.ResponseWriter, r *http.Request)
	DeleteService(w http.ResponseWriter, r *http.Request)
	//* dashboard
	Dashboard(w http.ResponseWriter, r *http.Request)
	GetBoard(w http.ResponseWriter, r *http.Request)
	BoardSSE(w http.ResponseWriter, r *http.Request)
}
