// Package web serves the names form as a plain HTML page.
//
// Every page load gets its own view.Controller, so form state lives exactly
// as long as one request.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/harrylevesque/hellonames/internal/utils"
	"github.com/harrylevesque/hellonames/internal/view"
)

//go:embed templates/index.html
var templateFS embed.FS

var indexTmpl = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// Server renders the form against a list-storage API.
type Server struct {
	api    view.NamesAPI
	logger *slog.Logger
}

func NewServer(api view.NamesAPI, logger *slog.Logger) *Server {
	if logger == nil {
		logger = utils.NopLogger()
	}
	return &Server{api: api, logger: logger}
}

// Router returns the page routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", s.IndexHandler).Methods("GET")
	r.HandleFunc("/", s.SubmitHandler).Methods("POST")
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "OK")
	}).Methods("GET")
	return r
}

// IndexHandler mounts a fresh form and renders it.
func (s *Server) IndexHandler(w http.ResponseWriter, r *http.Request) {
	ctrl := view.NewController(s.api, s.logger)
	ctrl.Mount(r.Context())
	s.render(w, http.StatusOK, ctrl.State())
}

// SubmitHandler loads the page as IndexHandler does, then submits the posted
// name. A stored name redirects back to GET / so a browser refresh does not
// post it again; a rejected one re-renders the form with the error.
func (s *Server) SubmitHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	ctrl := view.NewController(s.api, s.logger)
	ctrl.Mount(r.Context())
	ctrl.SetDraft(r.PostFormValue("name"))
	ctrl.Submit(r.Context())

	st := ctrl.State()
	if st.ErrorMessage == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.render(w, http.StatusUnprocessableEntity, st)
}

func (s *Server) render(w http.ResponseWriter, status int, st view.State) {
	var buf bytes.Buffer
	if err := indexTmpl.Execute(&buf, st); err != nil {
		s.logger.Error("render page", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
