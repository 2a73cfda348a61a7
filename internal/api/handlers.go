package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/harrylevesque/hellonames/internal/files"
	"github.com/harrylevesque/hellonames/internal/models"
	"github.com/harrylevesque/hellonames/internal/utils"
)

const maxBodyBytes = 4 << 10

var validate = validator.New()

// Handlers serves the names endpoints from a Store.
type Handlers struct {
	store  files.Store
	logger *slog.Logger
}

func NewHandlers(store files.Store, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = utils.NopLogger()
	}
	return &Handlers{store: store, logger: logger}
}

// RootHandler greets API visitors.
func RootHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Welcome to Hello Names API"})
}

// ListNamesHandler returns every stored name in insertion order.
func (h *Handlers) ListNamesHandler(w http.ResponseWriter, r *http.Request) {
	names, err := h.store.Names(r.Context())
	if err != nil {
		h.logger.Error("list names", "error", err, "request_id", RequestID(r.Context()))
		writeJSON(w, http.StatusInternalServerError, models.NamesResponse{
			Success: false,
			Names:   []string{},
			Message: "failed to read names",
		})
		return
	}
	writeJSON(w, http.StatusOK, models.NamesResponse{Success: true, Names: names})
}

// AddNameHandler trims, validates and stores a submitted name.
func (h *Handlers) AddNameHandler(w http.ResponseWriter, r *http.Request) {
	req, err := decodeAddName(w, r)
	if err != nil {
		writeJSON(w, utils.StatusCode(err), models.AddNameResponse{Success: false, Message: utils.Message(err)})
		return
	}

	entry, err := h.store.Append(r.Context(), req.Name)
	if err != nil {
		h.logger.Error("store name", "error", err, "request_id", RequestID(r.Context()))
		writeJSON(w, http.StatusInternalServerError, models.AddNameResponse{Success: false, Message: "failed to store name"})
		return
	}
	namesSubmitted.Inc()
	h.logger.Info("name stored", "id", entry.ID, "request_id", RequestID(r.Context()))
	writeJSON(w, http.StatusOK, models.AddNameResponse{Success: true, Message: "Name stored successfully"})
}

func decodeAddName(w http.ResponseWriter, r *http.Request) (models.AddNameRequest, error) {
	var req models.AddNameRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return req, utils.New(http.StatusRequestEntityTooLarge, "request body too large")
		}
		if errors.Is(err, io.EOF) {
			return req, utils.New(http.StatusBadRequest, "request body required")
		}
		return req, utils.New(http.StatusBadRequest, "invalid request body")
	}

	req.Name = strings.TrimSpace(req.Name)
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Tag() == "max" {
			return req, utils.New(http.StatusBadRequest, fmt.Sprintf("Name must be at most %d characters", models.MaxNameLength))
		}
		return req, utils.New(http.StatusBadRequest, "Name must be a non-empty string")
	}
	return req, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
