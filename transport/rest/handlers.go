package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/rockpaperscissors-backend/internal/apperror"
	"github.com/rocketscienceinc/rockpaperscissors-backend/internal/entity"
)

type Handlers interface {
	PingHandler(w http.ResponseWriter, _ *http.Request)
	ChoicesHandler(w http.ResponseWriter, _ *http.Request)
	ViewHandler(w http.ResponseWriter, r *http.Request)
}

type viewRepo interface {
	GetByID(ctx context.Context, sessionID string) (*entity.Game, error)
}

type handlers struct {
	logger   *slog.Logger
	catalog  *entity.Catalog
	viewRepo viewRepo
}

func NewHandlers(logger *slog.Logger, catalog *entity.Catalog, viewRepo viewRepo) Handlers {
	return &handlers{
		logger:   logger.With("component", "rest"),
		catalog:  catalog,
		viewRepo: viewRepo,
	}
}

func (that *handlers) ChoicesHandler(w http.ResponseWriter, _ *http.Request) {
	that.writeJSON(w, http.StatusOK, that.catalog)
}

// ViewHandler returns the last view rendered for a WebSocket session.
func (that *handlers) ViewHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "ViewHandler")

	sessionID := r.PathValue("id")

	view, err := that.viewRepo.GetByID(r.Context(), sessionID)
	if errors.Is(err, apperror.ErrViewNotFound) {
		that.writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}

	if err != nil {
		log.Error("failed to get view", "sessionID", sessionID, "error", err)
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to get view"})
		return
	}

	that.writeJSON(w, http.StatusOK, view)
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
