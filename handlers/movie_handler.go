package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/casting-agency/api/models"
	"github.com/casting-agency/api/repositories"
	"github.com/casting-agency/api/utils"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// MovieRequest represents a request to create or replace a movie
type MovieRequest struct {
	Title   string `json:"title" validate:"required"`
	Release string `json:"release" validate:"required"`
}

// MovieHandler handles movie-related HTTP requests
type MovieHandler struct {
	movies repositories.MovieRepository
	logger *zap.Logger
}

// NewMovieHandler creates a new MovieHandler
func NewMovieHandler(movies repositories.MovieRepository, logger *zap.Logger) *MovieHandler {
	return &MovieHandler{
		movies: movies,
		logger: logger,
	}
}

// HandleList handles GET /movies
func (h *MovieHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := chimw.GetReqID(ctx)

	movies, err := h.movies.List(ctx)
	if err != nil {
		h.logger.Error("failed to list movies",
			zap.String("request_id", requestID),
			zap.Error(err))
		_ = utils.WriteInternalServerError(w, "failed to retrieve movies")
		return
	}

	if len(movies) == 0 {
		_ = utils.WriteNotFound(w, "resource not found")
		return
	}

	_ = utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"movies":  movies,
	})
}

// HandleCreate handles POST /movies
func (h *MovieHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := chimw.GetReqID(ctx)

	var req MovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = utils.WriteBadRequest(w, "invalid request body")
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		_ = utils.WriteBadRequest(w, err.Error())
		return
	}

	movie := models.NewMovie(req.Title, req.Release)
	if err := h.movies.Create(ctx, movie); err != nil {
		h.logger.Error("failed to create movie",
			zap.String("request_id", requestID),
			zap.Error(err))
		_ = utils.WriteInternalServerError(w, "failed to create movie")
		return
	}

	h.logger.Info("movie created",
		zap.String("request_id", requestID),
		zap.Int64("id", movie.ID))

	_ = utils.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"movie":   movie,
	})
}

// HandleUpdate handles PATCH /movies/{id}
func (h *MovieHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := chimw.GetReqID(ctx)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		_ = utils.WriteBadRequest(w, "invalid movie id")
		return
	}

	var req MovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = utils.WriteBadRequest(w, "invalid request body")
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		_ = utils.WriteBadRequest(w, err.Error())
		return
	}

	movie, err := h.movies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			_ = utils.WriteNotFound(w, "resource not found")
			return
		}
		h.logger.Error("failed to load movie",
			zap.String("request_id", requestID),
			zap.Int64("id", id),
			zap.Error(err))
		_ = utils.WriteInternalServerError(w, "failed to update movie")
		return
	}

	movie.Title = req.Title
	movie.Release = req.Release

	if err := h.movies.Update(ctx, movie); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			_ = utils.WriteNotFound(w, "resource not found")
			return
		}
		h.logger.Error("failed to update movie",
			zap.String("request_id", requestID),
			zap.Int64("id", id),
			zap.Error(err))
		_ = utils.WriteInternalServerError(w, "failed to update movie")
		return
	}

	_ = utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"movie":   movie,
	})
}

// HandleDelete handles DELETE /movies/{id}
func (h *MovieHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := chimw.GetReqID(ctx)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		_ = utils.WriteBadRequest(w, "invalid movie id")
		return
	}

	if err := h.movies.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			_ = utils.WriteNotFound(w, "resource not found")
			return
		}
		h.logger.Error("failed to delete movie",
			zap.String("request_id", requestID),
			zap.Int64("id", id),
			zap.Error(err))
		_ = utils.WriteInternalServerError(w, "failed to delete movie")
		return
	}

	h.logger.Info("movie deleted",
		zap.String("request_id", requestID),
		zap.Int64("id", id))

	_ = utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"id":      id,
	})
}
