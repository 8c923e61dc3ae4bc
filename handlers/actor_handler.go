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

// ActorRequest represents a request to create or replace an actor
type ActorRequest struct {
	Name   string `json:"name" validate:"required"`
	Age    int    `json:"age" validate:"required,gt=0"`
	Gender string `json:"gender" validate:"required"`
}

// ActorHandler handles actor-related HTTP requests
type ActorHandler struct {
	actors repositories.ActorRepository
	logger *zap.Logger
}

// NewActorHandler creates a new ActorHandler
func NewActorHandler(actors repositories.ActorRepository, logger *zap.Logger) *ActorHandler {
	return &ActorHandler{
		actors: actors,
		logger: logger,
	}
}

// HandleList handles GET /actors
func (h *ActorHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := chimw.GetReqID(ctx)

	actors, err := h.actors.List(ctx)
	if err != nil {
		h.logger.Error("failed to list actors",
			zap.String("request_id", requestID),
			zap.Error(err))
		_ = utils.WriteInternalServerError(w, "failed to retrieve actors")
		return
	}

	if len(actors) == 0 {
		_ = utils.WriteNotFound(w, "resource not found")
		return
	}

	_ = utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"actors":  actors,
	})
}

// HandleCreate handles POST /actors
func (h *ActorHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := chimw.GetReqID(ctx)

	var req ActorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = utils.WriteBadRequest(w, "invalid request body")
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		_ = utils.WriteBadRequest(w, err.Error())
		return
	}

	actor := models.NewActor(req.Name, req.Age, req.Gender)
	if err := h.actors.Create(ctx, actor); err != nil {
		h.logger.Error("failed to create actor",
			zap.String("request_id", requestID),
			zap.Error(err))
		_ = utils.WriteInternalServerError(w, "failed to create actor")
		return
	}

	h.logger.Info("actor created",
		zap.String("request_id", requestID),
		zap.Int64("id", actor.ID))

	_ = utils.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"actor":   actor,
	})
}

// HandleUpdate handles PATCH /actors/{id}
func (h *ActorHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := chimw.GetReqID(ctx)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		_ = utils.WriteBadRequest(w, "invalid actor id")
		return
	}

	var req ActorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = utils.WriteBadRequest(w, "invalid request body")
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		_ = utils.WriteBadRequest(w, err.Error())
		return
	}

	actor, err := h.actors.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			_ = utils.WriteNotFound(w, "resource not found")
			return
		}
		h.logger.Error("failed to load actor",
			zap.String("request_id", requestID),
			zap.Int64("id", id),
			zap.Error(err))
		_ = utils.WriteInternalServerError(w, "failed to update actor")
		return
	}

	actor.Name = req.Name
	actor.Age = req.Age
	actor.Gender = req.Gender

	if err := h.actors.Update(ctx, actor); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			_ = utils.WriteNotFound(w, "resource not found")
			return
		}
		h.logger.Error("failed to update actor",
			zap.String("request_id", requestID),
			zap.Int64("id", id),
			zap.Error(err))
		_ = utils.WriteInternalServerError(w, "failed to update actor")
		return
	}

	_ = utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"actor":   actor,
	})
}

// HandleDelete handles DELETE /actors/{id}
func (h *ActorHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := chimw.GetReqID(ctx)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		_ = utils.WriteBadRequest(w, "invalid actor id")
		return
	}

	if err := h.actors.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			_ = utils.WriteNotFound(w, "resource not found")
			return
		}
		h.logger.Error("failed to delete actor",
			zap.String("request_id", requestID),
			zap.Int64("id", id),
			zap.Error(err))
		_ = utils.WriteInternalServerError(w, "failed to delete actor")
		return
	}

	h.logger.Info("actor deleted",
		zap.String("request_id", requestID),
		zap.Int64("id", id))

	_ = utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"id":      id,
	})
}
