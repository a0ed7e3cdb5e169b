package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hri-companion/internal/ai"
	"hri-companion/internal/app"
	"hri-companion/internal/store"
	"hri-companion/internal/transport/http/response"
)

type SessionHandler struct {
	sessionService *app.SessionService
}

type CreateSessionRequest struct {
	ChildID     string `json:"child_id" binding:"required,max=64"`
	Mood        string `json:"mood" binding:"max=16"`
	Environment string `json:"environment" binding:"max=64"`
	Context     string `json:"context" binding:"required,max=4000"`
}

func NewSessionHandler(sessionService *app.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

func (h *SessionHandler) Create(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	session, err := h.sessionService.Create(c.Request.Context(), app.CreateSessionInput{
		UserID:      userID,
		ChildID:     req.ChildID,
		Mood:        req.Mood,
		Environment: req.Environment,
		Context:     req.Context,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrChildNotFound):
			response.Error(c, http.StatusNotFound, response.CodeChildNotFound, err.Error())
		case errors.Is(err, app.ErrForbidden):
			response.Error(c, http.StatusForbidden, response.CodeForbidden, err.Error())
		case errors.Is(err, ai.ErrGenerationFailed):
			response.Error(c, http.StatusBadGateway, response.CodeGenerationFailed, "prompt generation failed")
		case errors.Is(err, store.ErrDuplicateKey):
			response.Error(c, http.StatusConflict, response.CodeDuplicateRecord, "record id already exists")
		case errors.Is(err, store.ErrUnavailable):
			response.Error(c, http.StatusServiceUnavailable, response.CodeStoreUnavailable, "record store unavailable")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "create session failed")
		}
		return
	}

	response.OK(c, session)
}

func (h *SessionHandler) Get(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	session, err := h.sessionService.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrSessionNotFound):
			response.Error(c, http.StatusNotFound, response.CodeSessionNotFound, err.Error())
		case errors.Is(err, app.ErrForbidden):
			response.Error(c, http.StatusForbidden, response.CodeForbidden, err.Error())
		case errors.Is(err, store.ErrUnavailable):
			response.Error(c, http.StatusServiceUnavailable, response.CodeStoreUnavailable, "record store unavailable")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "get session failed")
		}
		return
	}

	response.OK(c, session)
}
