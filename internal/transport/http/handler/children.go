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

type ChildHandler struct {
	childService   *app.ChildService
	sessionService *app.SessionService
}

type CreateChildRequest struct {
	Nickname    string `json:"nickname" binding:"required,max=128"`
	Age         *int   `json:"age" binding:"required"`
	CommLevel   string `json:"comm_level" binding:"max=16"`
	Personality string `json:"personality" binding:"max=16"`
	Notes       string `json:"notes" binding:"required,max=4000"`
	Preferences string `json:"preferences" binding:"max=4000"`
}

func NewChildHandler(childService *app.ChildService, sessionService *app.SessionService) *ChildHandler {
	return &ChildHandler{childService: childService, sessionService: sessionService}
}

func (h *ChildHandler) Create(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	var req CreateChildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	child, err := h.childService.Create(c.Request.Context(), app.CreateChildInput{
		OwnerUserID: userID,
		Nickname:    req.Nickname,
		Age:         *req.Age,
		CommLevel:   req.CommLevel,
		Personality: req.Personality,
		Notes:       req.Notes,
		Preferences: req.Preferences,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, ai.ErrGenerationFailed):
			response.Error(c, http.StatusBadGateway, response.CodeGenerationFailed, "keyword generation failed")
		case errors.Is(err, store.ErrDuplicateKey):
			response.Error(c, http.StatusConflict, response.CodeDuplicateRecord, "record id already exists")
		case errors.Is(err, store.ErrUnavailable):
			response.Error(c, http.StatusServiceUnavailable, response.CodeStoreUnavailable, "record store unavailable")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "create child failed")
		}
		return
	}

	response.OK(c, child)
}

func (h *ChildHandler) List(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	children, err := h.childService.List(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, store.ErrUnavailable):
			response.Error(c, http.StatusServiceUnavailable, response.CodeStoreUnavailable, "record store unavailable")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list children failed")
		}
		return
	}

	response.OK(c, children)
}

func (h *ChildHandler) Get(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	child, err := h.childService.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondChildLookupError(c, err, "get child failed")
		return
	}

	response.OK(c, child)
}

// LatestSession responds 200 with a null session when the child exists but
// has no sessions yet.
func (h *ChildHandler) LatestSession(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	session, err := h.sessionService.Latest(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondChildLookupError(c, err, "get latest session failed")
		return
	}

	response.OK(c, gin.H{"session": session})
}

func respondChildLookupError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, app.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
	case errors.Is(err, app.ErrChildNotFound):
		response.Error(c, http.StatusNotFound, response.CodeChildNotFound, err.Error())
	case errors.Is(err, app.ErrForbidden):
		response.Error(c, http.StatusForbidden, response.CodeForbidden, err.Error())
	case errors.Is(err, store.ErrUnavailable):
		response.Error(c, http.StatusServiceUnavailable, response.CodeStoreUnavailable, "record store unavailable")
	default:
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, fallback)
	}
}
