package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"membership-backend/internal/domains/utilisateur/model"
	"membership-backend/internal/domains/utilisateur/service"
	"membership-backend/internal/shared/middleware"
	"membership-backend/internal/shared/response"
)

type UtilisateurHandler struct {
	utilisateurService service.ServiceInterface
}

func NewUtilisateurHandler(utilisateurService service.ServiceInterface) *UtilisateurHandler {
	return &UtilisateurHandler{
		utilisateurService: utilisateurService,
	}
}

func respondDomainError(c *gin.Context, err error) {
	response.ErrorResponse(c, model.ToHTTPStatus(err), model.ToErrorCode(err), err.Error())
}

// Register creates an API account
// POST /api/v1/auth/register
func (h *UtilisateurHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid registration payload", err)
		return
	}

	dto, err := h.utilisateurService.Register(c.Request.Context(), req)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, dto)
}

// Login authenticates and returns an access token
// POST /api/v1/auth/login
func (h *UtilisateurHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.utilisateurService.Login(c.Request.Context(), req)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// GetProfile returns the authenticated account
// GET /api/v1/auth/me
func (h *UtilisateurHandler) GetProfile(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "missing authentication")
		return
	}

	dto, err := h.utilisateurService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, dto)
}

// ChangeRole grants a different role to an account
// PUT /api/v1/admin/utilisateurs/:id/role
func (h *UtilisateurHandler) ChangeRole(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_ID", "invalid utilisateur id")
		return
	}

	var req model.ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid payload", err)
		return
	}

	if err := h.utilisateurService.ChangeRole(c.Request.Context(), id, req.Role); err != nil {
		respondDomainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "role updated"})
}
