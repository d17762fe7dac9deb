package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"membership-backend/internal/domains/membre/model"
	"membership-backend/internal/domains/membre/service"
	"membership-backend/internal/shared/response"
)

// maxPhotoBytes caps the accepted photo upload size (5 MiB).
const maxPhotoBytes = 5 << 20

type MembreHandler struct {
	membreService service.ServiceInterface
}

func NewMembreHandler(membreService service.ServiceInterface) *MembreHandler {
	return &MembreHandler{
		membreService: membreService,
	}
}

func respondDomainError(c *gin.Context, err error) {
	response.ErrorResponse(c, model.ToHTTPStatus(err), model.ToErrorCode(err), err.Error())
}

// CreerMembre creates a new member
// POST /api/v1/membres
func (h *MembreHandler) CreerMembre(c *gin.Context) {
	var req model.CreationMembreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid membre payload", err)
		return
	}

	membre, err := h.membreService.CreerMembre(c.Request.Context(), req)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, membre.ToResponse())
}

// ListerMembres lists all members, optionally filtered by statut
// GET /api/v1/membres?statut=ACTIF
func (h *MembreHandler) ListerMembres(c *gin.Context) {
	var (
		membres []model.Membre
		err     error
	)

	if raw := c.Query("statut"); raw != "" {
		statut, parseErr := model.ParseStatut(raw)
		if parseErr != nil {
			response.ErrorResponse(c, http.StatusBadRequest, "INVALID_STATUT", parseErr.Error())
			return
		}
		membres, err = h.membreService.ListerMembresParStatut(c.Request.Context(), statut)
	} else {
		membres, err = h.membreService.ListerTousMembres(c.Request.Context())
	}

	if err != nil {
		respondDomainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, model.ToResponseList(membres))
}

// ListerMembresActifs lists members whose active flag is set
// GET /api/v1/membres/actifs
func (h *MembreHandler) ListerMembresActifs(c *gin.Context) {
	membres, err := h.membreService.ListerMembresActifs(c.Request.Context())
	if err != nil {
		respondDomainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, model.ToResponseList(membres))
}

// GetMembre fetches a member by id
// GET /api/v1/membres/:id
func (h *MembreHandler) GetMembre(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_ID", "invalid membre id")
		return
	}

	membre, err := h.membreService.GetMembre(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, membre.ToResponse())
}

// GetMembreParCode fetches a member by business code
// GET /api/v1/membres/code/:code
func (h *MembreHandler) GetMembreParCode(c *gin.Context) {
	membre, err := h.membreService.GetMembreParCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondDomainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, membre.ToResponse())
}

// ListerFilleuls lists members sponsored by a member
// GET /api/v1/membres/:id/filleuls
func (h *MembreHandler) ListerFilleuls(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_ID", "invalid membre id")
		return
	}

	filleuls, err := h.membreService.ListerFilleuls(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, model.ToResponseList(filleuls))
}

// MettreAJourMembre updates a member
// PUT /api/v1/membres/:id
func (h *MembreHandler) MettreAJourMembre(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_ID", "invalid membre id")
		return
	}

	var req model.CreationMembreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid membre payload", err)
		return
	}

	membre, err := h.membreService.MettreAJourMembre(c.Request.Context(), id, req)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, membre.ToResponse())
}

// ChangerStatut changes a member's statut
// PUT /api/v1/membres/:id/statut?statut=SUSPENDU
func (h *MembreHandler) ChangerStatut(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_ID", "invalid membre id")
		return
	}

	statut, err := model.ParseStatut(c.Query("statut"))
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_STATUT", err.Error())
		return
	}

	membre, err := h.membreService.ChangerStatutMembre(c.Request.Context(), id, statut)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, membre.ToResponse())
}

// DesactiverMembre deactivates a member with a reason
// POST /api/v1/membres/:id/desactiver
func (h *MembreHandler) DesactiverMembre(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_ID", "invalid membre id")
		return
	}

	var req model.DesactivationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid payload", err)
		return
	}

	membre, err := h.membreService.DesactiverMembre(c.Request.Context(), id, req.Motif)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, membre.ToResponse())
}

// UploadPhoto stores a member photo
// POST /api/v1/membres/:id/photo (multipart field "photo")
func (h *MembreHandler) UploadPhoto(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_ID", "invalid membre id")
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		response.BadRequest(c, "missing photo file")
		return
	}
	if fileHeader.Size > maxPhotoBytes {
		response.ErrorResponse(c, http.StatusBadRequest, "PHOTO_TOO_LARGE", "photo exceeds maximum size")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.InternalServerError(c, "failed to read photo")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxPhotoBytes+1))
	if err != nil {
		response.InternalServerError(c, "failed to read photo")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	membre, err := h.membreService.UploadPhoto(c.Request.Context(), id, data, contentType)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, membre.ToResponse())
}

// SupprimerMembre deletes a member
// DELETE /api/v1/membres/:id
func (h *MembreHandler) SupprimerMembre(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_ID", "invalid membre id")
		return
	}

	deleted, err := h.membreService.SupprimerMembre(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	if !deleted {
		response.InternalServerError(c, "membre could not be deleted")
		return
	}

	c.Status(http.StatusNoContent)
}
