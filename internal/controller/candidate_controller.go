package controller

import (
	"errors"
	"net/http"
	"olympiades_backend/internal/model"
	"olympiades_backend/internal/repository"
	"olympiades_backend/internal/service"
	"olympiades_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CandidateController struct {
	CandidateService *service.CandidateService
	StorageService   *service.StorageService
}

func NewCandidateController(candidateService *service.CandidateService, storageService *service.StorageService) *CandidateController {
	return &CandidateController{
		CandidateService: candidateService,
		StorageService:   storageService,
	}
}

// GetProfile godoc
// @Summary Dossier du candidat connecté
// @Tags Candidature
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.Candidate} "Dossier"
// @Router /api/candidate/profile [get]
func (c *CandidateController) GetProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	candidate, err := c.CandidateService.GetByUserID(claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrCandidateNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, candidate)
}

// UpdateProfile godoc
// @Summary Mise à jour du dossier
// @Description Repasse un dossier soumis en brouillon. Les dossiers validés
// @Description ou rejetés ne sont plus modifiables
// @Tags Candidature
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.CandidateProfileRequest true "Champs du dossier"
// @Success 200 {object} util.Response{data=model.Candidate} "Dossier mis à jour"
// @Failure 400 {object} util.Response "Champ invalide"
// @Failure 409 {object} util.Response "Dossier verrouillé"
// @Router /api/candidate/profile [put]
func (c *CandidateController) UpdateProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req service.CandidateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	candidate, err := c.CandidateService.UpdateProfile(claims.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCandidateNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrSchoolNotFound):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrProfileLocked):
			util.Error(ctx, http.StatusConflict, err.Error())
		default:
			util.BadRequest(ctx, err.Error())
		}
		return
	}

	util.Success(ctx, candidate)
}

// UploadDocument godoc
// @Summary Téléversement d'un justificatif
// @Description kind : id_document, school_certificate, parental_consent
// @Description (PDF) ou photo (image)
// @Tags Candidature
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   kind path string true "Type de document"
// @Param   file formData file true "Fichier"
// @Success 200 {object} util.Response{data=model.Candidate} "Document enregistré"
// @Failure 400 {object} util.Response "Fichier refusé"
// @Router /api/candidate/documents/{kind} [post]
func (c *CandidateController) UploadDocument(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	kind := ctx.Param("kind")
	if !service.ValidDocumentKind(kind) {
		util.BadRequest(ctx, "Type de document inconnu")
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "Aucun fichier fourni")
		return
	}

	var url string
	if service.DocumentKind(kind) == service.DocPhoto {
		url, err = c.StorageService.UploadImage(file, "documents")
	} else {
		url, err = c.StorageService.UploadDocument(file, "documents")
	}
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	candidate, err := c.CandidateService.SetDocument(claims.UserID, service.DocumentKind(kind), url)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCandidateNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrProfileLocked):
			util.Error(ctx, http.StatusConflict, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, candidate)
}

// Submit godoc
// @Summary Soumission du dossier
// @Description Vérifie la complétude du dossier puis le passe en statut
// @Description submitted
// @Tags Candidature
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.Candidate} "Dossier soumis"
// @Failure 400 {object} util.Response "Dossier incomplet (liste des manques en data)"
// @Failure 409 {object} util.Response "Dossier déjà soumis"
// @Router /api/candidate/submit [post]
func (c *CandidateController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	candidate, err := c.CandidateService.Submit(claims.UserID)
	if err != nil {
		var subErr *service.SubmissionError
		switch {
		case errors.As(err, &subErr):
			ctx.JSON(http.StatusBadRequest, util.Response{
				Code:    http.StatusBadRequest,
				Message: util.ErrProfileIncomplete.Error(),
				Data:    gin.H{"issues": subErr.Issues},
			})
		case errors.Is(err, util.ErrCandidateNotFound):
			util.NotFound(ctx)
		default:
			util.Error(ctx, http.StatusConflict, err.Error())
		}
		return
	}

	util.Success(ctx, candidate)
}

// --- Administration ---

// List godoc
// @Summary Liste des candidatures
// @Tags Administration
// @Produce  json
// @Security ApiKeyAuth
// @Param   status query string false "Filtre par statut"
// @Param   region query string false "Filtre par région"
// @Param   schoolId query int false "Filtre par établissement"
// @Param   search query string false "Recherche nom / email"
// @Param   page query int false "Page" default(1)
// @Param   limit query int false "Taille de page" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse} "Candidatures"
// @Router /api/admin/candidates [get]
func (c *CandidateController) List(ctx *gin.Context) {
	page, limit := util.ParsePagination(ctx.DefaultQuery("page", "1"), ctx.DefaultQuery("limit", "20"))

	filter := repository.CandidateFilter{
		Status: model.CandidateStatus(ctx.Query("status")),
		Region: ctx.Query("region"),
		Search: ctx.Query("search"),
	}
	if raw := ctx.Query("schoolId"); raw != "" {
		id := util.MustParseUint(raw)
		if id == 0 {
			util.BadRequest(ctx, "schoolId invalide")
			return
		}
		filter.SchoolID = id
	}

	candidates, total, err := c.CandidateService.List(filter, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: candidates, Total: total, Page: page, Limit: limit})
}

// Detail godoc
// @Summary Détail d'une candidature
// @Tags Administration
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "ID du candidat"
// @Success 200 {object} util.Response{data=model.Candidate} "Candidature"
// @Failure 404 {object} util.Response "Introuvable"
// @Router /api/admin/candidates/{id} [get]
func (c *CandidateController) Detail(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "ID invalide")
		return
	}

	candidate, err := c.CandidateService.Detail(id)
	if err != nil {
		if errors.Is(err, util.ErrCandidateNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, candidate)
}

// Validate godoc
// @Summary Validation d'une candidature
// @Tags Administration
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "ID du candidat"
// @Success 200 {object} util.Response{data=model.Candidate} "Candidature validée"
// @Failure 409 {object} util.Response "Statut incompatible"
// @Router /api/admin/candidates/{id}/validate [post]
func (c *CandidateController) Validate(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "ID invalide")
		return
	}

	candidate, err := c.CandidateService.Validate(claims.UserID, id)
	if err != nil {
		if errors.Is(err, util.ErrCandidateNotFound) {
			util.NotFound(ctx)
		} else {
			util.Error(ctx, http.StatusConflict, err.Error())
		}
		return
	}

	util.Success(ctx, candidate)
}

type RejectRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// Reject godoc
// @Summary Rejet d'une candidature
// @Tags Administration
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "ID du candidat"
// @Param   body body RejectRequest true "Motif du rejet"
// @Success 200 {object} util.Response{data=model.Candidate} "Candidature rejetée"
// @Failure 409 {object} util.Response "Statut incompatible"
// @Router /api/admin/candidates/{id}/reject [post]
func (c *CandidateController) Reject(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "ID invalide")
		return
	}

	var req RejectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Le motif du rejet est requis")
		return
	}

	candidate, err := c.CandidateService.Reject(claims.UserID, id, req.Reason)
	if err != nil {
		if errors.Is(err, util.ErrCandidateNotFound) {
			util.NotFound(ctx)
		} else {
			util.Error(ctx, http.StatusConflict, err.Error())
		}
		return
	}

	util.Success(ctx, candidate)
}
