package controller

import (
	"errors"
	"net/http"
	"olympiades_backend/internal/service"
	"olympiades_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SchoolController struct {
	SchoolService *service.SchoolService
}

func NewSchoolController(schoolService *service.SchoolService) *SchoolController {
	return &SchoolController{SchoolService: schoolService}
}

// Search godoc
// @Summary Autocomplétion des établissements
// @Description Au moins 2 caractères, 10 résultats maximum
// @Tags Établissements
// @Produce  json
// @Param   q query string true "Texte recherché"
// @Success 200 {object} util.Response{data=[]model.School} "Établissements"
// @Router /api/schools/search [get]
func (c *SchoolController) Search(ctx *gin.Context) {
	schools, err := c.SchoolService.Search(ctx.Query("q"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, schools)
}

// Regions godoc
// @Summary Liste des régions connues
// @Tags Établissements
// @Produce  json
// @Success 200 {object} util.Response{data=[]string} "Régions"
// @Router /api/schools/regions [get]
func (c *SchoolController) Regions(ctx *gin.Context) {
	regions, err := c.SchoolService.Regions()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, regions)
}

// List godoc
// @Summary Liste des établissements
// @Tags Administration
// @Produce  json
// @Security ApiKeyAuth
// @Param   region query string false "Filtre par région"
// @Param   page query int false "Page" default(1)
// @Param   limit query int false "Taille de page" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse} "Établissements"
// @Router /api/admin/schools [get]
func (c *SchoolController) List(ctx *gin.Context) {
	page, limit := util.ParsePagination(ctx.DefaultQuery("page", "1"), ctx.DefaultQuery("limit", "20"))

	schools, total, err := c.SchoolService.List(ctx.Query("region"), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: schools, Total: total, Page: page, Limit: limit})
}

// Create godoc
// @Summary Création d'un établissement
// @Tags Administration
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.SchoolRequest true "Établissement"
// @Success 201 {object} util.Response{data=model.School} "Établissement créé"
// @Router /api/admin/schools [post]
func (c *SchoolController) Create(ctx *gin.Context) {
	var req service.SchoolRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	school, err := c.SchoolService.Create(req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Created(ctx, school)
}

// Update godoc
// @Summary Modification d'un établissement
// @Tags Administration
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "ID de l'établissement"
// @Param   body body service.SchoolRequest true "Établissement"
// @Success 200 {object} util.Response{data=model.School} "Établissement modifié"
// @Router /api/admin/schools/{id} [put]
func (c *SchoolController) Update(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "ID invalide")
		return
	}

	var req service.SchoolRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	school, err := c.SchoolService.Update(id, req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, util.ErrSchoolNotFound) {
			util.NotFound(ctx)
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}

	util.Success(ctx, school)
}

// Delete godoc
// @Summary Suppression d'un établissement
// @Description Refusée tant que des candidats y sont rattachés
// @Tags Administration
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "ID de l'établissement"
// @Success 200 {object} util.Response "Établissement supprimé"
// @Failure 409 {object} util.Response "Des candidats y sont rattachés"
// @Router /api/admin/schools/{id} [delete]
func (c *SchoolController) Delete(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "ID invalide")
		return
	}

	if err := c.SchoolService.Delete(id); err != nil {
		switch {
		case errors.Is(err, util.ErrSchoolReferenced):
			util.Error(ctx, http.StatusConflict, err.Error())
		case errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, util.ErrSchoolNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, nil)
}

type SchoolImportRequest struct {
	Schools []service.SchoolImportRow `json:"schools" binding:"required"`
}

// Import godoc
// @Summary Import en masse d'établissements
// @Description Les doublons nom+ville déjà connus sont ignorés
// @Tags Administration
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body SchoolImportRequest true "Établissements à importer"
// @Success 200 {object} util.Response{data=service.SchoolImportReport} "Rapport d'import"
// @Router /api/admin/schools/import [post]
func (c *SchoolController) Import(ctx *gin.Context) {
	var req SchoolImportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	report, err := c.SchoolService.Import(req.Schools)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, report)
}
