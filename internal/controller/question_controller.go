package controller

import (
	"errors"
	"io"
	"net/http"
	"olympiades_backend/internal/service"
	"olympiades_backend/internal/util"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type QuestionController struct {
	QuestionService *service.QuestionService
}

func NewQuestionController(questionService *service.QuestionService) *QuestionController {
	return &QuestionController{QuestionService: questionService}
}

// List godoc
// @Summary Banque de questions
// @Tags Administration
// @Produce  json
// @Security ApiKeyAuth
// @Param   category query string false "Filtre par catégorie"
// @Param   difficulty query string false "Filtre par difficulté"
// @Param   active query bool false "Seulement les questions actives"
// @Param   page query int false "Page" default(1)
// @Param   limit query int false "Taille de page" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse} "Questions"
// @Router /api/admin/questions [get]
func (c *QuestionController) List(ctx *gin.Context) {
	page, limit := util.ParsePagination(ctx.DefaultQuery("page", "1"), ctx.DefaultQuery("limit", "20"))
	activeOnly, _ := strconv.ParseBool(ctx.Query("active"))

	questions, total, err := c.QuestionService.List(ctx.Query("category"), ctx.Query("difficulty"), activeOnly, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: questions, Total: total, Page: page, Limit: limit})
}

// Get godoc
// @Summary Détail d'une question
// @Tags Administration
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "ID de la question"
// @Success 200 {object} util.Response{data=model.Question} "Question"
// @Router /api/admin/questions/{id} [get]
func (c *QuestionController) Get(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "ID invalide")
		return
	}

	question, err := c.QuestionService.Get(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, question)
}

// Create godoc
// @Summary Création d'une question
// @Tags Administration
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.QuestionRequest true "Question"
// @Success 201 {object} util.Response{data=model.Question} "Question créée"
// @Failure 400 {object} util.Response "Champ invalide"
// @Router /api/admin/questions [post]
func (c *QuestionController) Create(ctx *gin.Context) {
	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.QuestionService.Create(req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Created(ctx, question)
}

// Update godoc
// @Summary Modification d'une question
// @Tags Administration
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "ID de la question"
// @Param   body body service.QuestionRequest true "Question"
// @Success 200 {object} util.Response{data=model.Question} "Question modifiée"
// @Router /api/admin/questions/{id} [put]
func (c *QuestionController) Update(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "ID invalide")
		return
	}

	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.QuestionService.Update(id, req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}

	util.Success(ctx, question)
}

// Delete godoc
// @Summary Suppression d'une question
// @Description Suppression logique : les tentatives passées gardent leurs
// @Description références
// @Tags Administration
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "ID de la question"
// @Success 200 {object} util.Response "Question supprimée"
// @Router /api/admin/questions/{id} [delete]
func (c *QuestionController) Delete(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "ID invalide")
		return
	}

	if err := c.QuestionService.Delete(id); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

type SetActiveRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// SetActive godoc
// @Summary Activation ou désactivation d'une question
// @Tags Administration
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "ID de la question"
// @Param   body body SetActiveRequest true "Nouvel état"
// @Success 200 {object} util.Response{data=model.Question} "Question mise à jour"
// @Router /api/admin/questions/{id}/active [put]
func (c *QuestionController) SetActive(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "ID invalide")
		return
	}

	var req SetActiveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.QuestionService.SetActive(id, *req.IsActive)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, question)
}

type QuestionImportRequest struct {
	Questions []service.QuestionImportRow `json:"questions" binding:"required"`
}

// Import godoc
// @Summary Import JSON de questions
// @Description Les lignes invalides sont rejetées individuellement, le
// @Description détail figure dans le rapport
// @Tags Administration
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body QuestionImportRequest true "Questions à importer"
// @Success 200 {object} util.Response{data=service.QuestionImportReport} "Rapport d'import"
// @Router /api/admin/questions/import [post]
func (c *QuestionController) Import(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req QuestionImportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	report, err := c.QuestionService.Import(claims.UserID, req.Questions)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, report)
}

// ImportXLSX godoc
// @Summary Import XLSX de questions
// @Description Classeur au format de l'export, en-tête en première ligne
// @Tags Administration
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   file formData file true "Classeur XLSX"
// @Success 200 {object} util.Response{data=service.QuestionImportReport} "Rapport d'import"
// @Router /api/admin/questions/import-xlsx [post]
func (c *QuestionController) ImportXLSX(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "Aucun fichier fourni")
		return
	}

	src, err := file.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	report, err := c.QuestionService.ImportXLSX(claims.UserID, data)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Success(ctx, report)
}

// ExportXLSX godoc
// @Summary Export XLSX de la banque de questions
// @Tags Administration
// @Produce  application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security ApiKeyAuth
// @Success 200 {file} binary "Classeur XLSX"
// @Router /api/admin/questions/export-xlsx [get]
func (c *QuestionController) ExportXLSX(ctx *gin.Context) {
	data, err := c.QuestionService.ExportXLSX()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	filename := "questions_" + time.Now().Format("20060102") + ".xlsx"
	ctx.Header("Content-Disposition", "attachment; filename="+filename)
	ctx.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// ExportJSON godoc
// @Summary Export JSON de la banque de questions
// @Tags Administration
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.QuestionImportRow} "Questions"
// @Router /api/admin/questions/export [get]
func (c *QuestionController) ExportJSON(ctx *gin.Context) {
	rows, err := c.QuestionService.ExportJSON()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}
