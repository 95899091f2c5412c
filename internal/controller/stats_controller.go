package controller

import (
	"net/http"
	"olympiades_backend/internal/model"
	"olympiades_backend/internal/repository"
	"olympiades_backend/internal/service"
	"olympiades_backend/internal/util"
	"time"

	"github.com/gin-gonic/gin"
)

type StatsController struct {
	StatsService *service.StatsService
}

func NewStatsController(statsService *service.StatsService) *StatsController {
	return &StatsController{StatsService: statsService}
}

// Dashboard godoc
// @Summary Tableau de bord
// @Tags Administration
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.DashboardResponse} "Indicateurs"
// @Router /api/admin/stats/dashboard [get]
func (c *StatsController) Dashboard(ctx *gin.Context) {
	resp, err := c.StatsService.Dashboard()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, resp)
}

// Breakdown godoc
// @Summary Répartition des candidats
// @Description Par région, établissement, genre et classe
// @Tags Administration
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.BreakdownResponse} "Répartitions"
// @Router /api/admin/stats/breakdown [get]
func (c *StatsController) Breakdown(ctx *gin.Context) {
	resp, err := c.StatsService.Breakdown()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, resp)
}

// Registrations godoc
// @Summary Inscriptions des 30 derniers jours
// @Tags Administration
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]repository.DailyCount} "Inscriptions quotidiennes"
// @Router /api/admin/stats/registrations [get]
func (c *StatsController) Registrations(ctx *gin.Context) {
	counts, err := c.StatsService.Registrations()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, counts)
}

// CategoryPerformance godoc
// @Summary Taux de réussite par catégorie de questions
// @Tags Administration
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]repository.CategoryPerformance} "Performances"
// @Router /api/admin/stats/categories [get]
func (c *StatsController) CategoryPerformance(ctx *gin.Context) {
	perf, err := c.StatsService.CategoryPerformance()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, perf)
}

// Report godoc
// @Summary Rapport complet de la campagne
// @Tags Administration
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.FullReport} "Rapport"
// @Router /api/admin/stats/report [get]
func (c *StatsController) Report(ctx *gin.Context) {
	report, err := c.StatsService.Report()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, report)
}

// ExportCandidates godoc
// @Summary Export XLSX des candidats
// @Tags Administration
// @Produce  application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security ApiKeyAuth
// @Param   status query string false "Filtre par statut"
// @Param   region query string false "Filtre par région"
// @Success 200 {file} binary "Classeur XLSX"
// @Router /api/admin/stats/export-candidates [get]
func (c *StatsController) ExportCandidates(ctx *gin.Context) {
	filter := repository.CandidateFilter{
		Status: model.CandidateStatus(ctx.Query("status")),
		Region: ctx.Query("region"),
	}

	data, err := c.StatsService.ExportCandidatesXLSX(filter)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	filename := "candidats_" + time.Now().Format("20060102") + ".xlsx"
	ctx.Header("Content-Disposition", "attachment; filename="+filename)
	ctx.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
