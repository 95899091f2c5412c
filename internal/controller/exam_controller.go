package controller

import (
	"errors"
	"net/http"
	"olympiades_backend/internal/model"
	"olympiades_backend/internal/repository"
	"olympiades_backend/internal/service"
	"olympiades_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ExamController struct {
	ExamService *service.ExamService
}

func NewExamController(examService *service.ExamService) *ExamController {
	return &ExamController{ExamService: examService}
}

// Status godoc
// @Summary État du QCM pour le candidat connecté
// @Description Fenêtre d'ouverture, durée et état de la tentative éventuelle
// @Tags QCM
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.ExamStatusResponse} "État"
// @Router /api/exam/status [get]
func (c *ExamController) Status(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	resp, err := c.ExamService.Status(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, resp)
}

// Start godoc
// @Summary Démarrage ou reprise du QCM
// @Description Chaque candidat n'a droit qu'à une seule tentative. Un appel
// @Description pendant une tentative en cours la reprend sans la réinitialiser
// @Tags QCM
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.AttemptPayload} "Tentative"
// @Failure 403 {object} util.Response "Candidature non validée ou QCM fermé"
// @Failure 409 {object} util.Response "QCM déjà passé"
// @Router /api/exam/start [post]
func (c *ExamController) Start(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	payload, err := c.ExamService.StartAttempt(claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrExamNotOpen), errors.Is(err, util.ErrCandidateNotValidated):
			util.Error(ctx, http.StatusForbidden, err.Error())
		case errors.Is(err, util.ErrExamAlreadyTaken):
			util.Error(ctx, http.StatusConflict, err.Error())
		case errors.Is(err, util.ErrCandidateNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, payload)
}

// SaveAnswer godoc
// @Summary Enregistrement d'une réponse
// @Description Écrasement idempotent. answer vaut -1 pour effacer la réponse
// @Tags QCM
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "ID de la tentative"
// @Param   body body service.SaveAnswerRequest true "Question et réponse"
// @Success 200 {object} util.Response{data=service.SaveAnswerResponse} "Réponse enregistrée"
// @Failure 400 {object} util.Response "Réponse ou question invalide"
// @Failure 409 {object} util.Response "Tentative terminée"
// @Failure 410 {object} util.Response "Temps écoulé"
// @Router /api/exam/attempts/{id}/answers [put]
func (c *ExamController) SaveAnswer(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	attemptID := util.MustParseUint(ctx.Param("id"))
	if attemptID == 0 {
		util.BadRequest(ctx, "ID de tentative invalide")
		return
	}

	var req service.SaveAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.ExamService.SaveAnswer(claims.UserID, attemptID, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAttemptNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrAttemptFinalized):
			util.Error(ctx, http.StatusConflict, err.Error())
		case errors.Is(err, util.ErrAttemptExpired):
			util.Error(ctx, http.StatusGone, err.Error())
		case errors.Is(err, util.ErrInvalidAnswer), errors.Is(err, util.ErrQuestionNotInAttempt):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, resp)
}

// Submit godoc
// @Summary Soumission du QCM
// @Tags QCM
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "ID de la tentative"
// @Success 200 {object} util.Response{data=service.AttemptResult} "Résultat"
// @Failure 409 {object} util.Response "Déjà soumis"
// @Failure 410 {object} util.Response "Temps écoulé, tentative close sans note"
// @Router /api/exam/attempts/{id}/submit [post]
func (c *ExamController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	attemptID := util.MustParseUint(ctx.Param("id"))
	if attemptID == 0 {
		util.BadRequest(ctx, "ID de tentative invalide")
		return
	}

	result, err := c.ExamService.SubmitAttempt(claims.UserID, attemptID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAttemptNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrAttemptFinalized):
			util.Error(ctx, http.StatusConflict, err.Error())
		case errors.Is(err, util.ErrAttemptExpired):
			util.Error(ctx, http.StatusGone, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}

// Result godoc
// @Summary Résultat d'une tentative
// @Description Le score reste masqué tant que la publication immédiate est
// @Description désactivée dans les paramètres
// @Tags QCM
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "ID de la tentative"
// @Success 200 {object} util.Response{data=service.AttemptResult} "Résultat"
// @Router /api/exam/attempts/{id}/result [get]
func (c *ExamController) Result(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	attemptID := util.MustParseUint(ctx.Param("id"))
	if attemptID == 0 {
		util.BadRequest(ctx, "ID de tentative invalide")
		return
	}

	isAdmin := claims.Role == model.RoleAdmin || claims.Role == model.RoleSuperAdmin
	result, err := c.ExamService.GetResult(claims.UserID, attemptID, isAdmin)
	if err != nil {
		if errors.Is(err, util.ErrAttemptNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}

// ReportCheatEvent godoc
// @Summary Signalement d'un événement de surveillance
// @Description type : tab_switch, fullscreen_exit, copy_attempt, right_click
// @Tags QCM
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "ID de la tentative"
// @Param   body body service.CheatEventRequest true "Événement"
// @Success 200 {object} util.Response "Événement enregistré"
// @Router /api/exam/attempts/{id}/events [post]
func (c *ExamController) ReportCheatEvent(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	attemptID := util.MustParseUint(ctx.Param("id"))
	if attemptID == 0 {
		util.BadRequest(ctx, "ID de tentative invalide")
		return
	}

	var req service.CheatEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.ExamService.RecordCheatEvent(claims.UserID, attemptID, req); err != nil {
		switch {
		case errors.Is(err, util.ErrAttemptNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrInvalidEventType):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, nil)
}

// --- Administration ---

// GetSettings godoc
// @Summary Paramètres du QCM
// @Tags Administration
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.ExamSettings} "Paramètres"
// @Router /api/admin/exam/settings [get]
func (c *ExamController) GetSettings(ctx *gin.Context) {
	settings, err := c.ExamService.Settings()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, settings)
}

// UpdateSettings godoc
// @Summary Mise à jour des paramètres du QCM
// @Description La répartition par difficulté doit correspondre au nombre
// @Description total de questions
// @Tags Administration
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.ExamSettingsRequest true "Paramètres à modifier"
// @Success 200 {object} util.Response{data=model.ExamSettings} "Paramètres mis à jour"
// @Failure 400 {object} util.Response "Répartition incohérente"
// @Router /api/admin/exam/settings [put]
func (c *ExamController) UpdateSettings(ctx *gin.Context) {
	var req service.ExamSettingsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	settings, err := c.ExamService.UpdateSettings(req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Success(ctx, settings)
}

// ListAttempts godoc
// @Summary Liste des tentatives
// @Tags Administration
// @Produce  json
// @Security ApiKeyAuth
// @Param   status query string false "Filtre par statut"
// @Param   flagged query bool false "Seulement les tentatives signalées"
// @Param   page query int false "Page" default(1)
// @Param   limit query int false "Taille de page" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse} "Tentatives"
// @Router /api/admin/exam/attempts [get]
func (c *ExamController) ListAttempts(ctx *gin.Context) {
	page, limit := util.ParsePagination(ctx.DefaultQuery("page", "1"), ctx.DefaultQuery("limit", "20"))

	filter := repository.AttemptFilter{Status: model.AttemptStatus(ctx.Query("status"))}
	if raw := ctx.Query("flagged"); raw != "" {
		flagged, err := strconv.ParseBool(raw)
		if err != nil {
			util.BadRequest(ctx, "flagged doit être un booléen")
			return
		}
		filter.Flagged = &flagged
	}

	attempts, total, err := c.ExamService.ListAttempts(filter, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: attempts, Total: total, Page: page, Limit: limit})
}

// AttemptDetail godoc
// @Summary Détail d'une tentative, télémétrie incluse
// @Tags Administration
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "ID de la tentative"
// @Success 200 {object} util.Response{data=model.ExamAttempt} "Tentative"
// @Router /api/admin/exam/attempts/{id} [get]
func (c *ExamController) AttemptDetail(ctx *gin.Context) {
	attemptID := util.MustParseUint(ctx.Param("id"))
	if attemptID == 0 {
		util.BadRequest(ctx, "ID de tentative invalide")
		return
	}

	attempt, err := c.ExamService.AttemptDetail(attemptID)
	if err != nil {
		if errors.Is(err, util.ErrAttemptNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, attempt)
}

// Stats godoc
// @Summary Statistiques du QCM
// @Tags Administration
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.ExamStatsResponse} "Statistiques"
// @Router /api/admin/exam/stats [get]
func (c *ExamController) Stats(ctx *gin.Context) {
	stats, err := c.ExamService.Stats()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}
