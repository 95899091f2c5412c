package controller

import (
	"errors"
	"olympiades_backend/internal/service"
	"olympiades_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type RankingController struct {
	RankingService *service.RankingService
}

func NewRankingController(rankingService *service.RankingService) *RankingController {
	return &RankingController{RankingService: rankingService}
}

// Rankings godoc
// @Summary Classement public anonymisé
// @Description Chaque ligne n'expose qu'un code anonyme, le score, la
// @Description région et l'établissement. 500 lignes maximum
// @Tags Classement
// @Produce  json
// @Param   region query string false "Filtre par région"
// @Param   limit query int false "Nombre de lignes" default(50)
// @Success 200 {object} util.Response{data=[]service.RankingEntry} "Classement"
// @Router /api/rankings [get]
func (c *RankingController) Rankings(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))

	entries, err := c.RankingService.Rankings(ctx.Query("region"), limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, entries)
}

// MyRanking godoc
// @Summary Code anonyme et rang du candidat connecté
// @Tags Classement
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.MyRankingResponse} "Position"
// @Router /api/rankings/me [get]
func (c *RankingController) MyRanking(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	resp, err := c.RankingService.MyRanking(claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrCandidateNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, resp)
}
