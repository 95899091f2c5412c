package controller

import (
	"olympiades_backend/internal/service"
	"olympiades_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type NotificationController struct {
	NotificationService *service.NotificationService
}

func NewNotificationController(notificationService *service.NotificationService) *NotificationController {
	return &NotificationController{NotificationService: notificationService}
}

// List godoc
// @Summary Notifications du compte connecté
// @Tags Notifications
// @Produce  json
// @Security ApiKeyAuth
// @Param   page query int false "Page" default(1)
// @Param   limit query int false "Taille de page" default(20)
// @Success 200 {object} util.Response{data=service.NotificationListResponse} "Notifications"
// @Router /api/notifications [get]
func (c *NotificationController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	page, limit := util.ParsePagination(ctx.DefaultQuery("page", "1"), ctx.DefaultQuery("limit", "20"))

	resp, err := c.NotificationService.ListForUser(claims.UserID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, resp)
}

// MarkRead godoc
// @Summary Marquer une notification comme lue
// @Tags Notifications
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "ID de la notification"
// @Success 200 {object} util.Response "Notification lue"
// @Router /api/notifications/{id}/read [put]
func (c *NotificationController) MarkRead(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "ID invalide")
		return
	}

	if err := c.NotificationService.MarkRead(id, claims.UserID); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// MarkAllRead godoc
// @Summary Marquer toutes les notifications comme lues
// @Tags Notifications
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response "Notifications lues"
// @Router /api/notifications/read-all [put]
func (c *NotificationController) MarkAllRead(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	if err := c.NotificationService.MarkAllRead(claims.UserID); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

type BroadcastRequest struct {
	Title   string `json:"title" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// Broadcast godoc
// @Summary Annonce à tous les candidats actifs
// @Description Création par lots, l'envoi email est en best effort
// @Tags Administration
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body BroadcastRequest true "Titre et message"
// @Success 200 {object} util.Response{data=object} "Nombre de destinataires"
// @Router /api/admin/notifications/broadcast [post]
func (c *NotificationController) Broadcast(ctx *gin.Context) {
	var req BroadcastRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	count, err := c.NotificationService.Broadcast(req.Title, req.Message)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"recipients": count})
}
