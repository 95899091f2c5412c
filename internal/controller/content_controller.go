package controller

import (
	"errors"
	"olympiades_backend/internal/service"
	"olympiades_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ContentController struct {
	ContentService *service.ContentService
}

func NewContentController(contentService *service.ContentService) *ContentController {
	return &ContentController{ContentService: contentService}
}

// --- Actualités ---

// ListNews godoc
// @Summary Actualités publiées
// @Tags Contenu
// @Produce  json
// @Param   page query int false "Page" default(1)
// @Param   limit query int false "Taille de page" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse} "Actualités"
// @Router /api/content/news [get]
func (c *ContentController) ListNews(ctx *gin.Context) {
	page, limit := util.ParsePagination(ctx.DefaultQuery("page", "1"), ctx.DefaultQuery("limit", "20"))

	news, total, err := c.ContentService.ListNews(true, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: news, Total: total, Page: page, Limit: limit})
}

// GetNews godoc
// @Summary Détail d'une actualité publiée
// @Tags Contenu
// @Produce  json
// @Param   id path int true "ID de l'actualité"
// @Success 200 {object} util.Response{data=model.News} "Actualité"
// @Router /api/content/news/{id} [get]
func (c *ContentController) GetNews(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "ID invalide")
		return
	}

	news, err := c.ContentService.GetNews(id, false)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, util.ErrContentNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, news)
}

// AdminListNews godoc
// @Summary Toutes les actualités, brouillons compris
// @Tags Administration
// @Produce  json
// @Security ApiKeyAuth
// @Param   page query int false "Page" default(1)
// @Param   limit query int false "Taille de page" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse} "Actualités"
// @Router /api/admin/content/news [get]
func (c *ContentController) AdminListNews(ctx *gin.Context) {
	page, limit := util.ParsePagination(ctx.DefaultQuery("page", "1"), ctx.DefaultQuery("limit", "20"))

	news, total, err := c.ContentService.ListNews(false, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: news, Total: total, Page: page, Limit: limit})
}

// CreateNews godoc
// @Summary Création d'une actualité
// @Tags Administration
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.NewsRequest true "Actualité"
// @Success 201 {object} util.Response{data=model.News} "Actualité créée"
// @Router /api/admin/content/news [post]
func (c *ContentController) CreateNews(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req service.NewsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	news, err := c.ContentService.CreateNews(claims.UserID, req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Created(ctx, news)
}

// UpdateNews godoc
// @Summary Modification d'une actualité
// @Tags Administration
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "ID de l'actualité"
// @Param   body body service.NewsRequest true "Actualité"
// @Success 200 {object} util.Response{data=model.News} "Actualité modifiée"
// @Router /api/admin/content/news/{id} [put]
func (c *ContentController) UpdateNews(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "ID invalide")
		return
	}

	var req service.NewsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	news, err := c.ContentService.UpdateNews(id, req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}

	util.Success(ctx, news)
}

// DeleteNews godoc
// @Summary Suppression d'une actualité
// @Tags Administration
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "ID de l'actualité"
// @Success 200 {object} util.Response "Actualité supprimée"
// @Router /api/admin/content/news/{id} [delete]
func (c *ContentController) DeleteNews(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "ID invalide")
		return
	}

	if err := c.ContentService.DeleteNews(id); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// UploadNewsImage godoc
// @Summary Illustration d'une actualité
// @Tags Administration
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "ID de l'actualité"
// @Param   file formData file true "Image"
// @Success 200 {object} util.Response{data=model.News} "Image enregistrée"
// @Router /api/admin/content/news/{id}/image [post]
func (c *ContentController) UploadNewsImage(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "ID invalide")
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "Aucun fichier fourni")
		return
	}

	news, err := c.ContentService.SetNewsImage(id, file)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}

	util.Success(ctx, news)
}

// --- FAQ ---

// ListFAQs godoc
// @Summary Questions fréquentes actives
// @Tags Contenu
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.FAQ} "FAQ"
// @Router /api/content/faq [get]
func (c *ContentController) ListFAQs(ctx *gin.Context) {
	faqs, err := c.ContentService.ListFAQs(true)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, faqs)
}

// AdminListFAQs godoc
// @Summary Toutes les questions fréquentes
// @Tags Administration
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.FAQ} "FAQ"
// @Router /api/admin/content/faq [get]
func (c *ContentController) AdminListFAQs(ctx *gin.Context) {
	faqs, err := c.ContentService.ListFAQs(false)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, faqs)
}

// CreateFAQ godoc
// @Summary Création d'une entrée de FAQ
// @Tags Administration
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.FAQRequest true "Entrée"
// @Success 201 {object} util.Response{data=model.FAQ} "Entrée créée"
// @Router /api/admin/content/faq [post]
func (c *ContentController) CreateFAQ(ctx *gin.Context) {
	var req service.FAQRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	faq, err := c.ContentService.CreateFAQ(req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, faq)
}

// UpdateFAQ godoc
// @Summary Modification d'une entrée de FAQ
// @Tags Administration
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "ID de l'entrée"
// @Param   body body service.FAQRequest true "Entrée"
// @Success 200 {object} util.Response{data=model.FAQ} "Entrée modifiée"
// @Router /api/admin/content/faq/{id} [put]
func (c *ContentController) UpdateFAQ(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "ID invalide")
		return
	}

	var req service.FAQRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	faq, err := c.ContentService.UpdateFAQ(id, req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, faq)
}

// DeleteFAQ godoc
// @Summary Suppression d'une entrée de FAQ
// @Tags Administration
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "ID de l'entrée"
// @Success 200 {object} util.Response "Entrée supprimée"
// @Router /api/admin/content/faq/{id} [delete]
func (c *ContentController) DeleteFAQ(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "ID invalide")
		return
	}

	if err := c.ContentService.DeleteFAQ(id); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// --- Calendrier ---

// ListPhases godoc
// @Summary Calendrier de la campagne
// @Tags Contenu
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.TimelinePhase} "Phases"
// @Router /api/content/timeline [get]
func (c *ContentController) ListPhases(ctx *gin.Context) {
	phases, err := c.ContentService.ListPhases()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, phases)
}

// CreatePhase godoc
// @Summary Création d'une phase du calendrier
// @Tags Administration
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.PhaseRequest true "Phase"
// @Success 201 {object} util.Response{data=model.TimelinePhase} "Phase créée"
// @Router /api/admin/content/timeline [post]
func (c *ContentController) CreatePhase(ctx *gin.Context) {
	var req service.PhaseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	phase, err := c.ContentService.CreatePhase(req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Created(ctx, phase)
}

// UpdatePhase godoc
// @Summary Modification d'une phase du calendrier
// @Tags Administration
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "ID de la phase"
// @Param   body body service.PhaseRequest true "Phase"
// @Success 200 {object} util.Response{data=model.TimelinePhase} "Phase modifiée"
// @Router /api/admin/content/timeline/{id} [put]
func (c *ContentController) UpdatePhase(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "ID invalide")
		return
	}

	var req service.PhaseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	phase, err := c.ContentService.UpdatePhase(id, req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}

	util.Success(ctx, phase)
}

// DeletePhase godoc
// @Summary Suppression d'une phase du calendrier
// @Tags Administration
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "ID de la phase"
// @Success 200 {object} util.Response "Phase supprimée"
// @Router /api/admin/content/timeline/{id} [delete]
func (c *ContentController) DeletePhase(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "ID invalide")
		return
	}

	if err := c.ContentService.DeletePhase(id); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// --- Partenaires ---

// ListPartners godoc
// @Summary Partenaires actifs
// @Tags Contenu
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.Partner} "Partenaires"
// @Router /api/content/partners [get]
func (c *ContentController) ListPartners(ctx *gin.Context) {
	partners, err := c.ContentService.ListPartners(true)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, partners)
}

// AdminListPartners godoc
// @Summary Tous les partenaires
// @Tags Administration
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Partner} "Partenaires"
// @Router /api/admin/content/partners [get]
func (c *ContentController) AdminListPartners(ctx *gin.Context) {
	partners, err := c.ContentService.ListPartners(false)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, partners)
}

// CreatePartner godoc
// @Summary Création d'un partenaire
// @Tags Administration
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.PartnerRequest true "Partenaire"
// @Success 201 {object} util.Response{data=model.Partner} "Partenaire créé"
// @Router /api/admin/content/partners [post]
func (c *ContentController) CreatePartner(ctx *gin.Context) {
	var req service.PartnerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	partner, err := c.ContentService.CreatePartner(req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, partner)
}

// UpdatePartner godoc
// @Summary Modification d'un partenaire
// @Tags Administration
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "ID du partenaire"
// @Param   body body service.PartnerRequest true "Partenaire"
// @Success 200 {object} util.Response{data=model.Partner} "Partenaire modifié"
// @Router /api/admin/content/partners/{id} [put]
func (c *ContentController) UpdatePartner(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "ID invalide")
		return
	}

	var req service.PartnerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	partner, err := c.ContentService.UpdatePartner(id, req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, partner)
}

// DeletePartner godoc
// @Summary Suppression d'un partenaire
// @Tags Administration
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "ID du partenaire"
// @Success 200 {object} util.Response "Partenaire supprimé"
// @Router /api/admin/content/partners/{id} [delete]
func (c *ContentController) DeletePartner(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "ID invalide")
		return
	}

	if err := c.ContentService.DeletePartner(id); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// UploadPartnerLogo godoc
// @Summary Logo d'un partenaire
// @Tags Administration
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "ID du partenaire"
// @Param   file formData file true "Logo"
// @Success 200 {object} util.Response{data=model.Partner} "Logo enregistré"
// @Router /api/admin/content/partners/{id}/logo [post]
func (c *ContentController) UploadPartnerLogo(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "ID invalide")
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "Aucun fichier fourni")
		return
	}

	partner, err := c.ContentService.SetPartnerLogo(id, file)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}

	util.Success(ctx, partner)
}

// --- Pages statiques ---

// GetPage godoc
// @Summary Page statique par slug
// @Tags Contenu
// @Produce  json
// @Param   slug path string true "Slug de la page"
// @Success 200 {object} util.Response{data=model.StaticPage} "Page"
// @Router /api/content/pages/{slug} [get]
func (c *ContentController) GetPage(ctx *gin.Context) {
	page, err := c.ContentService.GetPage(ctx.Param("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, page)
}

// ListPages godoc
// @Summary Liste des pages statiques
// @Tags Administration
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.StaticPage} "Pages"
// @Router /api/admin/content/pages [get]
func (c *ContentController) ListPages(ctx *gin.Context) {
	pages, err := c.ContentService.ListPages()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, pages)
}

// SavePage godoc
// @Summary Création ou mise à jour d'une page statique
// @Tags Administration
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   slug path string true "Slug de la page"
// @Param   body body service.StaticPageRequest true "Contenu"
// @Success 200 {object} util.Response{data=model.StaticPage} "Page enregistrée"
// @Router /api/admin/content/pages/{slug} [put]
func (c *ContentController) SavePage(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req service.StaticPageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	page, err := c.ContentService.SavePage(claims.UserID, ctx.Param("slug"), req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, page)
}
