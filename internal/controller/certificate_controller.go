package controller

import (
	"errors"
	"net/http"
	"olympiades_backend/internal/service"
	"olympiades_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CertificateController struct {
	CertificateService *service.CertificateService
}

func NewCertificateController(certificateService *service.CertificateService) *CertificateController {
	return &CertificateController{CertificateService: certificateService}
}

// Download godoc
// @Summary Téléchargement d'une attestation
// @Description kind : participation, qcm ou selection. Chaque document
// @Description porte un QR code et un code de vérification
// @Tags Attestations
// @Produce  application/pdf
// @Security ApiKeyAuth
// @Param   kind path string true "Type de document"
// @Success 200 {file} binary "PDF"
// @Failure 403 {object} util.Response "Conditions non remplies"
// @Router /api/certificates/{kind} [get]
func (c *CertificateController) Download(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	kind := ctx.Param("kind")
	if !service.ValidCertificateKind(kind) {
		util.BadRequest(ctx, "Type de document inconnu")
		return
	}

	pdf, filename, err := c.CertificateService.Generate(claims.UserID, service.CertificateKind(kind))
	if err != nil {
		if errors.Is(err, util.ErrCandidateNotFound) {
			util.NotFound(ctx)
		} else {
			util.Error(ctx, http.StatusForbidden, err.Error())
		}
		return
	}

	ctx.Header("Content-Disposition", "attachment; filename="+filename)
	ctx.Data(http.StatusOK, "application/pdf", pdf)
}

// DownloadForCandidate godoc
// @Summary Téléchargement d'une attestation par le jury
// @Tags Administration
// @Produce  application/pdf
// @Security ApiKeyAuth
// @Param   id path int true "ID du candidat"
// @Param   kind path string true "Type de document"
// @Success 200 {file} binary "PDF"
// @Router /api/admin/candidates/{id}/certificates/{kind} [get]
func (c *CertificateController) DownloadForCandidate(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "ID invalide")
		return
	}

	kind := ctx.Param("kind")
	if !service.ValidCertificateKind(kind) {
		util.BadRequest(ctx, "Type de document inconnu")
		return
	}

	pdf, filename, err := c.CertificateService.GenerateForCandidate(id, service.CertificateKind(kind))
	if err != nil {
		if errors.Is(err, util.ErrCandidateNotFound) {
			util.NotFound(ctx)
		} else {
			util.Error(ctx, http.StatusForbidden, err.Error())
		}
		return
	}

	ctx.Header("Content-Disposition", "attachment; filename="+filename)
	ctx.Data(http.StatusOK, "application/pdf", pdf)
}

// Verify godoc
// @Summary Vérification publique d'un document
// @Description Contrôle le code imprimé sur une attestation. Un code forgé
// @Description retourne valid=false sans autre détail
// @Tags Attestations
// @Produce  json
// @Param   code path string true "Code de vérification"
// @Success 200 {object} util.Response{data=service.VerificationResponse} "Résultat"
// @Router /api/certificates/verify/{code} [get]
func (c *CertificateController) Verify(ctx *gin.Context) {
	resp, err := c.CertificateService.Verify(ctx.Param("code"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, resp)
}
