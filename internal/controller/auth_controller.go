package controller

import (
	"errors"
	"net/http"
	"olympiades_backend/internal/service"
	"olympiades_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// Register godoc
// @Summary Inscription d'un candidat
// @Description Crée le compte et son dossier de candidature vierge
// @Tags Authentification
// @Accept  json
// @Produce  json
// @Param   body body service.RegisterRequest true "Informations du compte"
// @Success 201 {object} util.Response{data=service.AuthResponse} "Compte créé"
// @Failure 400 {object} util.Response "Paramètres invalides"
// @Failure 409 {object} util.Response "Email déjà utilisé"
// @Router /api/auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req service.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.AuthService.Register(req)
	if err != nil {
		if errors.Is(err, util.ErrEmailRegistered) {
			util.Error(ctx, http.StatusConflict, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, resp)
}

// Login godoc
// @Summary Connexion
// @Tags Authentification
// @Accept  json
// @Produce  json
// @Param   body body service.LoginRequest true "Identifiants"
// @Success 200 {object} util.Response{data=service.AuthResponse} "Connecté"
// @Failure 401 {object} util.Response "Identifiants incorrects"
// @Failure 403 {object} util.Response "Compte désactivé"
// @Router /api/auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req service.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.AuthService.Login(req, ctx.ClientIP(), ctx.Request.UserAgent())
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidCredential):
			util.Error(ctx, http.StatusUnauthorized, err.Error())
		case errors.Is(err, util.ErrAccountDisabled):
			util.Error(ctx, http.StatusForbidden, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, resp)
}

// Logout godoc
// @Summary Déconnexion
// @Description Révoque le jeton courant jusqu'à son expiration
// @Tags Authentification
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response "Déconnecté"
// @Router /api/auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.AuthService.Logout(ctx.Request.Context(), claims); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// Refresh godoc
// @Summary Rafraîchissement du jeton
// @Description Émet un nouveau jeton et révoque l'ancien
// @Tags Authentification
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.AuthResponse} "Nouveau jeton"
// @Failure 403 {object} util.Response "Compte désactivé"
// @Router /api/auth/refresh [post]
func (c *AuthController) Refresh(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	resp, err := c.AuthService.Refresh(ctx.Request.Context(), claims)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAccountDisabled):
			util.Error(ctx, http.StatusForbidden, err.Error())
		case errors.Is(err, util.ErrUserNotFound):
			util.Unauthorized(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, resp)
}

// Me godoc
// @Summary Profil du compte connecté
// @Tags Authentification
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.User} "Profil"
// @Router /api/auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	user, err := c.AuthService.Profile(claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, user)
}

// ChangePassword godoc
// @Summary Changement de mot de passe
// @Tags Authentification
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.ChangePasswordRequest true "Ancien et nouveau mot de passe"
// @Success 200 {object} util.Response "Mot de passe modifié"
// @Failure 401 {object} util.Response "Mot de passe actuel incorrect"
// @Router /api/auth/password [put]
func (c *AuthController) ChangePassword(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.AuthService.ChangePassword(claims.UserID, req); err != nil {
		if errors.Is(err, util.ErrInvalidCredential) {
			util.Error(ctx, http.StatusUnauthorized, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, nil)
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ForgotPassword godoc
// @Summary Demande de réinitialisation du mot de passe
// @Description Envoie un lien et un code OTP par email. Répond toujours
// @Description succès, même si l'email est inconnu
// @Tags Authentification
// @Accept  json
// @Produce  json
// @Param   body body ForgotPasswordRequest true "Email du compte"
// @Success 200 {object} util.Response "Email envoyé si le compte existe"
// @Router /api/auth/forgot-password [post]
func (c *AuthController) ForgotPassword(ctx *gin.Context) {
	var req ForgotPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.AuthService.ForgotPassword(req.Email); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"message": "Si un compte existe pour cet email, un lien de réinitialisation a été envoyé"})
}

type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// ResetPassword godoc
// @Summary Réinitialisation par lien
// @Tags Authentification
// @Accept  json
// @Produce  json
// @Param   body body ResetPasswordRequest true "Jeton et nouveau mot de passe"
// @Success 200 {object} util.Response "Mot de passe réinitialisé"
// @Failure 400 {object} util.Response "Lien invalide ou expiré"
// @Router /api/auth/reset-password [post]
func (c *AuthController) ResetPassword(ctx *gin.Context) {
	var req ResetPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.AuthService.ResetPassword(req.Token, req.NewPassword); err != nil {
		if errors.Is(err, util.ErrResetTokenInvalid) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, nil)
}

type ResetPasswordOTPRequest struct {
	Email       string `json:"email" binding:"required,email"`
	OTP         string `json:"otp" binding:"required,len=6"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// ResetPasswordOTP godoc
// @Summary Réinitialisation par code OTP
// @Tags Authentification
// @Accept  json
// @Produce  json
// @Param   body body ResetPasswordOTPRequest true "Email, code et nouveau mot de passe"
// @Success 200 {object} util.Response "Mot de passe réinitialisé"
// @Failure 400 {object} util.Response "Code incorrect"
// @Failure 429 {object} util.Response "Trop de tentatives"
// @Router /api/auth/reset-password-otp [post]
func (c *AuthController) ResetPasswordOTP(ctx *gin.Context) {
	var req ResetPasswordOTPRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	err := c.AuthService.ResetPasswordWithOTP(req.Email, req.OTP, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrOTPTooManyTries):
			util.Error(ctx, http.StatusTooManyRequests, err.Error())
		case errors.Is(err, util.ErrOTPInvalid), errors.Is(err, util.ErrResetTokenInvalid):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, nil)
}
