package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"olympiades_backend/internal/config"
	"olympiades_backend/internal/model"
	"olympiades_backend/internal/repository"
	"olympiades_backend/internal/util"
	"olympiades_backend/pkg/logger"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	resetTokenTTL  = 15 * time.Minute
	maxOTPAttempts = 3
)

type AuthService struct {
	Users      *repository.UserRepository
	Candidates *repository.CandidateRepository
	Resets     *repository.PasswordResetRepository
	Audit      *repository.AuditRepository
	Email      *EmailService
	Redis      *redis.Client
	DB         *gorm.DB
	cfg        *config.Config
}

func NewAuthService(
	users *repository.UserRepository,
	candidates *repository.CandidateRepository,
	resets *repository.PasswordResetRepository,
	audit *repository.AuditRepository,
	email *EmailService,
	rdb *redis.Client,
	db *gorm.DB,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		Users:      users,
		Candidates: candidates,
		Resets:     resets,
		Audit:      audit,
		Email:      email,
		Redis:      rdb,
		DB:         db,
		cfg:        cfg,
	}
}

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Phone     string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// Register crée le compte et son dossier de candidature vierge dans la
// même transaction
func (s *AuthService) Register(req RegisterRequest) (*AuthResponse, error) {
	if _, err := s.Users.FindByEmail(strings.ToLower(req.Email)); err == nil {
		return nil, util.ErrEmailRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:     strings.ToLower(req.Email),
		Password:  string(hash),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Role:      model.RoleCandidate,
		IsActive:  true,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		candidate := &model.Candidate{
			UserID: user.ID,
			Status: model.CandidateDraft,
		}
		return tx.Create(candidate).Error
	})
	if err != nil {
		return nil, err
	}

	token, err := util.GenerateJWT(user, s.cfg.JWT.Secret, s.cfg.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}

	logger.Log.Info("user registered", zap.Uint("user_id", user.ID))
	return &AuthResponse{Token: token, User: user}, nil
}

func (s *AuthService) Login(req LoginRequest, ip, userAgent string) (*AuthResponse, error) {
	user, err := s.Users.FindByEmail(strings.ToLower(req.Email))
	if err != nil {
		return nil, util.ErrInvalidCredential
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, util.ErrInvalidCredential
	}

	if !user.IsActive {
		return nil, util.ErrAccountDisabled
	}

	token, err := util.GenerateJWT(user, s.cfg.JWT.Secret, s.cfg.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}

	s.Users.UpdateLastLogin(user.ID)
	s.auditLog(user.ID, "login", "", ip, userAgent)

	return &AuthResponse{Token: token, User: user}, nil
}

// Logout révoque le jeton courant jusqu'à son expiration naturelle
func (s *AuthService) Logout(ctx context.Context, claims *util.Claims) error {
	if s.Redis == nil || claims.ID == "" {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	return s.Redis.Set(ctx, "jwt:blacklist:"+claims.ID, "1", ttl).Err()
}

// Refresh émet un nouveau jeton et révoque l'ancien, pour que la session
// courante reste la seule valide
func (s *AuthService) Refresh(ctx context.Context, claims *util.Claims) (*AuthResponse, error) {
	user, err := s.Users.FindByID(claims.UserID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}
	if !user.IsActive {
		return nil, util.ErrAccountDisabled
	}

	token, err := util.GenerateJWT(user, s.cfg.JWT.Secret, s.cfg.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}

	if err := s.Logout(ctx, claims); err != nil {
		logger.Log.Warn("failed to revoke previous token", zap.Error(err))
	}

	return &AuthResponse{Token: token, User: user}, nil
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

func (s *AuthService) ChangePassword(userID uint, req ChangePasswordRequest) error {
	user, err := s.Users.FindByID(userID)
	if err != nil {
		return util.ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return util.ErrInvalidCredential
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.Users.UpdatePassword(userID, string(hash))
}

// --- Réinitialisation de mot de passe ---

// BuildResetToken assemble le jeton envoyé par email : l'identifiant en
// clair pour retrouver l'enregistrement, la partie aléatoire vérifiée
// contre son haché bcrypt
func BuildResetToken(userID uint, random string) string {
	return fmt.Sprintf("%d:%s", userID, random)
}

func ParseResetToken(token string) (uint, string, error) {
	parts := strings.SplitN(token, ":", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return 0, "", util.ErrResetTokenInvalid
	}
	id, err := strconv.ParseUint(parts[0], 10, 32)
	if err != nil {
		return 0, "", util.ErrResetTokenInvalid
	}
	return uint(id), parts[1], nil
}

func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// GenerateOTP : code à 6 chiffres cryptographiquement aléatoire
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// ForgotPassword répond toujours en succès pour ne pas révéler les
// emails inscrits
func (s *AuthService) ForgotPassword(email string) error {
	user, err := s.Users.FindByEmail(strings.ToLower(email))
	if err != nil {
		return nil
	}

	random, err := randomHex(16)
	if err != nil {
		return err
	}
	otp, err := GenerateOTP()
	if err != nil {
		return err
	}

	tokenHash, err := bcrypt.GenerateFromPassword([]byte(random), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	otpHash, err := bcrypt.GenerateFromPassword([]byte(otp), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.Resets.InvalidateForUser(user.ID); err != nil {
		return err
	}
	reset := &model.PasswordReset{
		UserID:    user.ID,
		TokenHash: string(tokenHash),
		OTPHash:   string(otpHash),
		ExpiresAt: time.Now().Add(resetTokenTTL),
	}
	if err := s.Resets.Create(reset); err != nil {
		return err
	}

	if s.Email != nil && s.Email.Enabled() {
		link := s.cfg.Frontend.BaseURL + "/reinitialisation?token=" + BuildResetToken(user.ID, random)
		body := fmt.Sprintf(
			"<p>Bonjour %s,</p><p>Pour réinitialiser votre mot de passe, cliquez sur <a href=\"%s\">ce lien</a> ou saisissez le code <strong>%s</strong>.</p><p>Ce lien expire dans 15 minutes.</p>",
			user.FirstName, link, otp)
		go s.Email.Send(user.Email, user.FullName(), "Réinitialisation de votre mot de passe", body)
	}

	return nil
}

func (s *AuthService) ResetPassword(token, newPassword string) error {
	userID, random, err := ParseResetToken(token)
	if err != nil {
		return err
	}

	reset, err := s.Resets.FindLatestByUser(userID)
	if err != nil || !reset.Usable(time.Now()) {
		return util.ErrResetTokenInvalid
	}

	if err := bcrypt.CompareHashAndPassword([]byte(reset.TokenHash), []byte(random)); err != nil {
		return util.ErrResetTokenInvalid
	}

	return s.applyReset(reset, userID, newPassword)
}

// ResetPasswordWithOTP : variante par code, 3 essais maximum
func (s *AuthService) ResetPasswordWithOTP(email, otp, newPassword string) error {
	user, err := s.Users.FindByEmail(strings.ToLower(email))
	if err != nil {
		return util.ErrOTPInvalid
	}

	reset, err := s.Resets.FindLatestByUser(user.ID)
	if err != nil || !reset.Usable(time.Now()) || reset.OTPHash == "" {
		return util.ErrOTPInvalid
	}

	if reset.OTPAttempts >= maxOTPAttempts {
		return util.ErrOTPTooManyTries
	}

	if err := bcrypt.CompareHashAndPassword([]byte(reset.OTPHash), []byte(otp)); err != nil {
		reset.OTPAttempts++
		s.Resets.Update(reset)
		if reset.OTPAttempts >= maxOTPAttempts {
			return util.ErrOTPTooManyTries
		}
		return util.ErrOTPInvalid
	}

	return s.applyReset(reset, user.ID, newPassword)
}

func (s *AuthService) applyReset(reset *model.PasswordReset, userID uint, newPassword string) error {
	if len(newPassword) < 8 {
		return errors.New("Le mot de passe doit contenir au moins 8 caractères")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.Users.UpdatePassword(userID, string(hash)); err != nil {
		return err
	}

	now := time.Now()
	reset.UsedAt = &now
	if err := s.Resets.Update(reset); err != nil {
		return err
	}

	s.auditLog(userID, "password_reset", "", "", "")
	return nil
}

func (s *AuthService) Profile(userID uint) (*model.User, error) {
	user, err := s.Users.FindByID(userID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}
	return user, nil
}

func (s *AuthService) auditLog(userID uint, action, details, ip, userAgent string) {
	if s.Audit == nil {
		return
	}
	entry := &model.AuditLog{
		UserID:    userID,
		Action:    action,
		Details:   details,
		IP:        ip,
		UserAgent: userAgent,
	}
	if err := s.Audit.Create(entry); err != nil {
		logger.Log.Error("audit log write failed", zap.Error(err))
	}
}
