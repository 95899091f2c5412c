package service

import (
	"errors"
	"fmt"
	"math/rand"
	"olympiades_backend/internal/model"
	"olympiades_backend/internal/repository"
	"olympiades_backend/internal/util"
	"olympiades_backend/pkg/logger"
	"olympiades_backend/pkg/monitoring"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ExamService struct {
	Exam         *repository.ExamRepository
	Question     *repository.QuestionRepository
	Candidate    *repository.CandidateRepository
	Audit        *repository.AuditRepository
	Notification *NotificationService

	mu  sync.Mutex
	rng *rand.Rand
}

func NewExamService(
	exam *repository.ExamRepository,
	question *repository.QuestionRepository,
	candidate *repository.CandidateRepository,
	audit *repository.AuditRepository,
	notification *NotificationService,
) *ExamService {
	return &ExamService{
		Exam:         exam,
		Question:     question,
		Candidate:    candidate,
		Audit:        audit,
		Notification: notification,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// --- Paramètres ---

type ExamSettingsRequest struct {
	DurationMinutes      *int     `json:"durationMinutes"`
	TotalQuestions       *int     `json:"totalQuestions"`
	EasyCount            *int     `json:"easyCount"`
	MediumCount          *int     `json:"mediumCount"`
	HardCount            *int     `json:"hardCount"`
	PassingScore         *float64 `json:"passingScore"`
	RandomizeQuestions   *bool    `json:"randomizeQuestions"`
	RandomizeOptions     *bool    `json:"randomizeOptions"`
	ShowScoreImmediately *bool    `json:"showScoreImmediately"`
	IsOpen               *bool    `json:"isOpen"`
	OpensAt              *string  `json:"opensAt"`
	ClosesAt             *string  `json:"closesAt"`
}

func (s *ExamService) Settings() (*model.ExamSettings, error) {
	return s.Exam.GetSettings()
}

func (s *ExamService) UpdateSettings(req ExamSettingsRequest) (*model.ExamSettings, error) {
	settings, err := s.Exam.GetSettings()
	if err != nil {
		return nil, err
	}

	if req.DurationMinutes != nil {
		settings.DurationMinutes = *req.DurationMinutes
	}
	if req.TotalQuestions != nil {
		settings.TotalQuestions = *req.TotalQuestions
	}
	if req.EasyCount != nil {
		settings.EasyCount = *req.EasyCount
	}
	if req.MediumCount != nil {
		settings.MediumCount = *req.MediumCount
	}
	if req.HardCount != nil {
		settings.HardCount = *req.HardCount
	}
	if req.PassingScore != nil {
		settings.PassingScore = *req.PassingScore
	}
	if req.RandomizeQuestions != nil {
		settings.RandomizeQuestions = *req.RandomizeQuestions
	}
	if req.RandomizeOptions != nil {
		settings.RandomizeOptions = *req.RandomizeOptions
	}
	if req.ShowScoreImmediately != nil {
		settings.ShowScoreImmediately = *req.ShowScoreImmediately
	}
	if req.IsOpen != nil {
		settings.IsOpen = *req.IsOpen
	}
	if req.OpensAt != nil {
		if *req.OpensAt == "" {
			settings.OpensAt = nil
		} else {
			t, err := time.Parse(time.RFC3339, *req.OpensAt)
			if err != nil {
				return nil, fmt.Errorf("date d'ouverture invalide: %w", err)
			}
			settings.OpensAt = &t
		}
	}
	if req.ClosesAt != nil {
		if *req.ClosesAt == "" {
			settings.ClosesAt = nil
		} else {
			t, err := time.Parse(time.RFC3339, *req.ClosesAt)
			if err != nil {
				return nil, fmt.Errorf("date de fermeture invalide: %w", err)
			}
			settings.ClosesAt = &t
		}
	}

	if settings.EasyCount+settings.MediumCount+settings.HardCount != settings.TotalQuestions {
		return nil, errors.New("La répartition par difficulté ne correspond pas au nombre total de questions")
	}

	if err := s.Exam.UpdateSettings(settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// --- Démarrage et reprise ---

type AttemptOption struct {
	Index int    `json:"index"` // indice canonique 0..3, à renvoyer tel quel
	Text  string `json:"text"`
}

type AttemptQuestion struct {
	ID       int64           `json:"id"`
	Text     string          `json:"text"`
	Category string          `json:"category"`
	Options  []AttemptOption `json:"options"`
}

type AttemptPayload struct {
	AttemptID        uint              `json:"attemptId"`
	StartedAt        time.Time         `json:"startedAt"`
	TimeLimitMinutes int               `json:"timeLimitMinutes"`
	TimeRemaining    int               `json:"timeRemaining"`
	Questions        []AttemptQuestion `json:"questions"`
	Answers          []int64           `json:"answers"`
	Resumed          bool              `json:"resumed"`
}

type ExamStatusResponse struct {
	IsOpen          bool       `json:"isOpen"`
	OpensAt         *time.Time `json:"opensAt"`
	ClosesAt        *time.Time `json:"closesAt"`
	DurationMinutes int        `json:"durationMinutes"`
	TotalQuestions  int        `json:"totalQuestions"`
	AttemptStatus   string     `json:"attemptStatus"` // none, in_progress, completed, expired
	AttemptID       uint       `json:"attemptId,omitempty"`
}

func (s *ExamService) Status(userID uint) (*ExamStatusResponse, error) {
	settings, err := s.Exam.GetSettings()
	if err != nil {
		return nil, err
	}

	resp := &ExamStatusResponse{
		IsOpen:          settings.IsOpenAt(time.Now()),
		OpensAt:         settings.OpensAt,
		ClosesAt:        settings.ClosesAt,
		DurationMinutes: settings.DurationMinutes,
		TotalQuestions:  settings.TotalQuestions,
		AttemptStatus:   "none",
	}

	attempts, err := s.Exam.FindAttemptsByUser(userID)
	if err != nil {
		return nil, err
	}
	if len(attempts) > 0 {
		a := &attempts[0] // la plus récente d'abord
		if AttemptExpired(a, time.Now()) {
			if err := s.finalizeAttempt(a, model.AttemptExpired); err != nil {
				return nil, err
			}
		}
		resp.AttemptStatus = string(a.Status)
		resp.AttemptID = a.ID
	}

	return resp, nil
}

// planStart décide du sort d'une demande de démarrage face aux
// tentatives existantes : reprise de la tentative en cours, refus (une
// seule tentative par candidat, ou guichet fermé), ou création. La
// fenêtre d'ouverture ne s'applique qu'à la création : un candidat en
// pleine épreuve reprend sa tentative même après la fermeture.
// expire, s'il est non nul, doit être clos sans note avant de refuser.
func planStart(existing []model.ExamAttempt, settings *model.ExamSettings, now time.Time) (resume, expire *model.ExamAttempt, err error) {
	for i := range existing {
		a := &existing[i]
		if a.Status != model.AttemptInProgress {
			return nil, nil, util.ErrExamAlreadyTaken
		}
		if AttemptExpired(a, now) {
			return nil, a, util.ErrExamAlreadyTaken
		}
		return a, nil, nil
	}
	if !settings.IsOpenAt(now) {
		return nil, nil, util.ErrExamNotOpen
	}
	return nil, nil, nil
}

// StartAttempt crée la tentative unique du candidat ou reprend celle en
// cours. La création passe par une transaction qui verrouille les
// tentatives de l'utilisateur : deux démarrages concurrents ne peuvent
// pas insérer chacun leur ligne.
func (s *ExamService) StartAttempt(userID uint) (*AttemptPayload, error) {
	settings, err := s.Exam.GetSettings()
	if err != nil {
		return nil, err
	}
	now := time.Now()

	candidate, err := s.Candidate.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCandidateNotFound
		}
		return nil, err
	}
	if candidate.Status != model.CandidateValidated {
		return nil, util.ErrCandidateNotValidated
	}

	var attempt *model.ExamAttempt
	var startErr error
	resumed := false

	err = s.Exam.Transaction(func(tx *gorm.DB) error {
		existing, err := s.Exam.FindAttemptsByUserLocked(tx, userID)
		if err != nil {
			return err
		}

		resume, expire, planErr := planStart(existing, settings, now)
		if expire != nil {
			// La clôture doit survivre au refus du démarrage, d'où le
			// commit avant de remonter l'erreur
			if err := s.finalizeAttemptTx(tx, expire, model.AttemptExpired); err != nil {
				return err
			}
		}
		if planErr != nil {
			startErr = planErr
			return nil
		}
		if resume != nil {
			attempt = resume
			resumed = true
			return nil
		}

		pool, err := s.Question.ListActive()
		if err != nil {
			return err
		}

		s.mu.Lock()
		selected, err := SelectQuestions(pool, settings, s.rng)
		s.mu.Unlock()
		if err != nil {
			return err
		}

		questionIDs := make([]int64, len(selected))
		answers := make([]int64, len(selected))
		for i, q := range selected {
			questionIDs[i] = int64(q.ID)
			answers[i] = model.AnswerUnanswered
		}

		attempt = &model.ExamAttempt{
			UserID:           userID,
			StartedAt:        now,
			TimeLimitMinutes: settings.DurationMinutes,
			QuestionIDs:      questionIDs,
			Answers:          answers,
			TotalQuestions:   len(questionIDs),
			Status:           model.AttemptInProgress,
			CheatEvents:      []model.CheatEvent{},
		}
		return s.Exam.CreateAttempt(tx, attempt)
	})
	if err != nil {
		return nil, err
	}
	if startErr != nil {
		return nil, startErr
	}

	if resumed {
		monitoring.ObserveAttempt("resumed")
	} else {
		monitoring.ObserveAttempt("started")
		logger.Log.Info("exam attempt started",
			zap.Uint("user_id", userID),
			zap.Uint("attempt_id", attempt.ID))
	}

	return s.buildPayload(attempt, settings, resumed)
}

func (s *ExamService) buildPayload(a *model.ExamAttempt, settings *model.ExamSettings, resumed bool) (*AttemptPayload, error) {
	questions, err := s.Question.FindByIDs(a.QuestionIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]*model.Question, len(questions))
	for i := range questions {
		byID[int64(questions[i].ID)] = &questions[i]
	}

	payload := &AttemptPayload{
		AttemptID:        a.ID,
		StartedAt:        a.StartedAt,
		TimeLimitMinutes: a.TimeLimitMinutes,
		TimeRemaining:    TimeRemaining(a, time.Now()),
		Answers:          a.Answers,
		Resumed:          resumed,
		Questions:        make([]AttemptQuestion, 0, len(a.QuestionIDs)),
	}

	for _, qid := range a.QuestionIDs {
		q, ok := byID[qid]
		if !ok {
			continue
		}
		options := q.Options()
		aq := AttemptQuestion{
			ID:       qid,
			Text:     q.Text,
			Category: q.Category,
			Options:  make([]AttemptOption, 4),
		}

		order := [4]int{0, 1, 2, 3}
		if settings.RandomizeOptions {
			s.mu.Lock()
			order = OptionPermutation(s.rng)
			s.mu.Unlock()
		}
		for i, canonical := range order {
			aq.Options[i] = AttemptOption{Index: canonical, Text: options[canonical]}
		}
		payload.Questions = append(payload.Questions, aq)
	}

	return payload, nil
}

// --- Réponses ---

type SaveAnswerRequest struct {
	QuestionID int64 `json:"questionId" binding:"required"`
	Answer     int64 `json:"answer"`
}

type SaveAnswerResponse struct {
	Saved         bool `json:"saved"`
	TimeRemaining int  `json:"timeRemaining"`
}

func (s *ExamService) SaveAnswer(userID, attemptID uint, req SaveAnswerRequest) (*SaveAnswerResponse, error) {
	attempt, err := s.ownedAttempt(userID, attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.Finalized() {
		return nil, util.ErrAttemptFinalized
	}

	now := time.Now()
	if AttemptExpired(attempt, now) {
		if err := s.finalizeAttempt(attempt, model.AttemptExpired); err != nil {
			return nil, err
		}
		return nil, util.ErrAttemptExpired
	}

	if req.Answer < model.AnswerUnanswered || req.Answer > 3 {
		return nil, util.ErrInvalidAnswer
	}

	idx := -1
	for i, qid := range attempt.QuestionIDs {
		if qid == req.QuestionID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, util.ErrQuestionNotInAttempt
	}

	// Écrasement idempotent
	attempt.Answers[idx] = req.Answer
	if err := s.Exam.UpdateAttempt(nil, attempt); err != nil {
		return nil, err
	}

	return &SaveAnswerResponse{Saved: true, TimeRemaining: TimeRemaining(attempt, now)}, nil
}

// --- Soumission et résultat ---

type AttemptResult struct {
	AttemptID     uint                 `json:"attemptId"`
	Status        model.AttemptStatus  `json:"status"`
	FinishedAt    *time.Time           `json:"finishedAt"`
	ScoreVisible  bool                 `json:"scoreVisible"`
	Score         *float64             `json:"score,omitempty"`
	CorrectCount  *int                 `json:"correctCount,omitempty"`
	TotalQuestion int                  `json:"totalQuestions"`
	Passed        *bool                `json:"passed,omitempty"`
	IsFlagged     bool                 `json:"isFlagged,omitempty"`
	Review        []AttemptReviewEntry `json:"review,omitempty"`
}

type AttemptReviewEntry struct {
	QuestionID    int64    `json:"questionId"`
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	YourAnswer    int64    `json:"yourAnswer"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation,omitempty"`
	Correct       bool     `json:"correct"`
}

func (s *ExamService) SubmitAttempt(userID, attemptID uint) (*AttemptResult, error) {
	attempt, err := s.ownedAttempt(userID, attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.Finalized() {
		return nil, util.ErrAttemptFinalized
	}

	// Une soumission hors délai n'est jamais notée : la tentative est
	// close sans score et l'appel est refusé
	if AttemptExpired(attempt, time.Now()) {
		if err := s.finalizeAttempt(attempt, model.AttemptExpired); err != nil {
			return nil, err
		}
		return nil, util.ErrAttemptExpired
	}

	if err := s.finalizeAttempt(attempt, model.AttemptCompleted); err != nil {
		return nil, err
	}

	return s.buildResult(attempt, false)
}

func (s *ExamService) GetResult(userID, attemptID uint, isAdmin bool) (*AttemptResult, error) {
	var attempt *model.ExamAttempt
	var err error
	if isAdmin {
		attempt, err = s.Exam.FindAttemptByID(attemptID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAttemptNotFound
		}
	} else {
		attempt, err = s.ownedAttempt(userID, attemptID)
	}
	if err != nil {
		return nil, err
	}

	if AttemptExpired(attempt, time.Now()) {
		if err := s.finalizeAttempt(attempt, model.AttemptExpired); err != nil {
			return nil, err
		}
	}

	if !attempt.Finalized() {
		return &AttemptResult{
			AttemptID:     attempt.ID,
			Status:        attempt.Status,
			TotalQuestion: attempt.TotalQuestions,
		}, nil
	}

	return s.buildResult(attempt, isAdmin)
}

func (s *ExamService) buildResult(attempt *model.ExamAttempt, isAdmin bool) (*AttemptResult, error) {
	settings, err := s.Exam.GetSettings()
	if err != nil {
		return nil, err
	}

	result := &AttemptResult{
		AttemptID:     attempt.ID,
		Status:        attempt.Status,
		FinishedAt:    attempt.FinishedAt,
		TotalQuestion: attempt.TotalQuestions,
	}
	if isAdmin {
		result.IsFlagged = attempt.IsFlagged
	}

	// Le score reste masqué pour le candidat si la campagne publie les
	// résultats plus tard. Le jury voit toujours tout.
	result.ScoreVisible = isAdmin || settings.ShowScoreImmediately
	if !result.ScoreVisible || attempt.Score == nil {
		return result, nil
	}

	result.Score = attempt.Score
	result.CorrectCount = &attempt.CorrectCount
	passed := *attempt.Score >= settings.PassingScore
	result.Passed = &passed

	questions, err := s.Question.FindByIDs(attempt.QuestionIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]*model.Question, len(questions))
	for i := range questions {
		byID[int64(questions[i].ID)] = &questions[i]
	}

	for i, qid := range attempt.QuestionIDs {
		q, ok := byID[qid]
		if !ok || i >= len(attempt.Answers) {
			continue
		}
		result.Review = append(result.Review, AttemptReviewEntry{
			QuestionID:    qid,
			Text:          q.Text,
			Options:       q.Options(),
			YourAnswer:    attempt.Answers[i],
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
			Correct:       attempt.Answers[i] != model.AnswerUnanswered && int(attempt.Answers[i]) == q.CorrectAnswer,
		})
	}

	return result, nil
}

// --- Anticheat ---

type CheatEventRequest struct {
	Type string `json:"type" binding:"required"`
}

func (s *ExamService) RecordCheatEvent(userID, attemptID uint, req CheatEventRequest) error {
	if !ValidCheatEventType(req.Type) {
		return util.ErrInvalidEventType
	}

	attempt, err := s.ownedAttempt(userID, attemptID)
	if err != nil {
		return err
	}
	// Les événements qui arrivent après la fin (course côté client) sont
	// acceptés silencieusement
	if attempt.Finalized() {
		return nil
	}

	newlyFlagged := ApplyCheatEvent(attempt, model.CheatEventType(req.Type), time.Now())
	if err := s.Exam.UpdateAttempt(nil, attempt); err != nil {
		return err
	}

	if newlyFlagged {
		monitoring.ObserveAttempt("flagged")
		logger.Log.Warn("exam attempt flagged",
			zap.Uint("user_id", userID),
			zap.Uint("attempt_id", attempt.ID),
			zap.Int("tab_switches", attempt.TabSwitches),
			zap.Int("fullscreen_exits", attempt.FullscreenExits))
		s.audit(userID, "qcm_flagged", fmt.Sprintf("Tentative %d signalée", attempt.ID))
	}
	return nil
}

// --- Finalisation ---

func (s *ExamService) finalizeAttempt(a *model.ExamAttempt, status model.AttemptStatus) error {
	err := s.Exam.Transaction(func(tx *gorm.DB) error {
		return s.finalizeAttemptTx(tx, a, status)
	})
	if err != nil {
		return err
	}

	if s.Notification != nil && a.Score != nil {
		s.Notification.NotifyExamResult(a.UserID, *a.Score)
	}
	return nil
}

// finalizeAttemptTx : seule une tentative achevée dans les temps est
// notée. Une tentative périmée ne change que de statut : pas de score,
// pas de report sur le dossier candidat, pas de statistiques de
// questions.
func (s *ExamService) finalizeAttemptTx(tx *gorm.DB, a *model.ExamAttempt, status model.AttemptStatus) error {
	var byID map[int64]*model.Question
	if status == model.AttemptCompleted {
		questions, err := s.Question.FindByIDs(a.QuestionIDs)
		if err != nil {
			return err
		}
		byID = make(map[int64]*model.Question, len(questions))
		for i := range questions {
			byID[int64(questions[i].ID)] = &questions[i]
		}
	}

	ApplyFinalState(a, status, byID, time.Now())

	if err := s.Exam.UpdateAttempt(tx, a); err != nil {
		return err
	}

	monitoring.ObserveAttempt(string(status))

	if a.Score == nil {
		logger.Log.Info("exam attempt finalized",
			zap.Uint("attempt_id", a.ID),
			zap.String("status", string(status)))
		return nil
	}

	for i, qid := range a.QuestionIDs {
		if _, ok := byID[qid]; !ok {
			continue
		}
		answeredRight := i < len(a.Answers) &&
			a.Answers[i] != model.AnswerUnanswered &&
			int(a.Answers[i]) == byID[qid].CorrectAnswer
		if err := s.Question.IncrementStats(tx, qid, answeredRight); err != nil {
			return err
		}
	}

	if err := tx.Model(&model.Candidate{}).
		Where("user_id = ?", a.UserID).
		Update("qcm_score", *a.Score).Error; err != nil {
		return err
	}

	logger.Log.Info("exam attempt finalized",
		zap.Uint("attempt_id", a.ID),
		zap.String("status", string(status)),
		zap.Float64("score", *a.Score))
	return nil
}

func (s *ExamService) ownedAttempt(userID, attemptID uint) (*model.ExamAttempt, error) {
	attempt, err := s.Exam.FindAttemptByID(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAttemptNotFound
		}
		return nil, err
	}
	if attempt.UserID != userID {
		return nil, util.ErrAttemptNotFound
	}
	return attempt, nil
}

func (s *ExamService) audit(userID uint, action, details string) {
	if s.Audit == nil {
		return
	}
	if err := s.Audit.Create(&model.AuditLog{UserID: userID, Action: action, Details: details}); err != nil {
		logger.Log.Error("audit log write failed", zap.Error(err))
	}
}

// --- Administration ---

type ExamStatsResponse struct {
	AttemptsByStatus map[model.AttemptStatus]int64 `json:"attemptsByStatus"`
	AverageScore     float64                       `json:"averageScore"`
	FlaggedCount     int64                         `json:"flaggedCount"`
	ScoreBuckets     []ScoreBucket                 `json:"scoreBuckets"`
}

type ScoreBucket struct {
	Label string `json:"label"` // "0-9", "10-19", ... "90-100"
	Count int    `json:"count"`
}

func (s *ExamService) Stats() (*ExamStatsResponse, error) {
	byStatus, err := s.Exam.CountAttemptsByStatus()
	if err != nil {
		return nil, err
	}
	avg, err := s.Exam.AverageScore()
	if err != nil {
		return nil, err
	}
	flagged, err := s.Exam.CountFlagged()
	if err != nil {
		return nil, err
	}
	scores, err := s.Exam.FinalizedScores()
	if err != nil {
		return nil, err
	}

	return &ExamStatsResponse{
		AttemptsByStatus: byStatus,
		AverageScore:     Round2(avg),
		FlaggedCount:     flagged,
		ScoreBuckets:     BucketScores(scores),
	}, nil
}

// BucketScores répartit les scores en tranches de 10 points, la dernière
// tranche couvrant 90 à 100 inclus
func BucketScores(scores []float64) []ScoreBucket {
	buckets := make([]ScoreBucket, 10)
	for i := 0; i < 10; i++ {
		hi := i*10 + 9
		if i == 9 {
			hi = 100
		}
		buckets[i].Label = fmt.Sprintf("%d-%d", i*10, hi)
	}
	for _, score := range scores {
		idx := int(score / 10)
		if idx > 9 {
			idx = 9
		}
		if idx < 0 {
			idx = 0
		}
		buckets[idx].Count++
	}
	return buckets
}

func (s *ExamService) ListAttempts(f repository.AttemptFilter, page, limit int) ([]model.ExamAttempt, int64, error) {
	return s.Exam.ListAttempts(f, page, limit)
}

func (s *ExamService) AttemptDetail(attemptID uint) (*model.ExamAttempt, error) {
	attempt, err := s.Exam.FindAttemptByID(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAttemptNotFound
		}
		return nil, err
	}
	if AttemptExpired(attempt, time.Now()) {
		if err := s.finalizeAttempt(attempt, model.AttemptExpired); err != nil {
			return nil, err
		}
	}
	return attempt, nil
}
