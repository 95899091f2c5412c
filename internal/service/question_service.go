package service

import (
	"bytes"
	"errors"
	"fmt"
	"olympiades_backend/internal/model"
	"olympiades_backend/internal/repository"
	"olympiades_backend/pkg/logger"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

type QuestionService struct {
	Questions *repository.QuestionRepository
	Audit     *repository.AuditRepository
}

func NewQuestionService(questions *repository.QuestionRepository, audit *repository.AuditRepository) *QuestionService {
	return &QuestionService{Questions: questions, Audit: audit}
}

type QuestionRequest struct {
	Text          string `json:"text" binding:"required"`
	OptionA       string `json:"optionA" binding:"required"`
	OptionB       string `json:"optionB" binding:"required"`
	OptionC       string `json:"optionC" binding:"required"`
	OptionD       string `json:"optionD" binding:"required"`
	CorrectAnswer *int   `json:"correctAnswer" binding:"required"`
	Category      string `json:"category"`
	Difficulty    string `json:"difficulty"`
	Explanation   string `json:"explanation"`
	IsActive      *bool  `json:"isActive"`
}

func (r *QuestionRequest) validate() error {
	if r.CorrectAnswer == nil || *r.CorrectAnswer < 0 || *r.CorrectAnswer > 3 {
		return errors.New("La bonne réponse doit être un indice entre 0 et 3")
	}
	if r.Category != "" && !model.ValidCategory(r.Category) {
		return fmt.Errorf("Catégorie inconnue : %s", r.Category)
	}
	if r.Difficulty != "" && !model.ValidDifficulty(r.Difficulty) {
		return fmt.Errorf("Difficulté inconnue : %s", r.Difficulty)
	}
	return nil
}

func (s *QuestionService) Create(req QuestionRequest) (*model.Question, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	q := &model.Question{
		Text:          req.Text,
		OptionA:       req.OptionA,
		OptionB:       req.OptionB,
		OptionC:       req.OptionC,
		OptionD:       req.OptionD,
		CorrectAnswer: *req.CorrectAnswer,
		Category:      req.Category,
		Difficulty:    model.QuestionDifficulty(req.Difficulty),
		Explanation:   req.Explanation,
		IsActive:      true,
	}
	if q.Category == "" {
		q.Category = "Logique"
	}
	if q.Difficulty == "" {
		q.Difficulty = model.DifficultyMedium
	}
	if req.IsActive != nil {
		q.IsActive = *req.IsActive
	}

	if err := s.Questions.Create(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *QuestionService) Update(id uint, req QuestionRequest) (*model.Question, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	q, err := s.Questions.FindByID(id)
	if err != nil {
		return nil, err
	}

	q.Text = req.Text
	q.OptionA = req.OptionA
	q.OptionB = req.OptionB
	q.OptionC = req.OptionC
	q.OptionD = req.OptionD
	q.CorrectAnswer = *req.CorrectAnswer
	if req.Category != "" {
		q.Category = req.Category
	}
	if req.Difficulty != "" {
		q.Difficulty = model.QuestionDifficulty(req.Difficulty)
	}
	q.Explanation = req.Explanation
	if req.IsActive != nil {
		q.IsActive = *req.IsActive
	}

	if err := s.Questions.Update(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *QuestionService) Delete(id uint) error {
	return s.Questions.Delete(id)
}

func (s *QuestionService) Get(id uint) (*model.Question, error) {
	return s.Questions.FindByID(id)
}

func (s *QuestionService) List(category, difficulty string, activeOnly bool, page, limit int) ([]model.Question, int64, error) {
	return s.Questions.List(category, difficulty, activeOnly, page, limit)
}

func (s *QuestionService) SetActive(id uint, active bool) (*model.Question, error) {
	q, err := s.Questions.FindByID(id)
	if err != nil {
		return nil, err
	}
	q.IsActive = active
	if err := s.Questions.Update(q); err != nil {
		return nil, err
	}
	return q, nil
}

// --- Import / export ---

type QuestionImportRow struct {
	Text          string `json:"text"`
	OptionA       string `json:"optionA"`
	OptionB       string `json:"optionB"`
	OptionC       string `json:"optionC"`
	OptionD       string `json:"optionD"`
	CorrectAnswer int    `json:"correctAnswer"`
	Category      string `json:"category"`
	Difficulty    string `json:"difficulty"`
	Explanation   string `json:"explanation"`
}

type QuestionImportReport struct {
	Imported int      `json:"imported"`
	Rejected int      `json:"rejected"`
	Errors   []string `json:"errors,omitempty"`
}

func formatRowError(i int, msg string) string {
	return fmt.Sprintf("Ligne %d : %s", i+1, msg)
}

// ValidateImportRow vérifie une ligne d'import et retourne la question
// normalisée (catégorie par défaut Logique)
func ValidateImportRow(row QuestionImportRow) (*model.Question, error) {
	if strings.TrimSpace(row.Text) == "" {
		return nil, errors.New("énoncé manquant")
	}
	for _, opt := range []string{row.OptionA, row.OptionB, row.OptionC, row.OptionD} {
		if strings.TrimSpace(opt) == "" {
			return nil, errors.New("les 4 options sont requises")
		}
	}
	if row.CorrectAnswer < 0 || row.CorrectAnswer > 3 {
		return nil, errors.New("bonne réponse hors bornes (0-3)")
	}
	difficulty := row.Difficulty
	if difficulty == "" {
		difficulty = string(model.DifficultyMedium)
	}
	if !model.ValidDifficulty(difficulty) {
		return nil, fmt.Errorf("difficulté inconnue : %s", row.Difficulty)
	}
	category := row.Category
	if category == "" {
		category = "Logique"
	}
	if !model.ValidCategory(category) {
		return nil, fmt.Errorf("catégorie inconnue : %s", row.Category)
	}

	return &model.Question{
		Text:          strings.TrimSpace(row.Text),
		OptionA:       row.OptionA,
		OptionB:       row.OptionB,
		OptionC:       row.OptionC,
		OptionD:       row.OptionD,
		CorrectAnswer: row.CorrectAnswer,
		Category:      category,
		Difficulty:    model.QuestionDifficulty(difficulty),
		Explanation:   row.Explanation,
		IsActive:      true,
	}, nil
}

func (s *QuestionService) Import(adminID uint, rows []QuestionImportRow) (*QuestionImportReport, error) {
	report := &QuestionImportReport{}
	var toCreate []model.Question

	for i, row := range rows {
		q, err := ValidateImportRow(row)
		if err != nil {
			report.Rejected++
			report.Errors = append(report.Errors, formatRowError(i, err.Error()))
			continue
		}
		toCreate = append(toCreate, *q)
	}

	if err := s.Questions.CreateBatch(toCreate); err != nil {
		return nil, err
	}
	report.Imported = len(toCreate)

	s.audit(adminID, "questions_imported", fmt.Sprintf("%d questions importées", report.Imported))
	logger.Log.Info("questions imported",
		zap.Int("imported", report.Imported),
		zap.Int("rejected", report.Rejected))
	return report, nil
}

var xlsxHeader = []string{
	"Texte", "Option A", "Option B", "Option C", "Option D",
	"Bonne réponse (0-3)", "Catégorie", "Difficulté", "Explication",
}

// ExportXLSX produit un classeur avec une ligne d'en-tête et une ligne
// par question, réimportable tel quel
func (s *QuestionService) ExportXLSX() ([]byte, error) {
	questions, err := s.Questions.ListAll()
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Questions"
	f.SetSheetName("Sheet1", sheet)

	for col, h := range xlsxHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for i, q := range questions {
		values := []interface{}{
			q.Text, q.OptionA, q.OptionB, q.OptionC, q.OptionD,
			q.CorrectAnswer, q.Category, string(q.Difficulty), q.Explanation,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ImportXLSX lit un classeur au format de l'export (en-tête en ligne 1)
func (s *QuestionService) ImportXLSX(adminID uint, data []byte) (*QuestionImportReport, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.New("Fichier XLSX illisible")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("Le classeur ne contient aucune feuille")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(rows) <= 1 {
		return nil, errors.New("Le classeur ne contient aucune question")
	}

	var importRows []QuestionImportRow
	for _, row := range rows[1:] {
		// Complète les colonnes manquantes en fin de ligne
		for len(row) < len(xlsxHeader) {
			row = append(row, "")
		}
		correct, _ := strconv.Atoi(strings.TrimSpace(row[5]))
		importRows = append(importRows, QuestionImportRow{
			Text:          row[0],
			OptionA:       row[1],
			OptionB:       row[2],
			OptionC:       row[3],
			OptionD:       row[4],
			CorrectAnswer: correct,
			Category:      strings.TrimSpace(row[6]),
			Difficulty:    strings.TrimSpace(row[7]),
			Explanation:   row[8],
		})
	}

	return s.Import(adminID, importRows)
}

func (s *QuestionService) ExportJSON() ([]QuestionImportRow, error) {
	questions, err := s.Questions.ListAll()
	if err != nil {
		return nil, err
	}
	rows := make([]QuestionImportRow, len(questions))
	for i, q := range questions {
		rows[i] = QuestionImportRow{
			Text:          q.Text,
			OptionA:       q.OptionA,
			OptionB:       q.OptionB,
			OptionC:       q.OptionC,
			OptionD:       q.OptionD,
			CorrectAnswer: q.CorrectAnswer,
			Category:      q.Category,
			Difficulty:    string(q.Difficulty),
			Explanation:   q.Explanation,
		}
	}
	return rows, nil
}

func (s *QuestionService) audit(userID uint, action, details string) {
	if s.Audit == nil {
		return
	}
	if err := s.Audit.Create(&model.AuditLog{UserID: userID, Action: action, Details: details}); err != nil {
		logger.Log.Error("audit log write failed", zap.Error(err))
	}
}
