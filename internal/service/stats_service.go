package service

import (
	"bytes"
	"time"

	"olympiades_backend/internal/model"
	"olympiades_backend/internal/repository"

	"github.com/xuri/excelize/v2"
)

type StatsService struct {
	Stats      *repository.StatsRepository
	Candidates *repository.CandidateRepository
	Exams      *repository.ExamRepository
	Questions  *repository.QuestionRepository
}

func NewStatsService(stats *repository.StatsRepository, candidates *repository.CandidateRepository, exams *repository.ExamRepository, questions *repository.QuestionRepository) *StatsService {
	return &StatsService{Stats: stats, Candidates: candidates, Exams: exams, Questions: questions}
}

type DashboardResponse struct {
	TotalCandidates   int64                           `json:"totalCandidates"`
	CandidatesByState map[model.CandidateStatus]int64 `json:"candidatesByStatus"`
	AttemptsByState   map[model.AttemptStatus]int64   `json:"attemptsByStatus"`
	AverageScore      float64                         `json:"averageScore"`
	FlaggedAttempts   int64                           `json:"flaggedAttempts"`
}

func (s *StatsService) Dashboard() (*DashboardResponse, error) {
	byStatus, err := s.Stats.CountCandidatesByStatus()
	if err != nil {
		return nil, err
	}
	var total int64
	for _, n := range byStatus {
		total += n
	}

	attempts, err := s.Exams.CountAttemptsByStatus()
	if err != nil {
		return nil, err
	}
	avg, err := s.Exams.AverageScore()
	if err != nil {
		return nil, err
	}
	flagged, err := s.Exams.CountFlagged()
	if err != nil {
		return nil, err
	}

	return &DashboardResponse{
		TotalCandidates:   total,
		CandidatesByState: byStatus,
		AttemptsByState:   attempts,
		AverageScore:      Round2(avg),
		FlaggedAttempts:   flagged,
	}, nil
}

type BreakdownResponse struct {
	ByRegion     []repository.GroupCount `json:"byRegion"`
	BySchool     []repository.GroupCount `json:"bySchool"`
	ByGender     []repository.GroupCount `json:"byGender"`
	ByClassLevel []repository.GroupCount `json:"byClassLevel"`
}

func (s *StatsService) Breakdown() (*BreakdownResponse, error) {
	byRegion, err := s.Stats.CandidatesByRegion()
	if err != nil {
		return nil, err
	}
	bySchool, err := s.Stats.CandidatesBySchool(10)
	if err != nil {
		return nil, err
	}
	byGender, err := s.Stats.CandidatesByGender()
	if err != nil {
		return nil, err
	}
	byClass, err := s.Stats.CandidatesByClassLevel()
	if err != nil {
		return nil, err
	}
	return &BreakdownResponse{
		ByRegion:     byRegion,
		BySchool:     bySchool,
		ByGender:     byGender,
		ByClassLevel: byClass,
	}, nil
}

// Registrations retourne les inscriptions quotidiennes des 30 derniers jours
func (s *StatsService) Registrations() ([]repository.DailyCount, error) {
	since := time.Now().AddDate(0, 0, -30)
	return s.Stats.RegistrationsSince(since)
}

func (s *StatsService) CategoryPerformance() ([]repository.CategoryPerformance, error) {
	return s.Questions.PerformanceByCategory()
}

type FullReport struct {
	GeneratedAt   time.Time                        `json:"generatedAt"`
	Dashboard     *DashboardResponse               `json:"dashboard"`
	Breakdown     *BreakdownResponse               `json:"breakdown"`
	Registrations []repository.DailyCount          `json:"registrations"`
	Categories    []repository.CategoryPerformance `json:"categoryPerformance"`
	ScoreBuckets  []ScoreBucket                    `json:"scoreBuckets"`
}

func (s *StatsService) Report() (*FullReport, error) {
	dashboard, err := s.Dashboard()
	if err != nil {
		return nil, err
	}
	breakdown, err := s.Breakdown()
	if err != nil {
		return nil, err
	}
	registrations, err := s.Registrations()
	if err != nil {
		return nil, err
	}
	categories, err := s.CategoryPerformance()
	if err != nil {
		return nil, err
	}
	scores, err := s.Exams.FinalizedScores()
	if err != nil {
		return nil, err
	}

	return &FullReport{
		GeneratedAt:   time.Now(),
		Dashboard:     dashboard,
		Breakdown:     breakdown,
		Registrations: registrations,
		Categories:    categories,
		ScoreBuckets:  BucketScores(scores),
	}, nil
}

// ExportCandidatesXLSX produit la liste complète des candidats pour
// l'administration (une ligne par candidat, filtrable en amont)
func (s *StatsService) ExportCandidatesXLSX(filter repository.CandidateFilter) ([]byte, error) {
	candidates, _, err := s.Candidates.List(filter, 1, 10000)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Candidats"
	f.SetSheetName("Sheet1", sheet)

	header := []string{
		"ID", "Nom", "Prénom", "Email", "Téléphone", "Région", "Ville",
		"Établissement", "Classe", "Statut", "Score QCM",
	}
	for col, h := range header {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for i, c := range candidates {
		values := []interface{}{
			c.ID, c.User.LastName, c.User.FirstName, c.User.Email, c.User.Phone,
			c.Region, c.City, c.SchoolName, c.ClassLevel, string(c.Status),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			f.SetCellValue(sheet, cell, v)
		}
		if c.QCMScore != nil {
			cell, _ := excelize.CoordinatesToCellName(len(values)+1, i+2)
			f.SetCellValue(sheet, cell, *c.QCMScore)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
