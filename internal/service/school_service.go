package service

import (
	"errors"
	"olympiades_backend/internal/model"
	"olympiades_backend/internal/repository"
	"olympiades_backend/internal/util"

	"gorm.io/gorm"
)

const (
	schoolSearchMinChars = 2
	schoolSearchLimit    = 10
)

type SchoolService struct {
	Schools    *repository.SchoolRepository
	Candidates *repository.CandidateRepository
}

func NewSchoolService(schools *repository.SchoolRepository, candidates *repository.CandidateRepository) *SchoolService {
	return &SchoolService{Schools: schools, Candidates: candidates}
}

// Search : autocomplétion publique, 2 caractères minimum
func (s *SchoolService) Search(q string) ([]model.School, error) {
	if len([]rune(q)) < schoolSearchMinChars {
		return []model.School{}, nil
	}
	return s.Schools.Search(q, schoolSearchLimit)
}

func (s *SchoolService) Regions() ([]string, error) {
	return s.Schools.Regions()
}

func (s *SchoolService) List(region string, page, limit int) ([]model.School, int64, error) {
	return s.Schools.List(region, page, limit)
}

type SchoolRequest struct {
	Name       string `json:"name" binding:"required"`
	Region     string `json:"region"`
	City       string `json:"city"`
	Type       string `json:"type"`
	IsVerified bool   `json:"isVerified"`
}

func (s *SchoolService) Create(req SchoolRequest) (*model.School, error) {
	school := &model.School{
		Name:       req.Name,
		Region:     req.Region,
		City:       req.City,
		Type:       req.Type,
		IsVerified: req.IsVerified,
	}
	if school.Type == "" {
		school.Type = "public"
	}
	if err := s.Schools.Create(school); err != nil {
		return nil, err
	}
	return school, nil
}

func (s *SchoolService) Update(id uint, req SchoolRequest) (*model.School, error) {
	school, err := s.Schools.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSchoolNotFound
		}
		return nil, err
	}

	school.Name = req.Name
	school.Region = req.Region
	school.City = req.City
	if req.Type != "" {
		school.Type = req.Type
	}
	school.IsVerified = req.IsVerified

	if err := s.Schools.Update(school); err != nil {
		return nil, err
	}
	return school, nil
}

// Delete refuse la suppression tant que des candidats sont rattachés
func (s *SchoolService) Delete(id uint) error {
	if _, err := s.Schools.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrSchoolNotFound
		}
		return err
	}

	count, err := s.Candidates.CountBySchool(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return util.ErrSchoolReferenced
	}

	return s.Schools.Delete(id)
}

type SchoolImportRow struct {
	Name   string `json:"name"`
	Region string `json:"region"`
	City   string `json:"city"`
	Type   string `json:"type"`
}

type SchoolImportReport struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

// Import crée en masse les établissements, en ignorant les doublons
// nom+ville déjà connus
func (s *SchoolService) Import(rows []SchoolImportRow) (*SchoolImportReport, error) {
	report := &SchoolImportReport{}
	var toCreate []model.School

	for i, row := range rows {
		if row.Name == "" {
			report.Skipped++
			report.Errors = append(report.Errors, formatRowError(i, "nom manquant"))
			continue
		}
		if _, err := s.Schools.FindByNameAndCity(row.Name, row.City); err == nil {
			report.Skipped++
			continue
		}
		schoolType := row.Type
		if schoolType == "" {
			schoolType = "public"
		}
		toCreate = append(toCreate, model.School{
			Name:       row.Name,
			Region:     row.Region,
			City:       row.City,
			Type:       schoolType,
			IsVerified: true,
		})
	}

	if err := s.Schools.CreateBatch(toCreate); err != nil {
		return nil, err
	}
	report.Imported = len(toCreate)
	return report, nil
}
