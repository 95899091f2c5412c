package service

import (
	"errors"
	"mime/multipart"
	"time"

	"olympiades_backend/internal/model"
	"olympiades_backend/internal/repository"
	"olympiades_backend/internal/util"
)

type ContentService struct {
	Content *repository.ContentRepository
	Storage *StorageService
}

func NewContentService(content *repository.ContentRepository, storage *StorageService) *ContentService {
	return &ContentService{Content: content, Storage: storage}
}

// --- Actualités ---

type NewsRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
	Status  string `json:"status"`
}

func validNewsStatus(status string) bool {
	return status == "" || status == "draft" || status == "published"
}

func (s *ContentService) CreateNews(adminID uint, req NewsRequest) (*model.News, error) {
	if !validNewsStatus(req.Status) {
		return nil, errors.New("Statut inconnu : utilisez draft ou published")
	}
	n := &model.News{
		Title:     req.Title,
		Content:   req.Content,
		Status:    req.Status,
		CreatedBy: adminID,
	}
	if n.Status == "" {
		n.Status = "draft"
	}
	if n.Status == "published" {
		now := time.Now()
		n.PublishedAt = &now
	}
	if err := s.Content.CreateNews(n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *ContentService) UpdateNews(id uint, req NewsRequest) (*model.News, error) {
	if !validNewsStatus(req.Status) {
		return nil, errors.New("Statut inconnu : utilisez draft ou published")
	}
	n, err := s.Content.FindNewsByID(id)
	if err != nil {
		return nil, err
	}
	n.Title = req.Title
	n.Content = req.Content
	if req.Status != "" && req.Status != n.Status {
		n.Status = req.Status
		if n.Status == "published" && n.PublishedAt == nil {
			now := time.Now()
			n.PublishedAt = &now
		}
	}
	if err := s.Content.UpdateNews(n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *ContentService) DeleteNews(id uint) error {
	return s.Content.DeleteNews(id)
}

func (s *ContentService) GetNews(id uint, includeDrafts bool) (*model.News, error) {
	n, err := s.Content.FindNewsByID(id)
	if err != nil {
		return nil, err
	}
	if n.Status != "published" && !includeDrafts {
		return nil, util.ErrContentNotFound
	}
	return n, nil
}

func (s *ContentService) ListNews(publishedOnly bool, page, limit int) ([]model.News, int64, error) {
	return s.Content.ListNews(publishedOnly, page, limit)
}

// SetNewsImage téléverse l'illustration d'une actualité
func (s *ContentService) SetNewsImage(id uint, file *multipart.FileHeader) (*model.News, error) {
	n, err := s.Content.FindNewsByID(id)
	if err != nil {
		return nil, err
	}
	url, err := s.Storage.UploadImage(file, "news")
	if err != nil {
		return nil, err
	}
	if n.ImageURL != "" {
		s.Storage.DeleteByURL(n.ImageURL)
	}
	n.ImageURL = url
	if err := s.Content.UpdateNews(n); err != nil {
		return nil, err
	}
	return n, nil
}

// --- FAQ ---

type FAQRequest struct {
	Question string `json:"question" binding:"required"`
	Answer   string `json:"answer" binding:"required"`
	Category string `json:"category"`
	Order    *int   `json:"order"`
	IsActive *bool  `json:"isActive"`
}

func (s *ContentService) CreateFAQ(req FAQRequest) (*model.FAQ, error) {
	f := &model.FAQ{
		Question: req.Question,
		Answer:   req.Answer,
		Category: req.Category,
		IsActive: true,
	}
	if req.Order != nil {
		f.Order = *req.Order
	}
	if req.IsActive != nil {
		f.IsActive = *req.IsActive
	}
	if err := s.Content.CreateFAQ(f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *ContentService) UpdateFAQ(id uint, req FAQRequest) (*model.FAQ, error) {
	f, err := s.Content.FindFAQByID(id)
	if err != nil {
		return nil, err
	}
	f.Question = req.Question
	f.Answer = req.Answer
	f.Category = req.Category
	if req.Order != nil {
		f.Order = *req.Order
	}
	if req.IsActive != nil {
		f.IsActive = *req.IsActive
	}
	if err := s.Content.UpdateFAQ(f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *ContentService) DeleteFAQ(id uint) error {
	return s.Content.DeleteFAQ(id)
}

func (s *ContentService) ListFAQs(activeOnly bool) ([]model.FAQ, error) {
	return s.Content.ListFAQs(activeOnly)
}

// --- Calendrier ---

type PhaseRequest struct {
	PhaseNumber int    `json:"phaseNumber" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Status      string `json:"status"`
}

func validPhaseStatus(status string) bool {
	return status == "" || status == "completed" || status == "active" || status == "upcoming"
}

func (r *PhaseRequest) apply(p *model.TimelinePhase) error {
	if !validPhaseStatus(r.Status) {
		return errors.New("Statut de phase inconnu : utilisez completed, active ou upcoming")
	}
	p.PhaseNumber = r.PhaseNumber
	p.Title = r.Title
	p.Description = r.Description
	if r.Status != "" {
		p.Status = r.Status
	}
	for _, f := range []struct {
		raw  string
		dest **time.Time
	}{{r.StartDate, &p.StartDate}, {r.EndDate, &p.EndDate}} {
		if f.raw == "" {
			continue
		}
		t, err := time.Parse("2006-01-02", f.raw)
		if err != nil {
			return errors.New("Date invalide : format attendu AAAA-MM-JJ")
		}
		*f.dest = &t
	}
	return nil
}

func (s *ContentService) CreatePhase(req PhaseRequest) (*model.TimelinePhase, error) {
	p := &model.TimelinePhase{Status: "upcoming"}
	if err := req.apply(p); err != nil {
		return nil, err
	}
	if err := s.Content.CreatePhase(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ContentService) UpdatePhase(id uint, req PhaseRequest) (*model.TimelinePhase, error) {
	p, err := s.Content.FindPhaseByID(id)
	if err != nil {
		return nil, err
	}
	if err := req.apply(p); err != nil {
		return nil, err
	}
	if err := s.Content.UpdatePhase(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ContentService) DeletePhase(id uint) error {
	return s.Content.DeletePhase(id)
}

func (s *ContentService) ListPhases() ([]model.TimelinePhase, error) {
	return s.Content.ListPhases()
}

// --- Partenaires ---

type PartnerRequest struct {
	Name       string `json:"name" binding:"required"`
	WebsiteURL string `json:"websiteUrl"`
	Type       string `json:"type"`
	Order      *int   `json:"order"`
	IsActive   *bool  `json:"isActive"`
}

func (s *ContentService) CreatePartner(req PartnerRequest) (*model.Partner, error) {
	p := &model.Partner{
		Name:       req.Name,
		WebsiteURL: req.WebsiteURL,
		Type:       req.Type,
		IsActive:   true,
	}
	if req.Order != nil {
		p.Order = *req.Order
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	if err := s.Content.CreatePartner(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ContentService) UpdatePartner(id uint, req PartnerRequest) (*model.Partner, error) {
	p, err := s.Content.FindPartnerByID(id)
	if err != nil {
		return nil, err
	}
	p.Name = req.Name
	p.WebsiteURL = req.WebsiteURL
	p.Type = req.Type
	if req.Order != nil {
		p.Order = *req.Order
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	if err := s.Content.UpdatePartner(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ContentService) DeletePartner(id uint) error {
	return s.Content.DeletePartner(id)
}

func (s *ContentService) ListPartners(activeOnly bool) ([]model.Partner, error) {
	return s.Content.ListPartners(activeOnly)
}

func (s *ContentService) SetPartnerLogo(id uint, file *multipart.FileHeader) (*model.Partner, error) {
	p, err := s.Content.FindPartnerByID(id)
	if err != nil {
		return nil, err
	}
	url, err := s.Storage.UploadImage(file, "partners")
	if err != nil {
		return nil, err
	}
	if p.LogoURL != "" {
		s.Storage.DeleteByURL(p.LogoURL)
	}
	p.LogoURL = url
	if err := s.Content.UpdatePartner(p); err != nil {
		return nil, err
	}
	return p, nil
}

// --- Pages statiques ---

type StaticPageRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

func (s *ContentService) GetPage(slug string) (*model.StaticPage, error) {
	return s.Content.FindPageBySlug(slug)
}

func (s *ContentService) SavePage(adminID uint, slug string, req StaticPageRequest) (*model.StaticPage, error) {
	p := &model.StaticPage{
		Slug:      slug,
		Title:     req.Title,
		Content:   req.Content,
		UpdatedBy: adminID,
	}
	if err := s.Content.UpsertPage(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ContentService) ListPages() ([]model.StaticPage, error) {
	return s.Content.ListPages()
}
