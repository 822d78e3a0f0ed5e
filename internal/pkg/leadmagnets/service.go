package leadmagnets

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/shauncritzer/rewired/app/models"
	"github.com/shauncritzer/rewired/app/repository"
	"github.com/shauncritzer/rewired/internal/pkg/mail"
)

var (
	// ErrNotFound is returned for an unknown or inactive lead magnet slug.
	ErrNotFound = errors.New("leadmagnets: lead magnet not found")
	// ErrInvalidEmail is returned before anything is stored.
	ErrInvalidEmail = errors.New("leadmagnets: invalid email address")
)

// MarketingClient is the slice of the ConvertKit client the service needs.
type MarketingClient interface {
	Subscribe(ctx context.Context, email, firstName string) error
}

// Service handles the email-for-download exchange: capture the subscriber,
// sync the marketing platform, record the download and hand back the file.
type Service struct {
	magnets     repository.LeadMagnetRepository
	subscribers repository.EmailSubscriberRepository
	marketing   MarketingClient
	mailer      mail.Mailer
	validate    *validator.Validate
}

func NewService(
	magnets repository.LeadMagnetRepository,
	subscribers repository.EmailSubscriberRepository,
	marketing MarketingClient,
	mailer mail.Mailer,
) *Service {
	return &Service{
		magnets:     magnets,
		subscribers: subscribers,
		marketing:   marketing,
		mailer:      mailer,
		validate:    validator.New(),
	}
}

// DownloadRequest carries one download attempt.
type DownloadRequest struct {
	Slug      string
	Email     string `validate:"required,email"`
	FirstName string
	IPAddress string
	UserAgent string
}

// DownloadResult is the successful outcome.
type DownloadResult struct {
	Magnet      *models.LeadMagnet
	DownloadURL string
}

// List returns the active lead magnets for the resources page.
func (s *Service) List() ([]models.LeadMagnet, error) {
	return s.magnets.GetActive()
}

// GetBySlug returns one active lead magnet.
func (s *Service) GetBySlug(slug string) (*models.LeadMagnet, error) {
	magnet, err := s.magnets.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !magnet.IsActive() {
		return nil, ErrNotFound
	}
	return magnet, nil
}

// Download validates the email, upserts the subscriber, records the download
// and returns the file URL. Marketing-platform and email failures are logged
// and never block the download.
func (s *Service) Download(ctx context.Context, req DownloadRequest) (*DownloadResult, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, ErrInvalidEmail
	}

	magnet, err := s.GetBySlug(req.Slug)
	if err != nil {
		return nil, err
	}

	subscriber := &models.EmailSubscriber{
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		FirstName: req.FirstName,
		Source:    "lead_magnet:" + magnet.Slug,
		Status:    models.SubscriberStatusActive,
	}
	if err := s.subscribers.Upsert(subscriber); err != nil {
		return nil, fmt.Errorf("leadmagnets: save subscriber: %w", err)
	}

	if s.marketing != nil {
		if err := s.marketing.Subscribe(ctx, subscriber.Email, req.FirstName); err != nil {
			log.Printf("convertkit subscribe failed for %s: %v", subscriber.Email, err)
		}
	}

	download := &models.LeadMagnetDownload{
		LeadMagnetID: magnet.ID,
		Email:        subscriber.Email,
		IPAddress:    req.IPAddress,
		UserAgent:    req.UserAgent,
	}
	if stored, err := s.subscribers.GetByEmail(subscriber.Email); err == nil {
		download.SubscriberID = &stored.ID
	}
	if err := s.magnets.RecordDownload(download); err != nil {
		return nil, fmt.Errorf("leadmagnets: record download: %w", err)
	}

	downloadURL := s.DownloadURL(magnet)

	if s.mailer != nil {
		if err := mail.SendLeadMagnetEmail(s.mailer, subscriber.Email, magnet.Title, downloadURL); err != nil {
			log.Printf("lead magnet email failed for %s: %v", subscriber.Email, err)
		}
	}

	return &DownloadResult{Magnet: magnet, DownloadURL: downloadURL}, nil
}

// DownloadURL returns the file URL, with a cache-busting version parameter
// for PDFs so a re-uploaded file is never served stale.
func (s *Service) DownloadURL(magnet *models.LeadMagnet) string {
	if magnet.Type == models.LeadMagnetTypePDF && magnet.FileURL != "" {
		sep := "?"
		if strings.Contains(magnet.FileURL, "?") {
			sep = "&"
		}
		return fmt.Sprintf("%s%sv=%d", magnet.FileURL, sep, magnet.UpdatedAt.Unix())
	}
	return magnet.FileURL
}
