package leadmagnets

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shauncritzer/rewired/app/models"
)

type fakeMagnetRepo struct {
	magnets   map[string]*models.LeadMagnet
	downloads []*models.LeadMagnetDownload
}

func (f *fakeMagnetRepo) Create(*models.LeadMagnet) error { return nil }
func (f *fakeMagnetRepo) GetByID(uint) (*models.LeadMagnet, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeMagnetRepo) GetBySlug(slug string) (*models.LeadMagnet, error) {
	if m, ok := f.magnets[slug]; ok {
		return m, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeMagnetRepo) GetActive() ([]models.LeadMagnet, error) {
	var out []models.LeadMagnet
	for _, m := range f.magnets {
		if m.IsActive() {
			out = append(out, *m)
		}
	}
	return out, nil
}
func (f *fakeMagnetRepo) GetAll() ([]models.LeadMagnet, error) { return nil, nil }
func (f *fakeMagnetRepo) Update(*models.LeadMagnet) error      { return nil }
func (f *fakeMagnetRepo) Delete(uint) error                    { return nil }
func (f *fakeMagnetRepo) Upsert(*models.LeadMagnet) error      { return nil }
func (f *fakeMagnetRepo) RecordDownload(d *models.LeadMagnetDownload) error {
	f.downloads = append(f.downloads, d)
	if m, ok := f.magnets[f.slugFor(d.LeadMagnetID)]; ok {
		m.DownloadCount++
	}
	return nil
}
func (f *fakeMagnetRepo) CountDownloads(uint) (int64, error) { return int64(len(f.downloads)), nil }
func (f *fakeMagnetRepo) slugFor(id uint) string {
	for slug, m := range f.magnets {
		if m.ID == id {
			return slug
		}
	}
	return ""
}

type fakeSubscriberRepo struct {
	rows map[string]*models.EmailSubscriber
}

func (f *fakeSubscriberRepo) Upsert(s *models.EmailSubscriber) error {
	if f.rows == nil {
		f.rows = map[string]*models.EmailSubscriber{}
	}
	if existing, ok := f.rows[s.Email]; ok {
		existing.FirstName = s.FirstName
		existing.Source = s.Source
		existing.Status = s.Status
		return nil
	}
	s.ID = uint(len(f.rows) + 1)
	f.rows[s.Email] = s
	return nil
}
func (f *fakeSubscriberRepo) GetByEmail(email string) (*models.EmailSubscriber, error) {
	if s, ok := f.rows[email]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeSubscriberRepo) GetActive(int, int) ([]models.EmailSubscriber, error) { return nil, nil }
func (f *fakeSubscriberRepo) Unsubscribe(string) error                             { return nil }
func (f *fakeSubscriberRepo) Count() (int64, error) {
	return int64(len(f.rows)), nil
}
func (f *fakeSubscriberRepo) CountActive() (int64, error) { return int64(len(f.rows)), nil }

type fakeMarketing struct {
	calls int
	err   error
}

func (f *fakeMarketing) Subscribe(context.Context, string, string) error {
	f.calls++
	return f.err
}

func testMagnets() map[string]*models.LeadMagnet {
	return map[string]*models.LeadMagnet{
		"first-3-chapters": {
			ID:        1,
			Title:     "First 3 Chapters",
			Slug:      "first-3-chapters",
			Type:      models.LeadMagnetTypePDF,
			FileURL:   "/downloads/first-3-chapters.pdf",
			Status:    models.LeadMagnetStatusActive,
			UpdatedAt: time.Unix(1700000000, 0),
		},
		"retired-guide": {
			ID:     2,
			Slug:   "retired-guide",
			Type:   models.LeadMagnetTypePDF,
			Status: models.LeadMagnetStatusInactive,
		},
	}
}

func TestDownloadHappyPath(t *testing.T) {
	magnets := &fakeMagnetRepo{magnets: testMagnets()}
	subscribers := &fakeSubscriberRepo{}
	marketing := &fakeMarketing{}
	svc := NewService(magnets, subscribers, marketing, nil)

	result, err := svc.Download(context.Background(), DownloadRequest{
		Slug:      "first-3-chapters",
		Email:     "Reader@Example.com",
		FirstName: "Reader",
	})
	require.NoError(t, err)

	// Email is normalized before storage.
	_, ok := subscribers.rows["reader@example.com"]
	assert.True(t, ok, "subscriber row missing")

	assert.Equal(t, 1, marketing.calls)
	require.Len(t, magnets.downloads, 1)
	assert.Equal(t, "reader@example.com", magnets.downloads[0].Email)
	assert.Contains(t, result.DownloadURL, "/downloads/first-3-chapters.pdf?v=")
}

func TestDownloadInvalidEmail(t *testing.T) {
	magnets := &fakeMagnetRepo{magnets: testMagnets()}
	svc := NewService(magnets, &fakeSubscriberRepo{}, &fakeMarketing{}, nil)

	_, err := svc.Download(context.Background(), DownloadRequest{
		Slug:  "first-3-chapters",
		Email: "not-an-email",
	})
	require.ErrorIs(t, err, ErrInvalidEmail)
	assert.Empty(t, magnets.downloads)
}

func TestDownloadUnknownSlug(t *testing.T) {
	svc := NewService(&fakeMagnetRepo{magnets: testMagnets()}, &fakeSubscriberRepo{}, &fakeMarketing{}, nil)

	_, err := svc.Download(context.Background(), DownloadRequest{
		Slug:  "does-not-exist",
		Email: "reader@example.com",
	})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDownloadInactiveMagnetHidden(t *testing.T) {
	svc := NewService(&fakeMagnetRepo{magnets: testMagnets()}, &fakeSubscriberRepo{}, &fakeMarketing{}, nil)

	_, err := svc.Download(context.Background(), DownloadRequest{
		Slug:  "retired-guide",
		Email: "reader@example.com",
	})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDownloadIdempotentSubscriber(t *testing.T) {
	magnets := &fakeMagnetRepo{magnets: testMagnets()}
	subscribers := &fakeSubscriberRepo{}
	svc := NewService(magnets, subscribers, &fakeMarketing{}, nil)

	for i := 0; i < 3; i++ {
		_, err := svc.Download(context.Background(), DownloadRequest{
			Slug:  "first-3-chapters",
			Email: "reader@example.com",
		})
		require.NoError(t, err)
	}

	// Re-submitting the same email never duplicates the subscriber row.
	assert.Len(t, subscribers.rows, 1)
	// Every download is still tracked individually.
	assert.Len(t, magnets.downloads, 3)
}

func TestDownloadSurvivesMarketingFailure(t *testing.T) {
	magnets := &fakeMagnetRepo{magnets: testMagnets()}
	marketing := &fakeMarketing{err: errors.New("convertkit is down")}
	svc := NewService(magnets, &fakeSubscriberRepo{}, marketing, nil)

	result, err := svc.Download(context.Background(), DownloadRequest{
		Slug:  "first-3-chapters",
		Email: "reader@example.com",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.DownloadURL)
}

func TestDownloadURLCacheBustingOnlyForPDF(t *testing.T) {
	svc := NewService(&fakeMagnetRepo{}, &fakeSubscriberRepo{}, nil, nil)

	pdf := &models.LeadMagnet{Type: models.LeadMagnetTypePDF, FileURL: "/f.pdf", UpdatedAt: time.Unix(10, 0)}
	assert.Equal(t, "/f.pdf?v=10", svc.DownloadURL(pdf))

	video := &models.LeadMagnet{Type: models.LeadMagnetTypeVideo, FileURL: "/v.mp4"}
	assert.Equal(t, "/v.mp4", svc.DownloadURL(video))
}
