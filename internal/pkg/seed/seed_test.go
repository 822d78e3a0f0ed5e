package seed

import (
	"errors"
	"strings"
	"testing"

	"gorm.io/gorm"

	"github.com/shauncritzer/rewired/app/models"
	"github.com/shauncritzer/rewired/app/repository"
)

type memUsers struct{ rows map[string]*models.User }

func (m *memUsers) Create(u *models.User) error {
	if m.rows == nil {
		m.rows = map[string]*models.User{}
	}
	u.ID = uint(len(m.rows) + 1)
	m.rows[u.Email] = u
	return nil
}
func (m *memUsers) GetByID(uint) (*models.User, error) { return nil, gorm.ErrRecordNotFound }
func (m *memUsers) GetByEmail(email string) (*models.User, error) {
	if u, ok := m.rows[email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *memUsers) Update(*models.User) error { return nil }
func (m *memUsers) Delete(uint) error         { return nil }
func (m *memUsers) List(int, int) ([]models.User, error) {
	var out []models.User
	for _, u := range m.rows {
		out = append(out, *u)
	}
	return out, nil
}
func (m *memUsers) Count() (int64, error) { return int64(len(m.rows)), nil }

type memPosts struct{ slugs map[string]bool }

func (m *memPosts) Create(p *models.BlogPost) error {
	if m.slugs == nil {
		m.slugs = map[string]bool{}
	}
	m.slugs[p.Slug] = true
	return nil
}
func (m *memPosts) GetByID(uint) (*models.BlogPost, error)        { return nil, gorm.ErrRecordNotFound }
func (m *memPosts) GetBySlug(string) (*models.BlogPost, error)    { return nil, gorm.ErrRecordNotFound }
func (m *memPosts) GetPublished(int, int) ([]models.BlogPost, error) { return nil, nil }
func (m *memPosts) GetPublishedByCategory(string, int, int) ([]models.BlogPost, error) {
	return nil, nil
}
func (m *memPosts) GetAll(int, int) ([]models.BlogPost, error) { return nil, nil }
func (m *memPosts) Update(*models.BlogPost) error              { return nil }
func (m *memPosts) Delete(uint) error                          { return nil }
func (m *memPosts) Count() (int64, error)                      { return int64(len(m.slugs)), nil }
func (m *memPosts) CountPublished() (int64, error)             { return int64(len(m.slugs)), nil }
func (m *memPosts) SlugExists(slug string) (bool, error)       { return m.slugs[slug], nil }
func (m *memPosts) SlugExistsExceptID(string, uint) (bool, error) {
	return false, nil
}
func (m *memPosts) IncrementViewCount(uint) error { return nil }

type memMagnets struct {
	rows    map[string]*models.LeadMagnet
	failOn  string
	inserts int
}

func (m *memMagnets) Create(*models.LeadMagnet) error { return nil }
func (m *memMagnets) GetByID(uint) (*models.LeadMagnet, error) {
	return nil, gorm.ErrRecordNotFound
}
func (m *memMagnets) GetBySlug(slug string) (*models.LeadMagnet, error) {
	if lm, ok := m.rows[slug]; ok {
		return lm, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *memMagnets) GetActive() ([]models.LeadMagnet, error) { return nil, nil }
func (m *memMagnets) GetAll() ([]models.LeadMagnet, error) {
	var out []models.LeadMagnet
	for _, lm := range m.rows {
		out = append(out, *lm)
	}
	return out, nil
}
func (m *memMagnets) Update(*models.LeadMagnet) error { return nil }
func (m *memMagnets) Delete(uint) error               { return nil }
func (m *memMagnets) Upsert(lm *models.LeadMagnet) error {
	if lm.Slug == m.failOn {
		return errors.New("simulated insert failure")
	}
	if m.rows == nil {
		m.rows = map[string]*models.LeadMagnet{}
	}
	m.inserts++
	m.rows[lm.Slug] = lm
	return nil
}
func (m *memMagnets) RecordDownload(*models.LeadMagnetDownload) error { return nil }
func (m *memMagnets) CountDownloads(uint) (int64, error)              { return 0, nil }

type memProducts struct {
	rows    map[string]*models.Product
	inserts int
}

func (m *memProducts) Create(*models.Product) error { return nil }
func (m *memProducts) GetByID(uint) (*models.Product, error) {
	return nil, gorm.ErrRecordNotFound
}
func (m *memProducts) GetBySlug(slug string) (*models.Product, error) {
	if p, ok := m.rows[slug]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *memProducts) GetActive() ([]models.Product, error) { return nil, nil }
func (m *memProducts) GetAll() ([]models.Product, error)    { return nil, nil }
func (m *memProducts) Update(*models.Product) error         { return nil }
func (m *memProducts) Delete(uint) error                    { return nil }
func (m *memProducts) Upsert(p *models.Product) error {
	if m.rows == nil {
		m.rows = map[string]*models.Product{}
	}
	m.inserts++
	m.rows[p.Slug] = p
	return nil
}
func (m *memProducts) Count() (int64, error) { return int64(len(m.rows)), nil }

type memLessons struct{ rows []*models.CourseLesson }

func (m *memLessons) Create(l *models.CourseLesson) error {
	m.rows = append(m.rows, l)
	return nil
}
func (m *memLessons) GetByID(uint) (*models.CourseLesson, error) {
	return nil, gorm.ErrRecordNotFound
}
func (m *memLessons) GetByProductSlug(string) ([]models.CourseLesson, error) { return nil, nil }
func (m *memLessons) Update(*models.CourseLesson) error                      { return nil }
func (m *memLessons) Delete(uint) error                                      { return nil }
func (m *memLessons) MarkComplete(uint, uint, string) error                  { return nil }
func (m *memLessons) GetProgress(uint, string) ([]models.LessonProgress, error) {
	return nil, nil
}
func (m *memLessons) CountByProductSlug(string) (int64, error) {
	return int64(len(m.rows)), nil
}

func newTestSeeder(magnets *memMagnets) *Seeder {
	return NewSeeder(&repository.Repositories{
		User:         &memUsers{},
		BlogPost:     &memPosts{},
		LeadMagnet:   magnets,
		Product:      &memProducts{},
		CourseLesson: &memLessons{},
	})
}

func TestSeedProductsIdempotent(t *testing.T) {
	products := &memProducts{}
	s := NewSeeder(&repository.Repositories{
		User: &memUsers{}, BlogPost: &memPosts{}, LeadMagnet: &memMagnets{},
		Product: products, CourseLesson: &memLessons{},
	})

	first := s.SeedProducts()
	if !first.Success {
		t.Fatalf("first run failed: %s", first.Message())
	}
	if products.inserts != 3 {
		t.Fatalf("first run inserted %d products, want 3", products.inserts)
	}

	second := s.SeedProducts()
	if !second.Success {
		t.Fatalf("second run failed: %s", second.Message())
	}
	// The second run must insert nothing and say so.
	if products.inserts != 3 {
		t.Fatalf("second run inserted %d extra products", products.inserts-3)
	}
	if !strings.Contains(second.Message(), "already exists") {
		t.Fatalf("second run message = %q, want already-exists report", second.Message())
	}
}

func TestSeedLeadMagnetsIdempotent(t *testing.T) {
	magnets := &memMagnets{}
	s := newTestSeeder(magnets)

	if r := s.SeedLeadMagnets(); !r.Success {
		t.Fatalf("first run failed: %s", r.Message())
	}
	inserted := magnets.inserts

	if r := s.SeedLeadMagnets(); !r.Success {
		t.Fatalf("second run failed: %s", r.Message())
	}
	if magnets.inserts != inserted {
		t.Fatalf("second run inserted %d extra magnets", magnets.inserts-inserted)
	}
}

func TestSeedStepFailureIsIsolated(t *testing.T) {
	magnets := &memMagnets{failOn: "reading-guide"}
	s := newTestSeeder(magnets)

	r := s.SeedLeadMagnets()
	if r.Success {
		t.Fatal("run with a failing insert reported success")
	}
	// The failure of one magnet must not stop the others.
	if _, ok := magnets.rows["first-3-chapters"]; !ok {
		t.Fatal("earlier magnet missing after later failure")
	}
	if _, ok := magnets.rows["craving-emergency-card"]; !ok {
		t.Fatal("later magnet missing: failing step stopped the loop")
	}
	if !strings.Contains(r.Message(), "simulated insert failure") {
		t.Fatalf("message %q does not carry the step error", r.Message())
	}
}

func TestSeedAllRunsEveryStep(t *testing.T) {
	magnets := &memMagnets{failOn: "reading-guide"}
	s := newTestSeeder(magnets)

	r := s.SeedAll()
	if r.Success {
		t.Fatal("SeedAll with a failing step reported success")
	}
	// Steps after the failing one still ran.
	if !strings.Contains(r.Message(), "lessons") {
		t.Fatalf("lessons step missing from combined report: %q", r.Message())
	}
}

func TestSeedLessonsIdempotent(t *testing.T) {
	lessons := &memLessons{}
	s := NewSeeder(&repository.Repositories{
		User: &memUsers{}, BlogPost: &memPosts{}, LeadMagnet: &memMagnets{},
		Product: &memProducts{}, CourseLesson: lessons,
	})

	if r := s.SeedLessons(); !r.Success {
		t.Fatalf("first run failed: %s", r.Message())
	}
	count := len(lessons.rows)
	if count == 0 {
		t.Fatal("no lessons created")
	}

	second := s.SeedLessons()
	if !second.Success {
		t.Fatalf("second run failed: %s", second.Message())
	}
	if len(lessons.rows) != count {
		t.Fatalf("second run added lessons: %d -> %d", count, len(lessons.rows))
	}
	if !strings.Contains(second.Message(), "already exist") {
		t.Fatalf("second run message = %q", second.Message())
	}
}
