package memory

import (
	"context"
	"sort"
	"sync"

	"tourbook/database/repository"
	"tourbook/models"
)

// UserRepo is an in-memory userRepo.UserRepository.
type UserRepo struct {
	mu    sync.Mutex
	users map[string]models.User
}

func NewUserRepo() *UserRepo {
	return &UserRepo{users: make(map[string]models.User)}
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepo) Create(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[u.ID]; exists {
		return repository.ErrDuplicate
	}
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	r.users[u.ID] = *u
	return nil
}

func (r *UserRepo) Update(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return repository.ErrNotFound
	}
	r.users[u.ID] = *u
	return nil
}

// ProviderRepo is an in-memory providerRepo.ProviderRepository. Settings
// written by CreateWithSettings land in the attached SettingsRepo.
type ProviderRepo struct {
	mu        sync.Mutex
	providers map[string]models.Provider
	Settings  *SettingsRepo
}

func NewProviderRepo(settings *SettingsRepo) *ProviderRepo {
	return &ProviderRepo{providers: make(map[string]models.Provider), Settings: settings}
}

func (r *ProviderRepo) GetByID(_ context.Context, id string) (*models.Provider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.providers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r *ProviderRepo) GetByUserID(_ context.Context, userID string) (*models.Provider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.providers {
		if p.UserID == userID {
			return &p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *ProviderRepo) ListActive(_ context.Context) ([]models.Provider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Provider{}
	for _, p := range r.providers {
		if p.IsActive {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BusinessName < out[j].BusinessName })
	return out, nil
}

func (r *ProviderRepo) CreateWithSettings(ctx context.Context, p *models.Provider, s *models.ProviderSettings) error {
	r.mu.Lock()
	for _, existing := range r.providers {
		if existing.UserID == p.UserID {
			r.mu.Unlock()
			return repository.ErrDuplicate
		}
	}
	r.providers[p.ID] = *p
	r.mu.Unlock()
	if r.Settings != nil {
		return r.Settings.Upsert(ctx, s)
	}
	return nil
}

func (r *ProviderRepo) Update(_ context.Context, p *models.Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.providers[p.ID]; !ok {
		return repository.ErrNotFound
	}
	r.providers[p.ID] = *p
	return nil
}

// SettingsRepo is an in-memory settingsRepo.SettingsRepository.
type SettingsRepo struct {
	mu       sync.Mutex
	settings map[string]models.ProviderSettings
}

func NewSettingsRepo() *SettingsRepo {
	return &SettingsRepo{settings: make(map[string]models.ProviderSettings)}
}

func (r *SettingsRepo) GetByProviderID(_ context.Context, providerID string) (*models.ProviderSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.settings[providerID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &s, nil
}

func (r *SettingsRepo) Upsert(_ context.Context, s *models.ProviderSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.settings[s.ProviderID] = *s
	return nil
}

// CatalogRepo is an in-memory catalogRepo.CatalogRepository.
type CatalogRepo struct {
	mu       sync.Mutex
	services map[string]models.Service
}

func NewCatalogRepo() *CatalogRepo {
	return &CatalogRepo{services: make(map[string]models.Service)}
}

func (r *CatalogRepo) GetByID(_ context.Context, id string) (*models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.services[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &s, nil
}

func (r *CatalogRepo) ListByProvider(_ context.Context, providerID string, includeInactive bool) ([]models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Service{}
	for _, s := range r.services {
		if s.ProviderID == providerID && (includeInactive || s.IsActive) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *CatalogRepo) Create(_ context.Context, s *models.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.services[s.ID]; exists {
		return repository.ErrDuplicate
	}
	r.services[s.ID] = *s
	return nil
}

func (r *CatalogRepo) Update(_ context.Context, s *models.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.services[s.ID]; !ok {
		return repository.ErrNotFound
	}
	r.services[s.ID] = *s
	return nil
}

// ReviewRepo is an in-memory reviewRepo.ReviewRepository.
type ReviewRepo struct {
	mu      sync.Mutex
	reviews []models.Review
}

func NewReviewRepo() *ReviewRepo {
	return &ReviewRepo{}
}

func (r *ReviewRepo) Create(_ context.Context, rv *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reviews = append(r.reviews, *rv)
	return nil
}

func (r *ReviewRepo) ListByProvider(_ context.Context, providerID string) ([]models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Review{}
	for _, rv := range r.reviews {
		if rv.ProviderID == providerID {
			out = append(out, rv)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
