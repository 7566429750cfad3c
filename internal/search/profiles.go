package search

import (
	"context"

	"github.com/cassiomolin/lucene-example/internal/domain"
	"github.com/cassiomolin/lucene-example/internal/index"
	"github.com/cassiomolin/lucene-example/internal/mapper"
)

// Profiles answers profile queries. Results are sorted by name.
type Profiles struct {
	searcher[domain.Profile]
}

// NewProfiles creates a profile searcher over store.
func NewProfiles(store *index.Store, executor *index.Executor, opts Options) *Profiles {
	return &Profiles{searcher: newSearcher(store, executor, mapper.DocumentToProfile, opts)}
}

// FindAll returns every profile.
func (p *Profiles) FindAll(ctx context.Context) ([]domain.Profile, error) {
	return p.run(ctx, index.MatchAll())
}

// FindByName returns the profiles whose whole name equals name.
func (p *Profiles) FindByName(ctx context.Context, name string) ([]domain.Profile, error) {
	return p.run(ctx, index.ExactTerm(domain.ProfileName, name))
}

// FindByGender returns the profiles with exactly this gender value.
func (p *Profiles) FindByGender(ctx context.Context, gender string) ([]domain.Profile, error) {
	return p.run(ctx, index.ExactTerm(domain.ProfileGender, gender))
}

// FindBySalaryRange returns profiles with low <= salary <= high.
func (p *Profiles) FindBySalaryRange(ctx context.Context, low, high int64) ([]domain.Profile, error) {
	return p.run(ctx, index.NumericRange(domain.ProfileSalary, low, high))
}

// FindByDateOfBirthRange returns profiles born between from and to, inclusive.
func (p *Profiles) FindByDateOfBirthRange(ctx context.Context, from, to domain.Date) ([]domain.Profile, error) {
	return p.run(ctx, index.DateRange(domain.ProfileDateOfBirth, from, to))
}

// Search runs an arbitrary query against the profile store.
func (p *Profiles) Search(ctx context.Context, q index.Query) ([]domain.Profile, error) {
	return p.run(ctx, q)
}

// Get returns the profile with the given ID.
func (p *Profiles) Get(ctx context.Context, id string) (domain.Profile, bool, error) {
	return p.get(ctx, id)
}
