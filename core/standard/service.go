package standard

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/trezcool/edutrack/core"
)

var (
	ErrNotFound   = core.NewNotFoundError("standard not found")
	ErrCodeExists = errors.New("a standard with this code already exists")
)

type (
	// Repository stores Standards. CreateStandard must reject duplicate codes atomically with ErrCodeExists.
	Repository interface {
		CreateStandard(std Standard) (Standard, error)
		GetStandardByID(id int) (Standard, error)
		GetStandardByCode(code string) (Standard, error)
		// FilterStandards applies AND operation on the non-empty QueryFilter fields:
		// Subject is a case-insensitive equality, Grade an exact match and
		// Search a case-insensitive match on one of Code, Title or Description.
		FilterStandards(filter QueryFilter) ([]Standard, error)
		CountStandards() (int, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// LoadCatalog inserts the catalog entries, skipping codes already loaded. It returns the number of new Standards.
func (svc *Service) LoadCatalog(cat Catalog) (int, error) {
	var created int
	for _, e := range cat.Standards {
		if _, err := svc.repo.CreateStandard(e.Standard()); err != nil {
			if errors.Cause(err) == ErrCodeExists {
				continue
			}
			return created, errors.Wrapf(err, "loading standard %q", e.Code)
		}
		created++
	}
	return created, nil
}

func (svc *Service) GetByID(id int) (Standard, error) {
	return svc.repo.GetStandardByID(id)
}

func (svc *Service) GetByCode(code string) (Standard, error) {
	return svc.repo.GetStandardByCode(core.CleanString(code))
}

// Query returns the Standards matching `filter`, ordered by ID.
func (svc *Service) Query(filter QueryFilter) ([]Standard, error) {
	filter.Clean()
	stds, err := svc.repo.FilterStandards(filter)
	if err != nil {
		return nil, err
	}
	sort.Slice(stds, func(i, j int) bool { return stds[i].ID < stds[j].ID })
	return stds, nil
}

func (svc *Service) Count() (int, error) {
	return svc.repo.CountStandards()
}
