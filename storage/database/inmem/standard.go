package inmemdb

import (
	"strings"

	"github.com/trezcool/edutrack/core/standard"
)

type standardRepository struct {
	db *table[standard.Standard]
}

func NewStandardRepository(db *DB) standard.Repository {
	return &standardRepository{db: db.standard}
}

func (repo *standardRepository) CreateStandard(std standard.Standard) (standard.Standard, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, s := range repo.db.rows {
		if s.Code == std.Code {
			return standard.Standard{}, standard.ErrCodeExists
		}
	}
	std.ID = repo.db.nextPK()
	repo.db.rows[std.ID] = &std
	return std, nil
}

func (repo *standardRepository) GetStandardByID(id int) (standard.Standard, error) {
	if std, ok := repo.db.get(id); ok {
		return std, nil
	}
	return standard.Standard{}, standard.ErrNotFound
}

func (repo *standardRepository) GetStandardByCode(code string) (standard.Standard, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, s := range repo.db.rows {
		if s.Code == code {
			return *s, nil
		}
	}
	return standard.Standard{}, standard.ErrNotFound
}

func (repo *standardRepository) FilterStandards(filter standard.QueryFilter) ([]standard.Standard, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	search := strings.ToLower(filter.Search)
	return repo.db.filter(func(s *standard.Standard) bool {
		if filter.Subject != "" && !strings.EqualFold(s.SubjectArea, filter.Subject) {
			return false
		}
		if filter.Grade != "" && s.GradeLevel != filter.Grade {
			return false
		}
		if search != "" {
			return strings.Contains(strings.ToLower(s.Code), search) ||
				strings.Contains(strings.ToLower(s.Title), search) ||
				strings.Contains(strings.ToLower(s.Description), search)
		}
		return true
	}), nil
}

func (repo *standardRepository) CountStandards() (int, error) {
	return repo.db.count(), nil
}
