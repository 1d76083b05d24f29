package inmemdb

import "github.com/trezcool/edutrack/core/progress"

type progressRepository struct {
	db *table[progress.Entry]
}

func NewProgressRepository(db *DB) progress.Repository {
	return &progressRepository{db: db.progress}
}

func (repo *progressRepository) CreateProgress(e progress.Entry) (progress.Entry, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	e.ID = repo.db.nextPK()
	repo.db.rows[e.ID] = &e
	return e, nil
}

func (repo *progressRepository) FilterProgressByTeacher(teacherID int) ([]progress.Entry, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.db.filter(func(e *progress.Entry) bool { return e.TeacherID == teacherID }), nil
}

func (repo *progressRepository) CountProgress() (int, error) {
	return repo.db.count(), nil
}
