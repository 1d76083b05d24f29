package inmemdb

import "github.com/trezcool/edutrack/core/lesson"

type lessonRepository struct {
	db *table[lesson.Lesson]
}

func NewLessonRepository(db *DB) lesson.Repository {
	return &lessonRepository{db: db.lesson}
}

func (repo *lessonRepository) CreateLesson(l lesson.Lesson) (lesson.Lesson, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	l.ID = repo.db.nextPK()
	l.StandardsCovered = append([]string{}, l.StandardsCovered...)
	repo.db.rows[l.ID] = &l
	return l, nil
}

func (repo *lessonRepository) GetLessonByID(id int) (lesson.Lesson, error) {
	if l, ok := repo.db.get(id); ok {
		return l, nil
	}
	return lesson.Lesson{}, lesson.ErrNotFound
}

func (repo *lessonRepository) QueryAllLessons() ([]lesson.Lesson, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.db.filter(nil), nil
}

func (repo *lessonRepository) FilterLessonsByTeacher(teacherID int) ([]lesson.Lesson, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.db.filter(func(l *lesson.Lesson) bool { return l.TeacherID == teacherID }), nil
}
