package progress

import (
	"time"

	"github.com/trezcool/edutrack/core/standard"
)

// Entry is one coverage event: the teacher covered the standard through the lesson on CompletedAt.
// Entries are never deduplicated; teaching a standard again records a new Entry.
type Entry struct {
	ID          int       `json:"id"`
	TeacherID   int       `json:"teacherId"`
	StandardID  int       `json:"standardId"`
	CompletedAt time.Time `json:"completedAt"` // the lesson's dateTaught
	LessonID    *int      `json:"lessonId"`
}

type EntryWithStandard struct {
	Entry
	Standard *standard.Standard `json:"standard"`
}

type TeacherStats struct {
	CompletedStandards int      `json:"completedStandards"` // coverage events, not distinct standards
	TotalStandards     int      `json:"totalStandards"`
	LessonsThisMonth   int      `json:"lessonsThisMonth"`
	SubjectAreas       []string `json:"subjectAreas"`
}

type TeacherSummary struct {
	ID           int      `json:"id"`
	Name         string   `json:"name"`
	SubjectAreas []string `json:"subjectAreas"`
}

type TeacherReport struct {
	Teacher TeacherSummary `json:"teacher"`
	TeacherStats
	ProgressPercentage float64 `json:"progressPercentage"`
}

type SystemReport struct {
	TotalTeachers   int             `json:"totalTeachers"`
	TotalStandards  int             `json:"totalStandards"`
	TotalLessons    int             `json:"totalLessons"`
	TotalProgress   int             `json:"totalProgress"`
	AverageProgress float64         `json:"averageProgress"`
	PerTeacherStats []TeacherReport `json:"teacherStats"`
}
