package lesson

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/edutrack/core"
)

// accepted `dateTaught` layouts
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// Lesson is owned by the teacher who submitted it. Lessons are never updated nor deleted.
type Lesson struct {
	ID               int       `json:"id"`
	TeacherID        int       `json:"teacherId"`
	Title            string    `json:"title"`
	Description      *string   `json:"description"`
	SubjectArea      string    `json:"subjectArea"`
	GradeLevel       string    `json:"gradeLevel"`
	DateTaught       time.Time `json:"dateTaught"`
	StandardsCovered []string  `json:"standardsCovered"` // standard codes, in submission order
	CreatedAt        time.Time `json:"createdAt"`        // UTC
}

// WithTeacher is a Lesson annotated with its teacher's full name.
type WithTeacher struct {
	Lesson
	TeacherName string `json:"teacherName"`
}

// NewLesson contains information needed to create a new Lesson.
type NewLesson struct {
	Title            string   `json:"title" validate:"required"`
	Description      string   `json:"description"`
	SubjectArea      string   `json:"subjectArea" validate:"required"`
	GradeLevel       string   `json:"gradeLevel" validate:"required"`
	DateTaught       string   `json:"dateTaught" validate:"required"`
	StandardsCovered []string `json:"standardsCovered"`

	taughtAt time.Time
}

func (nl *NewLesson) Validate(validate *validator.Validate) error {
	nl.Title = core.CleanString(nl.Title)
	nl.Description = core.CleanString(nl.Description)
	nl.SubjectArea = core.CleanString(nl.SubjectArea)
	nl.GradeLevel = core.CleanString(nl.GradeLevel)
	nl.DateTaught = core.CleanString(nl.DateTaught)

	// codes keep their order & duplicates: every occurrence of a known code is a coverage event
	codes := make([]string, 0, len(nl.StandardsCovered))
	for _, code := range nl.StandardsCovered {
		if code = core.CleanString(code); code != "" {
			codes = append(codes, code)
		}
	}
	nl.StandardsCovered = codes

	if err := validate.Struct(nl); err != nil {
		return err
	}

	taughtAt, ok := parseDate(nl.DateTaught)
	if !ok {
		return core.NewValidationError(nil, core.FieldError{
			Field: "dateTaught",
			Error: "dateTaught must be a RFC 3339 timestamp or a YYYY-MM-DD date",
		})
	}
	nl.taughtAt = taughtAt
	return nil
}

// TaughtAt returns the parsed DateTaught; it is only set after a successful Validate.
func (nl NewLesson) TaughtAt() time.Time {
	return nl.taughtAt
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
