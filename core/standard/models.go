package standard

import "github.com/trezcool/edutrack/core"

// Standard is an AERRO curriculum requirement. Standards are reference data: loaded at start up, never mutated.
type Standard struct {
	ID          int    `json:"id"`
	Code        string `json:"code"`
	Title       string `json:"title"`
	Description string `json:"description"`
	SubjectArea string `json:"subjectArea"`
	GradeLevel  string `json:"gradeLevel"`
	Category    string `json:"category"`
}

type QueryFilter struct {
	Subject string `query:"subject"`
	Grade   string `query:"grade"`
	Search  string `query:"search"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Subject == "" && qf.Grade == "" && qf.Search == ""
}

func (qf *QueryFilter) Clean() {
	qf.Subject = core.CleanString(qf.Subject)
	qf.Grade = core.CleanString(qf.Grade)
	qf.Search = core.CleanString(qf.Search)
}
