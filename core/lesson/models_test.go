package lesson

import (
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/edutrack/core"
)

func TestNewLesson_Validate(t *testing.T) {
	validate := validator.New()
	core.InitValidators(validate, core.NewTranslator())

	tests := []struct {
		name      string
		date      string
		wantTime  time.Time
		wantField string
	}{
		{name: "date only", date: "2024-03-05", wantTime: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
		{name: "rfc3339", date: "2024-03-05T14:30:00Z", wantTime: time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)},
		{name: "missing", date: " ", wantField: "dateTaught"},
		{name: "garbage", date: "05/03/2024", wantField: "dateTaught"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nl := NewLesson{
				Title:            " Rounding ",
				SubjectArea:      "Mathematics",
				GradeLevel:       "3",
				DateTaught:       tt.date,
				StandardsCovered: []string{" MA.3.NBT.1 ", "", "MA.3.NBT.1"},
			}
			err := nl.Validate(validate)
			if tt.wantField != "" {
				switch verr := err.(type) {
				case validator.ValidationErrors:
					assert.Equal(t, tt.wantField, verr[0].Field())
				case *core.ValidationError:
					assert.Equal(t, tt.wantField, verr.Fields[0].Field)
				default:
					t.Fatalf("Validate() error = %v, want a validation error", err)
				}
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.wantTime.Equal(nl.TaughtAt()))
			assert.Equal(t, "Rounding", nl.Title)
			assert.Equal(t, []string{"MA.3.NBT.1", "MA.3.NBT.1"}, nl.StandardsCovered)
		})
	}
}
