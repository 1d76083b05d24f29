package standard

import (
	_ "embed"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

//go:embed catalog.toml
var defaultCatalog []byte

type (
	// Catalog is the TOML document the standards are loaded from.
	Catalog struct {
		Standards []CatalogEntry `toml:"standards" validate:"dive"`
	}

	CatalogEntry struct {
		Code        string `toml:"code" validate:"required"`
		Title       string `toml:"title" validate:"required"`
		Description string `toml:"description" validate:"required"`
		SubjectArea string `toml:"subject_area" validate:"required"`
		GradeLevel  string `toml:"grade_level" validate:"required"`
		Category    string `toml:"category" validate:"required"`
	}
)

func (e CatalogEntry) Standard() Standard {
	return Standard{
		Code:        e.Code,
		Title:       e.Title,
		Description: e.Description,
		SubjectArea: e.SubjectArea,
		GradeLevel:  e.GradeLevel,
		Category:    e.Category,
	}
}

// SubjectCounts returns the number of standards per subject area.
func (c Catalog) SubjectCounts() map[string]int {
	counts := make(map[string]int)
	for _, e := range c.Standards {
		counts[e.SubjectArea]++
	}
	return counts
}

// DefaultCatalog returns the PreK-12 catalog embedded in the binary.
func DefaultCatalog() (Catalog, error) {
	return ParseCatalog(defaultCatalog)
}

// ReadCatalogFile parses the catalog at `path`, or the default catalog if `path` is empty.
func ReadCatalogFile(path string) (Catalog, error) {
	if path == "" {
		return DefaultCatalog()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, errors.Wrapf(err, "reading catalog %s", path)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes a TOML catalog and checks that every entry is complete and every code unique.
func ParseCatalog(data []byte) (Catalog, error) {
	var cat Catalog
	if err := toml.Unmarshal(data, &cat); err != nil {
		return Catalog{}, errors.Wrap(err, "decoding catalog")
	}

	validate := validator.New()
	seen := make(map[string]int, len(cat.Standards))
	for i, e := range cat.Standards {
		if err := validate.Struct(e); err != nil {
			return Catalog{}, errors.Wrapf(err, "catalog entry #%d (%q)", i+1, e.Code)
		}
		if prev, ok := seen[e.Code]; ok {
			return Catalog{}, errors.Errorf("catalog entry #%d: code %q already used by entry #%d", i+1, e.Code, prev)
		}
		seen[e.Code] = i + 1
	}
	return cat, nil
}
