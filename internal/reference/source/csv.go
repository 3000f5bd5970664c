package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"surveymatch/internal/survey/models"
	"surveymatch/pkg/platform/sentinel"
)

// DefaultDelimiter matches the survey export format.
const DefaultDelimiter = ';'

// CSVFile reads the reference population from a delimiter-separated file with
// a header row. Columns are matched by name; extra columns are ignored.
type CSVFile struct {
	Path      string
	Delimiter rune
}

// NewCSVFile builds a CSV source. A zero delimiter means ';' unless the file
// has a .tsv extension.
func NewCSVFile(path string, delimiter rune) *CSVFile {
	if delimiter == 0 {
		delimiter = DefaultDelimiter
		if strings.ToLower(filepath.Ext(path)) == ".tsv" {
			delimiter = '\t'
		}
	}
	return &CSVFile{Path: path, Delimiter: delimiter}
}

// People parses every data row into a Person, in file order.
func (c *CSVFile) People(ctx context.Context) ([]models.Person, error) {
	f, err := os.Open(c.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", c.Path, sentinel.ErrNotFound)
		}
		return nil, err
	}
	defer f.Close()
	return ReadPeople(ctx, f, c.Delimiter)
}

// ReadPeople parses a population from r.
func ReadPeople(ctx context.Context, r io.Reader, delimiter rune) ([]models.Person, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: missing header row", sentinel.ErrMalformed)
		}
		return nil, fmt.Errorf("%w: %v", sentinel.ErrMalformed, err)
	}
	columns, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var people []models.Person
	line := 1
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", sentinel.ErrMalformed, line, err)
		}
		if blank(row) {
			continue
		}
		p, err := models.NewPerson(models.Answers{
			Age:        field(row, columns[models.AttrAge]),
			EduLevel:   field(row, columns[models.AttrEduLevel]),
			FavAnimals: field(row, columns[models.AttrFavAnimals]),
			FavPlace:   field(row, columns[models.AttrFavPlace]),
			Gender:     field(row, columns[models.AttrGender]),
		})
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", sentinel.ErrMalformed, line, err)
		}
		people = append(people, p)
	}
	return people, nil
}

func columnIndex(header []string) (map[models.Attribute]int, error) {
	idx := make(map[models.Attribute]int, len(models.Attributes))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if attr := models.Attribute(name); attr.IsValid() {
			if _, dup := idx[attr]; !dup {
				idx[attr] = i
			}
		}
	}
	var missing []string
	for _, attr := range models.Attributes {
		if _, ok := idx[attr]; !ok {
			missing = append(missing, attr.String())
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing columns %s", sentinel.ErrMalformed, strings.Join(missing, ", "))
	}
	return idx, nil
}

func field(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
