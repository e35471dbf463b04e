package careers

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"

	"github.com/spigell/career-compass/internal/riasec"
)

// ErrUnsupportedFormat is returned for uploads that are neither JSON nor CSV.
var ErrUnsupportedFormat = errors.New("unsupported dataset format")

// RecordError describes a single rejected record. Rejections never abort
// ingestion of the remaining records.
type RecordError struct {
	Index  int    `json:"index"`
	ID     string `json:"id,omitempty"`
	Reason string `json:"reason"`
}

func (e RecordError) String() string {
	if e.ID == "" {
		return fmt.Sprintf("record #%d: %s", e.Index+1, e.Reason)
	}
	return fmt.Sprintf("record #%d (%s): %s", e.Index+1, e.ID, e.Reason)
}

// Report summarises an ingestion run.
type Report struct {
	Initial  int           `json:"initial"`
	Accepted int           `json:"accepted"`
	Rejected int           `json:"rejected"`
	Errors   []RecordError `json:"errors,omitempty"`
}

// Result carries the accepted records and the report of a parse.
type Result struct {
	Records []Record
	Report  Report
}

// Snapshot builds an immutable snapshot from the accepted records.
func (r *Result) Snapshot(source string) *Snapshot {
	return NewSnapshot(source, r.Records)
}

type recordInput struct {
	ID              string   `mapstructure:"id" validate:"required"`
	Title           string   `mapstructure:"title" validate:"required"`
	Description     string   `mapstructure:"description"`
	PrimaryType     string   `mapstructure:"primaryType" validate:"omitempty,riasec"`
	SecondaryType   string   `mapstructure:"secondaryType" validate:"omitempty,riasec,nefield=PrimaryType"`
	RequiredSkills  []string `mapstructure:"requiredSkills"`
	WorkEnvironment []string `mapstructure:"workEnvironment"`
	Values          []string `mapstructure:"values"`
	SalaryRange     string   `mapstructure:"salaryRange"`
	GrowthOutlook   string   `mapstructure:"growthOutlook"`
	Education       string   `mapstructure:"education"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	_ = v.RegisterValidation("riasec", func(fl validator.FieldLevel) bool {
		return riasec.Dimension(fl.Field().String()).Valid()
	})
	return v
}

// Parse dispatches on the file extension of name.
func Parse(name string, data []byte) (*Result, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return ParseJSON(data)
	case ".csv":
		return ParseCSV(data)
	default:
		return nil, fmt.Errorf("%w: %q (expected .json or .csv)", ErrUnsupportedFormat, name)
	}
}

// ParseJSON reads a JSON array of career objects.
func ParseJSON(data []byte) (*Result, error) {
	var items []any
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse career json: expected an array of career objects: %w", err)
	}

	return ingest(items), nil
}

// ParseCSV reads a CSV document with a header row. List columns are split on
// '|' or ';'.
func ParseCSV(data []byte) (*Result, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("parse career csv: missing header row")
		}
		return nil, fmt.Errorf("parse career csv header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}

	var rows []any
	for {
		line, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse career csv: %w", err)
		}

		row := make(map[string]any, len(header))
		for i, column := range header {
			if i < len(line) && column != "" {
				row[column] = line[i]
			}
		}
		rows = append(rows, row)
	}

	return ingest(rows), nil
}

func ingest(rows []any) *Result {
	result := &Result{Report: Report{Initial: len(rows)}}
	seen := make(map[string]bool, len(rows))

	for idx, row := range rows {
		record, err := decodeRecord(row)
		if err == nil && seen[record.ID] {
			err = fmt.Errorf("duplicate id %q", record.ID)
		}
		if err != nil {
			result.Report.Errors = append(result.Report.Errors, RecordError{
				Index:  idx,
				ID:     rowID(row),
				Reason: err.Error(),
			})
			continue
		}

		seen[record.ID] = true
		result.Records = append(result.Records, record)
	}

	result.Report.Accepted = len(result.Records)
	result.Report.Rejected = len(result.Report.Errors)
	return result
}

func decodeRecord(row any) (Record, error) {
	fields, ok := row.(map[string]any)
	if !ok {
		return Record{}, fmt.Errorf("expected an object, got %T", row)
	}

	var in recordInput
	cfg := &mapstructure.DecoderConfig{
		DecodeHook:       listHook,
		WeaklyTypedInput: true,
		Result:           &in,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return Record{}, err
	}
	if err := decoder.Decode(fields); err != nil {
		return Record{}, fmt.Errorf("decode: %w", err)
	}

	in.normalize()

	if err := validate.Struct(&in); err != nil {
		return Record{}, describeValidation(err)
	}
	if in.PrimaryType == "" && in.SecondaryType != "" {
		return Record{}, errors.New("secondaryType requires primaryType")
	}

	return Record{
		ID:              in.ID,
		Title:           in.Title,
		Description:     in.Description,
		PrimaryType:     riasec.Dimension(in.PrimaryType),
		SecondaryType:   riasec.Dimension(in.SecondaryType),
		RequiredSkills:  in.RequiredSkills,
		WorkEnvironment: in.WorkEnvironment,
		Values:          in.Values,
		SalaryRange:     in.SalaryRange,
		GrowthOutlook:   in.GrowthOutlook,
		Education:       in.Education,
	}, nil
}

func (in *recordInput) normalize() {
	in.ID = strings.TrimSpace(in.ID)
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.PrimaryType = normalizeType(in.PrimaryType)
	in.SecondaryType = normalizeType(in.SecondaryType)
	in.RequiredSkills = cleanIDs(in.RequiredSkills)
	in.WorkEnvironment = cleanList(in.WorkEnvironment)
	in.Values = cleanIDs(in.Values)
	in.SalaryRange = strings.TrimSpace(in.SalaryRange)
	in.GrowthOutlook = strings.TrimSpace(in.GrowthOutlook)
	in.Education = strings.TrimSpace(in.Education)
}

// normalizeType lower-cases known names and single-letter codes; unknown
// values are kept so validation can report them.
func normalizeType(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if d, err := riasec.Parse(value); err == nil {
		return string(d)
	}
	return value
}

func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// cleanIDs lower-cases skill ids and value tags so they compare equal to
// the ids recorded in a profile.
func cleanIDs(items []string) []string {
	out := cleanList(items)
	for i := range out {
		out[i] = strings.ToLower(out[i])
	}
	return out
}

// listHook splits delimited strings into slices so CSV cells and JSON
// arrays decode into the same field.
func listHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Slice {
		return data, nil
	}
	raw := data.(string)
	if strings.TrimSpace(raw) == "" {
		return []string{}, nil
	}
	return strings.FieldsFunc(raw, func(r rune) bool {
		return r == '|' || r == ';'
	}), nil
}

func describeValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("missing required field %s", fe.Field()))
		case "riasec":
			messages = append(messages, fmt.Sprintf("%s %q is not a RIASEC type", fe.Field(), fe.Value()))
		case "nefield":
			messages = append(messages, fmt.Sprintf("%s must differ from primaryType", fe.Field()))
		default:
			messages = append(messages, fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag()))
		}
	}
	return errors.New(strings.Join(messages, "; "))
}

func rowID(row any) string {
	fields, ok := row.(map[string]any)
	if !ok {
		return ""
	}
	if id, ok := fields["id"]; ok && id != nil {
		return strings.TrimSpace(fmt.Sprint(id))
	}
	return ""
}
