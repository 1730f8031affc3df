package filter

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/google/cel-go/cel"
	"github.com/poiesic/satchel/core"
	"github.com/samber/lo"
)

var (
	// ErrInvalidExpression indicates a CEL expression that failed to compile.
	ErrInvalidExpression = errors.New("invalid filter expression")

	// ErrNotBoolean indicates a CEL expression that does not yield a bool.
	ErrNotBoolean = errors.New("filter expression must evaluate to bool")
)

// Variables available to filter expressions. title and body are lower-cased;
// due_day counts calendar days since the Unix epoch.
const (
	VarTitle       = "title"
	VarBody        = "body"
	VarContentType = "content_type"
	VarCompleted   = "completed"
	VarHasDue      = "has_due"
	VarDueDay      = "due_day"
	VarHasGrade    = "has_grade"
	VarGradeRatio  = "grade_ratio"
)

// Expression renders the criteria as a CEL expression over the filter
// variables. The empty criteria render as "true".
func (c Criteria) Expression() string {
	var terms []string
	if len(c.ContentTypes) > 0 {
		quoted := lo.Map(c.ContentTypes, func(t core.ContentType, _ int) string {
			return strconv.Quote(string(t))
		})
		terms = append(terms, fmt.Sprintf("%s in [%s]", VarContentType, strings.Join(quoted, ", ")))
	}
	if c.RequireIncomplete {
		terms = append(terms, "!"+VarCompleted)
	}
	if c.RequireCompleted {
		terms = append(terms, VarCompleted)
	}
	if c.DueFrom != nil || c.DueTo != nil {
		terms = append(terms, VarHasDue)
	}
	if c.DueFrom != nil {
		terms = append(terms, fmt.Sprintf("%s >= %d", VarDueDay, EpochDay(*c.DueFrom)))
	}
	if c.DueTo != nil {
		terms = append(terms, fmt.Sprintf("%s <= %d", VarDueDay, EpochDay(*c.DueTo)))
	}
	if len(c.Keywords) > 0 {
		alts := lo.Map(c.Keywords, func(k string, _ int) string {
			return containsTerm(k)
		})
		terms = append(terms, "("+strings.Join(alts, " || ")+")")
	}
	if c.Subject != "" {
		terms = append(terms, "("+containsTerm(c.Subject)+")")
	}
	if c.MaxGradeRatio != nil {
		terms = append(terms, VarHasGrade, fmt.Sprintf("%s < %s", VarGradeRatio, formatDouble(*c.MaxGradeRatio)))
	}
	if len(terms) == 0 {
		return "true"
	}
	return strings.Join(terms, " && ")
}

func containsTerm(needle string) string {
	q := strconv.Quote(needle)
	return fmt.Sprintf("%s.contains(%s) || %s.contains(%s)", VarTitle, q, VarBody, q)
}

// formatDouble always includes a decimal point so CEL parses a double.
func formatDouble(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// EpochDay returns the number of calendar days from the Unix epoch to t's date.
func EpochDay(t time.Time) int64 {
	return core.CalendarDay(t).Unix() / int64(24*time.Hour/time.Second)
}

// Program is a compiled filter expression.
type Program struct {
	source  string
	program cel.Program
}

// Source returns the expression the program was compiled from.
func (p *Program) Source() string {
	return p.source
}

func newEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable(VarTitle, cel.StringType),
		cel.Variable(VarBody, cel.StringType),
		cel.Variable(VarContentType, cel.StringType),
		cel.Variable(VarCompleted, cel.BoolType),
		cel.Variable(VarHasDue, cel.BoolType),
		cel.Variable(VarDueDay, cel.IntType),
		cel.Variable(VarHasGrade, cel.BoolType),
		cel.Variable(VarGradeRatio, cel.DoubleType),
		cel.CrossTypeNumericComparisons(true),
	)
}

// CompileExpression compiles a filter expression such as the output of
// Criteria.Expression.
func CompileExpression(expr string) (*Program, error) {
	env, err := newEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to build CEL environment: %w", err)
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidExpression, issues.Err())
	}
	if !reflect.DeepEqual(ast.OutputType(), cel.BoolType) {
		return nil, fmt.Errorf("%w: got %s", ErrNotBoolean, ast.OutputType())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidExpression, err)
	}
	return &Program{source: expr, program: prg}, nil
}

// Matches evaluates the program against m. A nil material never matches.
func (p *Program) Matches(m *core.Material) (bool, error) {
	if m == nil {
		return false, nil
	}
	out, _, err := p.program.Eval(Activation(m))
	if err != nil {
		return false, fmt.Errorf("failed to evaluate %q: %w", p.source, err)
	}
	matched, ok := out.Value().(bool)
	if !ok {
		return false, ErrNotBoolean
	}
	return matched, nil
}

// Activation returns the variable bindings for m.
func Activation(m *core.Material) map[string]any {
	vars := map[string]any{
		VarTitle:       strings.ToLower(m.Title),
		VarBody:        strings.ToLower(m.Body()),
		VarContentType: string(m.ContentType),
		VarCompleted:   core.IsCompleted(m),
		VarHasDue:      false,
		VarDueDay:      int64(0),
		VarHasGrade:    false,
		VarGradeRatio:  0.0,
	}
	if m.DueDate != nil && !m.DueDate.IsZero() {
		vars[VarHasDue] = true
		vars[VarDueDay] = EpochDay(*m.DueDate)
	}
	if ratio, ok := core.GradeRatio(m); ok {
		vars[VarHasGrade] = true
		vars[VarGradeRatio] = ratio
	}
	return vars
}
