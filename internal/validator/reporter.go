package validator

import (
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
)

// Format specifies the output format for validation reports.
type Format string

const (
	// FormatText produces human-readable text output.
	FormatText Format = "text"
	// FormatJSON produces machine-readable JSON output.
	FormatJSON Format = "json"
)

// Reporter formats and writes validation results.
type Reporter struct {
	out    io.Writer
	format Format
}

// NewReporter creates a new Reporter.
func NewReporter(out io.Writer, format Format) *Reporter {
	return &Reporter{
		out:    out,
		format: format,
	}
}

// jsonReport is the document written for FormatJSON.
type jsonReport struct {
	Checked  int     `json:"checked"`
	Errors   int     `json:"errors"`
	Warnings int     `json:"warnings"`
	Issues   []Issue `json:"issues"`
}

// Report writes the validation result for checked documents to the output.
func (r *Reporter) Report(result *Result, checked int) error {
	if result == nil {
		result = &Result{}
	}

	switch r.format {
	case FormatJSON:
		return r.reportJSON(result, checked)
	default:
		return r.reportText(result, checked)
	}
}

func (r *Reporter) reportJSON(result *Result, checked int) error {
	report := jsonReport{
		Checked:  checked,
		Errors:   len(result.Errors()),
		Warnings: len(result.Warnings()),
		Issues:   result.Issues,
	}
	if report.Issues == nil {
		report.Issues = []Issue{}
	}
	encoder := json.NewEncoder(r.out)
	encoder.SetIndent("", "  ")
	return errors.Wrap(encoder.Encode(report), "encoding JSON report")
}

// reportText prints issues grouped by source, errors before warnings.
func (r *Reporter) reportText(result *Result, checked int) error {
	errs := result.Errors()
	warnings := result.Warnings()

	if len(errs) == 0 && len(warnings) == 0 {
		fmt.Fprintln(r.out, color.GreenString("✓ %d post(s) checked, no issues", checked))
		return nil
	}

	issues := slices.Clone(result.Issues)
	slices.SortStableFunc(issues, func(a, b Issue) int {
		return cmp.Or(strings.Compare(a.Source, b.Source), cmp.Compare(a.Severity, b.Severity))
	})

	source := "\x00"
	for _, i := range issues {
		if i.Source != source {
			if source != "\x00" {
				fmt.Fprintln(r.out)
			}
			source = i.Source
			name := source
			if name == "" {
				name = "(general)"
			}
			fmt.Fprintln(r.out, color.New(color.Bold).Sprint(name))
		}
		r.printIssue(i)
	}
	fmt.Fprintln(r.out)

	summary := []string{}
	if len(errs) > 0 {
		summary = append(summary, color.RedString("%d error(s)", len(errs)))
	}
	if len(warnings) > 0 {
		summary = append(summary, color.YellowString("%d warning(s)", len(warnings)))
	}
	fmt.Fprintf(r.out, "%d post(s) checked: %s\n", checked, strings.Join(summary, ", "))

	return nil
}

func (r *Reporter) printIssue(i Issue) {
	c := color.FgYellow
	if i.Severity == SeverityError {
		c = color.FgRed
	}
	printer := color.New(c).SprintFunc()

	// Format:  • severity field: message [value]
	var sb strings.Builder
	sb.WriteString("  • ")
	sb.WriteString(printer(i.Severity.String()))
	sb.WriteString(" ")

	if i.Field != "" {
		sb.WriteString(i.Field)
		sb.WriteString(": ")
	}

	sb.WriteString(i.Message)

	if i.Value != nil {
		valStr := fmt.Sprintf("%v", i.Value)
		if len(valStr) > 50 {
			valStr = valStr[:47] + "..."
		}
		sb.WriteString(color.New(color.FgHiBlack).Sprintf(" [%s]", valStr))
	}

	fmt.Fprintln(r.out, sb.String())
}
