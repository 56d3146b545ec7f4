package validator

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestReporter_Report(t *testing.T) {
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	result := &Result{}
	result.Merge("b-post", &Result{Issues: []Issue{{Severity: SeverityWarning, Field: "summary", Message: "is recommended"}}})
	result.Merge("a-post", &Result{Issues: []Issue{
		{Severity: SeverityWarning, Field: "image", Message: "is empty", Value: strings.Repeat("x", 60)},
		{Severity: SeverityError, Field: "title", Message: "is required"},
	}})

	t.Run("text format", func(t *testing.T) {
		var buf bytes.Buffer
		if err := NewReporter(&buf, FormatText).Report(result, 3); err != nil {
			t.Fatalf("Report() error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{
			"a-post\n  • error title: is required\n  • warning image: is empty [",
			"...]",
			"b-post\n  • warning summary: is recommended",
			"3 post(s) checked: 1 error(s), 2 warning(s)",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("output missing %q:\n%s", want, output)
			}
		}
		if strings.Index(output, "a-post") > strings.Index(output, "b-post") {
			t.Error("sources should be sorted")
		}
	})

	t.Run("json format", func(t *testing.T) {
		var buf bytes.Buffer
		if err := NewReporter(&buf, FormatJSON).Report(result, 3); err != nil {
			t.Fatalf("Report() error: %v", err)
		}

		var decoded jsonReport
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("failed to decode JSON output: %v", err)
		}
		if decoded.Checked != 3 || decoded.Errors != 1 || decoded.Warnings != 2 {
			t.Errorf("counts = %+v", decoded)
		}
		if len(decoded.Issues) != 3 || decoded.Issues[0].Source != "b-post" {
			t.Errorf("issues = %+v", decoded.Issues)
		}
	})

	t.Run("empty result text", func(t *testing.T) {
		var buf bytes.Buffer
		if err := NewReporter(&buf, FormatText).Report(&Result{}, 2); err != nil {
			t.Fatalf("Report() error: %v", err)
		}
		if !strings.Contains(buf.String(), "2 post(s) checked, no issues") {
			t.Errorf("output = %q", buf.String())
		}
	})

	t.Run("nil result json", func(t *testing.T) {
		var buf bytes.Buffer
		if err := NewReporter(&buf, FormatJSON).Report(nil, 0); err != nil {
			t.Fatalf("Report() error: %v", err)
		}
		if !strings.Contains(buf.String(), `"issues": []`) {
			t.Errorf("output = %q", buf.String())
		}
	})
}
