package validator

import (
	"encoding/json"
	"testing"
)

func TestSeverity_String(t *testing.T) {
	tests := []struct {
		s    Severity
		want string
	}{
		{SeverityError, "error"},
		{SeverityWarning, "warning"},
		{Severity(99), "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.s.String(); got != tt.want {
				t.Errorf("Severity.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSeverity_JSON(t *testing.T) {
	data, err := json.Marshal(Issue{Severity: SeverityWarning, Message: "m"})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(data), `{"severity":"warning","message":"m"}`; got != want {
		t.Errorf("json = %s, want %s", got, want)
	}

	var i Issue
	if err := json.Unmarshal([]byte(`{"severity":"error","message":"m"}`), &i); err != nil {
		t.Fatal(err)
	}
	if i.Severity != SeverityError {
		t.Errorf("Severity = %v, want error", i.Severity)
	}
	if err := json.Unmarshal([]byte(`{"severity":"fatal"}`), &i); err == nil {
		t.Error("expected error for unknown severity")
	}
}

func TestIssue_Error(t *testing.T) {
	tests := []struct {
		name string
		i    Issue
		want string
	}{
		{
			name: "error with field and value",
			i: Issue{
				Severity: SeverityError,
				Field:    "publishedAt",
				Message:  "is not a valid date",
				Value:    "yesterday",
			},
			want: `error: field "publishedAt": is not a valid date (got yesterday)`,
		},
		{
			name: "warning with source and no field",
			i: Issue{
				Severity: SeverityWarning,
				Source:   "hello-world",
				Message:  "no summary",
			},
			want: "hello-world: warning: no summary",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.i.Error(); got != tt.want {
				t.Errorf("Issue.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResult_Helpers(t *testing.T) {
	r := &Result{}
	if r.HasErrors() || r.HasWarnings() {
		t.Error("empty result should have no issues")
	}

	r.AddWarning("summary", "is recommended", nil)
	if r.HasErrors() {
		t.Error("warning should not count as error")
	}
	if !r.HasWarnings() {
		t.Error("expected warnings")
	}

	r.AddError("title", "is required", nil)
	if !r.HasErrors() {
		t.Error("expected errors")
	}
	if len(r.Errors()) != 1 || len(r.Warnings()) != 1 {
		t.Errorf("Errors()=%d Warnings()=%d, want 1 and 1", len(r.Errors()), len(r.Warnings()))
	}
}

func TestResult_Merge(t *testing.T) {
	post := &Result{}
	post.AddError("title", "is required", nil)
	post.Issues = append(post.Issues, Issue{Severity: SeverityWarning, Source: "already-set", Message: "m"})

	all := &Result{}
	all.Merge("hello", post)
	all.Merge("nil-is-ignored", nil)

	if len(all.Issues) != 2 {
		t.Fatalf("merged %d issues, want 2", len(all.Issues))
	}
	if all.Issues[0].Source != "hello" {
		t.Errorf("Source = %q, want hello", all.Issues[0].Source)
	}
	if all.Issues[1].Source != "already-set" {
		t.Errorf("Source = %q, existing source should be kept", all.Issues[1].Source)
	}
	if post.Issues[0].Source != "" {
		t.Error("Merge must not modify the merged result")
	}
}

func TestResult_NilSafety(t *testing.T) {
	var r *Result
	if r.HasErrors() || r.HasWarnings() {
		t.Error("nil result should report no issues")
	}
	if r.Errors() != nil || r.Warnings() != nil {
		t.Error("nil result should return nil slices")
	}
}
