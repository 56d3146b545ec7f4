package doctor

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockCheck implements Check for testing.
type mockCheck struct {
	mock.Mock
}

func (m *mockCheck) Name() string     { return m.Called().String(0) }
func (m *mockCheck) Category() string { return m.Called().String(0) }

func (m *mockCheck) Run(ctx context.Context) *CheckResult {
	return m.Called(ctx).Get(0).(*CheckResult)
}

func newMockCheck(t *testing.T, status Severity) *mockCheck {
	t.Helper()
	m := &mockCheck{}
	m.On("Run", mock.Anything).Return(&CheckResult{Name: status.String(), Status: status}).Once()
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// fixableCheck is a Check that also implements Fixer.
type fixableCheck struct {
	*mockCheck
	canFix bool
	fixed  int
}

func (f *fixableCheck) CanFix() bool { return f.canFix }

func (f *fixableCheck) Fix() []FixResult {
	f.fixed++
	return []FixResult{{Path: "x", Fixed: true, Description: "chmod 0644"}}
}

func TestRunner_AddCheck(t *testing.T) {
	r := NewRunner()
	names := []string{"first", "second", "third"}
	for _, name := range names {
		m := &mockCheck{}
		m.On("Name").Return(name).Maybe()
		r.AddCheck(m)
	}

	require.Len(t, r.checks, 3)
	for i, want := range names {
		assert.Equal(t, want, r.checks[i].Name())
	}
}

func TestRunner_Run_Summary(t *testing.T) {
	r := NewRunner(
		newMockCheck(t, SeverityPass),
		newMockCheck(t, SeverityPass),
		newMockCheck(t, SeverityInfo),
		newMockCheck(t, SeverityWarning),
		newMockCheck(t, SeverityError),
	)

	before := time.Now().UTC()
	report := r.Run(t.Context())

	assert.Equal(t, Summary{Passed: 2, Info: 1, Warnings: 1, Errors: 1}, report.Summary)
	assert.True(t, report.HasErrors())
	assert.True(t, report.HasWarnings())
	assert.False(t, report.Timestamp.Before(before))

	got := make([]Severity, len(report.Results))
	for i, res := range report.Results {
		got[i] = res.Status
	}
	assert.Equal(t, []Severity{SeverityPass, SeverityPass, SeverityInfo, SeverityWarning, SeverityError}, got)
}

func TestRunner_Run_Empty(t *testing.T) {
	report := NewRunner().Run(t.Context())
	assert.Empty(t, report.Results)
	assert.False(t, report.HasErrors())
	assert.False(t, report.HasWarnings())
}

func TestRunner_Fix(t *testing.T) {
	fixable := &fixableCheck{mockCheck: newMockCheck(t, SeverityWarning), canFix: true}
	clean := &fixableCheck{mockCheck: newMockCheck(t, SeverityPass)}
	r := NewRunner(fixable, clean, newMockCheck(t, SeverityPass))

	r.Run(t.Context())
	results := r.Fix()

	require.Len(t, results, 1)
	assert.True(t, results[0].Fixed)
	assert.Equal(t, 1, fixable.fixed)
	assert.Equal(t, 0, clean.fixed)
}

func TestSeverity_Text(t *testing.T) {
	for _, s := range []Severity{SeverityPass, SeverityInfo, SeverityWarning, SeverityError} {
		text, err := s.MarshalText()
		require.NoError(t, err)

		var got Severity
		require.NoError(t, got.UnmarshalText(text))
		assert.Equal(t, s, got)
	}

	assert.Equal(t, "unknown", Severity(42).String())
	var s Severity
	assert.Error(t, s.UnmarshalText([]byte("fatal")))
}

func TestReport_JSON(t *testing.T) {
	report := &Report{
		Results: []*CheckResult{{Name: "config", Category: "config", Status: SeverityInfo, Message: "defaults"}},
		Summary: Summary{Info: 1},
	}

	data, err := json.Marshal(report)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"status":"info"`)
	assert.Contains(t, string(data), `"summary":{"passed":0,"info":1,"warnings":0,"errors":0}`)
	assert.NotContains(t, string(data), "fix_hint")
}
