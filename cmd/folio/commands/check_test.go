package commands

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/folio/internal/errors"
)

func TestCheck_Clean(t *testing.T) {
	dir := writePosts(t, map[string]string{"hello.mdx": helloPost, "launch.mdx": launchPost})

	stdout, _, err := execute(t, "check", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "2 post(s) checked, no issues")
}

func TestCheck_WarningsOnly(t *testing.T) {
	dir := writePosts(t, map[string]string{"bare.mdx": "---\ntitle: Bare\npublishedAt: 2024-01-01\n---\n"})

	stdout, _, err := execute(t, "check", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "bare.mdx")
	assert.Contains(t, stdout, "summary")
	assert.Contains(t, stdout, "1 warning(s)")
}

func TestCheck_Errors(t *testing.T) {
	dir := writePosts(t, map[string]string{
		"hello.mdx":   helloPost,
		"broken.mdx":  "just text",
		"undated.mdx": "---\ntitle: Undated\nsummary: s\npublishedAt: someday\n---\n",
	})

	stdout, _, err := execute(t, "check", "--dir", dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrValidationFailed)
	assert.Equal(t, errors.ExitUser, errors.ExitCode(err))

	assert.Contains(t, stdout, "broken.mdx")
	assert.Contains(t, stdout, "has no header block")
	assert.Contains(t, stdout, "undated.mdx")
	assert.Contains(t, stdout, "is not a valid date")
	assert.Contains(t, stdout, "3 post(s) checked: 2 error(s)")
}

func TestCheck_JSON(t *testing.T) {
	dir := writePosts(t, map[string]string{"hello.mdx": helloPost, "broken.mdx": "just text"})

	stdout, _, err := execute(t, "check", "--dir", dir, "--format", "json")
	require.ErrorIs(t, err, errors.ErrValidationFailed)

	var report struct {
		Checked int `json:"checked"`
		Errors  int `json:"errors"`
		Issues  []struct {
			Severity string `json:"severity"`
			Source   string `json:"source"`
		} `json:"issues"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.Equal(t, 2, report.Checked)
	assert.Equal(t, 1, report.Errors)
	require.Len(t, report.Issues, 1)
	assert.Equal(t, "error", report.Issues[0].Severity)
	assert.Equal(t, "broken.mdx", report.Issues[0].Source)
}

func TestCheck_IgnoresFailPolicy(t *testing.T) {
	dir := writePosts(t, map[string]string{"hello.mdx": helloPost, "broken.mdx": "just text"})
	t.Setenv("FOLIO_ON_MALFORMED", "fail")

	stdout, _, err := execute(t, "check", "--dir", dir)
	require.ErrorIs(t, err, errors.ErrValidationFailed)
	assert.Contains(t, stdout, "broken.mdx")
}
