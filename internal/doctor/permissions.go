package doctor

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/thoreinstein/folio/internal/post"
)

// PermissionCheck looks for unreadable posts and world-writable posts,
// posts directory and config file.
type PermissionCheck struct {
	PermissionFixer

	Loader *post.Loader
	// ConfigFile is checked when set and present.
	ConfigFile string
}

var (
	_ Check = (*PermissionCheck)(nil)
	_ Fixer = (*PermissionCheck)(nil)
)

func (c *PermissionCheck) Name() string     { return "permissions" }
func (c *PermissionCheck) Category() string { return "filesystem" }

// pathIssue represents a single path or permission problem.
type pathIssue struct {
	Path        string
	Type        string // "file" or "directory"
	Problem     string
	Severity    Severity
	Permissions string
	Fixable     bool
	FixHint     string
}

func (c *PermissionCheck) Run(context.Context) *CheckResult {
	var issues []pathIssue
	checked := 0

	if c.ConfigFile != "" {
		if found, fileIssues := checkFile(c.ConfigFile); found {
			issues = append(issues, fileIssues...)
			checked++
		}
	}

	if found, dirIssues := checkDirectory(c.Loader.Dir()); found {
		issues = append(issues, dirIssues...)
		checked++

		// Files errors are reported by PostsDirCheck
		files, _ := c.Loader.Files()
		for _, f := range files {
			_, fileIssues := checkFile(f)
			issues = append(issues, fileIssues...)
			checked++
		}
	}

	c.setIssues(issues)
	return c.buildResult(issues, checked)
}

// checkFile reports whether path exists and any problems with it.
func checkFile(path string) (bool, []pathIssue) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return true, []pathIssue{{
			Path:     path,
			Type:     "file",
			Problem:  fmt.Sprintf("cannot stat file: %v", err),
			Severity: SeverityError,
		}}
	}

	f, err := os.Open(path)
	if err != nil {
		return true, []pathIssue{{
			Path:        path,
			Type:        "file",
			Problem:     "file is not readable",
			Severity:    SeverityError,
			Permissions: formatPermissions(info.Mode()),
			Fixable:     true,
			FixHint:     "chmod 644 " + path,
		}}
	}
	f.Close()

	if runtime.GOOS != "windows" && info.Mode().Perm()&0o002 != 0 {
		return true, []pathIssue{{
			Path:        path,
			Type:        "file",
			Problem:     "file is world-writable",
			Severity:    SeverityWarning,
			Permissions: formatPermissions(info.Mode()),
			Fixable:     true,
			FixHint:     "chmod 644 " + path,
		}}
	}
	return true, nil
}

// checkDirectory reports whether path exists and any problems with it.
// A path that is not a directory is left to PostsDirCheck.
func checkDirectory(path string) (bool, []pathIssue) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return false, nil
	}

	if runtime.GOOS != "windows" && info.Mode().Perm()&0o002 != 0 {
		return true, []pathIssue{{
			Path:        path,
			Type:        "directory",
			Problem:     "directory is world-writable",
			Severity:    SeverityWarning,
			Permissions: formatPermissions(info.Mode()),
			Fixable:     true,
			FixHint:     "chmod 755 " + path,
		}}
	}
	return true, nil
}

// buildResult constructs the final CheckResult from accumulated issues.
func (c *PermissionCheck) buildResult(issues []pathIssue, checked int) *CheckResult {
	res := &CheckResult{Name: c.Name(), Category: c.Category()}
	if len(issues) == 0 {
		res.Status = SeverityPass
		res.Message = fmt.Sprintf("all %d paths have valid permissions", checked)
		return res
	}

	res.Status = SeverityWarning
	details := make([]map[string]any, 0, len(issues))
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			res.Status = SeverityError
		}
		if issue.Fixable {
			res.Fixable = true
		}
		d := map[string]any{
			"path":     issue.Path,
			"type":     issue.Type,
			"problem":  issue.Problem,
			"severity": issue.Severity.String(),
		}
		if issue.Permissions != "" {
			d["permissions"] = issue.Permissions
		}
		details = append(details, d)
	}
	res.Details = map[string]any{
		"checked_paths": checked,
		"issue_count":   len(issues),
		"issues":        details,
	}

	res.Message = fmt.Sprintf("%d permission issue(s) in %d paths", len(issues), checked)
	if len(issues) == 1 {
		res.Message = issues[0].Path + ": " + issues[0].Problem
		res.FixHint = issues[0].FixHint
	} else if res.Fixable {
		res.FixHint = "Run: folio doctor --fix"
	}
	return res
}

func formatPermissions(mode os.FileMode) string {
	return fmt.Sprintf("%04o", mode.Perm())
}
