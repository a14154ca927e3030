package manifest

import (
	"path/filepath"
	"strings"
	"testing"
)

func testPath(name string) string {
	return filepath.Join("testdata", name)
}

func TestValidateFile_Valid(t *testing.T) {
	for _, file := range []string{"valid.json", "valid-prerelease.json"} {
		t.Run(file, func(t *testing.T) {
			result, err := ValidateFile(testPath(file))
			if err != nil {
				t.Fatalf("ValidateFile(%s) error: %v", file, err)
			}
			if !result.Valid {
				for _, issue := range result.Issues {
					t.Errorf("  path=%s keyword=%s message=%s", issue.Path, issue.Keyword, issue.Message)
				}
				t.Fatalf("expected valid, got %d issues", len(result.Issues))
			}
		})
	}
}

func TestValidateFile_Invalid(t *testing.T) {
	tests := []struct {
		file    string
		keyword string
		path    string
	}{
		{"invalid-missing-version.json", "required", ""},
		{"invalid-bad-name.json", "pattern", "/name"},
		{"invalid-bad-version.json", "pattern", "/version"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			result, err := ValidateFile(testPath(tt.file))
			if err != nil {
				t.Fatalf("ValidateFile(%s) unexpected error: %v", tt.file, err)
			}
			if result.Valid {
				t.Fatalf("expected invalid for %s", tt.file)
			}
			found := false
			for _, issue := range result.Issues {
				if issue.Keyword == tt.keyword && issue.Path == tt.path {
					found = true
				}
			}
			if !found {
				t.Errorf("no %s issue at %q in %+v", tt.keyword, tt.path, result.Issues)
			}
		})
	}
}

func TestValidateFile_Malformed(t *testing.T) {
	if _, err := ValidateFile(testPath("malformed.json")); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestValidateFile_Missing(t *testing.T) {
	if _, err := ValidateFile(testPath("nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidateNonObject(t *testing.T) {
	result, err := Validate([]byte(`["not", "an", "object"]`))
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if result.Valid {
		t.Error("an array is not a valid manifest")
	}
}

func TestDeduplicateIssues(t *testing.T) {
	issues := []ValidationIssue{
		{Path: "/name", Keyword: "pattern", Message: "bad"},
		{Path: "/name", Keyword: "pattern", Message: "bad"},
		{Path: "/version", Keyword: "pattern", Message: "bad"},
	}
	if got := deduplicateIssues(issues); len(got) != 2 {
		t.Errorf("got %d issues, want 2", len(got))
	}
}

func TestInvalidErrorMessage(t *testing.T) {
	err := &InvalidError{
		Path: "package.json",
		Issues: []ValidationIssue{
			{Path: "/version", Message: "does not match pattern"},
			{Message: "missing property 'name'"},
		},
	}
	msg := err.Error()
	if !strings.Contains(msg, "/version: does not match pattern") {
		t.Errorf("message missing path-qualified issue: %s", msg)
	}
	if !strings.Contains(msg, "missing property 'name'") {
		t.Errorf("message missing root issue: %s", msg)
	}
}
