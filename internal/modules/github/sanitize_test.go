package github

import (
	"testing"

	"mcpgithub/server/internal/modules"
)

func TestValidateName(t *testing.T) {
	valid := []string{"octocat", "hello-world", "octo.cat", "a_b", "Repo123"}
	for _, v := range valid {
		if err := validateName(v, "repo"); err != nil {
			t.Errorf("validateName(%q) = %v, want nil", v, err)
		}
	}

	invalid := []string{
		"a/b",
		"a?b",
		"a#b",
		"a%b",
		"a\x00b",
		"a b",
		"a\nb",
		"a\tb",
	}
	for _, v := range invalid {
		err := validateName(v, "repo")
		if err == nil {
			t.Errorf("validateName(%q) = nil, want error", v)
			continue
		}
		toolErr, ok := err.(*modules.ToolError)
		if !ok || !toolErr.ClientError() {
			t.Errorf("validateName(%q) should produce a client error, got %v", v, err)
		}
	}

	if err := validateName("", "owner"); err == nil {
		t.Error("empty name should be rejected")
	}
}

func TestValidatePathValue(t *testing.T) {
	valid := []string{
		"main",
		"feature/foo",
		"src/main.go",
		"v1.2.3",
		"docs/deep/nested/path.md",
	}
	for _, v := range valid {
		if err := validatePathValue(v, "ref"); err != nil {
			t.Errorf("validatePathValue(%q) = %v, want nil", v, err)
		}
	}

	invalid := []string{
		"a?b",
		"a#b",
		"a&b",
		"a\x00b",
		"a\nb",
		"a\rb",
		"a\tb",
	}
	for _, v := range invalid {
		if err := validatePathValue(v, "ref"); err == nil {
			t.Errorf("validatePathValue(%q) = nil, want error", v)
		}
	}

	if err := validatePathValue("", "path"); err == nil {
		t.Error("empty value should be rejected")
	}
}
