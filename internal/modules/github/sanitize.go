package github

import (
	"strings"

	"mcpgithub/server/internal/modules"
)

// nameRejects are the characters never valid in a GitHub owner or repo name.
// A slash here would silently change which resource a hand-built route
// addresses, so names get the strict profile.
const nameRejects = "/?#%\x00 \n\t"

// pathValueRejects are the characters rejected for values inserted into a
// route after the owner/repo segment or into a raw query string. Slash is
// allowed: branch names and file paths legitimately contain it.
const pathValueRejects = "?#&\x00\n\r\t"

// validateName checks a GitHub owner/repo identifier for characters that
// could be used for URL injection in raw API routes.
func validateName(value, field string) error {
	if value == "" {
		return modules.MissingParamf("%s must not be empty", field)
	}
	if i := strings.IndexAny(value, nameRejects); i >= 0 {
		return modules.MissingParamf("%s contains invalid character %q", field, rune(value[i]))
	}
	return nil
}

// validatePathValue checks a value for use in URL paths or query params.
// Unlike validateName it permits slashes (branch names like feature/foo,
// file paths like src/main.go).
func validatePathValue(value, field string) error {
	if value == "" {
		return modules.MissingParamf("%s must not be empty", field)
	}
	if strings.ContainsAny(value, pathValueRejects) {
		return modules.MissingParamf("%s contains invalid character", field)
	}
	return nil
}
