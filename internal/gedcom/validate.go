package gedcom

import (
	"fmt"
	"regexp"
	"strings"
)

// ValidationResult reports structural validity. Errors are warnings to the
// export flow; a failed validation never blocks producing the artifact.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

var (
	indiDefRe = regexp.MustCompile(`^0 (@I[^@]+@) INDI`)
	famDefRe  = regexp.MustCompile(`^0 (@F[^@]+@) FAM`)

)

// refChecks lists the reference lines checked against defined ids, in the
// order errors are reported. HUSB, WIFE and CHIL point at individuals;
// FAMS and FAMC point at families.
var refChecks = []struct {
	tag      string
	re       *regexp.Regexp
	toFamily bool
}{
	{"HUSB", regexp.MustCompile(`^1 HUSB (@I[^@]+@)`), false},
	{"WIFE", regexp.MustCompile(`^1 WIFE (@I[^@]+@)`), false},
	{"CHIL", regexp.MustCompile(`^1 CHIL (@I[^@]+@)`), false},
	{"FAMS", regexp.MustCompile(`^1 FAMS (@F[^@]+@)`), true},
	{"FAMC", regexp.MustCompile(`^1 FAMC (@F[^@]+@)`), true},
}

// Validate runs the structural checks on GEDCOM text: header and trailer
// presence, then a two-pass scan that first collects every defined
// individual and family reference id and then verifies every HUSB, WIFE,
// CHIL, FAMS and FAMC line resolves to one of them.
func Validate(content string) ValidationResult {
	var errors []string

	if !strings.HasPrefix(content, "0 HEAD") {
		errors = append(errors, "Missing HEAD record")
	}
	if !strings.HasSuffix(strings.TrimRight(content, "\r\n \t"), "0 TRLR") {
		errors = append(errors, "Missing TRLR record")
	}

	lines := strings.Split(content, "\n")

	indiDefs := make(map[string]bool)
	famDefs := make(map[string]bool)
	for _, line := range lines {
		if m := indiDefRe.FindStringSubmatch(line); m != nil {
			indiDefs[m[1]] = true
		}
		if m := famDefRe.FindStringSubmatch(line); m != nil {
			famDefs[m[1]] = true
		}
	}

	for _, line := range lines {
		for _, check := range refChecks {
			m := check.re.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			defs := indiDefs
			if check.toFamily {
				defs = famDefs
			}
			if !defs[m[1]] {
				errors = append(errors, fmt.Sprintf("%s reference %s not found", check.tag, m[1]))
			}
		}
	}

	return ValidationResult{Valid: len(errors) == 0, Errors: errors}
}
