// Package binding expands ${name} placeholders in page-source path templates,
// e.g. "pages/${page}.txt" or "madani/${page%03d}.txt".
package binding

import (
	"fmt"
	"regexp"
	"strings"
)

var exprPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Expand replaces every ${name} or ${name%verb} in the template with the
// matching value from vars, formatting through the printf verb when one is
// given. Unknown names keep their placeholder so a misspelled template fails
// visibly at the filesystem rather than silently collapsing paths.
func Expand(template string, vars map[string]any) string {
	if len(vars) == 0 {
		return template
	}
	return exprPattern.ReplaceAllStringFunc(template, func(match string) string {
		groups := exprPattern.FindStringSubmatch(match)
		if len(groups) < 2 {
			return match
		}
		name := strings.TrimSpace(groups[1])
		verb := "%v"
		if i := strings.Index(name, "%"); i != -1 {
			verb = name[i:]
			name = strings.TrimSpace(name[:i])
		}
		if name == "" {
			return match
		}
		val, ok := vars[name]
		if !ok {
			return match
		}
		return fmt.Sprintf(verb, val)
	})
}

// Page builds the vars map for a page-number template.
func Page(number int) map[string]any {
	return map[string]any{"page": number}
}
