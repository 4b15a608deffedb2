package lang

import (
	"regexp"
	"strings"
)

// Casing convention names accepted in configuration.
const (
	ConventionSnakeCase  = "snake_case"
	ConventionCamelCase  = "camelCase"
	ConventionPascalCase = "PascalCase"
	ConventionMixedCaps  = "MixedCaps"
)

var conventionPatterns = map[string]*regexp.Regexp{
	ConventionSnakeCase:  regexp.MustCompile(`^_?[a-z][a-z0-9_]*$`),
	ConventionCamelCase:  regexp.MustCompile(`^[a-z][a-zA-Z0-9]*$`),
	ConventionPascalCase: regexp.MustCompile(`^[A-Z][a-zA-Z0-9]*$`),
	ConventionMixedCaps:  regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]*$`),
}

// KnownConvention reports whether name is a recognized casing convention.
func KnownConvention(name string) bool {
	_, ok := conventionPatterns[name]
	return ok
}

// MatchesConvention reports whether an identifier follows the convention.
// Unknown conventions match everything rather than flagging spuriously.
func MatchesConvention(name, convention string) bool {
	pat, ok := conventionPatterns[convention]
	if !ok {
		return true
	}
	return pat.MatchString(name)
}

var camelBoundary = regexp.MustCompile(`([a-z0-9])([A-Z])`)

// ToSnakeCase converts an identifier to snake_case.
func ToSnakeCase(name string) string {
	return strings.ToLower(camelBoundary.ReplaceAllString(name, "${1}_${2}"))
}

// ToPascalCase converts an identifier to PascalCase.
func ToPascalCase(name string) string {
	parts := strings.Split(name, "_")
	var b strings.Builder
	for _, part := range parts {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}

// SuggestRename converts an identifier toward the target convention.
func SuggestRename(name, convention string) string {
	switch convention {
	case ConventionSnakeCase:
		return ToSnakeCase(name)
	case ConventionPascalCase:
		return ToPascalCase(name)
	case ConventionCamelCase, ConventionMixedCaps:
		pascal := ToPascalCase(ToSnakeCase(name))
		if convention == ConventionCamelCase && pascal != "" {
			return strings.ToLower(pascal[:1]) + pascal[1:]
		}
		return pascal
	default:
		return name
	}
}
