package usecase

import (
	"regexp"
	"strings"

	"discord-notify/internal/domain/ports"
)

// envReference matches $NAME and ${NAME}.
var envReference = regexp.MustCompile(`\$(\w+|\{[^}]*\})`)

// ExpandEnv substitutes environment references in text. References to
// undefined variables are kept verbatim; substituted values are not rescanned.
func ExpandEnv(text string, env ports.Environment) string {
	if env == nil || !strings.Contains(text, "$") {
		return text
	}

	return envReference.ReplaceAllStringFunc(text, func(ref string) string {
		name := strings.TrimPrefix(ref, "$")
		if strings.HasPrefix(name, "{") {
			name = name[1 : len(name)-1]
		}
		if val, ok := env.LookupEnv(name); ok {
			return val
		}
		return ref
	})
}
