package config

import (
	"os"
	"strings"
)

// GetEnv retrieves an environment variable with a default value
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Locale returns the user's locale from the POSIX locale variables, in
// precedence order, with any encoding suffix stripped ("ko_KR.UTF-8" ->
// "ko-KR"). "C" and "POSIX" count as unset.
func Locale() string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		v := GetEnv(key, "")
		if i := strings.IndexAny(v, ".@"); i >= 0 {
			v = v[:i]
		}
		if v == "" || v == "C" || v == "POSIX" {
			continue
		}
		return strings.ReplaceAll(v, "_", "-")
	}
	return ""
}
