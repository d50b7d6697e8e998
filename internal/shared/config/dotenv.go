package config

import (
	"bufio"
	"os"
	"strings"
)

// loadEnvFiles reads KEY=VALUE pairs from each file that exists and exports
// them into the process environment. Lines may use an optional "export "
// prefix; blank lines and # comments are skipped. Best effort only, meant
// for local development.
func loadEnvFiles(paths ...string) {
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			continue
		}
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			key, val, ok := parseEnvLine(scanner.Text())
			if ok {
				os.Setenv(key, val)
			}
		}
		_ = f.Close()
	}
}

func parseEnvLine(raw string) (key, val string, ok bool) {
	line := strings.TrimSpace(raw)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	line = strings.TrimPrefix(line, "export ")

	k, v, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}
	k = strings.TrimSpace(k)
	if k == "" {
		return "", "", false
	}
	v = strings.TrimSpace(v)
	v = strings.Trim(v, `"'`)
	return k, v, true
}
