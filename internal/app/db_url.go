package app

import (
	"net/url"
	"strings"
)

// normalizeDBURL adds lib/pq connection defaults that were not set
// explicitly. binaryParameters sends parameters in binary and skips the
// extra prepare round trip per query.
func normalizeDBURL(raw string, binaryParameters bool, applicationName string) string {
	trimmed := strings.TrimSpace(raw)
	defaults := map[string]string{}
	if binaryParameters {
		defaults["binary_parameters"] = "yes"
	}
	if name := strings.TrimSpace(applicationName); name != "" {
		defaults["fallback_application_name"] = name
	}
	if len(defaults) == 0 {
		return raw
	}

	parsed, err := url.Parse(trimmed)
	if err == nil && parsed != nil && parsed.Scheme != "" {
		query := parsed.Query()
		for key, value := range defaults {
			if query.Get(key) == "" {
				query.Set(key, value)
			}
		}
		parsed.RawQuery = query.Encode()
		return parsed.String()
	}

	out := trimmed
	for _, key := range []string{"binary_parameters", "fallback_application_name"} {
		value, ok := defaults[key]
		if !ok || strings.Contains(out, key+"=") {
			continue
		}
		out += " " + key + "=" + quoteDSNValue(value)
	}
	return out
}

func quoteDSNValue(value string) string {
	if !strings.ContainsAny(value, ` '\`) {
		return value
	}
	escaped := strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(value)
	return "'" + escaped + "'"
}

func dbNameFromURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	parsed, err := url.Parse(trimmed)
	if err == nil && parsed != nil && parsed.Scheme != "" {
		name := strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/"))
		if name != "" {
			return name
		}
	}

	for _, token := range strings.Fields(trimmed) {
		if !strings.HasPrefix(token, "dbname=") {
			continue
		}
		name := strings.TrimSpace(strings.TrimPrefix(token, "dbname="))
		name = strings.Trim(name, `"'`)
		if name != "" {
			return name
		}
	}

	return ""
}
