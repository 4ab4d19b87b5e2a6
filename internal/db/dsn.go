package db

import (
	"net/url"
	"os"
	"strings"
)

// NormalizeDSN trims quotes and whitespace from a DSN. URL form passes
// through untouched; key=value form is collapsed to single spaces and
// gets sslmode=disable when none is set.
func NormalizeDSN(raw string) string {
	s := strings.Trim(strings.TrimSpace(raw), "\"'")
	if s == "" || isURLDSN(s) {
		return s
	}
	s = strings.Join(strings.Fields(s), " ")
	if !strings.Contains(strings.ToLower(s), "sslmode=") {
		s += " sslmode=disable"
	}
	return s
}

func isURLDSN(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://")
}

// ToURLDSN converts a key=value DSN to URL form. golang-migrate only
// accepts URLs. A DSN without host, user and dbname is returned as is
// and left for the driver to reject.
func ToURLDSN(dsn string) string {
	if dsn == "" || isURLDSN(dsn) {
		return dsn
	}
	kv := map[string]string{}
	for _, field := range strings.Fields(dsn) {
		if k, v, ok := strings.Cut(field, "="); ok {
			kv[strings.ToLower(k)] = v
		}
	}
	if kv["host"] == "" || kv["user"] == "" || kv["dbname"] == "" {
		return dsn
	}
	u := &url.URL{
		Scheme: "postgres",
		Host:   kv["host"],
		User:   url.User(kv["user"]),
		Path:   "/" + kv["dbname"],
	}
	if kv["port"] != "" {
		u.Host += ":" + kv["port"]
	}
	if kv["password"] != "" {
		u.User = url.UserPassword(kv["user"], kv["password"])
	}
	if kv["sslmode"] != "" {
		u.RawQuery = url.Values{"sslmode": {kv["sslmode"]}}.Encode()
	}
	return u.String()
}

// GetNormalizedDSN reads DATABASE_DSN and normalizes it.
func GetNormalizedDSN() string { return NormalizeDSN(os.Getenv("DATABASE_DSN")) }
