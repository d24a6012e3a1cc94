package config

import (
	"net/url"
	"strings"

	"github.com/lib/pq"
)

const preparedBinaryParam = "disable_prepared_binary_result"

// DatabaseURL returns DB_URL with disable_prepared_binary_result=yes added
// when DBDisablePreparedBinary is set and the URL does not choose a value
// itself. Both URL and key/value connection strings are accepted.
func (c Config) DatabaseURL() string {
	raw := strings.TrimSpace(c.DBURL)
	if !c.DBDisablePreparedBinary || raw == "" {
		return raw
	}

	if !isURLStyle(raw) {
		if _, ok := dsnValue(raw, preparedBinaryParam); ok {
			return raw
		}
		return raw + " " + preparedBinaryParam + "=yes"
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	query := parsed.Query()
	if query.Get(preparedBinaryParam) != "" {
		return raw
	}
	query.Set(preparedBinaryParam, "yes")
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

// DatabaseName is the dbname of DB_URL, or "" when it cannot be read.
func (c Config) DatabaseName() string {
	dsn := strings.TrimSpace(c.DBURL)
	if isURLStyle(dsn) {
		converted, err := pq.ParseURL(dsn)
		if err != nil {
			return ""
		}
		dsn = converted
	}
	name, _ := dsnValue(dsn, "dbname")
	return name
}

func isURLStyle(raw string) bool {
	return strings.HasPrefix(raw, "postgres://") || strings.HasPrefix(raw, "postgresql://")
}

func dsnValue(dsn, key string) (string, bool) {
	for _, token := range strings.Fields(dsn) {
		k, v, ok := strings.Cut(token, "=")
		if !ok || k != key {
			continue
		}
		return strings.Trim(v, `"'`), true
	}
	return "", false
}
