package database

import (
	"fmt"
	"strings"
)

// ConstructDatabaseURL combines a base URL with a database name and makes
// sure an sslmode is present (disabled by default for local setups).
func ConstructDatabaseURL(baseURL, databaseName string) string {
	databaseURL := strings.TrimRight(baseURL, "/")

	if databaseName != "" {
		if parts := strings.SplitN(databaseURL, "?", 2); len(parts) == 2 {
			databaseURL = fmt.Sprintf("%s/%s?%s", parts[0], databaseName, parts[1])
		} else {
			databaseURL = fmt.Sprintf("%s/%s", databaseURL, databaseName)
		}
	}

	if !strings.Contains(databaseURL, "sslmode=") {
		separator := "?"
		if strings.Contains(databaseURL, "?") {
			separator = "&"
		}
		databaseURL += separator + "sslmode=disable"
	}

	return databaseURL
}
