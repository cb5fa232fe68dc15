package common

import (
	"fmt"
	"time"

	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/constants"
	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/parsers"
)

func GetResponseTime(init time.Time) string {
	timeDiff := time.Since(init).Milliseconds()
	return fmt.Sprintf("%dms", timeDiff)
}

func GetKeysStructMap(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

// GetDateTimePatternFromCache returns the cached detection result for a
// dataset, or nil when absent. Redis round-trips values through JSON, so a
// cached entry may come back as a map rather than the concrete type.
func GetDateTimePatternFromCache(c CacheInterface, datasetID string) *parsers.DateTimePattern {
	val, found := c.Get(string(constants.CachePrefixDateTimePattern) + datasetID)
	if !found {
		return nil
	}

	if pattern, ok := val.(parsers.DateTimePattern); ok {
		return &pattern
	}
	return nil
}
