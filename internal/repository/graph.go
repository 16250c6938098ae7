package repository

import (
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"
)

// Record accessors tolerate missing keys and null values; nodes written by
// hand or by older tooling are not guaranteed to carry every property.

func recordInt(rec *neo4j.Record, key string) int64 {
	v, _ := rec.Get(key)
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	}
	return 0
}

func recordIntPtr(rec *neo4j.Record, key string) *int64 {
	v, ok := rec.Get(key)
	if !ok || v == nil {
		return nil
	}
	n := recordInt(rec, key)
	return &n
}

func recordString(rec *neo4j.Record, key string) string {
	v, _ := rec.Get(key)
	s, _ := v.(string)
	return s
}

func recordStringPtr(rec *neo4j.Record, key string) *string {
	v, ok := rec.Get(key)
	if !ok || v == nil {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return nil
	}
	return &s
}

// recordTime accepts native temporal values as well as ISO-8601 strings.
func recordTime(rec *neo4j.Record, key string) time.Time {
	v, _ := rec.Get(key)
	switch t := v.(type) {
	case time.Time:
		return t
	case dbtype.LocalDateTime:
		return t.Time()
	case dbtype.Date:
		return t.Time()
	case string:
		if parsed, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

func stringOrNil(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func int64OrNil(n *int64) any {
	if n == nil {
		return nil
	}
	return *n
}
