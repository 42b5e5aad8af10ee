package logging

import (
	"fmt"
	"time"
)

// Common field constructors
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Err(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Domain field helpers

func NodeCount(n int) Field {
	return Int("nodes", n)
}

func EdgeCount(n int) Field {
	return Int("edges", n)
}

func IssueCount(n int) Field {
	return Int("issues", n)
}

func Edge(from, to string) Field {
	return String("edge", fmt.Sprintf("%s->%s", from, to))
}

func Bus(id string) Field {
	return String("bus", id)
}

func TableName(name string) Field {
	return String("table", name)
}

func RowCount(table string, n int) Field {
	return Int(table+"_rows", n)
}

func Path(p string) Field {
	return String("path", p)
}
