// Package scoring defines the per-evaluation-type ordering rule for raw
// score values.
package scoring

import (
	"strconv"
	"strings"

	"github.com/eventscore/rankd/internal/domain/model"
)

// Key is a totally ordered sort key for one raw score value. Parseable values
// order before unparseable ones; among parseable values a smaller Value is
// better. Value carries the sign flip for descending evaluation types, so
// callers sort ascending regardless of type.
type Key struct {
	Unparseable bool
	Value       float64
}

// SortKey derives the sort key for a raw value under the given evaluation
// type. A value that does not parse as a number is never an error; it simply
// sorts after every parseable value.
func SortKey(t model.EvaluationType, raw string) Key {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return Key{Unparseable: true}
	}
	if t == model.NumericLow {
		return Key{Value: v}
	}
	return Key{Value: -v}
}

// Less reports whether k orders strictly before other.
func (k Key) Less(other Key) bool {
	if k.Unparseable != other.Unparseable {
		return other.Unparseable
	}
	return k.Value < other.Value
}

// Equal reports whether two keys tie. Tied entries share a rank.
func (k Key) Equal(other Key) bool {
	return k.Unparseable == other.Unparseable && k.Value == other.Value
}
