package constitution

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ErrInvalidArgument is returned when a caller passes a value of the wrong
// type for an article number or keyword. It is raised before the dataset
// is consulted.
var ErrInvalidArgument = errors.New("invalid argument")

// Identifier names an article either by integer or by text. Both forms
// are normalized to text for comparison.
type Identifier interface {
	String() string
	identifier()
}

// Number identifies an article by its integer number.
type Number int

func (n Number) String() string { return strconv.Itoa(int(n)) }
func (Number) identifier()      {}

// Text identifies an article by its textual number, e.g. "21A".
type Text string

func (t Text) String() string { return string(t) }
func (Text) identifier()      {}

// ParseIdentifier converts a dynamically typed value, such as one decoded
// from JSON, into an Identifier.
func ParseIdentifier(v any) (Identifier, error) {
	switch x := v.(type) {
	case Identifier:
		return x, nil
	case string:
		return Text(x), nil
	case int:
		return Number(x), nil
	case int8:
		return Number(x), nil
	case int16:
		return Number(x), nil
	case int32:
		return Number(x), nil
	case int64:
		return Text(strconv.FormatInt(x, 10)), nil
	case uint:
		return Text(strconv.FormatUint(uint64(x), 10)), nil
	case uint8:
		return Number(x), nil
	case uint16:
		return Number(x), nil
	case uint32:
		return Text(strconv.FormatUint(uint64(x), 10)), nil
	case uint64:
		return Text(strconv.FormatUint(x, 10)), nil
	case float32:
		return floatIdentifier(float64(x))
	case float64:
		return floatIdentifier(x)
	case json.Number:
		if f, err := x.Float64(); err == nil {
			return floatIdentifier(f)
		}
		return nil, fmt.Errorf("%w: article number %q is not a valid number", ErrInvalidArgument, x.String())
	default:
		return nil, fmt.Errorf("%w: article number must be a number or string (e.g., 14 or \"14\"), got %T", ErrInvalidArgument, v)
	}
}

func floatIdentifier(f float64) (Identifier, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%w: article number must be finite", ErrInvalidArgument)
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return Text(strconv.FormatInt(int64(f), 10)), nil
	}
	return Text(strconv.FormatFloat(f, 'f', -1, 64)), nil
}

// ParseKeyword accepts only string values.
func ParseKeyword(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: keyword must be a string (e.g., \"equality\"), got %T", ErrInvalidArgument, v)
	}
	return s, nil
}
