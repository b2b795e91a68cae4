package canon

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Option configures a single call to Canonicalize or ComputeDigest.
type Option func(*options)

type options struct {
	assumeUTC bool
}

// WithAssumeUTC, when true, permits a Naive Time value to be canonicalized
// by treating its wall-clock fields as already UTC. Without it, a Naive
// value is rejected with ErrAmbiguousTimestamp.
func WithAssumeUTC(assume bool) Option {
	return func(o *options) {
		o.assumeUTC = assume
	}
}

// Canonicalize renders v as deterministic, minimal bytes: object keys
// sorted, no insignificant whitespace, integers only. See doc.go for the
// full rule set.
func Canonicalize(v any, opts ...Option) ([]byte, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	var buf strings.Builder
	if err := encodeValue(&buf, v, &o); err != nil {
		return nil, err
	}
	return []byte(buf.String()), nil
}

func encodeValue(buf *strings.Builder, v any, o *options) error {
	switch val := v.(type) {
	case nil:
		buf.WriteString("null")
		return nil
	case bool:
		if val {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
		return nil
	case string:
		encodeString(buf, val)
		return nil
	case json.Number:
		return encodeJSONNumber(buf, val)
	case Digest:
		encodeString(buf, val.Hex())
		return nil
	case Time:
		return encodeTime(buf, val, o)
	case map[string]any:
		return encodeObject(buf, val, o)
	case []any:
		return encodeArray(buf, val, o)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		buf.WriteString(strconv.FormatInt(rv.Int(), 10))
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		buf.WriteString(strconv.FormatUint(rv.Uint(), 10))
		return nil
	case reflect.Float32, reflect.Float64:
		return ErrNonDeterministicNumber
	case reflect.Slice, reflect.Array:
		return encodeReflectSlice(buf, rv, o)
	case reflect.Map:
		return encodeReflectMap(buf, rv, o)
	}

	return fmt.Errorf("%w: %T", ErrUnsupportedType, v)
}

func encodeObject(buf *strings.Builder, m map[string]any, o *options) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		encodeString(buf, k)
		buf.WriteByte(':')
		if err := encodeValue(buf, m[k], o); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

func encodeArray(buf *strings.Builder, a []any, o *options) error {
	buf.WriteByte('[')
	for i, item := range a {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeValue(buf, item, o); err != nil {
			return err
		}
	}
	buf.WriteByte(']')
	return nil
}

func encodeReflectSlice(buf *strings.Builder, rv reflect.Value, o *options) error {
	buf.WriteByte('[')
	for i := 0; i < rv.Len(); i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeValue(buf, rv.Index(i).Interface(), o); err != nil {
			return err
		}
	}
	buf.WriteByte(']')
	return nil
}

func encodeReflectMap(buf *strings.Builder, rv reflect.Value, o *options) error {
	if rv.Type().Key().Kind() != reflect.String {
		return fmt.Errorf("%w: map key type %s", ErrUnsupportedType, rv.Type().Key())
	}
	m := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		m[iter.Key().String()] = iter.Value().Interface()
	}
	return encodeObject(buf, m, o)
}

// encodeJSONNumber accepts only values that decode to an integer: no '.'
// and no exponent marker.
func encodeJSONNumber(buf *strings.Builder, n json.Number) error {
	s := n.String()
	if strings.ContainsAny(s, ".eE") {
		return ErrNonDeterministicNumber
	}
	if _, err := strconv.ParseInt(s, 10, 64); err != nil {
		if _, uerr := strconv.ParseUint(s, 10, 64); uerr != nil {
			return fmt.Errorf("%w: %q", ErrNonDeterministicNumber, s)
		}
	}
	buf.WriteString(s)
	return nil
}

func encodeTime(buf *strings.Builder, t Time, o *options) error {
	if t.IsNaive() && !o.assumeUTC {
		return ErrAmbiguousTimestamp
	}
	encodeString(buf, t.canonicalString())
	return nil
}

// encodeString writes a minimally-escaped JSON string: the control
// characters and the two structural characters " and \ are escaped; every
// other byte, including all non-ASCII UTF-8, passes through unchanged. This
// deliberately does not apply encoding/json's HTML-escaping of <, >, and &.
func encodeString(buf *strings.Builder, s string) {
	buf.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(buf, `\u%04x`, r)
				continue
			}
			buf.WriteRune(r)
		}
	}
	buf.WriteByte('"')
}
