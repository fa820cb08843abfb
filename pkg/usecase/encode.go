package usecase

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"math"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/rocketlog/pkg/domain"
)

// marshalJSON encodes v without HTML escaping. Non-ASCII characters are
// written as is.
func marshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, goerr.Wrap(err, "failed to encode JSON", goerr.T(domain.ErrTagSerialization))
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// encodeValue renders a context value as JSON. Groups become objects that
// keep the attribute order.
func encodeValue(v slog.Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := appendValue(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func appendValue(buf *bytes.Buffer, v slog.Value) error {
	v = v.Resolve()

	switch v.Kind() {
	case slog.KindString:
		return appendAny(buf, v.String())
	case slog.KindInt64:
		buf.WriteString(strconv.FormatInt(v.Int64(), 10))
	case slog.KindUint64:
		buf.WriteString(strconv.FormatUint(v.Uint64(), 10))
	case slog.KindFloat64:
		f := v.Float64()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return goerr.New("unsupported float value",
				goerr.V("value", f),
				goerr.T(domain.ErrTagSerialization),
			)
		}
		buf.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
	case slog.KindBool:
		buf.WriteString(strconv.FormatBool(v.Bool()))
	case slog.KindDuration:
		buf.WriteString(strconv.FormatInt(int64(v.Duration()), 10))
	case slog.KindTime:
		return appendAny(buf, v.Time().Format(time.RFC3339Nano))
	case slog.KindGroup:
		buf.WriteByte('{')
		for i, attr := range v.Group() {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := appendAny(buf, attr.Key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := appendValue(buf, attr.Value); err != nil {
				return goerr.Wrap(err, "failed to encode group member",
					goerr.V("key", attr.Key),
					goerr.T(domain.ErrTagSerialization),
				)
			}
		}
		buf.WriteByte('}')
	default:
		switch x := v.Any().(type) {
		case json.RawMessage:
			if !json.Valid(x) {
				return goerr.New("invalid raw JSON value", goerr.T(domain.ErrTagSerialization))
			}
			buf.Write(x)
			return nil
		case error:
			// Errors marshal to {} otherwise
			return appendAny(buf, x.Error())
		}
		return appendAny(buf, v.Any())
	}
	return nil
}

func appendAny(buf *bytes.Buffer, v any) error {
	raw, err := marshalJSON(v)
	if err != nil {
		return err
	}
	buf.Write(raw)
	return nil
}

// truncate cuts s to at most n characters. The cut ignores JSON structure.
// A negative n removes -n characters from the end.
func truncate(s string, n int) string {
	length := utf8.RuneCountInString(s)
	if n < 0 {
		n = length + n
		if n < 0 {
			n = 0
		}
	}
	if length <= n {
		return s
	}

	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
