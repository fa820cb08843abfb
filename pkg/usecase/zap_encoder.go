package usecase

import (
	"log/slog"
	"strconv"
	"time"

	"go.uber.org/zap/zapcore"
)

// attrEncoder is a zapcore.ObjectEncoder collecting fields as slog
// attributes in the order they are added. Fields added after OpenNamespace
// go into a group named after the namespace, as zap's own encoders do.
type attrEncoder struct {
	top        []slog.Attr
	namespaces []zapNamespace
}

type zapNamespace struct {
	key     string
	members []slog.Attr
}

var _ zapcore.ObjectEncoder = (*attrEncoder)(nil)

func addZapFields(enc *attrEncoder, fields []zapcore.Field) {
	for _, f := range fields {
		f.AddTo(enc)
	}
}

func (e *attrEncoder) clone() attrEncoder {
	c := attrEncoder{
		top:        append([]slog.Attr(nil), e.top...),
		namespaces: make([]zapNamespace, len(e.namespaces)),
	}
	for i, ns := range e.namespaces {
		c.namespaces[i] = zapNamespace{
			key:     ns.key,
			members: append([]slog.Attr(nil), ns.members...),
		}
	}
	return c
}

// attrs closes open namespaces. Empty namespaces are dropped.
func (e *attrEncoder) attrs() []slog.Attr {
	var inner []slog.Attr
	for i := len(e.namespaces) - 1; i >= 0; i-- {
		members := append(append([]slog.Attr(nil), e.namespaces[i].members...), inner...)
		inner = nil
		if len(members) > 0 {
			inner = []slog.Attr{{Key: e.namespaces[i].key, Value: slog.GroupValue(members...)}}
		}
	}
	return append(append([]slog.Attr(nil), e.top...), inner...)
}

func (e *attrEncoder) add(attr slog.Attr) {
	if n := len(e.namespaces); n > 0 {
		e.namespaces[n-1].members = append(e.namespaces[n-1].members, attr)
		return
	}
	e.top = append(e.top, attr)
}

// AddArray delegates to zap's map encoder. Objects inside arrays are
// therefore encoded as maps with sorted keys.
func (e *attrEncoder) AddArray(key string, v zapcore.ArrayMarshaler) error {
	m := zapcore.NewMapObjectEncoder()
	err := m.AddArray(key, v)
	e.add(slog.Any(key, m.Fields[key]))
	return err
}

func (e *attrEncoder) AddObject(key string, v zapcore.ObjectMarshaler) error {
	var inner attrEncoder
	err := v.MarshalLogObject(&inner)
	e.add(slog.Attr{Key: key, Value: slog.GroupValue(inner.attrs()...)})
	return err
}

func (e *attrEncoder) AddBinary(key string, v []byte) {
	e.add(slog.Any(key, append([]byte(nil), v...)))
}

func (e *attrEncoder) AddByteString(key string, v []byte) {
	e.add(slog.String(key, string(v)))
}

func (e *attrEncoder) AddBool(key string, v bool) { e.add(slog.Bool(key, v)) }

func (e *attrEncoder) AddComplex128(key string, v complex128) {
	e.add(slog.String(key, strconv.FormatComplex(v, 'g', -1, 128)))
}

func (e *attrEncoder) AddComplex64(key string, v complex64) {
	e.add(slog.String(key, strconv.FormatComplex(complex128(v), 'g', -1, 64)))
}

func (e *attrEncoder) AddDuration(key string, v time.Duration) { e.add(slog.Duration(key, v)) }
func (e *attrEncoder) AddFloat64(key string, v float64)        { e.add(slog.Float64(key, v)) }
func (e *attrEncoder) AddFloat32(key string, v float32)        { e.add(slog.Float64(key, float64(v))) }
func (e *attrEncoder) AddInt(key string, v int)                { e.add(slog.Int(key, v)) }
func (e *attrEncoder) AddInt64(key string, v int64)            { e.add(slog.Int64(key, v)) }
func (e *attrEncoder) AddInt32(key string, v int32)            { e.add(slog.Int64(key, int64(v))) }
func (e *attrEncoder) AddInt16(key string, v int16)            { e.add(slog.Int64(key, int64(v))) }
func (e *attrEncoder) AddInt8(key string, v int8)              { e.add(slog.Int64(key, int64(v))) }
func (e *attrEncoder) AddString(key, v string)                 { e.add(slog.String(key, v)) }
func (e *attrEncoder) AddTime(key string, v time.Time)         { e.add(slog.Time(key, v)) }
func (e *attrEncoder) AddUint(key string, v uint)              { e.add(slog.Uint64(key, uint64(v))) }
func (e *attrEncoder) AddUint64(key string, v uint64)          { e.add(slog.Uint64(key, v)) }
func (e *attrEncoder) AddUint32(key string, v uint32)          { e.add(slog.Uint64(key, uint64(v))) }
func (e *attrEncoder) AddUint16(key string, v uint16)          { e.add(slog.Uint64(key, uint64(v))) }
func (e *attrEncoder) AddUint8(key string, v uint8)            { e.add(slog.Uint64(key, uint64(v))) }
func (e *attrEncoder) AddUintptr(key string, v uintptr)        { e.add(slog.Uint64(key, uint64(v))) }

func (e *attrEncoder) AddReflected(key string, v any) error {
	e.add(slog.Any(key, v))
	return nil
}

func (e *attrEncoder) OpenNamespace(key string) {
	e.namespaces = append(e.namespaces, zapNamespace{key: key})
}
