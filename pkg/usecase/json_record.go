package usecase

import (
	"encoding/json"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/rocketlog/pkg/domain"
	"github.com/m-mizutani/rocketlog/pkg/domain/model"
	"github.com/rs/zerolog"
	"github.com/valyala/fastjson"
)

// JSONRecordParser converts structured JSON log lines, as written by
// zerolog or slog.JSONHandler, into log records. Keys keep their order.
type JSONRecordParser struct {
	channel string
	pool    fastjson.ParserPool
}

// NewJSONRecordParser creates a parser that puts channel in every record
func NewJSONRecordParser(channel string) *JSONRecordParser {
	if channel == "" {
		channel = DefaultLogChannel
	}
	return &JSONRecordParser{channel: channel}
}

// Channel returns the log channel put in parsed records
func (x *JSONRecordParser) Channel() string {
	return x.channel
}

// Parse reads one JSON object. The "level" field sets the level, and
// defaultLevel is used if it is missing or unknown. "message" (zerolog) or
// "msg" (slog) becomes the message. All other fields are context.
func (x *JSONRecordParser) Parse(line []byte, defaultLevel model.Level) (model.LogRecord, error) {
	p := x.pool.Get()
	defer x.pool.Put(p)

	v, err := p.ParseBytes(line)
	if err != nil {
		return model.LogRecord{}, goerr.Wrap(err, "failed to parse JSON log line",
			goerr.T(domain.ErrTagSerialization),
		)
	}
	obj, err := v.Object()
	if err != nil {
		return model.LogRecord{}, goerr.Wrap(err, "JSON log line is not an object",
			goerr.T(domain.ErrTagSerialization),
		)
	}

	record := model.LogRecord{
		Channel: x.channel,
		Level:   defaultLevel,
	}
	messageFound := false

	obj.Visit(func(key []byte, v *fastjson.Value) {
		k := string(key)

		switch {
		case k == zerolog.LevelFieldName && v.Type() == fastjson.TypeString:
			if lv, ok := parseAnyLevel(string(v.GetStringBytes())); ok {
				record.Level = lv
			}
			return
		case !messageFound && (k == zerolog.MessageFieldName || k == slog.MessageKey) && v.Type() == fastjson.TypeString:
			record.Message = string(v.GetStringBytes())
			messageFound = true
			return
		}

		record.Context = append(record.Context, slog.Attr{Key: k, Value: fastjsonToValue(v)})
	})

	return record, nil
}

// parseAnyLevel accepts level names of this package, slog and zerolog
func parseAnyLevel(s string) (model.Level, bool) {
	if lv, err := model.ParseLevel(s); err == nil {
		return lv, true
	}
	if zl, err := zerolog.ParseLevel(s); err == nil {
		return FromZerologLevel(zl)
	}
	return 0, false
}

func fastjsonToValue(v *fastjson.Value) slog.Value {
	switch v.Type() {
	case fastjson.TypeObject:
		obj, _ := v.Object()
		var attrs []slog.Attr
		obj.Visit(func(key []byte, v *fastjson.Value) {
			attrs = append(attrs, slog.Attr{Key: string(key), Value: fastjsonToValue(v)})
		})
		return slog.GroupValue(attrs...)
	case fastjson.TypeString:
		return slog.StringValue(string(v.GetStringBytes()))
	case fastjson.TypeNumber:
		return slog.AnyValue(json.Number(v.MarshalTo(nil)))
	case fastjson.TypeTrue:
		return slog.BoolValue(true)
	case fastjson.TypeFalse:
		return slog.BoolValue(false)
	case fastjson.TypeNull:
		return slog.AnyValue(nil)
	default:
		return slog.AnyValue(json.RawMessage(v.MarshalTo(nil)))
	}
}
