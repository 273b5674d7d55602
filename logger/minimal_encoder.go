package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

const (
	colorReset = "\x1b[0m"
	colorBold  = "\x1b[1m"

	// Everforest Dark subset
	colorTime      = "\x1b[38;5;107m"
	colorComponent = "\x1b[38;5;208m"
	colorKey       = "\x1b[38;5;65m"
	colorValue     = "\x1b[38;5;223m"
	colorWarnFg    = "\x1b[38;5;179m"
	colorWarnBg    = "\x1b[48;5;58m"
	colorErrorFg   = "\x1b[38;5;167m"
	colorErrorBg   = "\x1b[48;5;52m"
)

var bufferPool = buffer.NewPool()

// minimalEncoder implements a calm, compact console encoder.
// Format: "13:04:35  codegen  Regenerated output  version=1.2.0 count=8"
type minimalEncoder struct {
	zapcore.Encoder // Embed a base encoder for With() field accumulation
	color           bool
}

func newMinimalEncoder(color bool) *minimalEncoder {
	return &minimalEncoder{
		Encoder: zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		color:   color,
	}
}

func (enc *minimalEncoder) Clone() zapcore.Encoder {
	return &minimalEncoder{
		Encoder: enc.Encoder.Clone(),
		color:   enc.color,
	}
}

func (enc *minimalEncoder) paint(color, s string) string {
	if !enc.color || s == "" {
		return s
	}
	return color + s + colorReset
}

func (enc *minimalEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	final := bufferPool.Get()

	final.AppendString(enc.paint(colorTime, ent.Time.Format("15:04:05")))

	// Level: only shown for WARN and above
	if lvl := enc.levelString(ent.Level); lvl != "" {
		final.AppendString("  ")
		final.AppendString(lvl)
	}

	if ent.LoggerName != "" {
		final.AppendString("  ")
		final.AppendString(enc.paint(colorComponent, ent.LoggerName))
	}

	final.AppendString("  ")
	final.AppendString(ent.Message)

	if values := enc.formatFields(fields); values != "" {
		final.AppendString("  ")
		final.AppendString(values)
	}

	final.AppendString("\n")
	return final, nil
}

func (enc *minimalEncoder) levelString(level zapcore.Level) string {
	var fg, bg string
	switch {
	case level == zapcore.WarnLevel:
		fg, bg = colorWarnFg, colorWarnBg
	case level >= zapcore.ErrorLevel:
		fg, bg = colorErrorFg, colorErrorBg
	default:
		return ""
	}
	if !enc.color {
		return level.CapitalString()
	}
	return colorBold + bg + fg + level.CapitalString() + colorReset
}

// formatFields renders every field as key=value, in the order given.
// Fields are never dropped: unknown types fall back to their interface value.
func (enc *minimalEncoder) formatFields(fields []zapcore.Field) string {
	if len(fields) == 0 {
		return ""
	}

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		if field.Type == zapcore.SkipType {
			continue
		}
		value, ok := fieldValue(field)
		if !ok {
			continue
		}
		if field.Key == FieldDurationMS {
			value += "ms"
		}
		parts = append(parts, enc.paint(colorKey, field.Key)+"="+enc.paint(colorValue, value))
	}
	return strings.Join(parts, " ")
}

// fieldValue extracts a printable value from a zap field by letting the field
// encode itself into a map encoder.
func fieldValue(field zapcore.Field) (string, bool) {
	m := zapcore.NewMapObjectEncoder()
	field.AddTo(m)

	v, ok := m.Fields[field.Key]
	if !ok {
		return "", false
	}
	switch val := v.(type) {
	case []interface{}:
		items := make([]string, len(val))
		for i, item := range val {
			items[i] = fmt.Sprint(item)
		}
		return "[" + strings.Join(items, ",") + "]", true
	default:
		return fmt.Sprint(val), true
	}
}
