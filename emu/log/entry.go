package log

import (
	"fmt"

	"gopkg.in/Sirupsen/logrus.v0"
)

// Entry is a lazily-built structured log line. When the owning
// module/level pair is disabled, every method is a no-op so callers
// can build up fields unconditionally without paying for formatting.
type Entry struct {
	enabled bool
	level   logrus.Level
	msg     string
	entry   *logrus.Entry
}

func newEntry(mod Module, level logrus.Level, msg string) *Entry {
	enabled := level <= logrus.WarnLevel || mod.debugEnabled()
	if !enabled {
		return &Entry{enabled: false}
	}
	return &Entry{
		enabled: true,
		level:   level,
		msg:     msg,
		entry:   logrus.WithField("mod", mod.String()),
	}
}

func (e *Entry) with(key string, val any) *Entry {
	if !e.enabled {
		return e
	}
	e.entry = e.entry.WithField(key, val)
	return e
}

func (e *Entry) String(key, val string) *Entry  { return e.with(key, val) }
func (e *Entry) Bool(key string, v bool) *Entry  { return e.with(key, v) }
func (e *Entry) Int(key string, v int) *Entry    { return e.with(key, v) }
func (e *Entry) Uint8(key string, v uint8) *Entry   { return e.with(key, v) }
func (e *Entry) Uint16(key string, v uint16) *Entry { return e.with(key, v) }
func (e *Entry) Uint32(key string, v uint32) *Entry { return e.with(key, v) }
func (e *Entry) Hex8(key string, v uint8) *Entry    { return e.with(key, fmt.Sprintf("%02x", v)) }
func (e *Entry) Hex16(key string, v uint16) *Entry  { return e.with(key, fmt.Sprintf("%04x", v)) }
func (e *Entry) Err(err error) *Entry                { return e.with("err", err) }

// End emits the entry. Calling End on a disabled entry is a no-op.
func (e *Entry) End() {
	if !e.enabled {
		return
	}
	switch e.level {
	case logrus.DebugLevel:
		e.entry.Debug(e.msg)
	case logrus.InfoLevel:
		e.entry.Info(e.msg)
	case logrus.WarnLevel:
		e.entry.Warn(e.msg)
	case logrus.ErrorLevel:
		e.entry.Error(e.msg)
	case logrus.FatalLevel:
		e.entry.Fatal(e.msg)
	case logrus.PanicLevel:
		e.entry.Panic(e.msg)
	}
}
