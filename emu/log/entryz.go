package log

import (
	"sync"
	"time"

	"gopkg.in/Sirupsen/logrus.v0"
)

// EntryZ is a zero-allocation log entry builder. Field methods are safe to
// call on a nil receiver, so that a disabled module costs a single branch.
type EntryZ struct {
	mod   Module
	lvl   Level
	msg   string
	zfbuf [16]ZField
	zfidx int
}

var entryzPool = sync.Pool{
	New: func() any { return new(EntryZ) },
}

func NewEntryZ() *EntryZ {
	return entryzPool.Get().(*EntryZ)
}

// LogContext adds contextual fields to every entry logged while the context
// is registered (e.g. the current simulation cycle).
type LogContext interface {
	AddLogContext(e *EntryZ)
}

var contexts []LogContext

func AddContext(c LogContext) {
	contexts = append(contexts, c)
}

func RemoveContext(c LogContext) {
	for i := range contexts {
		if contexts[i] == c {
			contexts = append(contexts[:i], contexts[i+1:]...)
			return
		}
	}
}

func (e *EntryZ) add(f ZField) *EntryZ {
	if e == nil || e.zfidx == len(e.zfbuf) {
		return e
	}
	e.zfbuf[e.zfidx] = f
	e.zfidx++
	return e
}

func (e *EntryZ) Bool(key string, v bool) *EntryZ {
	return e.add(ZField{Type: FieldTypeBool, Key: key, Boolean: v})
}

func (e *EntryZ) String(key string, v string) *EntryZ {
	return e.add(ZField{Type: FieldTypeString, Key: key, String: v})
}

func (e *EntryZ) Int(key string, v int) *EntryZ {
	return e.add(ZField{Type: FieldTypeInt, Key: key, Integer: uint64(v)})
}

func (e *EntryZ) Uint64(key string, v uint64) *EntryZ {
	return e.add(ZField{Type: FieldTypeUint, Key: key, Integer: v})
}

func (e *EntryZ) Uint8(key string, v uint8) *EntryZ {
	return e.add(ZField{Type: FieldTypeUint, Key: key, Integer: uint64(v)})
}

func (e *EntryZ) Uint16(key string, v uint16) *EntryZ {
	return e.add(ZField{Type: FieldTypeUint, Key: key, Integer: uint64(v)})
}

func (e *EntryZ) Hex8(key string, v uint8) *EntryZ {
	return e.add(ZField{Type: FieldTypeHex8, Key: key, Integer: uint64(v)})
}

func (e *EntryZ) Hex16(key string, v uint16) *EntryZ {
	return e.add(ZField{Type: FieldTypeHex16, Key: key, Integer: uint64(v)})
}

func (e *EntryZ) Error(key string, err error) *EntryZ {
	return e.add(ZField{Type: FieldTypeError, Key: key, Error: err})
}

func (e *EntryZ) Duration(key string, d time.Duration) *EntryZ {
	return e.add(ZField{Type: FieldTypeDuration, Key: key, Duration: d})
}

func (e *EntryZ) Stringer(key string, v any) *EntryZ {
	return e.add(ZField{Type: FieldTypeStringer, Key: key, Interface: v})
}

// End emits the entry and recycles it. The receiver must not be used
// afterwards.
func (e *EntryZ) End() {
	if e == nil {
		return
	}

	for _, c := range contexts {
		c.AddLogContext(e)
	}

	fields := make(logrus.Fields, e.zfidx+1)
	fields["_mod"] = modNames[e.mod]
	for i := range e.zfbuf[:e.zfidx] {
		fields[e.zfbuf[i].Key] = e.zfbuf[i].Value()
	}

	entry := logrus.StandardLogger().WithFields(fields)
	switch e.lvl {
	case DebugLevel:
		entry.Debug(e.msg)
	case InfoLevel:
		entry.Info(e.msg)
	case WarnLevel:
		entry.Warn(e.msg)
	case ErrorLevel:
		entry.Error(e.msg)
	case FatalLevel:
		entry.Fatal(e.msg)
	case PanicLevel:
		entry.Panic(e.msg)
	}

	*e = EntryZ{}
	entryzPool.Put(e)
}
