package logging

import (
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap/zapcore"
)

// DefaultBufferSize is how many entries a Buffer keeps when no size is given
const DefaultBufferSize = 1000

// Entry is one buffered log record
type Entry struct {
	Time    time.Time              `json:"timestamp"`
	Level   string                 `json:"level"`
	Tag     string                 `json:"tag,omitempty"`
	Message string                 `json:"message"`
	Fields  map[string]interface{} `json:"fields,omitempty"`
}

// Buffer keeps the most recent log entries in memory so a host app can show
// or export them. When full, the oldest entry is dropped.
type Buffer struct {
	mu       sync.Mutex
	entries  []Entry
	next     int
	full     bool
	capacity int
}

// NewBuffer creates a ring buffer holding up to capacity entries
func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultBufferSize
	}
	return &Buffer{
		entries:  make([]Entry, capacity),
		capacity: capacity,
	}
}

func (b *Buffer) add(e Entry) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.entries[b.next] = e
	b.next = (b.next + 1) % b.capacity
	if b.next == 0 {
		b.full = true
	}
}

// Len returns the number of buffered entries
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.full {
		return b.capacity
	}
	return b.next
}

// Entries returns a copy of the buffered entries, oldest first
func (b *Buffer) Entries() []Entry {
	return b.filter(func(Entry) bool { return true })
}

// ByLevel returns the entries logged at level
func (b *Buffer) ByLevel(level zapcore.Level) []Entry {
	name := level.String()
	return b.filter(func(e Entry) bool { return e.Level == name })
}

// ByTag returns the entries written through the logger named tag
func (b *Buffer) ByTag(tag string) []Entry {
	return b.filter(func(e Entry) bool { return e.Tag == tag })
}

// Clear drops every buffered entry
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.entries = make([]Entry, b.capacity)
	b.next = 0
	b.full = false
}

// Export renders the buffered entries as indented JSON
func (b *Buffer) Export() ([]byte, error) {
	return json.MarshalIndent(b.Entries(), "", "  ")
}

func (b *Buffer) filter(keep func(Entry) bool) []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Entry, 0, b.capacity)
	if b.full {
		for _, e := range b.entries[b.next:] {
			if keep(e) {
				out = append(out, e)
			}
		}
	}
	for _, e := range b.entries[:b.next] {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// Core returns a zapcore.Core that records into the buffer
func (b *Buffer) Core(enab zapcore.LevelEnabler) zapcore.Core {
	return &bufferCore{LevelEnabler: enab, buffer: b}
}

type bufferCore struct {
	zapcore.LevelEnabler
	buffer *Buffer
	fields []zapcore.Field
}

func (c *bufferCore) With(fields []zapcore.Field) zapcore.Core {
	clone := &bufferCore{
		LevelEnabler: c.LevelEnabler,
		buffer:       c.buffer,
		fields:       make([]zapcore.Field, 0, len(c.fields)+len(fields)),
	}
	clone.fields = append(clone.fields, c.fields...)
	clone.fields = append(clone.fields, fields...)
	return clone
}

func (c *bufferCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *bufferCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	var encoded map[string]interface{}
	if len(c.fields)+len(fields) > 0 {
		enc := zapcore.NewMapObjectEncoder()
		for _, f := range c.fields {
			f.AddTo(enc)
		}
		for _, f := range fields {
			f.AddTo(enc)
		}
		encoded = enc.Fields
	}

	c.buffer.add(Entry{
		Time:    ent.Time,
		Level:   ent.Level.String(),
		Tag:     ent.LoggerName,
		Message: ent.Message,
		Fields:  encoded,
	})
	return nil
}

func (c *bufferCore) Sync() error {
	return nil
}
