package models

import "time"

// LogEntry is one timestamped diagnostic message.
type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`
}

// ProcessLog accumulates diagnostic entries for one request. It is created
// per request and passed explicitly through the call chain so the engines
// stay pure and the full trail can be returned to the caller, success or
// failure.
type ProcessLog struct {
	entries []LogEntry
}

func NewProcessLog() *ProcessLog {
	return &ProcessLog{}
}

func (p *ProcessLog) add(level, msg string) {
	p.entries = append(p.entries, LogEntry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   msg,
	})
}

func (p *ProcessLog) Info(msg string)  { p.add("info", msg) }
func (p *ProcessLog) Warn(msg string)  { p.add("warn", msg) }
func (p *ProcessLog) Error(msg string) { p.add("error", msg) }

// Entries returns the accumulated entries in append order.
func (p *ProcessLog) Entries() []LogEntry {
	return p.entries
}
