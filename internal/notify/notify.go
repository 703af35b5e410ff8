// Package notify delivers user-facing notifications. Controllers report every
// outcome through a Notifier so no failure ever escapes as a crash.
package notify

import (
	"fmt"
	"log/slog"
)

type Notifier interface {
	Success(msg string)
	Info(msg string)
	Error(msg string)
}

// Log routes notifications to a structured logger.
type Log struct {
	Logger *slog.Logger
}

func (l *Log) Success(msg string) { l.Logger.Info(msg, "kind", "success") }
func (l *Log) Info(msg string)    { l.Logger.Info(msg, "kind", "info") }
func (l *Log) Error(msg string)   { l.Logger.Warn(msg, "kind", "error") }

// Console prints notifications to stdout for the terminal client.
type Console struct{}

func (Console) Success(msg string) { fmt.Println("OK:", msg) }
func (Console) Info(msg string)    { fmt.Println("--", msg) }
func (Console) Error(msg string)   { fmt.Println("ERROR:", msg) }

// Recorder captures notifications for assertions in tests.
type Recorder struct {
	Successes []string
	Infos     []string
	Errors    []string
}

func (r *Recorder) Success(msg string) { r.Successes = append(r.Successes, msg) }
func (r *Recorder) Info(msg string)    { r.Infos = append(r.Infos, msg) }
func (r *Recorder) Error(msg string)   { r.Errors = append(r.Errors, msg) }
