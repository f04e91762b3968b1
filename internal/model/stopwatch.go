package model

import "fmt"

// TickMs is the fixed stopwatch increment applied once per real second.
const TickMs = 1000

// Start flips the stopwatch into the running state. Starting an already
// running stopwatch is a no-op, so repeated starts never stack tickers.
func (s *Stopwatch) Start() {
	s.TimerRunning = true
}

// Pause stops accumulation; a no-op when the stopwatch is not running.
func (s *Stopwatch) Pause() {
	s.TimerRunning = false
}

// Reset implies pause and clears the accumulated time.
func (s *Stopwatch) Reset() {
	s.TimerRunning = false
	s.ElapsedMs = 0
}

// Tick adds one fixed increment when the stopwatch is running and reports
// whether anything changed.
func (s *Stopwatch) Tick() bool {
	if !s.TimerRunning {
		return false
	}
	s.ElapsedMs += TickMs
	return true
}

// FormatElapsed renders elapsed milliseconds as zero-padded HH:MM:SS.
// Hours are unbounded rather than wrapped at 24.
func FormatElapsed(elapsedMs int64) string {
	if elapsedMs < 0 {
		elapsedMs = 0
	}
	totalSec := elapsedMs / 1000
	hours := totalSec / 3600
	minutes := (totalSec % 3600) / 60
	seconds := totalSec % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

func (s Stopwatch) Display() string {
	return FormatElapsed(s.ElapsedMs)
}
