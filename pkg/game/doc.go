// Package game implements the two learning screens: free practice with the
// interactive clock and the full-hour quiz.
//
// Both are host state machines. [Practice] owns the time the widget shows
// and accepts the widget's proposals; [Quiz] owns the question, feedback
// and counters and credits correct answers to learning progress. Neither
// draws anything: the CLI and the HTTP API render their state.
package game
