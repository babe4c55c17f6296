// Package utils holds small helpers shared by the planner commands.
package utils

import (
	"time"

	"github.com/rs/zerolog"
)

// SlowCommandThreshold is the duration above which a command is logged at warn level
const SlowCommandThreshold = 5 * time.Second

// CommandTimer starts timing a command. The returned function logs the
// duration and outcome; call it once with the command's error.
//
// Usage:
//
//	done := utils.CommandTimer("compare", log)
//	err := runCompare()
//	done(err)
func CommandTimer(command string, log zerolog.Logger) func(err error) {
	start := time.Now()

	return func(err error) {
		duration := time.Since(start)

		log.Debug().
			Str("command", command).
			Dur("duration_ms", duration).
			Bool("ok", err == nil).
			Msg("Command completed")

		if duration > SlowCommandThreshold {
			log.Warn().
				Str("command", command).
				Dur("duration", duration).
				Msg("Slow command detected")
		}
	}
}
