package config

import (
	"github.com/kataras/golog"
)

var validLevels = map[string]bool{
	"debug":   true,
	"info":    true,
	"warn":    true,
	"error":   true,
	"fatal":   true,
	"disable": true,
}

// InitLogger configures the process-wide golog logger.
func InitLogger(cfg *Config) {
	level := cfg.Log.Level
	if !validLevels[level] {
		golog.Warnf("Unknown LOG_LEVEL %q, falling back to info", level)
		level = "info"
	}

	golog.SetLevel(level)
	golog.SetTimeFormat("2006-01-02 15:04:05")
	golog.SetPrefix("[resume-analyzer] ")
}
