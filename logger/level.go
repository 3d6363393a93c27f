// SPDX-License-Identifier: GPL-3.0-or-later

package logger

import (
	"log/slog"
	"strings"
)

const (
	levelNotice  = slog.Level(2)
	levelDisable = slog.Level(99)
)

var customLevelsTerm = map[slog.Level]string{
	levelNotice: "\u001B[34m" + "NTC" + "\u001B[0m",
}

func levelName(lvl slog.Level) string {
	if lvl == levelNotice {
		return "NOTICE"
	}
	return lvl.String()
}

// Level is the process-wide minimum level shared by every Logger.
var Level = &level{lvl: &slog.LevelVar{}}

type level struct {
	lvl *slog.LevelVar
}

func (l *level) Enabled(level slog.Level) bool {
	return level >= l.lvl.Level()
}

func (l *level) Set(level slog.Level) {
	l.lvl.Set(level)
}

// SetByName accepts the names used by TS3_EXPORTER_LOG_LEVEL.
// Unknown names leave the level untouched and report false.
func (l *level) SetByName(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "err", "error":
		l.lvl.Set(slog.LevelError)
	case "warn", "warning":
		l.lvl.Set(slog.LevelWarn)
	case "notice":
		l.lvl.Set(levelNotice)
	case "info":
		l.lvl.Set(slog.LevelInfo)
	case "debug":
		l.lvl.Set(slog.LevelDebug)
	case "off", "none", "emergency", "alert", "critical":
		l.lvl.Set(levelDisable)
	default:
		return false
	}
	return true
}
