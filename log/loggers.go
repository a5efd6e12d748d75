package log

import (
	"fmt"
	"time"
)

// Info takes a pointer sub logger and string sends to stage
func Info(sl *SubLogger, data string) {
	sl.stage("INFO", data)
}

// Infoln takes a pointer sub logger and interface sends to stage
func Infoln(sl *SubLogger, v ...interface{}) {
	sl.stage("INFO", fmt.Sprintln(v...))
}

// Infof takes a pointer sub logger, string & interface formats and sends to stage
func Infof(sl *SubLogger, data string, v ...interface{}) {
	Info(sl, fmt.Sprintf(data, v...))
}

// Debug takes a pointer sub logger and string sends to stage
func Debug(sl *SubLogger, data string) {
	sl.stage("DEBUG", data)
}

// Debugln takes a pointer sub logger and interface sends to stage
func Debugln(sl *SubLogger, v ...interface{}) {
	sl.stage("DEBUG", fmt.Sprintln(v...))
}

// Debugf takes a pointer sub logger, string & interface formats and sends to stage
func Debugf(sl *SubLogger, data string, v ...interface{}) {
	Debug(sl, fmt.Sprintf(data, v...))
}

// Warn takes a pointer sub logger and string sends to stage
func Warn(sl *SubLogger, data string) {
	sl.stage("WARN", data)
}

// Warnln takes a pointer sub logger and interface sends to stage
func Warnln(sl *SubLogger, v ...interface{}) {
	sl.stage("WARN", fmt.Sprintln(v...))
}

// Warnf takes a pointer sub logger, string & interface formats and sends to stage
func Warnf(sl *SubLogger, data string, v ...interface{}) {
	Warn(sl, fmt.Sprintf(data, v...))
}

// Error takes a pointer sub logger and string sends to stage
func Error(sl *SubLogger, data string) {
	sl.stage("ERROR", data)
}

// Errorln takes a pointer sub logger and interface sends to stage
func Errorln(sl *SubLogger, v ...interface{}) {
	sl.stage("ERROR", fmt.Sprintln(v...))
}

// Errorf takes a pointer sub logger, string & interface formats and sends to stage
func Errorf(sl *SubLogger, data string, v ...interface{}) {
	Error(sl, fmt.Sprintf(data, v...))
}

func (sl *SubLogger) enabled(header string) bool {
	sl.mtx.RLock()
	defer sl.mtx.RUnlock()
	switch header {
	case "INFO":
		return sl.levels.Info
	case "DEBUG":
		return sl.levels.Debug
	case "WARN":
		return sl.levels.Warn
	case "ERROR":
		return sl.levels.Error
	}
	return false
}

func (sl *SubLogger) stage(header, data string) {
	if sl == nil || !sl.enabled(header) {
		return
	}
	sl.mtx.RLock()
	w := sl.output
	sl.mtx.RUnlock()
	if w == nil {
		return
	}
	msg := header + spacer + sl.name + spacer + time.Now().Format(timestampFormat) + spacer + data
	if len(msg) == 0 || msg[len(msg)-1] != '\n' {
		msg += "\n"
	}
	fmt.Fprint(w, msg)
}
