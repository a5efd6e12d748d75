package log

import (
	"io"
	"os"
	"strings"
	"sync"
)

var setupOnce sync.Once

func init() {
	setupOnce.Do(func() {
		Global = registerNewSubLogger("LOG")
		ConfigMgr = registerNewSubLogger("CONFIG")
		DataGen = registerNewSubLogger("DATAGEN")
		Engine = registerNewSubLogger("ENGINE")
		ExchangeSim = registerNewSubLogger("EXCHANGE")
		PortfolioMgr = registerNewSubLogger("PORTFOLIO")
		Statistics = registerNewSubLogger("STATISTICS")
		StrategyMgr = registerNewSubLogger("STRATEGY")
	})
}

func registerNewSubLogger(name string) *SubLogger {
	sl := &SubLogger{
		name:   strings.ToUpper(name),
		levels: splitLevel("INFO|WARN|ERROR"),
		output: os.Stdout,
	}
	subLoggers[sl.name] = sl
	return sl
}

// SetLevel parses a pipe delimited level string eg INFO|WARN|DEBUG|ERROR
// and applies it to the sub logger
func (sl *SubLogger) SetLevel(levels string) {
	sl.mtx.Lock()
	sl.levels = splitLevel(levels)
	sl.mtx.Unlock()
}

// SetOutput redirects the sub logger to the supplied writer
func (sl *SubLogger) SetOutput(w io.Writer) {
	sl.mtx.Lock()
	sl.output = w
	sl.mtx.Unlock()
}

// SetGlobalLevel applies a level string to every registered sub logger
func SetGlobalLevel(levels string) {
	for x := range subLoggers {
		subLoggers[x].SetLevel(levels)
	}
}

func splitLevel(level string) Levels {
	var l Levels
	enabled := strings.Split(level, "|")
	for x := range enabled {
		switch strings.ToUpper(enabled[x]) {
		case "DEBUG":
			l.Debug = true
		case "INFO":
			l.Info = true
		case "WARN":
			l.Warn = true
		case "ERROR":
			l.Error = true
		}
	}
	return l
}
