package util

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var GLOBAL_LOG_LEVEL = LogLevelInfo
var GLOBAL_LOG_CATEGORIES = LogWorld | LogConfig

var logMutex sync.Mutex
var logOutput io.Writer = os.Stderr

type LogLevel int

const (
	LogLevelError LogLevel = 1 << iota
	LogLevelWarning
	LogLevelInfo
	LogLevelDebug
)

type LogCategory int

const (
	LogGrid LogCategory = 1 << iota
	LogVision
	LogPath
	LogWorld
	LogConfig
)

const LogAll = LogGrid | LogVision | LogPath | LogWorld | LogConfig

// SetLogOutput redirects all log lines and returns the previous writer.
func SetLogOutput(w io.Writer) io.Writer {
	logMutex.Lock()
	defer logMutex.Unlock()
	previous := logOutput
	logOutput = w
	return previous
}

// SetLogFilter sets the maximum level and the enabled categories.
func SetLogFilter(lvl LogLevel, categories LogCategory) {
	logMutex.Lock()
	defer logMutex.Unlock()
	GLOBAL_LOG_LEVEL = lvl
	GLOBAL_LOG_CATEGORIES = categories
}

func log(cat LogCategory, lvl LogLevel, txt string) {
	logMutex.Lock()
	defer logMutex.Unlock()
	if lvl > GLOBAL_LOG_LEVEL {
		return
	}
	if GLOBAL_LOG_CATEGORIES&cat == 0 {
		return
	}
	fmt.Fprintln(logOutput, txt)
}

func LogGridDebug(txt string) {
	log(LogGrid, LogLevelDebug, txt)
}

func LogVisionDebug(txt string) {
	log(LogVision, LogLevelDebug, txt)
}

func LogPathDebug(txt string) {
	log(LogPath, LogLevelDebug, txt)
}

func LogPathInfo(txt string) {
	log(LogPath, LogLevelInfo, txt)
}

func LogWorldInfo(txt string) {
	log(LogWorld, LogLevelInfo, txt)
}

func LogWorldDebug(txt string) {
	log(LogWorld, LogLevelDebug, txt)
}

func LogWorldWarning(txt string) {
	log(LogWorld, LogLevelWarning, txt)
}

func LogWorldError(txt string) {
	log(LogWorld, LogLevelError, txt)
}

func LogConfigInfo(txt string) {
	log(LogConfig, LogLevelInfo, txt)
}

func LogConfigError(txt string) {
	log(LogConfig, LogLevelError, txt)
}
