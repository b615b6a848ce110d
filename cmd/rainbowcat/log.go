package main

import (
	"os"

	"github.com/aybabtme/rgbterm"
	"github.com/charmbracelet/log"
)

var logger = func() *log.Logger {
	level, err := log.ParseLevel(os.Getenv("RAINBOWCAT_LOG_LEVEL"))
	if err != nil {
		level = log.ErrorLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix: rgbterm.FgString(appName, 99, 99, 99),
		Level:  level,
	})
}()

func logdebug(format string, args ...interface{}) {
	logger.Debugf(format, args...)
}

func loginfo(format string, args ...interface{}) {
	logger.Infof(format, args...)
}

func logwarn(format string, args ...interface{}) {
	logger.Warnf(format, args...)
}

func logerror(format string, args ...interface{}) {
	logger.Errorf(format, args...)
}
