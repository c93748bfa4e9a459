package config

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

var logrusInstance *logrus.Logger

func GetLogrusInstance() *logrus.Logger {
	if logrusInstance == nil {
		logrusInstance = logrus.New()
		logrusInstance.SetFormatter(&logrus.JSONFormatter{})
	}
	return logrusInstance
}

const (
	green  = "\033[32m" // Green for 200 OK
	yellow = "\033[33m" // Yellow for 300 series
	red    = "\033[31m" // Red for 400 and 500 series
	reset  = "\033[0m"  // Reset to default color
)

// PrintLogInfo writes a colored one-liner for a handled request.
func PrintLogInfo(statusCode int, functionName string) {
	var logColor string

	switch {
	case statusCode < fiber.StatusMultipleChoices:
		logColor = green
	case statusCode < fiber.StatusBadRequest:
		logColor = yellow
	default:
		logColor = red
	}

	GetLogrusInstance().Infof("%s[%d]%s %s", logColor, statusCode, reset, functionName)
}
