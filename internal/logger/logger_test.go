package logger

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type LoggerTestSuite struct {
	suite.Suite
}

func TestLoggerSuite(t *testing.T) {
	suite.Run(t, new(LoggerTestSuite))
}

func (suite *LoggerTestSuite) TestNewLogger() {
	logger, err := NewLogger()
	suite.NoError(err)
	suite.NotNil(logger)
	suite.NotNil(logger.Logger)
}

func (suite *LoggerTestSuite) TestSync() {
	logger, err := NewLogger()
	suite.NoError(err)

	// Sync on stdout may return an error on some platforms; just make sure
	// it does not panic.
	_ = logger.Sync()
}

func (suite *LoggerTestSuite) TestSyncNilLogger() {
	logger := &Logger{}
	err := logger.Sync()
	suite.NoError(err)
}

func (suite *LoggerTestSuite) TestNopLoggerLogs() {
	logger := NewNopLogger()
	suite.NotNil(logger.Logger)

	logger.Info("test info message")
	logger.Debug("test debug message")
	logger.Warn("test warn message")
}
