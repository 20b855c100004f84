package gorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm/logger"
)

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, logger.Silent, ParseLogLevel("silent"))
	assert.Equal(t, logger.Error, ParseLogLevel("ERROR"))
	assert.Equal(t, logger.Info, ParseLogLevel("debug"))
	assert.Equal(t, logger.Warn, ParseLogLevel(""))
}

func TestZapWriter_Levels(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	w := zapWriter{logger: zap.New(core)}

	w.Printf("%s", "SLOW SQL >= 100ms")
	w.Printf("%s", "record error")
	w.Printf("%s", "SELECT 1")

	entries := logs.All()
	if assert.Len(t, entries, 3) {
		assert.Equal(t, zap.WarnLevel, entries[0].Level)
		assert.Equal(t, zap.ErrorLevel, entries[1].Level)
		assert.Equal(t, zap.DebugLevel, entries[2].Level)
	}
}
