package logger

import (
	"testing"

	"kidsphere_backend/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestRotatingFileDefaults(t *testing.T) {
	lj := rotatingFile(&config.LogConfig{})
	assert.Equal(t, "logs/kidsphere.log", lj.Filename)
	assert.Equal(t, 100, lj.MaxSize)
	assert.Equal(t, 5, lj.MaxBackups)
	assert.Equal(t, 30, lj.MaxAge)
	assert.False(t, lj.Compress)
}

func TestRotatingFileHonorsConfig(t *testing.T) {
	lj := rotatingFile(&config.LogConfig{
		File:       "/var/log/app.log",
		MaxSizeMB:  10,
		MaxBackups: 2,
		MaxAgeDays: 7,
		Compress:   true,
	})
	assert.Equal(t, "/var/log/app.log", lj.Filename)
	assert.Equal(t, 10, lj.MaxSize)
	assert.Equal(t, 2, lj.MaxBackups)
	assert.Equal(t, 7, lj.MaxAge)
	assert.True(t, lj.Compress)
}
