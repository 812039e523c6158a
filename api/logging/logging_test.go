package logging

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestInitLevels(t *testing.T) {
	defer Init("info", false)

	Init("debug", false)
	assert.Equal(t, logrus.DebugLevel, Level())
	assert.Equal(t, serviceName, Log.Data["service"])
	assert.Equal(t, true, Log.Data["is_development"])

	Init("not-a-level", true)
	assert.Equal(t, logrus.InfoLevel, Level())
	assert.IsType(t, &logrus.JSONFormatter{}, Log.Logger.Formatter)
}
