package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestInitParsesLevel(t *testing.T) {
	previous := Log
	t.Cleanup(func() { Log = previous })

	Init("debug")
	assert.Equal(t, logrus.DebugLevel, Log.GetLevel())

	Init("not-a-level")
	assert.Equal(t, logrus.InfoLevel, Log.GetLevel())

	Init("")
	assert.Equal(t, logrus.InfoLevel, Log.GetLevel())
}

func TestWithFieldsUsesCurrentLogger(t *testing.T) {
	entry := WithFields(logrus.Fields{"run_id": "abc"})
	assert.Equal(t, "abc", entry.Data["run_id"])
	assert.Same(t, Log, entry.Logger)
}
