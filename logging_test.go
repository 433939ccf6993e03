package viscos

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultLogger_Levels(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewLoggerTo(&out, &errOut, "test", false)

	l.Debugf("hidden %d", 1)
	l.Infof("hello %s", "world")
	l.Warnf("careful")
	l.Errorf("broken")

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "[test] INFO: hello world")
	assert.Contains(t, errOut.String(), "[test] WARN: careful")
	assert.Contains(t, errOut.String(), "[test] ERROR: broken")

	l.SetDebug(true)
	assert.True(t, l.DebugEnabled())
	l.Debugf("shown %d", 2)
	assert.Contains(t, out.String(), "DEBUG: shown 2")
}

func TestApp_LoggerFallsBackToNop(t *testing.T) {
	app := NewAppBuilder().Build()
	assert.NotNil(t, app.Logger())
	assert.False(t, app.Logger().DebugEnabled())

	app = NewAppBuilder().UseModule(LoggingModule{Prefix: "x", Debug: true}).Build()
	assert.True(t, app.Logger().DebugEnabled())
}
