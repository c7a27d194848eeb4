package cmd

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildVersion(t *testing.T) {
	assert.Equal(t, "(devel)", buildVersion(nil))

	info := &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}, Settings: []debug.BuildSetting{
		{Key: "vcs.revision", Value: "0123456789abcdef"},
	}}
	assert.Equal(t, "(devel) 0123456789ab", buildVersion(info))

	info.Main.Version = "v0.3.0"
	assert.Equal(t, "v0.3.0", buildVersion(info))

	version = "v9.9.9"
	t.Cleanup(func() { version = "" })
	assert.Equal(t, "v9.9.9", buildVersion(info))
}
