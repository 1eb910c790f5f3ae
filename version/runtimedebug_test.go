package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildInfo(t *testing.T) {
	bi, err := BuildInfo()
	assert.NoError(t, err)
	assert.NotNil(t, bi)
}

func TestSDK(t *testing.T) {
	assert.NotEmpty(t, SDK())
}

func TestModuleVersion(t *testing.T) {
	bi := &debug.BuildInfo{
		Main: debug.Module{Path: "example.com/app", Version: "v0.1.0"},
		Deps: []*debug.Module{
			{Path: "github.com/sirupsen/logrus", Version: "v1.9.3"},
			{Path: ModulePath, Version: "v1.2.0"},
		},
	}
	assert.Equal(t, "v1.2.0", moduleVersion(bi, ModulePath))

	bi.Deps[1].Replace = &debug.Module{Path: "../market", Version: ""}
	assert.Equal(t, "v1.2.0", moduleVersion(bi, ModulePath))

	bi.Deps[1].Replace = &debug.Module{Path: "example.com/fork", Version: "v1.2.1-fork"}
	assert.Equal(t, "v1.2.1-fork", moduleVersion(bi, ModulePath))

	assert.Equal(t, "(devel)", moduleVersion(bi, "example.com/absent"))

	bi.Main = debug.Module{Path: ModulePath, Version: "(devel)"}
	assert.Equal(t, "(devel)", moduleVersion(bi, ModulePath))
}
