package mock

import (
	"testing"

	"github.com/anoideaopen/market/core/logger"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestNewChainSetsSDKLogLevel(t *testing.T) {
	sdk := logger.Logger().Logger
	prev := sdk.GetLevel()
	t.Cleanup(func() { sdk.SetLevel(prev) })

	t.Setenv("LOG", "debug")
	NewChain(t)
	require.Equal(t, logrus.DebugLevel, sdk.GetLevel())

	t.Setenv("LOG", "warning")
	NewChain(t)
	require.Equal(t, logrus.WarnLevel, sdk.GetLevel())
}
