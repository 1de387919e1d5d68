package snowflakeid

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	doc := `
workerId: 42
epochMs: 1577836800000
`
	cfg, err := LoadConfig(strings.NewReader(doc))
	require.NoError(t, err)
	require.Equal(t, uint64(42), cfg.WorkerID)
	require.Equal(t, int64(1577836800000), cfg.EpochMS)

	g, err := NewGenerator(cfg)
	require.NoError(t, err)
	require.Equal(t, uint64(42), g.WorkerID())
	// 1577836800000 is 2020-01-01T00:00:00Z
	require.True(t, g.EpochStart().Equal(DefaultEpoch))
}

func TestLoadConfigWorkerCIDR(t *testing.T) {
	doc := `
workerCidr: 0.0.0.0/24
nodeIp: 10.0.0.17
`
	cfg, err := LoadConfig(strings.NewReader(doc))
	require.NoError(t, err)

	g, err := NewGenerator(cfg)
	require.NoError(t, err)
	require.Equal(t, uint64(17), g.WorkerID())
}

func TestLoadConfigRejectsGarbage(t *testing.T) {
	_, err := LoadConfig(strings.NewReader("workerId: [not an integer"))
	require.Error(t, err)
}

func TestConfigEpochPrecedence(t *testing.T) {
	// Epoch wins over EpochMS, and the zero value of both is DefaultEpoch
	cfg := Config{EpochMS: 1}
	require.Equal(t, int64(1), cfg.epochStart().UnixMilli())

	cfg.Epoch = DefaultEpoch
	require.True(t, cfg.epochStart().Equal(DefaultEpoch))

	require.True(t, Config{}.epochStart().Equal(DefaultEpoch))
}
