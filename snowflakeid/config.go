package snowflakeid

import (
	"fmt"
	"io"
	"time"

	"github.com/datatrails/go-datatrails-common/logger"
	"gopkg.in/yaml.v2"
)

// DefaultEpoch is the reference instant ids are measured from when the
// configuration does not choose one. All generators that need to compare or
// parse each other's ids must share an epoch.
var DefaultEpoch = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

type Config struct {
	// WorkerID identifies this generator. It must be unique among all
	// generators sharing an epoch and is ignored when WorkerCIDR is set.
	WorkerID uint64 `yaml:"workerId"`

	// WorkerCIDR selects which bits of NodeIP become the worker id, so two
	// nodes in the same subnet can't generate the same id. Empty means
	// WorkerID is used directly.
	WorkerCIDR string `yaml:"workerCidr"`

	// NodeIP is the workload private ip address, typically obtained from
	// the Kubernetes downward api.
	NodeIP string `yaml:"nodeIp"`

	// EpochMS is the epoch as unix milliseconds, for configurations read
	// from files. Epoch takes precedence when both are set, and the zero
	// value for both selects DefaultEpoch.
	EpochMS int64 `yaml:"epochMs"`

	// Epoch is the programmatic form of EpochMS. Immutable once the
	// generator is constructed.
	Epoch time.Time `yaml:"-"`

	// Log receives debug events from the generator. Nil means silent.
	Log logger.Logger `yaml:"-"`

	// Now overrides the wall clock source. Nil means time.Now. Exists so
	// tests can drive the clock, production code should leave it unset.
	Now func() time.Time `yaml:"-"`
}

// LoadConfig reads a yaml serialized Config.
func LoadConfig(r io.Reader) (Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

func (c Config) epochStart() time.Time {
	if !c.Epoch.IsZero() {
		return c.Epoch.UTC()
	}
	if c.EpochMS != 0 {
		return time.UnixMilli(c.EpochMS).UTC()
	}
	return DefaultEpoch
}
