package snowflakeid

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/datatrails/go-datatrails-common/logger"
)

var (
	ErrInvalidWorkerID    = errors.New("worker id outside the range allowed by the worker bit allocation")
	ErrClockMovedBackward = errors.New("wall clock reads earlier than the last issued id")
	ErrEpochRange         = errors.New("the epoch is not usable with the current clock reading")
)

// Generator issues snowflake ids for a single worker. It is safe for
// concurrent use, the whole read-modify-write of the clock and the sequence
// counter happens under one lock so every caller observes a serialized,
// strictly increasing series.
type Generator struct {
	maskedWorkerID uint64
	epochStart     time.Time
	epochMS        int64
	now            func() time.Time
	log            logger.Logger

	mu sync.Mutex
	// lastMS is the millisecond offset of the most recently issued id, -1
	// until the first id is issued.
	lastMS int64
	seq    uint64
}

// New constructs a generator for the given worker id with the default
// epoch. Use NewGenerator for anything beyond that.
func New(workerID uint64) (*Generator, error) {
	return NewGenerator(Config{WorkerID: workerID})
}

// NewGenerator validates the configuration and constructs a generator. The
// worker id and epoch are fixed for the life of the generator.
func NewGenerator(cfg Config) (*Generator, error) {
	workerID := cfg.WorkerID
	if cfg.WorkerCIDR != "" {
		var err error
		workerID, err = WorkerIDFromCIDR(cfg.WorkerCIDR, cfg.NodeIP)
		if err != nil {
			return nil, err
		}
	}
	if workerID > MaxWorkerID {
		return nil, fmt.Errorf("worker id %d not in [0, %d]: %w", workerID, MaxWorkerID, ErrInvalidWorkerID)
	}

	g := &Generator{
		maskedWorkerID: workerID << WorkerShift,
		epochStart:     cfg.epochStart(),
		now:            cfg.Now,
		log:            cfg.Log,
		lastMS:         -1,
	}
	if g.now == nil {
		g.now = time.Now
	}
	g.epochMS = g.epochStart.UnixMilli()
	if g.now().UnixMilli() < g.epochMS {
		return nil, fmt.Errorf("epoch %s is in the future: %w", g.epochStart.Format(time.RFC3339), ErrEpochRange)
	}

	if g.log != nil {
		g.log.Debugf("snowflakeid: worker=%d epoch=%s", workerID, g.epochStart.Format(time.RFC3339))
	}
	return g, nil
}

// NextID returns the next value in a time ordered, unique and monotonic
// series for this worker.
//
// Within a millisecond the sequence counter increments, and when it is
// exhausted the call waits for the clock to pass the stalled millisecond.
// A clock observed behind the last issued id fails with
// ErrClockMovedBackward rather than risking a duplicate, callers should
// treat that as a clock fault rather than retry blindly.
func (g *Generator) NextID() (uint64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now, err := g.nowMilli()
	if err != nil {
		return 0, err
	}

	switch {
	case now > g.lastMS:
		g.seq = 0

	case now < g.lastMS:
		return 0, fmt.Errorf("now %dms, last issued %dms: %w", now, g.lastMS, ErrClockMovedBackward)

	case g.seq == MaxSequence:
		// The sequence is exhausted for this millisecond. Wait out the
		// remainder and start fresh on the new reading.
		now, err = g.waitNextMilli(g.lastMS)
		if err != nil {
			return 0, err
		}
		g.seq = 0

	default:
		g.seq++
	}

	g.lastMS = now
	return uint64(now)<<TimeShift | g.maskedWorkerID | g.seq, nil
}

// Parse decomposes an id. It never fails and reads no generator state, it
// exists so callers holding a generator need not reach for the package
// functions.
func (g *Generator) Parse(id uint64) Snowflake {
	return Unpack(id)
}

func (g *Generator) WorkerID() uint64 {
	return g.maskedWorkerID >> WorkerShift
}

// EpochStart returns the wall clock instant ids are measured from.
func (g *Generator) EpochStart() time.Time {
	return g.epochStart
}

// IDTime returns the wall clock time an id issued by this generator was
// created at.
func (g *Generator) IDTime(id uint64) time.Time {
	return IDTime(id, g.epochStart)
}

// nowMilli reads the wall clock as milliseconds since the epoch, range
// checked against the timestamp field.
func (g *Generator) nowMilli() (int64, error) {
	ms := g.now().UnixMilli() - g.epochMS
	if ms < 0 {
		return 0, fmt.Errorf("clock reads %dms before the epoch: %w", -ms, ErrClockMovedBackward)
	}
	if uint64(ms) > MaxTimestamp {
		return 0, fmt.Errorf("%dms overflows the %d bit timestamp field: %w", ms, TimeBits, ErrEpochRange)
	}
	return ms, nil
}

// waitNextMilli sleeps in short increments until the wall clock passes
// lastMS and returns the new reading. The wait is sub millisecond so a
// polling sleep is cheaper than anything scheduled.
func (g *Generator) waitNextMilli(lastMS int64) (int64, error) {
	if g.log != nil {
		g.log.Debugf("snowflakeid: sequence exhausted at %dms, waiting for the clock", lastMS)
	}
	for {
		ms, err := g.nowMilli()
		if err != nil {
			return 0, err
		}
		if ms > lastMS {
			return ms, nil
		}
		time.Sleep(50 * time.Microsecond)
	}
}
