package snowflakeid

import (
	"errors"
	"fmt"
)

const (
	// TimeBits is the number of bits reserved for the millisecond offset
	// from the epoch. 41 bits gives roughly 69 years of usable range.
	TimeBits = 41
	// WorkerBits is the number of bits reserved for the worker id.
	WorkerBits = 10
	// SeqBits is the number of bits reserved for the per millisecond
	// sequence counter.
	SeqBits = 12

	TimeShift   = WorkerBits + SeqBits
	WorkerShift = SeqBits

	MaxTimestamp uint64 = (1 << TimeBits) - 1
	MaxWorkerID  uint64 = (1 << WorkerBits) - 1
	MaxSequence  uint64 = (1 << SeqBits) - 1

	TimeMask   uint64 = MaxTimestamp << TimeShift
	WorkerMask uint64 = MaxWorkerID << WorkerShift
)

var ErrFieldOverflow = errors.New("field value exceeds its bit allocation")

// Snowflake is the decomposition of an id into its three fields. The
// timestamp is the millisecond offset from the generator epoch, not unix
// time, see IDTime and IDUnixMilli for recovering wall clock time.
type Snowflake struct {
	TimestampMS uint64
	WorkerID    uint64
	Sequence    uint64
}

// Pack encodes the three fields into a single id, timestamp in the high
// bits, worker id in the middle, sequence in the low bits. Each field is
// range checked against its bit allocation, there is no silent truncation.
func Pack(timestampMS, workerID, sequence uint64) (uint64, error) {
	if timestampMS > MaxTimestamp {
		return 0, fmt.Errorf("timestamp %d: %w", timestampMS, ErrFieldOverflow)
	}
	if workerID > MaxWorkerID {
		return 0, fmt.Errorf("worker id %d: %w", workerID, ErrFieldOverflow)
	}
	if sequence > MaxSequence {
		return 0, fmt.Errorf("sequence %d: %w", sequence, ErrFieldOverflow)
	}
	return timestampMS<<TimeShift | workerID<<WorkerShift | sequence, nil
}

// Unpack splits an id into its fields. It is total over the full 64 bit
// domain, any bit pattern decodes to some triple, and it is the exact
// inverse of Pack for all in range inputs.
func Unpack(id uint64) Snowflake {
	return Snowflake{
		TimestampMS: (id >> TimeShift) & MaxTimestamp,
		WorkerID:    (id >> WorkerShift) & MaxWorkerID,
		Sequence:    id & MaxSequence,
	}
}

// ID re-encodes the decomposition. Values produced by Unpack always
// re-encode cleanly, a hand constructed Snowflake is range checked.
func (s Snowflake) ID() (uint64, error) {
	return Pack(s.TimestampMS, s.WorkerID, s.Sequence)
}
