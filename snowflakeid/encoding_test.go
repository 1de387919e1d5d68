package snowflakeid

import (
	"bytes"
	"testing"

	"gotest.tools/v3/assert"
)

func TestIDHexRoundTrip(t *testing.T) {
	id, err := Pack(1000, 123, 1)
	assert.NilError(t, err)

	h := IDToHex(id)
	got, err := IDFromHex(h)
	assert.NilError(t, err)
	assert.Equal(t, id, got)

	got, err = IDFromHex("0x" + h)
	assert.NilError(t, err)
	assert.Equal(t, id, got)
}

func TestIDFromHexRejectsGarbage(t *testing.T) {
	_, err := IDFromHex("zz")
	assert.Assert(t, err != nil)

	_, err = IDFromHex("0102")
	assert.ErrorIs(t, err, ErrIDBytesTooShort)
}

func TestIDBytesRoundTrip(t *testing.T) {
	id, err := Pack(MaxTimestamp, MaxWorkerID, MaxSequence)
	assert.NilError(t, err)

	got, err := IDFromBytes(IDBytes(id))
	assert.NilError(t, err)
	assert.Equal(t, id, got)

	_, err = IDFromBytes([]byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrIDBytesTooShort)
}

// Serialized ids must sort the same way the integers do.
func TestIDBytesOrdering(t *testing.T) {
	lo, err := Pack(1000, MaxWorkerID, MaxSequence)
	assert.NilError(t, err)
	hi, err := Pack(1001, 0, 0)
	assert.NilError(t, err)

	assert.Assert(t, bytes.Compare(IDBytes(lo), IDBytes(hi)) < 0)
}
