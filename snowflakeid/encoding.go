package snowflakeid

// When ids are serialised for propagation outside the process we encode
// them big endian so that the byte ordering matches the numeric, and hence
// the issue, ordering. This file contains utilities for dealing safely with
// that.

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"strings"
)

var ErrIDBytesTooShort = errors.New("not enough bytes to represent an id")

// IDBytes returns the 8 byte big endian serialization of an id. Serialized
// ids sort correctly as keys.
func IDBytes(id uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, id)
	return b
}

// IDFromBytes reads an id serialized by IDBytes.
func IDFromBytes(b []byte) (uint64, error) {
	if len(b) < 8 {
		return 0, ErrIDBytesTooShort
	}
	return binary.BigEndian.Uint64(b[:8]), nil
}

// IDToHex returns the 16 character hex encoding of an id.
func IDToHex(id uint64) string {
	return hex.EncodeToString(IDBytes(id))
}

// IDFromHex accepts the hex encoding of an id, with or without a leading 0x
// prefix.
func IDFromHex(s string) (uint64, error) {
	s = strings.TrimPrefix(s, "0x")
	b, err := hex.DecodeString(s)
	if err != nil {
		return 0, err
	}
	return IDFromBytes(b)
}
