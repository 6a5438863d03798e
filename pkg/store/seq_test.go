package store

import (
	"encoding/binary"
	"testing"
)

func TestMarshalSeq(t *testing.T) {
	for _, seq := range []uint64{0, 1, 255, 256, 1 << 40} {
		key := marshalSeq(seq)
		if len(key) != 8 {
			t.Errorf("marshalSeq(%d) has %d bytes", seq, len(key))
		}
		if got := binary.BigEndian.Uint64(key); got != seq {
			t.Errorf("decoded key of %d = %d", seq, got)
		}
	}
	// Keys sort in sequence order, which bbolt iteration relies on.
	if string(marshalSeq(255)) >= string(marshalSeq(256)) {
		t.Errorf("marshalSeq does not preserve order")
	}
}
