package tdma

import (
	"bytes"
	"testing"
)

// S1 — codec round-trip, exact byte layout.
func TestEncodeDecodeHeaderRoundTrip(t *testing.T) {
	buf := make([]byte, HeaderSize)
	encodeHeader(buf, 7, 0x0102030405060708, 0x1122334455667788)

	want := []byte{
		0x00, 0x00, 0x00, 0x07,
		0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08,
		0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88,
	}
	if !bytes.Equal(buf, want) {
		t.Fatalf("encodeHeader = % x, want % x", buf, want)
	}

	h := decodeHeader(buf)
	if h.slot != 7 || h.tid != 0x0102030405060708 || h.clock != 0x1122334455667788 {
		t.Fatalf("decodeHeader = %+v, want slot=7 tid=0x0102030405060708 clock=0x1122334455667788", h)
	}
}

func TestEncodeDecodeHeaderRoundTripFuzzLike(t *testing.T) {
	cases := []header{
		{slot: 0, tid: 0, clock: 0},
		{slot: 0xFFFFFFFF, tid: 0xFFFFFFFFFFFFFFFF, clock: 0xFFFFFFFFFFFFFFFF},
		{slot: 1, tid: 42, clock: 999},
	}
	for _, c := range cases {
		buf := make([]byte, HeaderSize)
		encodeHeader(buf, c.slot, c.tid, c.clock)
		got := decodeHeader(buf)
		if got != c {
			t.Fatalf("round trip %+v -> %+v", c, got)
		}
	}
}

func TestSlotStatsRoundTrip(t *testing.T) {
	tid := encodeSlotStats(10, 200)
	count, width := decodeSlotStats(tid)
	if count != 10 || width != 200 {
		t.Fatalf("decodeSlotStats(encodeSlotStats(10, 200)) = (%d, %d), want (10, 200)", count, width)
	}
}

func TestDecodeHeaderTooShort(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on short buffer; callers must length-check first")
		}
	}()
	_ = decodeHeader(make([]byte, 4))
}
