package immutables

import "testing"

func TestSlotIndexMasksToFiveBits(t *testing.T) {
	for shift := uint(0); shift <= maxShift; shift += shiftStep {
		want := uint32(0x1F)
		if shift == maxShift {
			want = 0x3 // only bits 30 and 31 remain above the deepest shift
		}
		got := slotIndex(0xFFFFFFFF, shift)
		if got != want {
			t.Fatalf("slotIndex(all-ones, %d) = %d, want %d", shift, got, want)
		}
	}
	if got := slotIndex(1<<5, 0); got != 0 {
		t.Fatalf("slotIndex(0b100000, 0) = %d, want 0", got)
	}
	if got := slotIndex(1<<5, 5); got != 1 {
		t.Fatalf("slotIndex(0b100000, 5) = %d, want 1", got)
	}
}

func TestBitPosIsOneHot(t *testing.T) {
	for slot := uint32(0); slot < 32; slot++ {
		bit := bitPos(slot)
		if bit == 0 || bit&(bit-1) != 0 {
			t.Fatalf("bitPos(%d) = %#x is not one-hot", slot, bit)
		}
	}
}

func TestCompactIndexCountsLowerBits(t *testing.T) {
	var bitmap uint32
	for _, slot := range []uint32{1, 3, 7, 20} {
		bitmap |= bitPos(slot)
	}

	cases := []struct {
		slot uint32
		want int
	}{
		{0, 0},
		{1, 0},
		{2, 1},
		{3, 1},
		{4, 2},
		{7, 2},
		{8, 3},
		{20, 3},
		{21, 4},
	}
	for _, c := range cases {
		got := compactIndex(bitmap, bitPos(c.slot))
		if got != c.want {
			t.Fatalf("compactIndex(bitmap, bitPos(%d)) = %d, want %d", c.slot, got, c.want)
		}
	}
}
