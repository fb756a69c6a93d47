package clmm

import "strconv"

// Tick array bucketing. Each tick array account covers
// TickArraySize * tickSpacing consecutive ticks; the bucket is identified by
// its start index, the lowest tick it covers.

func ticksPerArray(tickSpacing uint16) int32 {
	return int32(tickSpacing) * TickArraySize
}

// StartTickIndex returns the start index of the array containing tick.
// Floored division, so negative ticks bucket toward MinTick.
func StartTickIndex(tick int32, tickSpacing uint16) (int32, error) {
	if tick < MinTick || tick > MaxTick {
		return 0, tickRangeError(tick)
	}
	if err := validateSpacing(tickSpacing); err != nil {
		return 0, err
	}
	per := ticksPerArray(tickSpacing)
	start := tick / per
	if tick < 0 && tick%per != 0 {
		start--
	}
	return start * per, nil
}

// StartIndexesForRange returns the distinct array start indexes covering a
// position's bounds, in ascending order. One entry when both bounds share an
// array, two otherwise.
func StartIndexesForRange(tickLower, tickUpper int32, tickSpacing uint16) ([]int32, error) {
	if tickLower >= tickUpper {
		return nil, &RangeError{
			Name:  "tickLower",
			Value: strconv.FormatInt(int64(tickLower), 10),
			Min:   strconv.FormatInt(int64(MinTick), 10),
			Max:   strconv.FormatInt(int64(tickUpper), 10),
		}
	}
	lowerStart, err := StartTickIndex(tickLower, tickSpacing)
	if err != nil {
		return nil, err
	}
	upperStart, err := StartTickIndex(tickUpper, tickSpacing)
	if err != nil {
		return nil, err
	}
	if lowerStart == upperStart {
		return []int32{lowerStart}, nil
	}
	return []int32{lowerStart, upperStart}, nil
}

// StartIndexesForSwap returns up to count array start indexes a swap crossing
// outward from the current tick will touch, in crossing order: descending for
// an A-to-B swap (price falls), ascending otherwise. The walk starts at the
// current tick's array and is clipped to the arrays that contain MinTick and
// MaxTick, so near the domain edge fewer than count entries come back.
func StartIndexesForSwap(tickCurrent int32, tickSpacing uint16, aToB bool, count int) ([]int32, error) {
	if count <= 0 {
		return nil, &RangeError{
			Name:  "count",
			Value: strconv.Itoa(count),
			Min:   "1",
			Max:   "unbounded",
		}
	}
	start, err := StartTickIndex(tickCurrent, tickSpacing)
	if err != nil {
		return nil, err
	}
	minStart, err := StartTickIndex(MinTick, tickSpacing)
	if err != nil {
		return nil, err
	}
	maxStart, err := StartTickIndex(MaxTick, tickSpacing)
	if err != nil {
		return nil, err
	}

	per := ticksPerArray(tickSpacing)
	step := per
	if aToB {
		step = -per
	}

	out := make([]int32, 0, count)
	for cursor := start; len(out) < count && cursor >= minStart && cursor <= maxStart; cursor += step {
		out = append(out, cursor)
	}
	return out, nil
}
