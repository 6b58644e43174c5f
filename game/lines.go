package game

// WinLines holds one bitmask per winning line of an N×N board:
// every row, every column and both full diagonals (2N+2 lines of N bits each).
type WinLines struct {
	size  int
	masks []uint64
}

func NewWinLines(size int) (WinLines, error) {
	if err := validSize(size); err != nil {
		return WinLines{}, err
	}

	masks := make([]uint64, 0, 2*size+2)

	// Rows
	rowMask := uint64(1)<<size - 1
	for row := 0; row < size; row++ {
		masks = append(masks, rowMask<<(row*size))
	}

	// Columns
	for col := 0; col < size; col++ {
		var mask uint64
		for row := 0; row < size; row++ {
			mask |= 1 << (row*size + col)
		}
		masks = append(masks, mask)
	}

	// Diagonals
	var main, anti uint64
	for i := 0; i < size; i++ {
		main |= 1 << (i*size + i)
		anti |= 1 << (i*size + size - 1 - i)
	}
	masks = append(masks, main, anti)

	return WinLines{size: size, masks: masks}, nil
}

func (w WinLines) Size() int {
	return w.size
}

func (w WinLines) Len() int {
	return len(w.masks)
}

// Masks returns a copy of the line masks in scan order.
func (w WinLines) Masks() []uint64 {
	masks := make([]uint64, len(w.masks))
	copy(masks, w.masks)
	return masks
}
