package entity

const (
	EmptyCell = 0

	MarkerOne = 1
	MarkerTwo = 2
)

// Board is a row-major grid of markers, len(Board) == size*size.
type Board []int

func (that Board) Clone() Board {
	if that == nil {
		return nil
	}

	out := make(Board, len(that))
	copy(out, that)

	return out
}
