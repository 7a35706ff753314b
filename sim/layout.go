// Defines the VenueLayout: the static geometry every utility computation
// depends on. A layout is built once from a block/row specification and is
// immutable (and freely shareable across simulations) afterwards.

package sim

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ErrConfiguration marks fatal construction-time configuration problems,
// such as a position-utility matrix whose shape matches neither the
// seat-only sub-grid nor the full grid.
var ErrConfiguration = errors.New("invalid configuration")

// Coord is a position on the venue grid. X indexes columns (0 = leftmost),
// Y indexes rows (0 = front). Each non-aisle Coord hosts exactly one Seat.
type Coord struct {
	X int
	Y int
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// LayoutConfig groups the inputs for NewVenueLayout.
type LayoutConfig struct {
	// Blocks lists seats per row for each block. An aisle column is placed
	// between consecutive blocks (not before the first or after the last).
	Blocks []int
	// NumRows is the total row count, aisle rows included.
	NumRows int
	// PosUtilities optionally assigns a static attractivity to each seat.
	// Accepted shapes: the seat-only sub-grid (aisles stripped) or the full
	// grid. Orientation follows the grid: row index = column x, column
	// index = row y. Nil means all-zero position utility.
	PosUtilities *mat.Dense
	// Entrances overrides the entrance positions. Default: the two outer
	// corners of the front row.
	Entrances []Coord
	// AislesY lists horizontal aisle rows. Default: a single aisle at row 0.
	AislesY []int
}

// VenueLayout is the immutable venue geometry: grid extents, aisles,
// entrances, the normalized per-seat position utility, and the passage
// bound used to normalize accessibility.
type VenueLayout struct {
	Width   int
	NumRows int
	// Blocks is the block specification the layout was built from. Kept
	// because profile analysis splits seat rows at block boundaries.
	Blocks    []int
	AislesX   []int
	AislesY   []int
	Entrances []Coord
	// MaxPass is the maximum number of occupied seats that could ever sit
	// between a seat and its nearest aisle, across all blocks.
	MaxPass   int
	SeatCount int

	posUtilities *mat.Dense // Width x NumRows, normalized to max 1
	aisleXSet    map[int]bool
	aisleYSet    map[int]bool
}

// NewVenueLayout builds a layout from a block/row specification.
func NewVenueLayout(cfg LayoutConfig) (*VenueLayout, error) {
	if len(cfg.Blocks) == 0 {
		return nil, fmt.Errorf("%w: at least one seat block is required", ErrConfiguration)
	}
	for _, b := range cfg.Blocks {
		if b < 0 {
			return nil, fmt.Errorf("%w: negative block width %d", ErrConfiguration, b)
		}
	}
	if cfg.NumRows < 1 {
		return nil, fmt.Errorf("%w: need at least one row, got %d", ErrConfiguration, cfg.NumRows)
	}

	l := &VenueLayout{
		NumRows: cfg.NumRows,
		Blocks:  append([]int(nil), cfg.Blocks...),
	}

	// Vertical aisles sit between consecutive blocks.
	width := 0
	for i, b := range cfg.Blocks {
		width += b
		if i < len(cfg.Blocks)-1 {
			l.AislesX = append(l.AislesX, width)
			width++
		}
	}
	l.Width = width

	if cfg.AislesY == nil {
		// Default: one aisle row across the front.
		l.AislesY = []int{0}
	} else {
		l.AislesY = append([]int(nil), cfg.AislesY...)
		for _, y := range l.AislesY {
			if y < 0 || y >= l.NumRows {
				return nil, fmt.Errorf("%w: aisle row %d outside grid of %d rows", ErrConfiguration, y, l.NumRows)
			}
		}
	}

	if cfg.Entrances == nil {
		// Default: the two outer corners of the front row.
		l.Entrances = []Coord{{0, 0}, {l.Width - 1, 0}}
	} else {
		l.Entrances = append([]Coord(nil), cfg.Entrances...)
		for _, e := range l.Entrances {
			if e.X < 0 || e.X >= l.Width || e.Y < 0 || e.Y >= l.NumRows {
				return nil, fmt.Errorf("%w: entrance %v outside %dx%d grid", ErrConfiguration, e, l.Width, l.NumRows)
			}
		}
	}

	l.aisleXSet = make(map[int]bool, len(l.AislesX))
	for _, x := range l.AislesX {
		l.aisleXSet[x] = true
	}
	l.aisleYSet = make(map[int]bool, len(l.AislesY))
	for _, y := range l.AislesY {
		l.aisleYSet[y] = true
	}

	seatCols := l.Width - len(l.AislesX)
	seatRows := l.NumRows - len(l.AislesY)
	l.SeatCount = seatCols * seatRows

	pu, err := l.normalizePosUtilities(cfg.PosUtilities, seatCols, seatRows)
	if err != nil {
		return nil, err
	}
	l.posUtilities = pu

	// Maximal number of seats to pass to reach a seat: outer blocks drain
	// to one aisle only, inner blocks split toward the nearer of two.
	maxPass := 0
	for i, b := range cfg.Blocks {
		p := b - 1
		if i > 0 && i < len(cfg.Blocks)-1 {
			p = (b - 1) / 2
		}
		if p > maxPass {
			maxPass = p
		}
	}
	l.MaxPass = maxPass

	return l, nil
}

// normalizePosUtilities aligns a caller-supplied utility matrix to the full
// grid shape and rescales it so the maximum is 1. A seat-only shaped matrix
// gets zero rows/columns spliced in at every aisle index first. A matrix
// with no positive entry degrades to all-zero utility.
func (l *VenueLayout) normalizePosUtilities(pu *mat.Dense, seatCols, seatRows int) (*mat.Dense, error) {
	if pu == nil {
		return mat.NewDense(l.Width, l.NumRows, nil), nil
	}

	r, c := pu.Dims()
	if r == seatCols && c == seatRows {
		pu = spliceZeros(pu, l.AislesX, l.AislesY)
		r, c = pu.Dims()
	}
	if r != l.Width || c != l.NumRows {
		return nil, fmt.Errorf("%w: position utilities shaped %dx%d match neither the %dx%d seat grid nor the %dx%d full grid",
			ErrConfiguration, r, c, seatCols, seatRows, l.Width, l.NumRows)
	}

	maxU := mat.Max(pu)
	if maxU <= 0 {
		return mat.NewDense(l.Width, l.NumRows, nil), nil
	}
	scaled := mat.NewDense(l.Width, l.NumRows, nil)
	scaled.Scale(1/maxU, pu)
	return scaled, nil
}

// spliceZeros inserts a zero row at every aisle column index and a zero
// column at every aisle row index, growing the matrix from seat-only shape
// to full-grid shape. Aisle indices beyond the current bound append.
func spliceZeros(m *mat.Dense, aislesX, aislesY []int) *mat.Dense {
	rows, cols := m.Dims()
	out := mat.DenseCopyOf(m)
	for _, x := range aislesX {
		rows++
		grown := mat.NewDense(rows, cols, nil)
		at := x
		if at > rows-1 {
			at = rows - 1
		}
		for i := 0; i < rows; i++ {
			if i == at {
				continue
			}
			src := i
			if i > at {
				src = i - 1
			}
			for j := 0; j < cols; j++ {
				grown.Set(i, j, out.At(src, j))
			}
		}
		out = grown
	}
	for _, y := range aislesY {
		cols++
		grown := mat.NewDense(rows, cols, nil)
		at := y
		if at > cols-1 {
			at = cols - 1
		}
		for j := 0; j < cols; j++ {
			if j == at {
				continue
			}
			src := j
			if j > at {
				src = j - 1
			}
			for i := 0; i < rows; i++ {
				grown.Set(i, j, out.At(i, src))
			}
		}
		out = grown
	}
	return out
}

// IsAisle reports whether the coordinate lies on an aisle column or row.
func (l *VenueLayout) IsAisle(c Coord) bool {
	return l.aisleXSet[c.X] || l.aisleYSet[c.Y]
}

// InBounds reports whether the coordinate lies on the grid.
func (l *VenueLayout) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < l.Width && c.Y >= 0 && c.Y < l.NumRows
}

// PositionUtility returns the normalized static attractivity of a grid
// position, in [0,1]. Aisle positions are always 0.
func (l *VenueLayout) PositionUtility(c Coord) float64 {
	return l.posUtilities.At(c.X, c.Y)
}
