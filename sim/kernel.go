package sim

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Kernel is a small odd-by-odd weight matrix defining which relative grid
// offsets count as socially adjacent to a seat, and how strongly. Row index
// runs over x offsets, column index over y offsets, with the seat itself at
// the center cell. Weights are normalized to sum to 1 so the friendship and
// sociability components stay within [0,1].
type Kernel struct {
	w *mat.Dense
}

// NewKernel builds a kernel from a weight grid. Dimensions must be odd in
// both directions and all weights non-negative.
func NewKernel(weights [][]float64) (*Kernel, error) {
	sx := len(weights)
	if sx == 0 || sx%2 == 0 {
		return nil, fmt.Errorf("%w: kernel x extent %d is not odd", ErrConfiguration, sx)
	}
	sy := len(weights[0])
	if sy == 0 || sy%2 == 0 {
		return nil, fmt.Errorf("%w: kernel y extent %d is not odd", ErrConfiguration, sy)
	}

	sum := 0.0
	w := mat.NewDense(sx, sy, nil)
	for i, row := range weights {
		if len(row) != sy {
			return nil, fmt.Errorf("%w: ragged kernel row %d", ErrConfiguration, i)
		}
		for j, v := range row {
			if v < 0 {
				return nil, fmt.Errorf("%w: negative kernel weight at (%d,%d)", ErrConfiguration, i, j)
			}
			w.Set(i, j, v)
			sum += v
		}
	}
	if sum > 0 && sum != 1 {
		w.Scale(1/sum, w)
	}
	return &Kernel{w: w}, nil
}

// DefaultSocialKernel weights the immediate left and right neighbors at 0.5
// each: direct seatmates carry all the social signal.
func DefaultSocialKernel() *Kernel {
	k, err := NewKernel([][]float64{
		{0, 0.5, 0},
		{0, 0, 0},
		{0, 0.5, 0},
	})
	if err != nil {
		panic(fmt.Sprintf("default kernel invalid: %v", err))
	}
	return k
}

// Dims returns the kernel extents (x, y).
func (k *Kernel) Dims() (sizeX, sizeY int) {
	return k.w.Dims()
}

// At returns the weight for kernel cell (i, j).
func (k *Kernel) At(i, j int) float64 {
	return k.w.At(i, j)
}
