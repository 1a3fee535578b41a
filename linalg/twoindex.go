// twoindex.go --  This file is part of goHF project.
// Mirzaeva Irina, 2023
//
//	goHF is distributed in the hope that it will be useful,
//	but WITHOUT ANY WARRANTY; without even the implied warranty
//	of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
//	See the GNU General Public License for more details.
//
//	You should have received a copy of the GNU General Public License
//	along with this program.  If not, see http://www.gnu.org/licenses/
//
// ------------------------------------------------
package linalg

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// TwoIndex is a square nbasis x nbasis operator: overlap, kinetic, Fock,
// density matrix, ... Mutation is always explicit (Reset, Assign, AddScaled).
type TwoIndex struct {
	n    int
	data *mat.Dense
}

func NewTwoIndex(n int) *TwoIndex {
	return &TwoIndex{n: n, data: mat.NewDense(n, n, nil)}
}

// NewTwoIndexFrom copies a square [][]float64 table into a new operator.
func NewTwoIndexFrom(rows [][]float64) *TwoIndex {
	n := len(rows)
	return &TwoIndex{n: n, data: mat.NewDense(n, n, flatten(rows))}
}

func (t *TwoIndex) NBasis() int { return t.n }

func (t *TwoIndex) At(i, j int) float64 { return t.data.At(i, j) }

func (t *TwoIndex) Set(i, j int, v float64) { t.data.Set(i, j, v) }

// SetSymmetric sets both (i, j) and (j, i).
func (t *TwoIndex) SetSymmetric(i, j int, v float64) {
	t.data.Set(i, j, v)
	t.data.Set(j, i, v)
}

// Reset sets all elements to zero.
func (t *TwoIndex) Reset() { t.data.Zero() }

func (t *TwoIndex) Assign(other *TwoIndex) {
	t.mustMatch(other)
	t.data.Copy(other.data)
}

func (t *TwoIndex) Copy() *TwoIndex {
	return &TwoIndex{n: t.n, data: mat.DenseCopyOf(t.data)}
}

// AddScaled adds factor*other in place.
func (t *TwoIndex) AddScaled(other *TwoIndex, factor float64) {
	t.mustMatch(other)
	floats.AddScaled(t.raw(), factor, other.raw())
}

func (t *TwoIndex) Scale(factor float64) {
	floats.Scale(factor, t.raw())
}

// ExpectationValue returns the inner product sum_ij t_ij dm_ij.
func (t *TwoIndex) ExpectationValue(dm *TwoIndex) float64 {
	t.mustMatch(dm)
	return floats.Dot(t.raw(), dm.raw())
}

// Distance returns the Frobenius norm of t - other.
func (t *TwoIndex) Distance(other *TwoIndex) float64 {
	t.mustMatch(other)
	var diff mat.Dense
	diff.Sub(t.data, other.data)
	return mat.Norm(&diff, 2)
}

// CheckSymmetry fails with ErrAsymmetry when |t_ij - t_ji| exceeds tol times
// the largest absolute element (or tol itself for tiny operators).
func (t *TwoIndex) CheckSymmetry(tol float64) error {
	scale := math.Max(1, floats.Norm(t.raw(), math.Inf(1)))
	for i := 0; i < t.n; i++ {
		for j := 0; j < i; j++ {
			if d := math.Abs(t.At(i, j) - t.At(j, i)); d > tol*scale {
				return fmt.Errorf("element (%d,%d) differs by %g: %w", i, j, d, ErrAsymmetry)
			}
		}
	}
	return nil
}

func (t *TwoIndex) Symmetrize() {
	for i := 0; i < t.n; i++ {
		for j := 0; j < i; j++ {
			t.SetSymmetric(i, j, 0.5*(t.At(i, j)+t.At(j, i)))
		}
	}
}

// Dense exposes the underlying storage for read-only use with gonum.
func (t *TwoIndex) Dense() *mat.Dense { return t.data }

// Sym returns a symmetric copy suitable for mat.EigenSym.
func (t *TwoIndex) Sym() *mat.SymDense { return symFrom(t.data) }

func (t *TwoIndex) String() string {
	return fmt.Sprintf("%.8f", mat.Formatted(t.data, mat.Prefix("    "), mat.Squeeze()))
}

func (t *TwoIndex) raw() []float64 { return t.data.RawMatrix().Data }

func (t *TwoIndex) mustMatch(other *TwoIndex) {
	if t.n != other.n {
		panic(fmt.Errorf("%d != %d: %w", t.n, other.n, ErrDimensionMismatch))
	}
}

func flatten(arr [][]float64) []float64 {
	dim := len(arr)
	res := make([]float64, dim*dim)
	for i := range arr {
		for j := range arr[i] {
			res[i*dim+j] = arr[i][j]
		}
	}
	return res
}

func symFrom(a mat.Matrix) *mat.SymDense {
	n, _ := a.Dims()
	res := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			res.SetSym(i, j, 0.5*(a.At(i, j)+a.At(j, i)))
		}
	}
	return res
}
