// fourindex.go --  This file is part of goHF project.
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

	"gonum.org/v1/gonum/floats"
)

// FourIndex holds electron repulsion integrals (ij|kl) in chemists' notation.
// Once built it is only read, so one value can be shared by all terms.
type FourIndex struct {
	n    int
	data []float64
}

func NewFourIndex(n int) *FourIndex {
	return &FourIndex{n: n, data: make([]float64, n*n*n*n)}
}

func (f *FourIndex) NBasis() int { return f.n }

func (f *FourIndex) idx(i, j, k, l int) int {
	return ((i*f.n+j)*f.n+k)*f.n + l
}

func (f *FourIndex) At(i, j, k, l int) float64 { return f.data[f.idx(i, j, k, l)] }

func (f *FourIndex) Set(i, j, k, l int, v float64) { f.data[f.idx(i, j, k, l)] = v }

// SetSymmetric stores v in all eight positions related by the permutational
// symmetry of real integrals.
func (f *FourIndex) SetSymmetric(i, j, k, l int, v float64) {
	for _, p := range [8][4]int{
		{i, j, k, l}, {j, i, k, l}, {i, j, l, k}, {j, i, l, k},
		{k, l, i, j}, {l, k, i, j}, {k, l, j, i}, {l, k, j, i},
	} {
		f.data[f.idx(p[0], p[1], p[2], p[3])] = v
	}
}

// ContractDirect overwrites out with J_ij = sum_kl (ij|kl) dm_kl.
func (f *FourIndex) ContractDirect(dm, out *TwoIndex) {
	f.mustMatch(dm)
	f.mustMatch(out)
	n := f.n
	d := dm.raw()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			start := (i*n + j) * n * n
			out.Set(i, j, floats.Dot(f.data[start:start+n*n], d))
		}
	}
}

// ContractExchange overwrites out with K_ij = sum_kl (ik|jl) dm_kl.
func (f *FourIndex) ContractExchange(dm, out *TwoIndex) {
	f.mustMatch(dm)
	f.mustMatch(out)
	n := f.n
	d := dm.raw()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			sum := 0.0
			for k := 0; k < n; k++ {
				start := f.idx(i, k, j, 0)
				sum += floats.Dot(f.data[start:start+n], d[k*n:(k+1)*n])
			}
			out.Set(i, j, sum)
		}
	}
}

// ContractDouble returns sum_ijkl (ij|kl) a_ij b_kl.
func (f *FourIndex) ContractDouble(a, b *TwoIndex) float64 {
	tmp := NewTwoIndex(f.n)
	f.ContractDirect(b, tmp)
	return tmp.ExpectationValue(a)
}

func (f *FourIndex) mustMatch(t *TwoIndex) {
	if t.n != f.n {
		panic(fmt.Errorf("%d != %d: %w", f.n, t.n, ErrDimensionMismatch))
	}
}
