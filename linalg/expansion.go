// expansion.go --  This file is part of goHF project.
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

	"gonum.org/v1/gonum/mat"
)

// occupations closer than this belong to the same block in FromFockAndDM
const occBlockEps = 1e-4

// Expansion holds the orbitals of one spin channel. Column i of Coeffs is
// orbital i, with energy Energies[i] and occupation Occupations[i].
type Expansion struct {
	n           int
	Coeffs      *mat.Dense
	Energies    []float64
	Occupations []float64
}

func NewExpansion(n int) *Expansion {
	return &Expansion{
		n:           n,
		Coeffs:      mat.NewDense(n, n, nil),
		Energies:    make([]float64, n),
		Occupations: make([]float64, n),
	}
}

func (e *Expansion) NBasis() int { return e.n }

// FromFock solves F C = S C e. Occupations are left untouched.
func (e *Expansion) FromFock(fock, overlap *TwoIndex) error {
	energies, coeffs, err := Diagonalize(fock, overlap)
	if err != nil {
		return err
	}
	copy(e.Energies, energies)
	e.Coeffs.Copy(coeffs)
	return nil
}

// FromFockAndDM derives orbitals that diagonalize the density matrix in the
// overlap metric; inside each block of equal occupation the Fock operator is
// diagonalized as well. Orbitals are ordered by decreasing occupation and, in
// a block, by increasing energy.
func (e *Expansion) FromFockAndDM(fock, dm, overlap *TwoIndex) error {
	n := e.n
	sqrt, sqrtInv, err := overlapRoots(overlap)
	if err != nil {
		return err
	}

	var x mat.Dense
	x.Mul(sqrt, dm.Dense())
	x.Mul(&x, sqrt)
	var eigsym mat.EigenSym
	if ok := eigsym.Factorize(symFrom(&x), true); !ok {
		return fmt.Errorf("density matrix: %w", ErrEigenFailed)
	}
	occs := eigsym.Values(nil)
	var u mat.Dense
	eigsym.VectorsTo(&u)

	// natural orbitals, decreasing occupation
	nat := mat.NewDense(n, n, nil)
	for col := 0; col < n; col++ {
		src := n - 1 - col
		e.Occupations[col] = occs[src]
		for row := 0; row < n; row++ {
			nat.Set(row, col, u.At(row, src))
		}
	}
	e.Coeffs.Mul(sqrtInv, nat)

	for start := 0; start < n; {
		end := start + 1
		for end < n && math.Abs(e.Occupations[end]-e.Occupations[start]) < occBlockEps {
			end++
		}
		if err := e.rotateBlock(fock, start, end); err != nil {
			return err
		}
		start = end
	}
	return nil
}

func (e *Expansion) rotateBlock(fock *TwoIndex, start, end int) error {
	block := e.Coeffs.Slice(0, e.n, start, end).(*mat.Dense)
	var tmp, fb mat.Dense
	tmp.Mul(fock.Dense(), block)
	fb.Mul(block.T(), &tmp)
	var eigsym mat.EigenSym
	if ok := eigsym.Factorize(symFrom(&fb), true); !ok {
		return fmt.Errorf("fock block [%d,%d): %w", start, end, ErrEigenFailed)
	}
	copy(e.Energies[start:end], eigsym.Values(nil))
	var v, rotated mat.Dense
	eigsym.VectorsTo(&v)
	rotated.Mul(block, &v)
	block.Copy(&rotated)
	return nil
}

// ToDM overwrites dm with C diag(occ) C^T.
func (e *Expansion) ToDM(dm *TwoIndex) {
	if dm.n != e.n {
		panic(fmt.Errorf("%d != %d: %w", e.n, dm.n, ErrDimensionMismatch))
	}
	dm.Reset()
	for i := 0; i < e.n; i++ {
		for j := 0; j <= i; j++ {
			sum := 0.0
			for oo, occ := range e.Occupations {
				if occ == 0 {
					continue
				}
				sum += occ * e.Coeffs.At(i, oo) * e.Coeffs.At(j, oo)
			}
			dm.SetSymmetric(i, j, sum)
		}
	}
}

func (e *Expansion) Assign(other *Expansion) {
	e.Coeffs.Copy(other.Coeffs)
	copy(e.Energies, other.Energies)
	copy(e.Occupations, other.Occupations)
}

// Homo returns the index and energy of the highest occupied orbital, or -1
// when nothing is occupied.
func (e *Expansion) Homo() (int, float64) {
	best := -1
	for i, occ := range e.Occupations {
		if occ > occBlockEps && (best < 0 || e.Energies[i] > e.Energies[best]) {
			best = i
		}
	}
	if best < 0 {
		return -1, math.NaN()
	}
	return best, e.Energies[best]
}

// Lumo returns the lowest orbital that is not fully occupied given the
// maximum occupation per orbital.
func (e *Expansion) Lumo(maxOcc float64) (int, float64) {
	best := -1
	for i, occ := range e.Occupations {
		if occ < maxOcc-occBlockEps && (best < 0 || e.Energies[i] < e.Energies[best]) {
			best = i
		}
	}
	if best < 0 {
		return -1, math.NaN()
	}
	return best, e.Energies[best]
}
