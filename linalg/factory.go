// factory.go --  This file is part of goHF project.
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

// Factory creates operators of a fixed basis dimension.
type Factory struct {
	nbasis int
}

func NewFactory(nbasis int) *Factory { return &Factory{nbasis: nbasis} }

func (lf *Factory) NBasis() int { return lf.nbasis }

func (lf *Factory) CreateTwoIndex() *TwoIndex { return NewTwoIndex(lf.nbasis) }

func (lf *Factory) CreateFourIndex() *FourIndex { return NewFourIndex(lf.nbasis) }

func (lf *Factory) CreateExpansion() *Expansion { return NewExpansion(lf.nbasis) }

// Diagonalize solves the generalized eigenproblem F C = S C e.
func (lf *Factory) Diagonalize(fock, overlap *TwoIndex) ([]float64, *mat.Dense, error) {
	return Diagonalize(fock, overlap)
}

// Diagonalize solves F C = S C e by symmetric orthogonalization:
// S^-1/2 F S^-1/2 is diagonalized and the eigenvectors back-transformed.
// Energies come out in ascending order.
func Diagonalize(fock, overlap *TwoIndex) ([]float64, *mat.Dense, error) {
	fock.mustMatch(overlap)
	sqrtInv, err := SqrtInverse(overlap)
	if err != nil {
		return nil, nil, err
	}
	var f mat.Dense
	f.Mul(sqrtInv, fock.Dense())
	f.Mul(&f, sqrtInv)

	var eigsym mat.EigenSym
	if ok := eigsym.Factorize(symFrom(&f), true); !ok {
		return nil, nil, fmt.Errorf("transformed fock: %w", ErrEigenFailed)
	}
	var ev mat.Dense
	eigsym.VectorsTo(&ev)
	var coeffs mat.Dense
	coeffs.Mul(sqrtInv, &ev)
	return eigsym.Values(nil), &coeffs, nil
}

// SqrtInverse returns S^-1/2 of a positive definite overlap operator.
func SqrtInverse(overlap *TwoIndex) (*mat.Dense, error) {
	_, inv, err := overlapRoots(overlap)
	return inv, err
}

func overlapRoots(overlap *TwoIndex) (sqrt, sqrtInv *mat.Dense, err error) {
	n := overlap.NBasis()
	var eigsym mat.EigenSym
	if ok := eigsym.Factorize(overlap.Sym(), true); !ok {
		return nil, nil, fmt.Errorf("overlap: %w", ErrEigenFailed)
	}
	var ev mat.Dense
	eigsym.VectorsTo(&ev)
	vals := eigsym.Values(nil)
	rootVec := make([]float64, n)
	invVec := make([]float64, n)
	for i, v := range vals {
		if v <= 0 {
			return nil, nil, fmt.Errorf("overlap eigenvalue %g: %w", v, ErrEigenFailed)
		}
		rootVec[i] = math.Sqrt(v)
		invVec[i] = 1 / rootVec[i]
	}
	sqrt = conjugate(&ev, rootVec)
	sqrtInv = conjugate(&ev, invVec)
	return sqrt, sqrtInv, nil
}

// conjugate returns V diag(d) V^T
func conjugate(v *mat.Dense, d []float64) *mat.Dense {
	n := len(d)
	var tmp, res mat.Dense
	tmp.Mul(v, mat.NewDiagDense(n, d))
	res.Mul(&tmp, v.T())
	return &res
}
