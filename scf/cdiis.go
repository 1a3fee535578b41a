// cdiis.go --  This file is part of goHF project.
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
package scf

import (
	"gonum.org/v1/gonum/mat"
)

// the history is shortened while the DIIS system is worse conditioned
const maxCond = 1e12

// NewCDIISSolver returns Pulay's commutator DIIS. A nvector below 2 selects
// DefaultNVector.
func NewCDIISSolver(threshold float64, maxIter, nvector int) *DIISSolver {
	return newDIIS(threshold, maxIter, nvector, cdiis{})
}

type cdiis struct{}

func (cdiis) coefficients(h *history, scale float64) ([]float64, string, error) {
	for h.len() > 1 {
		coeffs, cond, err := solveCDIIS(h)
		if err == nil && cond < maxCond {
			return coeffs, "cdiis", nil
		}
		h.dropOldest()
	}
	return []float64{1}, "cdiis", nil
}

// buildB is the bordered DIIS matrix: residual overlaps in the upper block,
// -1 on the border. The residual block is scaled to a unit largest diagonal.
func buildB(h *history) *mat.Dense {
	n := h.len()
	res := mat.NewDense(n+1, n+1, nil)
	for i := 0; i < n; i++ {
		res.Set(i, n, -1)
		res.Set(n, i, -1)
	}
	var prod mat.Dense
	amax := 0.0
	for i, ei := range h.entries {
		for j, ej := range h.entries[:i+1] {
			sum := 0.0
			for s := range ei.residuals {
				prod.MulElem(ei.residuals[s], ej.residuals[s])
				sum += mat.Sum(&prod)
			}
			res.Set(i, j, sum)
			res.Set(j, i, sum)
		}
		if d := res.At(i, i); d > amax {
			amax = d
		}
	}
	if amax > 0 {
		block := res.Slice(0, n, 0, n).(*mat.Dense)
		block.Scale(1/amax, block)
	}
	return res
}

func solveCDIIS(h *history) ([]float64, float64, error) {
	n := h.len()
	bmat := buildB(h)
	rhs := mat.NewVecDense(n+1, nil)
	rhs.SetVec(n, -1)

	var lu mat.LU
	lu.Factorize(bmat)
	cond := lu.Cond()
	var coefs mat.VecDense
	if err := lu.SolveVecTo(&coefs, false, rhs); err != nil {
		return nil, cond, err
	}
	res := make([]float64, n)
	for i := range res {
		res[i] = coefs.AtVec(i)
	}
	return res, cond, nil
}
