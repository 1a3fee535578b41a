// ediis.go --  This file is part of goHF project.
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
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// EDIIS2 switches from EDIIS to CDIIS as the error drops between these
const (
	ediisAbove = 1e-1
	cdiisBelow = 1e-4
)

// MaxEDIISVector bounds the EDIIS history: the simplex minimization visits
// every subset of the stored vectors.
const MaxEDIISVector = 12

func checkEDIISVector(nvector int) error {
	if nvector > MaxEDIISVector {
		return fmt.Errorf("%d vectors, at most %d: %w", nvector, MaxEDIISVector, ErrNVector)
	}
	return nil
}

// NewEDIISSolver returns the energy DIIS of Kudin, Scuseria and Cances.
func NewEDIISSolver(threshold float64, maxIter, nvector int) (*DIISSolver, error) {
	if err := checkEDIISVector(nvector); err != nil {
		return nil, err
	}
	return newDIIS(threshold, maxIter, nvector, ediis{}), nil
}

// NewEDIIS2Solver uses EDIIS far from convergence and CDIIS close to it,
// blending the two sets of coefficients in between.
func NewEDIIS2Solver(threshold float64, maxIter, nvector int) (*DIISSolver, error) {
	if err := checkEDIISVector(nvector); err != nil {
		return nil, err
	}
	return newDIIS(threshold, maxIter, nvector, ediis2{}), nil
}

type ediis struct{}

func (ediis) coefficients(h *history, scale float64) ([]float64, string, error) {
	b, q := ediisModel(h, scale)
	return minimizeOnSimplex(b, q), "ediis", nil
}

// ediisModel returns the linear and quadratic parts of the interpolated
// energy E(c) = b.c + c^T Q c for coefficients c on the unit simplex.
func ediisModel(h *history, scale float64) ([]float64, *mat.SymDense) {
	n := h.len()
	dots := mat.NewDense(n, n, nil)
	for i, ei := range h.entries {
		for j, ej := range h.entries {
			sum := 0.0
			for s := range ei.dms {
				sum += ei.dms[s].ExpectationValue(ej.focks[s])
			}
			dots.Set(i, j, sum)
		}
	}
	b := make([]float64, n)
	q := mat.NewSymDense(n, nil)
	for i, e := range h.entries {
		b[i] = e.energy - 0.5*scale*dots.At(i, i)
		for j := 0; j <= i; j++ {
			q.SetSym(i, j, 0.25*scale*(dots.At(i, j)+dots.At(j, i)))
		}
	}
	return b, q
}

// minimizeOnSimplex minimizes b.c + c^T Q c subject to c >= 0 and
// sum(c) = 1. The minimum lies at a stationary point inside one of the faces
// of the simplex, so every face is tried.
func minimizeOnSimplex(b []float64, q *mat.SymDense) []float64 {
	n := len(b)
	eval := func(c []float64) float64 {
		v := mat.NewVecDense(n, c)
		return floats.Dot(b, c) + mat.Inner(v, q, v)
	}
	var best []float64
	ebest := math.Inf(1)
	for mask := 1; mask < 1<<n; mask++ {
		var face []int
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				face = append(face, i)
			}
		}
		c, ok := faceStationary(b, q, face)
		if !ok {
			continue
		}
		if e := eval(c); e < ebest {
			best, ebest = c, e
		}
	}
	return best
}

// faceStationary solves the equality constrained problem on one face.
func faceStationary(b []float64, q *mat.SymDense, face []int) ([]float64, bool) {
	k := len(face)
	kkt := mat.NewDense(k+1, k+1, nil)
	rhs := mat.NewVecDense(k+1, nil)
	for a, i := range face {
		for c, j := range face {
			kkt.Set(a, c, 2*q.At(i, j))
		}
		kkt.Set(a, k, 1)
		kkt.Set(k, a, 1)
		rhs.SetVec(a, -b[i])
	}
	rhs.SetVec(k, 1)
	var x mat.VecDense
	if err := x.SolveVec(kkt, rhs); err != nil {
		return nil, false
	}
	res := make([]float64, len(b))
	for a, i := range face {
		v := x.AtVec(a)
		if v < -1e-10 {
			return nil, false
		}
		res[i] = math.Max(v, 0)
	}
	floats.Scale(1/floats.Sum(res), res)
	return res, true
}

type ediis2 struct{}

func (ediis2) coefficients(h *history, scale float64) ([]float64, string, error) {
	errmax := h.last().error
	switch {
	case errmax > ediisAbove:
		return ediis{}.coefficients(h, scale)
	case errmax < cdiisBelow:
		return cdiis{}.coefficients(h, scale)
	}
	// cdiis may shorten the history, so it goes first
	cc, _, err := cdiis{}.coefficients(h, scale)
	if err != nil {
		return nil, "", err
	}
	ce, _, err := ediis{}.coefficients(h, scale)
	if err != nil {
		return nil, "", err
	}
	t := (errmax - cdiisBelow) / (ediisAbove - cdiisBelow)
	res := make([]float64, len(cc))
	floats.AddScaledTo(res, floats.ScaleTo(res, 1-t, cc), t, ce)
	return res, "ediis2", nil
}
