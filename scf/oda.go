// oda.go --  This file is part of goHF project.
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
	"math"
	"time"

	"example.com/gohf/linalg"
	"example.com/gohf/occ"
)

// ODASolver is the optimal damping algorithm of Cances and Le Bris. Each step
// mixes the current density with the aufbau density of its Fock operator,
// choosing the mixing fraction from a cubic fit of the energy along the
// segment.
type ODASolver struct {
	base
}

func NewODASolver(threshold float64, maxIter int) *ODASolver {
	return &ODASolver{base: newBase(threshold, maxIter)}
}

// directional returns DerivScale sum_s <F_s, D1_s - D0_s>.
func directional(scale float64, focks, dms0, dms1 []*linalg.TwoIndex) float64 {
	sum := 0.0
	for i, fock := range focks {
		sum += fock.ExpectationValue(dms1[i]) - fock.ExpectationValue(dms0[i])
	}
	return scale * sum
}

func (s *ODASolver) Solve(ham Hamiltonian, lf *linalg.Factory, olp *linalg.TwoIndex, occModel occ.Model, dms ...*linalg.TwoIndex) (Result, error) {
	if err := checkArgs(ham, olp, dms); err != nil {
		return Result{}, err
	}
	n := len(dms)
	focks0, focks1 := createTwoIndices(lf, n), createTwoIndices(lf, n)
	dms0, dms1 := createTwoIndices(lf, n), createTwoIndices(lf, n)
	exps := createExpansions(lf, n)
	scale := ham.DerivScale()
	res := Result{State: Initialized}
	tstart := time.Now()

	e0, err := evaluate(ham, dms, focks0)
	if err != nil {
		return res, err
	}
	res.Energies = append(res.Energies, e0)
	res.State = Iterating
	prev := e0
	for counter := 0; ; counter++ {
		res.Iterations = counter
		res.Energy = e0
		res.Error = commutatorError(focks0, dms, olp)
		s.log.Infof("Iteration %3d. Energy = %.12f, dE = %.3e, error = %.3e", counter+1, e0, prev-e0, res.Error)
		prev = e0

		if res.Error < s.threshold {
			res.State = Converged
			s.log.Infof("SCF converged after step %d (%v)", counter+1, time.Since(tstart))
			return res, nil
		}
		if counter >= s.maxIter {
			res.State = Exhausted
			s.log.Warnf("SCF NOT converged after step %d", counter+1)
			return res, nil
		}

		if err := occupy(focks0, olp, occModel, exps, dms1); err != nil {
			return res, err
		}
		e1, err := evaluate(ham, dms1, focks1)
		if err != nil {
			return res, err
		}
		g0 := directional(scale, focks0, dms, dms1)
		g1 := directional(scale, focks1, dms, dms1)
		x := FindMinCubic(e0, e1, g0, g1)
		s.log.Debugf("line search: e0 = %.12f, e1 = %.12f, g0 = %.3e, g1 = %.3e, x = %.6f", e0, e1, g0, g1, x)

		if x == 1 {
			// the hamiltonian is already reset to the trial density
			for i := range dms {
				dms[i].Assign(dms1[i])
				focks0[i].Assign(focks1[i])
			}
			e0 = e1
			res.Energies = append(res.Energies, e0)
			continue
		}
		for i := range dms {
			dms0[i].Assign(dms[i])
		}
		mix := func(x float64) (float64, error) {
			for i := range dms {
				dms[i].Assign(dms0[i])
				dms[i].Scale(1 - x)
				dms[i].AddScaled(dms1[i], x)
			}
			return evaluate(ham, dms, focks0)
		}
		enew, err := mix(x)
		if err != nil {
			return res, err
		}
		if enew > e0 && e1 < e0 {
			// the fit was poor; fall back to the better endpoint
			s.log.Debugf("line search overshot: %.12f > %.12f, taking the trial density", enew, e0)
			if enew, err = mix(1); err != nil {
				return res, err
			}
		} else if enew > e0 {
			xnew, eback, err := backtrack(mix, e0, x)
			if err != nil {
				return res, err
			}
			if xnew == 0 {
				s.log.Warnf("line search found no lower energy, keeping the density")
			} else {
				s.log.Debugf("line search backtracked to x = %.6f", xnew)
			}
			enew = eback
		}
		e0 = enew
		res.Energies = append(res.Energies, e0)
	}
}

// maxHalvings bounds the backtracking of the ODA step
const maxHalvings = 30

// backtrack halves the step x until energy(x) <= e0. When no step lowers the
// energy it returns x = 0, leaving energy evaluated at the start point.
func backtrack(energy func(x float64) (float64, error), e0, x float64) (float64, float64, error) {
	for k := 0; k < maxHalvings; k++ {
		x /= 2
		e, err := energy(x)
		if err != nil {
			return 0, 0, err
		}
		if e <= e0 {
			return x, e, nil
		}
	}
	e, err := energy(0)
	return 0, e, err
}

// cubicFit returns the coefficients of the cubic polynomial
// a x^3 + b x^2 + c x + d with values e0, e1 and slopes g0, g1 at x = 0, 1.
func cubicFit(e0, e1, g0, g1 float64) (a, b, c, d float64) {
	d = e0
	c = g0
	a = g1 - 2*e1 + g0 + 2*e0
	b = e1 - a - c - d
	return a, b, c, d
}

// FindMinCubic returns the minimizer in [0, 1] of the cubic polynomial with
// values e0, e1 and slopes g0, g1 at the end points.
func FindMinCubic(e0, e1, g0, g1 float64) float64 {
	a, b, c, d := cubicFit(e0, e1, g0, g1)
	if math.IsNaN(a) || math.IsNaN(b) || math.IsInf(a, 0) || math.IsInf(b, 0) {
		return FindMinQuadratic(g0, g1)
	}
	eval := func(x float64) float64 { return ((a*x+b)*x+c)*x + d }

	best, ebest := 0.0, e0
	if e1 < ebest {
		best, ebest = 1, e1
	}
	var roots []float64
	if math.Abs(a) <= 1e-12*(math.Abs(b)+math.Abs(c)) {
		if b != 0 {
			roots = append(roots, -c/(2*b))
		}
	} else if disc := b*b - 3*a*c; disc >= 0 {
		sq := math.Sqrt(disc)
		roots = append(roots, (-b+sq)/(3*a), (-b-sq)/(3*a))
	}
	for _, x := range roots {
		if x > 0 && x < 1 {
			if e := eval(x); e < ebest {
				best, ebest = x, e
			}
		}
	}
	return best
}

// FindMinQuadratic returns the minimizer in [0, 1] of the quadratic
// polynomial with slopes g0 and g1 at the end points.
func FindMinQuadratic(g0, g1 float64) float64 {
	if g1 > g0 {
		return math.Max(0, math.Min(1, g0/(g0-g1)))
	}
	// concave or linear: one of the end points
	if g0+g1 < 0 {
		return 1
	}
	return 0
}
