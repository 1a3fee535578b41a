// diis.go --  This file is part of goHF project.
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
	"time"

	"example.com/gohf/linalg"
	"example.com/gohf/occ"
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/mat"
)

const DefaultNVector = 6

// diisEntry is one point of the DIIS history.
type diisEntry struct {
	energy    float64
	dms       []*linalg.TwoIndex
	focks     []*linalg.TwoIndex
	residuals []*mat.Dense // S^-1/2 (F D S - S D F) S^-1/2 per spin channel
	error     float64
}

type history struct {
	nvector int
	entries []*diisEntry
}

func (h *history) len() int { return len(h.entries) }

func (h *history) last() *diisEntry { return h.entries[len(h.entries)-1] }

// push appends a copy of the point; the oldest entry is evicted when the
// history is full.
func (h *history) push(energy float64, dms, focks []*linalg.TwoIndex, olp *linalg.TwoIndex, sqrtInv *mat.Dense) *diisEntry {
	var e *diisEntry
	if len(h.entries) == h.nvector {
		e = h.entries[0]
		h.entries = slices.Delete(h.entries, 0, 1)
	} else {
		e = &diisEntry{
			dms:       make([]*linalg.TwoIndex, len(dms)),
			focks:     make([]*linalg.TwoIndex, len(dms)),
			residuals: make([]*mat.Dense, len(dms)),
		}
		for i := range dms {
			e.dms[i] = linalg.NewTwoIndex(dms[i].NBasis())
			e.focks[i] = linalg.NewTwoIndex(dms[i].NBasis())
			e.residuals[i] = &mat.Dense{}
		}
	}
	e.energy = energy
	e.error = 0
	for i := range dms {
		e.dms[i].Assign(dms[i])
		e.focks[i].Assign(focks[i])
		r := e.residuals[i]
		commutator(focks[i], dms[i], olp, r)
		if norm := mat.Norm(r, 2); norm > e.error {
			e.error = norm
		}
		r.Mul(sqrtInv, r)
		r.Mul(r, sqrtInv)
	}
	h.entries = append(h.entries, e)
	return e
}

// dropOldest removes the oldest entry.
func (h *history) dropOldest() {
	h.entries = slices.Delete(h.entries, 0, 1)
}

// extrapolate writes sum_i coeffs[i] F_i to focks.
func (h *history) extrapolate(coeffs []float64, focks []*linalg.TwoIndex) {
	for s, fock := range focks {
		fock.Reset()
		for i, e := range h.entries {
			fock.AddScaled(e.focks[s], coeffs[i])
		}
	}
}

// extrapolator picks the DIIS coefficients for the current history; it may
// shrink the history first. The returned name is logged.
type extrapolator interface {
	coefficients(h *history, scale float64) ([]float64, string, error)
}

// DIISSolver runs the DIIS iteration: build the Fock operator of the current
// density, store it in a bounded history, diagonalize a linear combination
// of the stored Fock operators to get the next density.
type DIISSolver struct {
	base
	nvector int
	method  extrapolator
}

func newDIIS(threshold float64, maxIter, nvector int, method extrapolator) *DIISSolver {
	if nvector < 2 {
		nvector = DefaultNVector
	}
	return &DIISSolver{base: newBase(threshold, maxIter), nvector: nvector, method: method}
}

func (s *DIISSolver) NVector() int { return s.nvector }

func (s *DIISSolver) Solve(ham Hamiltonian, lf *linalg.Factory, olp *linalg.TwoIndex, occModel occ.Model, dms ...*linalg.TwoIndex) (Result, error) {
	if err := checkArgs(ham, olp, dms); err != nil {
		return Result{}, err
	}
	sqrtInv, err := linalg.SqrtInverse(olp)
	if err != nil {
		return Result{}, err
	}
	n := len(dms)
	focks := createTwoIndices(lf, n)
	exps := createExpansions(lf, n)
	hist := &history{nvector: s.nvector}
	scale := ham.DerivScale()
	res := Result{State: Initialized}
	prev := 0.0
	tstart := time.Now()

	for counter := 0; ; counter++ {
		energy, err := evaluate(ham, dms, focks)
		if err != nil {
			return res, err
		}
		entry := hist.push(energy, dms, focks, olp, sqrtInv)
		res.State = Iterating
		res.Iterations = counter
		res.Energy = energy
		res.Error = entry.error
		res.Energies = append(res.Energies, energy)
		s.log.Infof("Iteration %3d. Energy = %.12f, dE = %.3e, error = %.3e, dRMS = %.3e",
			counter+1, energy, prev-energy, entry.error, rms(entry.residuals[0]))
		prev = energy

		if entry.error < s.threshold {
			res.State = Converged
			s.log.Infof("SCF converged after step %d (%v)", counter+1, time.Since(tstart))
			return res, nil
		}
		if counter >= s.maxIter {
			res.State = Exhausted
			s.log.Warnf("SCF NOT converged after step %d", counter+1)
			return res, nil
		}

		coeffs, name, err := s.method.coefficients(hist, scale)
		if err != nil {
			return res, fmt.Errorf("iteration %d: %w", counter+1, err)
		}
		s.log.Debugf("%s: %d vectors, coefficients %.6f", name, hist.len(), coeffs)
		hist.extrapolate(coeffs, focks)
		if err := occupy(focks, olp, occModel, exps, dms); err != nil {
			return res, err
		}
	}
}
