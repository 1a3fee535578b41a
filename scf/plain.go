// plain.go --  This file is part of goHF project.
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
	"time"

	"example.com/gohf/linalg"
	"example.com/gohf/occ"
)

// PlainSolver is the Roothaan iteration: diagonalize the Fock operator,
// occupy the lowest orbitals, rebuild the Fock operator.
type PlainSolver struct {
	base
}

func NewPlainSolver(threshold float64, maxIter int) *PlainSolver {
	return &PlainSolver{base: newBase(threshold, maxIter)}
}

func (s *PlainSolver) Solve(ham Hamiltonian, lf *linalg.Factory, olp *linalg.TwoIndex, occModel occ.Model, dms ...*linalg.TwoIndex) (Result, error) {
	if err := checkArgs(ham, olp, dms); err != nil {
		return Result{}, err
	}
	focks := createTwoIndices(lf, len(dms))
	exps := createExpansions(lf, len(dms))
	res := Result{State: Initialized}
	prev := 0.0
	tstart := time.Now()
	for counter := 0; ; counter++ {
		energy, err := evaluate(ham, dms, focks)
		if err != nil {
			return res, err
		}
		res.State = Iterating
		res.Iterations = counter
		res.Energy = energy
		res.Energies = append(res.Energies, energy)
		res.Error = commutatorError(focks, dms, olp)
		s.log.Infof("Iteration %3d. Energy = %.12f, dE = %.3e, error = %.3e", counter+1, energy, prev-energy, res.Error)
		prev = energy

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
		if err := occupy(focks, olp, occModel, exps, dms); err != nil {
			return res, err
		}
	}
}
