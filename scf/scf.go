// scf.go --  This file is part of goHF project.
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

// Package scf drives the self-consistent field iteration of a mean-field
// Hamiltonian: plain Roothaan iteration, the optimal damping algorithm and
// the DIIS family (CDIIS, EDIIS and the EDIIS+CDIIS combination).
//
// All solvers update the density matrices in place and leave the
// Hamiltonian reset to the returned density matrices. Running out of
// iterations is reported through Result.State, not as an error.
package scf

import (
	"errors"
	"fmt"
	"math"

	"example.com/gohf/linalg"
	"example.com/gohf/occ"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

var (
	ErrSpinArity = errors.New("scf: density matrices do not match the hamiltonian")
	ErrNVector   = errors.New("scf: too many DIIS vectors")
)

type State int

const (
	Initialized State = iota
	Iterating
	Converged
	Exhausted
)

func (s State) String() string {
	switch s {
	case Initialized:
		return "initialized"
	case Iterating:
		return "iterating"
	case Converged:
		return "converged"
	case Exhausted:
		return "exhausted"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

type Result struct {
	State      State
	Iterations int
	Energy     float64
	Error      float64   // convergence error at the returned density
	Energies   []float64 // energy at each evaluated density
}

// Hamiltonian is what the solvers need from meanfield.EffHam.
type Hamiltonian interface {
	NDM() int
	NBasis() int
	DerivScale() float64
	Reset(dms ...*linalg.TwoIndex) error
	ComputeEnergy() float64
	ComputeFock(focks ...*linalg.TwoIndex) error
}

type Solver interface {
	Solve(ham Hamiltonian, lf *linalg.Factory, olp *linalg.TwoIndex, occModel occ.Model, dms ...*linalg.TwoIndex) (Result, error)
}

const (
	DefaultThreshold = 1e-8
	DefaultMaxIter   = 128
)

// base holds the settings shared by every solver.
type base struct {
	threshold float64
	maxIter   int
	log       logrus.FieldLogger
}

func newBase(threshold float64, maxIter int) base {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if maxIter <= 0 {
		maxIter = DefaultMaxIter
	}
	return base{threshold: threshold, maxIter: maxIter, log: logrus.StandardLogger()}
}

func (b *base) SetLogger(log logrus.FieldLogger) { b.log = log }

func (b *base) Threshold() float64 { return b.threshold }

func (b *base) MaxIter() int { return b.maxIter }

func checkArgs(ham Hamiltonian, olp *linalg.TwoIndex, dms []*linalg.TwoIndex) error {
	if len(dms) != ham.NDM() {
		return fmt.Errorf("got %d density matrices for %d spin channels: %w", len(dms), ham.NDM(), ErrSpinArity)
	}
	if olp.NBasis() != ham.NBasis() {
		return fmt.Errorf("overlap has %d basis functions, hamiltonian %d: %w", olp.NBasis(), ham.NBasis(), linalg.ErrDimensionMismatch)
	}
	for _, dm := range dms {
		if dm.NBasis() != ham.NBasis() {
			return fmt.Errorf("density matrix has %d basis functions, hamiltonian %d: %w", dm.NBasis(), ham.NBasis(), linalg.ErrDimensionMismatch)
		}
	}
	return nil
}

func createTwoIndices(lf *linalg.Factory, n int) []*linalg.TwoIndex {
	res := make([]*linalg.TwoIndex, n)
	for i := range res {
		res[i] = lf.CreateTwoIndex()
	}
	return res
}

func createExpansions(lf *linalg.Factory, n int) []*linalg.Expansion {
	res := make([]*linalg.Expansion, n)
	for i := range res {
		res[i] = lf.CreateExpansion()
	}
	return res
}

// evaluate resets ham to dms and overwrites focks with the Fock operators.
func evaluate(ham Hamiltonian, dms, focks []*linalg.TwoIndex) (float64, error) {
	if err := ham.Reset(dms...); err != nil {
		return 0, err
	}
	energy := ham.ComputeEnergy()
	for _, fock := range focks {
		fock.Reset()
	}
	if err := ham.ComputeFock(focks...); err != nil {
		return 0, err
	}
	return energy, nil
}

// occupy diagonalizes the Fock operators, assigns occupations and writes the
// resulting density matrices.
func occupy(focks []*linalg.TwoIndex, olp *linalg.TwoIndex, occModel occ.Model, exps []*linalg.Expansion, dms []*linalg.TwoIndex) error {
	for i, fock := range focks {
		if err := exps[i].FromFock(fock, olp); err != nil {
			return err
		}
	}
	if err := occModel.Assign(exps...); err != nil {
		return err
	}
	for i, exp := range exps {
		exp.ToDM(dms[i])
	}
	return nil
}

// commutator writes F D S - S D F to out.
func commutator(fock, dm, olp *linalg.TwoIndex, out *mat.Dense) {
	var fd, sd mat.Dense
	fd.Mul(fock.Dense(), dm.Dense())
	sd.Mul(olp.Dense(), dm.Dense())
	out.Mul(&fd, olp.Dense())
	var sdf mat.Dense
	sdf.Mul(&sd, fock.Dense())
	out.Sub(out, &sdf)
}

// commutatorError is the largest Frobenius norm of the commutators of all
// spin channels.
func commutatorError(focks, dms []*linalg.TwoIndex, olp *linalg.TwoIndex) float64 {
	var comm mat.Dense
	errmax := 0.0
	for i := range focks {
		commutator(focks[i], dms[i], olp, &comm)
		errmax = math.Max(errmax, mat.Norm(&comm, 2))
	}
	return errmax
}

// rms is the root mean square of the matrix elements.
func rms(m *mat.Dense) float64 {
	sq := mat.DenseCopyOf(m)
	sq.MulElem(sq, sq)
	return math.Sqrt(stat.Mean(sq.RawMatrix().Data, nil))
}

// ConvergenceErrorCommutator resets ham to dms and returns the largest
// Frobenius norm of F D S - S D F over the spin channels.
func ConvergenceErrorCommutator(ham Hamiltonian, lf *linalg.Factory, olp *linalg.TwoIndex, dms ...*linalg.TwoIndex) (float64, error) {
	if err := checkArgs(ham, olp, dms); err != nil {
		return 0, err
	}
	focks := createTwoIndices(lf, len(dms))
	if _, err := evaluate(ham, dms, focks); err != nil {
		return 0, err
	}
	return commutatorError(focks, dms, olp), nil
}

// GuessCoreHamiltonian fills every expansion with the eigenvectors of the
// core Hamiltonian (kinetic plus nuclear attraction). Occupations are left
// to the occupation model.
func GuessCoreHamiltonian(olp, core *linalg.TwoIndex, exps ...*linalg.Expansion) error {
	for _, exp := range exps {
		if err := exp.FromFock(core, olp); err != nil {
			return fmt.Errorf("core guess: %w", err)
		}
	}
	return nil
}
