// hamiltonian.go --  This file is part of goHF project.
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

// Package meanfield assembles effective one-body Hamiltonians of
// Hartree-Fock and Kohn-Sham theory from a list of energy terms.
//
// An EffHam is reset to a set of density matrices (one for a restricted
// closed-shell wavefunction, alpha and beta for an unrestricted one) and
// then evaluated. The total energy, the per-term energies and every
// density-dependent intermediate are cached until the next reset.
//
// For a restricted Hamiltonian the single density matrix is the alpha one,
// the total density is twice that, and ComputeFock returns the derivative
// of the energy with respect to the total density matrix. For an
// unrestricted one each Fock operator is the derivative with respect to its
// own spin density.
package meanfield

import (
	"fmt"

	"example.com/gohf/cache"
	"example.com/gohf/linalg"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

const fockSymmetryTol = 1e-8

type EffHam struct {
	terms    []Term
	external map[string]float64
	extNames []string
	nbasis   int
	state    State
}

// New builds a Hamiltonian with ndm spin channels from terms. External
// energies are density-independent contributions (nuclear repulsion, say)
// added to the total.
func New(ndm int, terms []Term, external map[string]float64) (*EffHam, error) {
	if ndm != 1 && ndm != 2 {
		return nil, fmt.Errorf("%d density matrices: %w", ndm, ErrSpinArity)
	}
	if len(terms) == 0 {
		return nil, ErrNoTerms
	}
	ham := &EffHam{
		terms:    slices.Clone(terms),
		external: maps.Clone(external),
		nbasis:   -1,
	}
	if ham.external == nil {
		ham.external = map[string]float64{}
	}
	ham.extNames = maps.Keys(ham.external)
	slices.Sort(ham.extNames)

	seen := make(map[string]bool)
	for _, name := range ham.extNames {
		seen[name] = true
	}
	for _, term := range ham.terms {
		label := term.Label()
		if seen[label] || label == "" {
			return nil, fmt.Errorf("%q: %w", label, ErrDuplicateLabel)
		}
		seen[label] = true
		n, err := term.Check()
		if err != nil {
			return nil, err
		}
		if ham.nbasis >= 0 && n != ham.nbasis {
			return nil, fmt.Errorf("term %s has %d basis functions, others %d: %w",
				label, n, ham.nbasis, ErrDimensionMismatch)
		}
		ham.nbasis = n
	}
	ham.state.cache = cache.New()
	ham.state.dms = make([]*linalg.TwoIndex, ndm)
	for i := range ham.state.dms {
		ham.state.dms[i] = linalg.NewTwoIndex(ham.nbasis)
	}
	return ham, nil
}

// NewRestricted builds a closed-shell Hamiltonian driven by the alpha density.
func NewRestricted(terms []Term, external map[string]float64) (*EffHam, error) {
	return New(1, terms, external)
}

func NewUnrestricted(terms []Term, external map[string]float64) (*EffHam, error) {
	return New(2, terms, external)
}

func (ham *EffHam) NDM() int { return len(ham.state.dms) }

func (ham *EffHam) NBasis() int { return ham.nbasis }

// DerivScale is the factor relating ComputeFock to the derivative of the
// energy with respect to each input density matrix: dE/dD_s = DerivScale F_s.
func (ham *EffHam) DerivScale() float64 { return ham.state.SpinFactor() }

func (ham *EffHam) Cache() *cache.Cache { return ham.state.cache }

func (ham *EffHam) Terms() []Term { return slices.Clone(ham.terms) }

// Reset sets the evaluation point. The density matrices are copied and all
// cached results of the previous point become stale.
func (ham *EffHam) Reset(dms ...*linalg.TwoIndex) error {
	if err := ham.checkArgs(dms); err != nil {
		return err
	}
	ham.state.cache.Reset()
	for i, dm := range dms {
		ham.state.dms[i].Assign(dm)
	}
	ham.state.ready = true
	return nil
}

func (ham *EffHam) checkArgs(ops []*linalg.TwoIndex) error {
	if len(ops) != ham.NDM() {
		return fmt.Errorf("got %d matrices for %d spin channels: %w", len(ops), ham.NDM(), ErrSpinArity)
	}
	for _, op := range ops {
		if op.NBasis() != ham.nbasis {
			return fmt.Errorf("got %d basis functions, wanted %d: %w", op.NBasis(), ham.nbasis, ErrDimensionMismatch)
		}
	}
	return nil
}

func (ham *EffHam) mustBeReady() {
	if !ham.state.ready {
		panic("meanfield: Hamiltonian evaluated before Reset")
	}
}

// ComputeEnergy returns the total energy at the current density matrices.
// Calling it before the first Reset is a programming error and panics.
func (ham *EffHam) ComputeEnergy() float64 {
	ham.mustBeReady()
	c := ham.state.cache
	if e, ok := cache.Load[float64](c, "energy"); ok {
		return e
	}
	total := 0.0
	for _, name := range ham.extNames {
		e := ham.external[name]
		c.Store("energy_"+name, e)
		total += e
	}
	for _, term := range ham.terms {
		key := "energy_" + term.Label()
		e, ok := cache.Load[float64](c, key)
		if !ok {
			e = term.ComputeEnergy(&ham.state)
			c.Store(key, e)
		}
		total += e
	}
	c.Store("energy", total)
	return total
}

// Energies returns the contribution of every term and external energy to
// the total, keyed by label.
func (ham *EffHam) Energies() map[string]float64 {
	ham.ComputeEnergy()
	res := make(map[string]float64, len(ham.extNames)+len(ham.terms))
	for _, name := range ham.extNames {
		res[name], _ = cache.Load[float64](ham.state.cache, "energy_"+name)
	}
	for _, term := range ham.terms {
		res[term.Label()], _ = cache.Load[float64](ham.state.cache, "energy_"+term.Label())
	}
	return res
}

// ComputeFock adds the Fock operator of each spin channel to focks. The
// outputs are not zeroed first.
func (ham *EffHam) ComputeFock(focks ...*linalg.TwoIndex) error {
	ham.mustBeReady()
	if err := ham.checkArgs(focks); err != nil {
		return err
	}
	for _, term := range ham.terms {
		term.AddFock(&ham.state, focks)
	}
	for i, fock := range focks {
		if err := fock.CheckSymmetry(fockSymmetryTol); err != nil {
			return fmt.Errorf("spin %s: %w: %w", spinNames[i], ErrAsymmetricFock, err)
		}
	}
	return nil
}

// Ready reports whether the Hamiltonian has been reset at least once.
func (ham *EffHam) Ready() bool { return ham.state.ready }

// String prints the energy breakdown at the current point.
func (ham *EffHam) String() string {
	if !ham.state.ready {
		return "meanfield.EffHam{not reset}"
	}
	s := ""
	energies := ham.Energies()
	names := maps.Keys(energies)
	slices.Sort(names)
	for _, name := range names {
		s += fmt.Sprintf("%-20s %20.12f\n", name, energies[name])
	}
	return s + fmt.Sprintf("%-20s %20.12f\n", "total", ham.ComputeEnergy())
}
