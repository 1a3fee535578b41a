// term.go --  This file is part of goHF project.
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
package meanfield

import (
	"fmt"

	"example.com/gohf/cache"
	"example.com/gohf/linalg"
)

var spinNames = [2]string{"alpha", "beta"}

// Term is one contribution to the energy and to the Fock operators.
//
// Check is called once when the Hamiltonian is built; it returns the basis
// dimension of the term's operators or an error when one is missing.
// ComputeEnergy and AddFock only read the density matrices in the State and
// may store intermediates in its cache under keys that contain Label.
type Term interface {
	Label() string
	Check() (nbasis int, err error)
	ComputeEnergy(st *State) float64
	AddFock(st *State, focks []*linalg.TwoIndex)
}

// State is the evaluation point shared by the terms between two resets.
type State struct {
	cache *cache.Cache
	dms   []*linalg.TwoIndex
	ready bool
}

func (st *State) Cache() *cache.Cache { return st.cache }

func (st *State) NDM() int { return len(st.dms) }

func (st *State) Restricted() bool { return len(st.dms) == 1 }

// SpinFactor is 2 for a restricted state, where the alpha density stands for
// both spin channels, and 1 otherwise.
func (st *State) SpinFactor() float64 {
	if st.Restricted() {
		return 2
	}
	return 1
}

// DM returns the density matrix of spin channel i (0 alpha, 1 beta).
func (st *State) DM(i int) *linalg.TwoIndex { return st.dms[i] }

// FullDM returns the spin-summed density matrix.
func (st *State) FullDM() *linalg.TwoIndex {
	full, fresh := cache.Acquire(st.cache, "dm_full", st.alloc)
	if fresh {
		full.Assign(st.dms[0])
		if st.Restricted() {
			full.Scale(2)
		} else {
			full.AddScaled(st.dms[1], 1)
		}
	}
	return full
}

func (st *State) alloc() *linalg.TwoIndex {
	return linalg.NewTwoIndex(st.dms[0].NBasis())
}

// TwoIndexTerm is a density-independent one-body operator such as the
// kinetic energy or the nuclear attraction.
type TwoIndexTerm struct {
	op    *linalg.TwoIndex
	label string
}

func NewTwoIndexTerm(op *linalg.TwoIndex, label string) *TwoIndexTerm {
	return &TwoIndexTerm{op: op, label: label}
}

func (t *TwoIndexTerm) Label() string { return t.label }

func (t *TwoIndexTerm) Check() (int, error) {
	if t.op == nil {
		return 0, fmt.Errorf("%s: %w", t.label, ErrMissingOperator)
	}
	return t.op.NBasis(), nil
}

func (t *TwoIndexTerm) ComputeEnergy(st *State) float64 {
	return t.op.ExpectationValue(st.FullDM())
}

func (t *TwoIndexTerm) AddFock(st *State, focks []*linalg.TwoIndex) {
	for _, fock := range focks {
		fock.AddScaled(t.op, 1)
	}
}

// DirectTerm is the classical Coulomb (Hartree) repulsion of the density
// with itself: E = 1/2 <J(D), D>, F = J(D).
type DirectTerm struct {
	er    *linalg.FourIndex
	label string
}

func NewDirectTerm(er *linalg.FourIndex, label string) *DirectTerm {
	return &DirectTerm{er: er, label: label}
}

func (t *DirectTerm) Label() string { return t.label }

func (t *DirectTerm) Check() (int, error) {
	if t.er == nil {
		return 0, fmt.Errorf("%s: %w", t.label, ErrMissingOperator)
	}
	return t.er.NBasis(), nil
}

func (t *DirectTerm) coulomb(st *State) *linalg.TwoIndex {
	op, fresh := cache.Acquire(st.cache, "op_"+t.label, st.alloc)
	if fresh {
		t.er.ContractDirect(st.FullDM(), op)
	}
	return op
}

func (t *DirectTerm) ComputeEnergy(st *State) float64 {
	return 0.5 * t.coulomb(st).ExpectationValue(st.FullDM())
}

func (t *DirectTerm) AddFock(st *State, focks []*linalg.TwoIndex) {
	op := t.coulomb(st)
	for _, fock := range focks {
		fock.AddScaled(op, 1)
	}
}

// ExchangeTerm is (a fraction of) the exact exchange energy,
// E = -1/2 fraction sum_s <K(D_s), D_s>, F_s = -fraction K(D_s).
type ExchangeTerm struct {
	er       *linalg.FourIndex
	label    string
	fraction float64
}

func NewExchangeTerm(er *linalg.FourIndex, label string, fraction float64) *ExchangeTerm {
	return &ExchangeTerm{er: er, label: label, fraction: fraction}
}

func (t *ExchangeTerm) Label() string { return t.label }

func (t *ExchangeTerm) Fraction() float64 { return t.fraction }

func (t *ExchangeTerm) Check() (int, error) {
	if t.er == nil {
		return 0, fmt.Errorf("%s: %w", t.label, ErrMissingOperator)
	}
	return t.er.NBasis(), nil
}

func (t *ExchangeTerm) exchange(st *State, spin int) *linalg.TwoIndex {
	op, fresh := cache.Acquire(st.cache, "op_"+t.label+"_"+spinNames[spin], st.alloc)
	if fresh {
		t.er.ContractExchange(st.DM(spin), op)
	}
	return op
}

func (t *ExchangeTerm) ComputeEnergy(st *State) float64 {
	sum := 0.0
	for spin := 0; spin < st.NDM(); spin++ {
		sum += t.exchange(st, spin).ExpectationValue(st.DM(spin))
	}
	return -0.5 * t.fraction * st.SpinFactor() * sum
}

func (t *ExchangeTerm) AddFock(st *State, focks []*linalg.TwoIndex) {
	for spin, fock := range focks {
		fock.AddScaled(t.exchange(st, spin), -t.fraction)
	}
}
