// occ.go --  This file is part of goHF project.
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

// Package occ assigns occupation numbers to orbitals from their energies.
// Occupations are per spin channel and lie in [0, 1].
package occ

import (
	"errors"
	"fmt"
	"math"

	"example.com/gohf/linalg"
	"golang.org/x/exp/slices"
)

var (
	ErrTooManyElectrons  = errors.New("occ: more electrons than orbitals")
	ErrNegativeElectrons = errors.New("occ: negative number of electrons")
	ErrSpinArity         = errors.New("occ: wrong number of spin channels")
)

// orbitals with energies closer than this form one degenerate shell
const degenTol = 1e-6

// Model sets the Occupations of one expansion per spin channel.
type Model interface {
	Assign(exps ...*linalg.Expansion) error
	NOcc() []float64
}

func checkCounts(nocc []float64) error {
	if len(nocc) != 1 && len(nocc) != 2 {
		return fmt.Errorf("%d electron counts: %w", len(nocc), ErrSpinArity)
	}
	for _, n := range nocc {
		if n < 0 {
			return fmt.Errorf("%v: %w", n, ErrNegativeElectrons)
		}
	}
	return nil
}

func checkExpansions(nocc []float64, exps []*linalg.Expansion) error {
	if len(exps) != len(nocc) {
		return fmt.Errorf("got %d expansions for %d spin channels: %w", len(exps), len(nocc), ErrSpinArity)
	}
	for i, exp := range exps {
		if nocc[i] > float64(exp.NBasis()) {
			return fmt.Errorf("%v electrons in %d orbitals: %w", nocc[i], exp.NBasis(), ErrTooManyElectrons)
		}
	}
	return nil
}

// byEnergy returns orbital indices in order of increasing energy.
func byEnergy(energies []float64) []int {
	order := make([]int, len(energies))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		switch {
		case energies[a] < energies[b]:
			return -1
		case energies[a] > energies[b]:
			return 1
		}
		return 0
	})
	return order
}

// AufbauOccModel fills the lowest orbitals. A partially filled degenerate
// shell shares its electrons evenly among its orbitals.
type AufbauOccModel struct {
	nocc []float64
}

// NewAufbauOccModel takes the number of alpha electrons and, for an
// unrestricted wavefunction, the number of beta electrons.
func NewAufbauOccModel(nocc ...float64) (*AufbauOccModel, error) {
	if err := checkCounts(nocc); err != nil {
		return nil, err
	}
	return &AufbauOccModel{nocc: slices.Clone(nocc)}, nil
}

func (m *AufbauOccModel) NOcc() []float64 { return slices.Clone(m.nocc) }

func (m *AufbauOccModel) Assign(exps ...*linalg.Expansion) error {
	if err := checkExpansions(m.nocc, exps); err != nil {
		return err
	}
	for i, exp := range exps {
		fillShells(exp.Energies, exp.Occupations, m.nocc[i])
	}
	return nil
}

func fillShells(energies, occs []float64, nocc float64) {
	order := byEnergy(energies)
	clear(occs)
	left := nocc
	for start := 0; start < len(order) && left > 1e-12; {
		end := start + 1
		for end < len(order) && energies[order[end]]-energies[order[start]] < degenTol {
			end++
		}
		size := float64(end - start)
		fill := math.Min(1, left/size)
		for _, i := range order[start:end] {
			occs[i] = fill
		}
		left -= fill * size
		start = end
	}
}

// kB is the Boltzmann constant in hartree per kelvin.
const kB = 3.1668115634556e-06

// FermiOccModel smears occupations with a Fermi-Dirac distribution at a
// given electronic temperature. The Fermi level of each channel is found by
// bisection so that the occupations sum to the electron count.
type FermiOccModel struct {
	nocc        []float64
	temperature float64
	eps         float64
}

// NewFermiOccModel takes the temperature in kelvin followed by the electron
// counts per spin channel.
func NewFermiOccModel(temperature float64, nocc ...float64) (*FermiOccModel, error) {
	if err := checkCounts(nocc); err != nil {
		return nil, err
	}
	if temperature <= 0 {
		return nil, fmt.Errorf("occ: temperature %v K must be positive", temperature)
	}
	return &FermiOccModel{nocc: slices.Clone(nocc), temperature: temperature, eps: 1e-10}, nil
}

func (m *FermiOccModel) NOcc() []float64 { return slices.Clone(m.nocc) }

func (m *FermiOccModel) Assign(exps ...*linalg.Expansion) error {
	if err := checkExpansions(m.nocc, exps); err != nil {
		return err
	}
	kT := kB * m.temperature
	for i, exp := range exps {
		m.smear(exp.Energies, exp.Occupations, m.nocc[i], kT)
	}
	return nil
}

func fermi(e, mu, kT float64) float64 {
	x := (e - mu) / kT
	if x > 700 {
		return 0
	}
	return 1 / (1 + math.Exp(x))
}

func count(energies []float64, mu, kT float64) float64 {
	sum := 0.0
	for _, e := range energies {
		sum += fermi(e, mu, kT)
	}
	return sum
}

func (m *FermiOccModel) smear(energies, occs []float64, nocc, kT float64) {
	switch {
	case nocc == 0:
		clear(occs)
		return
	case nocc == float64(len(occs)):
		for i := range occs {
			occs[i] = 1
		}
		return
	}
	lo, hi := slices.Min(energies), slices.Max(energies)
	for count(energies, lo, kT) > nocc {
		lo -= 1 + math.Abs(lo)
	}
	for count(energies, hi, kT) < nocc {
		hi += 1 + math.Abs(hi)
	}
	mu := 0.5 * (lo + hi)
	for iter := 0; iter < 200; iter++ {
		mu = 0.5 * (lo + hi)
		n := count(energies, mu, kT)
		if math.Abs(n-nocc) < m.eps {
			break
		}
		if n < nocc {
			lo = mu
		} else {
			hi = mu
		}
	}
	for i, e := range energies {
		occs[i] = fermi(e, mu, kT)
	}
}
