// molecule.go --  This file is part of goHF project.
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
package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
)

var a_B = 0.52917720859

var (
	ErrUnknownElement = errors.New("unknown element")
	ErrCoordinates    = errors.New("incorrect format of coordinates")
	ErrMultiplicity   = errors.New("multiplicity does not match the number of electrons")
)

// element symbols indexed by atomic number
var elemSymb = []string{"X",
	"H", "He", "Li", "Be", "B", "C", "N", "O", "F", "Ne",
	"Na", "Mg", "Al", "Si", "P", "S", "Cl", "Ar",
}

type Atom struct {
	Z      int
	Name   string
	Coords [3]float64 // angstrom
}

type Molecule struct {
	Atoms        []Atom
	Charge       int
	Multiplicity int // 0 picks the lowest one
}

// addAtoms parses lines of the form "Symbol x y z" (angstrom).
func (m *Molecule) addAtoms(lines []string) error {
	for _, line := range lines {
		words := strings.Fields(line)
		if len(words) == 0 {
			continue
		}
		var atm Atom
		atm.Z = slices.IndexFunc(elemSymb, func(s string) bool { return strings.EqualFold(s, words[0]) })
		if atm.Z <= 0 {
			return fmt.Errorf("%q: %w", words[0], ErrUnknownElement)
		}
		atm.Name = elemSymb[atm.Z] + strconv.Itoa(len(m.Atoms)+1)
		if len(words) < 4 {
			return fmt.Errorf("atom %s: %w", atm.Name, ErrCoordinates)
		}
		for k := 0; k < 3; k++ {
			v, err := strconv.ParseFloat(words[k+1], 64)
			if err != nil {
				return fmt.Errorf("atom %s: %w: %v", atm.Name, ErrCoordinates, err)
			}
			atm.Coords[k] = v
		}
		m.Atoms = append(m.Atoms, atm)
	}
	return nil
}

func (m *Molecule) clone() Molecule {
	res := *m
	res.Atoms = slices.Clone(m.Atoms)
	return res
}

func (m *Molecule) getNelec() int {
	result := -m.Charge
	for _, a := range m.Atoms {
		result += a.Z
	}
	return result
}

// NAlphaBeta returns the number of alpha and beta electrons.
func (m *Molecule) NAlphaBeta() (int, int, error) {
	nelec := m.getNelec()
	if nelec < 0 {
		return 0, 0, fmt.Errorf("charge %d exceeds the nuclear charge", m.Charge)
	}
	mult := m.Multiplicity
	if mult == 0 {
		mult = 1 + nelec%2
	}
	if mult < 1 || mult > nelec+1 || (nelec+mult-1)%2 != 0 {
		return 0, 0, fmt.Errorf("%d electrons, multiplicity %d: %w", nelec, mult, ErrMultiplicity)
	}
	nalpha := (nelec + mult - 1) / 2
	return nalpha, nelec - nalpha, nil
}

// Centers returns the nuclear positions in bohr.
func (m *Molecule) Centers() [][3]float64 {
	res := make([][3]float64, len(m.Atoms))
	for i, a := range m.Atoms {
		for k := range a.Coords {
			res[i][k] = a.Coords[k] / a_B
		}
	}
	return res
}

func (m *Molecule) Numbers() []int {
	res := make([]int, len(m.Atoms))
	for i, a := range m.Atoms {
		res[i] = a.Z
	}
	return res
}

func (m *Molecule) Charges() []float64 {
	res := make([]float64, len(m.Atoms))
	for i, a := range m.Atoms {
		res[i] = float64(a.Z)
	}
	return res
}
