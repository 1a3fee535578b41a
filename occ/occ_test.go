// occ_test.go --  This file is part of goHF project.
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
package occ

import (
	"errors"
	"math"
	"testing"

	"example.com/gohf/linalg"
	"gonum.org/v1/gonum/floats"
)

func expansion(energies ...float64) *linalg.Expansion {
	exp := linalg.NewExpansion(len(energies))
	copy(exp.Energies, energies)
	return exp
}

func TestAufbau(t *testing.T) {
	tests := []struct {
		name     string
		energies []float64
		nocc     float64
		want     []float64
	}{
		{"closed", []float64{-1, -0.5, 0.2, 0.7}, 2, []float64{1, 1, 0, 0}},
		{"unsorted", []float64{0.3, -2, 0.1}, 2, []float64{0, 1, 1}},
		{"fractional", []float64{-1, -0.5, 0.2}, 1.5, []float64{1, 0.5, 0}},
		{"degenerate", []float64{-1, 0.1, 0.1, 0.1, 2}, 3, []float64{1, 2.0 / 3, 2.0 / 3, 2.0 / 3, 0}},
		{"all", []float64{-1, -0.5}, 2, []float64{1, 1}},
		{"none", []float64{-1, -0.5}, 0, []float64{0, 0}},
	}
	for _, test := range tests {
		model, err := NewAufbauOccModel(test.nocc)
		if err != nil {
			t.Fatal(err)
		}
		exp := expansion(test.energies...)
		if err := model.Assign(exp); err != nil {
			t.Fatal(err)
		}
		if !floats.EqualApprox(exp.Occupations, test.want, 1e-14) {
			t.Errorf("%s: got %v, wanted %v\n", test.name, exp.Occupations, test.want)
		}
	}
}

func TestAufbauUnrestricted(t *testing.T) {
	model, err := NewAufbauOccModel(2, 1)
	if err != nil {
		t.Fatal(err)
	}
	a, b := expansion(-1, -0.5, 0.3), expansion(-0.9, -0.4, 0.5)
	if err := model.Assign(a, b); err != nil {
		t.Fatal(err)
	}
	if want := []float64{1, 1, 0}; !floats.Equal(a.Occupations, want) {
		t.Errorf("got %v, wanted %v\n", a.Occupations, want)
	}
	if want := []float64{1, 0, 0}; !floats.Equal(b.Occupations, want) {
		t.Errorf("got %v, wanted %v\n", b.Occupations, want)
	}
	if err := model.Assign(a); !errors.Is(err, ErrSpinArity) {
		t.Errorf("got %v, wanted %v\n", err, ErrSpinArity)
	}
}

func TestErrors(t *testing.T) {
	if _, err := NewAufbauOccModel(-1); !errors.Is(err, ErrNegativeElectrons) {
		t.Errorf("got %v, wanted %v\n", err, ErrNegativeElectrons)
	}
	if _, err := NewAufbauOccModel(1, 1, 1); !errors.Is(err, ErrSpinArity) {
		t.Errorf("got %v, wanted %v\n", err, ErrSpinArity)
	}
	if _, err := NewAufbauOccModel(); !errors.Is(err, ErrSpinArity) {
		t.Errorf("got %v, wanted %v\n", err, ErrSpinArity)
	}
	model, _ := NewAufbauOccModel(3)
	if err := model.Assign(expansion(-1, 0)); !errors.Is(err, ErrTooManyElectrons) {
		t.Errorf("got %v, wanted %v\n", err, ErrTooManyElectrons)
	}
	fermi, _ := NewFermiOccModel(1000, 3)
	if err := fermi.Assign(expansion(-1, 0)); !errors.Is(err, ErrTooManyElectrons) {
		t.Errorf("got %v, wanted %v\n", err, ErrTooManyElectrons)
	}
	if _, err := NewFermiOccModel(0, 1); err == nil {
		t.Errorf("got nil, wanted an error for zero temperature\n")
	}
}

func TestFermi(t *testing.T) {
	tests := []struct {
		temperature float64
		energies    []float64
		nocc        float64
	}{
		{300, []float64{-1, -0.5, 0.2, 0.7}, 2},
		{5000, []float64{-0.3, -0.29, -0.1, 0.4}, 1},
		{20000, []float64{-0.2, 0.1, 0.1, 0.3, 0.8}, 2.5},
		{1000, []float64{-1, -0.5}, 2},
	}
	for _, test := range tests {
		model, err := NewFermiOccModel(test.temperature, test.nocc)
		if err != nil {
			t.Fatal(err)
		}
		exp := expansion(test.energies...)
		if err := model.Assign(exp); err != nil {
			t.Fatal(err)
		}
		if got := floats.Sum(exp.Occupations); math.Abs(got-test.nocc) > 1e-9 {
			t.Errorf("T=%v: got %v electrons, wanted %v\n", test.temperature, got, test.nocc)
		}
		for i := 1; i < len(test.energies); i++ {
			if exp.Occupations[i] > exp.Occupations[i-1]+1e-14 {
				t.Errorf("T=%v: occupations %v not decreasing with energy\n", test.temperature, exp.Occupations)
			}
		}
	}

	// at low temperature the distribution approaches aufbau
	model, _ := NewFermiOccModel(10, 2)
	exp := expansion(-1, -0.5, 0.2, 0.7)
	if err := model.Assign(exp); err != nil {
		t.Fatal(err)
	}
	if want := []float64{1, 1, 0, 0}; !floats.EqualApprox(exp.Occupations, want, 1e-9) {
		t.Errorf("got %v, wanted %v\n", exp.Occupations, want)
	}
}
