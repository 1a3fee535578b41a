// linalg_test.go --  This file is part of goHF project.
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
package linalg

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func testOverlap() *TwoIndex {
	return NewTwoIndexFrom([][]float64{
		{1.0, 0.4, 0.1},
		{0.4, 1.0, 0.3},
		{0.1, 0.3, 1.0},
	})
}

func testFock() *TwoIndex {
	return NewTwoIndexFrom([][]float64{
		{-1.2, -0.5, -0.1},
		{-0.5, -0.7, -0.2},
		{-0.1, -0.2, 0.4},
	})
}

func testERI(n int) *FourIndex {
	eri := NewFourIndex(n)
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			for k := 0; k < n; k++ {
				for l := 0; l <= k; l++ {
					v := 1.0 / float64(1+i+j+k+l) * (1 + 0.1*float64(i*j+k*l))
					eri.SetSymmetric(i, j, k, l, v)
				}
			}
		}
	}
	return eri
}

func TestExpectationValue(t *testing.T) {
	a := NewTwoIndexFrom([][]float64{{1, 2}, {2, 3}})
	b := NewTwoIndexFrom([][]float64{{4, 5}, {5, 6}})
	got := a.ExpectationValue(b)
	want := 1*4 + 2*5 + 2*5 + 3*6.0
	if got != want {
		t.Errorf("got %v, wanted %v\n", got, want)
	}
}

func TestAddScaled(t *testing.T) {
	a := NewTwoIndexFrom([][]float64{{1, 2}, {2, 3}})
	b := NewTwoIndexFrom([][]float64{{1, 1}, {1, 1}})
	a.AddScaled(b, -0.5)
	want := NewTwoIndexFrom([][]float64{{0.5, 1.5}, {1.5, 2.5}})
	if d := a.Distance(want); d > 1e-15 {
		t.Errorf("got %v, wanted %v\n", a, want)
	}
}

func TestCheckSymmetry(t *testing.T) {
	a := testFock()
	if err := a.CheckSymmetry(1e-12); err != nil {
		t.Errorf("got %v, wanted nil\n", err)
	}
	a.Set(0, 2, 1.0)
	if err := a.CheckSymmetry(1e-12); !errors.Is(err, ErrAsymmetry) {
		t.Errorf("got %v, wanted %v\n", err, ErrAsymmetry)
	}
	a.Symmetrize()
	if err := a.CheckSymmetry(1e-12); err != nil {
		t.Errorf("got %v after Symmetrize, wanted nil\n", err)
	}
}

func TestDiagonalize(t *testing.T) {
	olp, fock := testOverlap(), testFock()
	energies, coeffs, err := Diagonalize(fock, olp)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(energies); i++ {
		if energies[i] < energies[i-1] {
			t.Errorf("energies not ascending: %v\n", energies)
		}
	}
	// C^T S C = 1 and C^T F C = diag(e)
	var tmp, cs, cf mat.Dense
	tmp.Mul(olp.Dense(), coeffs)
	cs.Mul(coeffs.T(), &tmp)
	tmp.Mul(fock.Dense(), coeffs)
	cf.Mul(coeffs.T(), &tmp)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			wantS, wantF := 0.0, 0.0
			if i == j {
				wantS, wantF = 1, energies[i]
			}
			if math.Abs(cs.At(i, j)-wantS) > 1e-10 {
				t.Errorf("CtSC(%d,%d): got %v, wanted %v\n", i, j, cs.At(i, j), wantS)
			}
			if math.Abs(cf.At(i, j)-wantF) > 1e-10 {
				t.Errorf("CtFC(%d,%d): got %v, wanted %v\n", i, j, cf.At(i, j), wantF)
			}
		}
	}
}

func TestDiagonalizeNotPositive(t *testing.T) {
	olp := NewTwoIndexFrom([][]float64{{1, 2}, {2, 1}})
	fock := NewTwoIndexFrom([][]float64{{1, 0}, {0, 1}})
	_, _, err := Diagonalize(fock, olp)
	if !errors.Is(err, ErrEigenFailed) {
		t.Errorf("got %v, wanted %v\n", err, ErrEigenFailed)
	}
}

func TestToDMIdempotent(t *testing.T) {
	olp, fock := testOverlap(), testFock()
	exp := NewExpansion(3)
	if err := exp.FromFock(fock, olp); err != nil {
		t.Fatal(err)
	}
	exp.Occupations[0] = 1
	dm := NewTwoIndex(3)
	exp.ToDM(dm)
	// D S D = D for an idempotent density
	var tmp, dsd, diff mat.Dense
	tmp.Mul(dm.Dense(), olp.Dense())
	dsd.Mul(&tmp, dm.Dense())
	diff.Sub(&dsd, dm.Dense())
	if d := mat.Norm(&diff, 2); d > 1e-12 {
		t.Errorf("got |DSD-D| = %v, wanted 0\n", d)
	}
	if got := dm.ExpectationValue(olp); math.Abs(got-1) > 1e-12 {
		t.Errorf("got trace %v, wanted 1\n", got)
	}
}

func TestFromFockAndDM(t *testing.T) {
	olp, fock := testOverlap(), testFock()
	ref := NewExpansion(3)
	if err := ref.FromFock(fock, olp); err != nil {
		t.Fatal(err)
	}
	ref.Occupations[0] = 1
	ref.Occupations[1] = 1
	dm := NewTwoIndex(3)
	ref.ToDM(dm)

	exp := NewExpansion(3)
	if err := exp.FromFockAndDM(fock, dm, olp); err != nil {
		t.Fatal(err)
	}
	for i := range ref.Energies {
		if math.Abs(exp.Energies[i]-ref.Energies[i]) > 1e-10 {
			t.Errorf("energy %d: got %v, wanted %v\n", i, exp.Energies[i], ref.Energies[i])
		}
		if math.Abs(exp.Occupations[i]-ref.Occupations[i]) > 1e-10 {
			t.Errorf("occupation %d: got %v, wanted %v\n", i, exp.Occupations[i], ref.Occupations[i])
		}
	}
	back := NewTwoIndex(3)
	exp.ToDM(back)
	if d := back.Distance(dm); d > 1e-10 {
		t.Errorf("got density distance %v, wanted 0\n", d)
	}
	if i, e := exp.Homo(); i != 1 || e != exp.Energies[1] {
		t.Errorf("got homo %d %v, wanted 1 %v\n", i, e, exp.Energies[1])
	}
	if i, _ := exp.Lumo(1); i != 2 {
		t.Errorf("got lumo %d, wanted 2\n", i)
	}
}

func TestContractions(t *testing.T) {
	const n = 3
	eri := testERI(n)
	dm := testOverlap()
	direct := NewTwoIndex(n)
	exchange := NewTwoIndex(n)
	eri.ContractDirect(dm, direct)
	eri.ContractExchange(dm, exchange)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			wantJ, wantK := 0.0, 0.0
			for k := 0; k < n; k++ {
				for l := 0; l < n; l++ {
					wantJ += eri.At(i, j, k, l) * dm.At(k, l)
					wantK += eri.At(i, k, j, l) * dm.At(k, l)
				}
			}
			if math.Abs(direct.At(i, j)-wantJ) > 1e-14 {
				t.Errorf("J(%d,%d): got %v, wanted %v\n", i, j, direct.At(i, j), wantJ)
			}
			if math.Abs(exchange.At(i, j)-wantK) > 1e-14 {
				t.Errorf("K(%d,%d): got %v, wanted %v\n", i, j, exchange.At(i, j), wantK)
			}
		}
	}
	if err := exchange.CheckSymmetry(1e-14); err != nil {
		t.Error(err)
	}
	got := eri.ContractDouble(dm, dm)
	want := direct.ExpectationValue(dm)
	if math.Abs(got-want) > 1e-14 {
		t.Errorf("got %v, wanted %v\n", got, want)
	}
}

func TestFactory(t *testing.T) {
	lf := NewFactory(4)
	if got := lf.CreateTwoIndex().NBasis(); got != 4 {
		t.Errorf("got %v, wanted 4\n", got)
	}
	if got := lf.CreateFourIndex().NBasis(); got != 4 {
		t.Errorf("got %v, wanted 4\n", got)
	}
	if got := lf.CreateExpansion().NBasis(); got != 4 {
		t.Errorf("got %v, wanted 4\n", got)
	}
}
