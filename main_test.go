// main_test.go --  This file is part of goHF project.
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
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"example.com/gohf/scf"
	"github.com/sirupsen/logrus"
)

// H2 at 1.4 bohr
var h2Atoms = fmt.Sprintf("H 0.0 0.0 0.0\nH 0.0 0.0 %.17g\n", 1.4*a_B)

func quietLog() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	fname := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(fname, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return fname
}

func TestOutputName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"h2.inp", "h2.out"},
		{"dir/h2.toml", "dir/h2.out"},
		{"h2", "h2.out"},
		{"a.b.yaml", "a.b.out"},
	}
	for _, test := range tests {
		if got := outputName(test.in); got != test.want {
			t.Errorf("got %v, wanted %v\n", got, test.want)
		}
	}
}

func TestProcessInput(t *testing.T) {
	data := strings.Split(`# hydrogen fluoride cation
Atoms
H 0.0 0.0 0.0
F 0.0 0.0 0.92
end
Basis
sto-3g
end
Method LDA
Solver ediis2
Charge 1
Multiplicity 2
Threshold 1e-7
MaxIter 50
NVector 8
Grid 30 12
Temperature 300
Unrestricted
nprocs 2`, "\n")
	in := defaultInput()
	if err := processInput(data, &in); err != nil {
		t.Fatal(err)
	}
	if got := len(in.mol.Atoms); got != 2 {
		t.Fatalf("got %v, wanted %v\n", got, 2)
	}
	if got := in.mol.Atoms[1]; got.Z != 9 || got.Name != "F2" || got.Coords[2] != 0.92 {
		t.Errorf("got %v, wanted F2 at z = 0.92\n", got)
	}
	tests := []struct {
		got, want any
	}{
		{in.Basis, "sto-3g"},
		{in.Method, "lda"},
		{in.Solver, "ediis2"},
		{in.mol.Charge, 1},
		{in.mol.Multiplicity, 2},
		{in.Threshold, 1e-7},
		{in.MaxIter, 50},
		{in.NVector, 8},
		{in.Grid.NRadial, 30},
		{in.Grid.NTheta, 12},
		{in.Temperature, 300.0},
		{in.Unrestricted, true},
		{in.NProcs, 2},
	}
	for i, test := range tests {
		if test.got != test.want {
			t.Errorf("%d: got %v, wanted %v\n", i, test.got, test.want)
		}
	}
}

func TestProcessInputErrors(t *testing.T) {
	tests := []struct {
		data string
		want error
	}{
		{"Method hf", ErrNoAtoms},
		{"Atoms\nH 0 0 0\n", ErrNoBlockEnd},
		{"Atoms\nXx 0 0 0\nend", ErrUnknownElement},
		{"Atoms\nH 0 0\nend", ErrCoordinates},
		{"Atoms\nH 0 0 a\nend", ErrCoordinates},
		{"Atoms\nH 0 0 0\nend\nCharge one", ErrKeyword},
		{"Atoms\nH 0 0 0\nend\nMaxIter", ErrKeyword},
		{"Atoms\nH 0 0 0\nend\nBogus 1", ErrKeyword},
	}
	for _, test := range tests {
		in := defaultInput()
		err := processInput(strings.Split(test.data, "\n"), &in)
		if !errors.Is(err, test.want) {
			t.Errorf("%q: got %v, wanted %v\n", test.data, err, test.want)
		}
	}
}

func TestLoadInput(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"h2.inp", "Atoms\n" + h2Atoms + "end\nMethod HFS\nSolver oda\nGrid 30 10\n"},
		{"h2.toml", "method = \"hfs\"\nsolver = \"oda\"\natoms = \"\"\"\n" + h2Atoms +
			"\"\"\"\n[grid]\nnradial = 30\nntheta = 10\n"},
		{"h2.yaml", "method: hfs\nsolver: oda\natoms: |\n  " +
			strings.ReplaceAll(strings.TrimSpace(h2Atoms), "\n", "\n  ") +
			"\ngrid:\n  nradial: 30\n  ntheta: 10\n"},
	}
	for _, test := range tests {
		in, err := LoadInput(writeInput(t, test.name, test.content))
		if err != nil {
			t.Fatalf("%s: %v", test.name, err)
		}
		if got := len(in.mol.Atoms); got != 2 {
			t.Errorf("%s: got %v, wanted %v\n", test.name, got, 2)
		}
		if math.Abs(in.mol.Atoms[1].Coords[2]-1.4*a_B) > 1e-9 {
			t.Errorf("%s: got %v, wanted %v\n", test.name, in.mol.Atoms[1].Coords[2], 1.4*a_B)
		}
		if in.Method != "hfs" || in.Solver != "oda" {
			t.Errorf("%s: got %v/%v, wanted hfs/oda\n", test.name, in.Method, in.Solver)
		}
		if in.Grid.NRadial != 30 || in.Grid.NTheta != 10 {
			t.Errorf("%s: got grid %v, wanted {30 10}\n", test.name, in.Grid)
		}
		// untouched keys keep their defaults
		if in.Basis != "sto-3g" || in.Threshold != scf.DefaultThreshold || in.NVector != scf.DefaultNVector {
			t.Errorf("%s: defaults lost: %v %v %v\n", test.name, in.Basis, in.Threshold, in.NVector)
		}
	}
}

func TestNAlphaBeta(t *testing.T) {
	tests := []struct {
		atoms        string
		charge, mult int
		alpha, beta  int
		fail         bool
	}{
		{"H 0 0 0\nH 0 0 1", 0, 0, 1, 1, false},
		{"H 0 0 0\nH 0 0 1", 0, 3, 2, 0, false},
		{"H 0 0 0\nH 0 0 1", 0, 2, 0, 0, true},
		{"H 0 0 0", 0, 0, 1, 0, false},
		{"He 0 0 0\nH 0 0 1", 1, 0, 1, 1, false},
		{"O 0 0 0", 0, 3, 5, 3, false},
		{"H 0 0 0", 2, 0, 0, 0, true},
	}
	for _, test := range tests {
		mol := Molecule{Charge: test.charge, Multiplicity: test.mult}
		if err := mol.addAtoms(strings.Split(test.atoms, "\n")); err != nil {
			t.Fatal(err)
		}
		a, b, err := mol.NAlphaBeta()
		if (err != nil) != test.fail {
			t.Errorf("%q: got error %v, wanted failure %v\n", test.atoms, err, test.fail)
			continue
		}
		if !test.fail && (a != test.alpha || b != test.beta) {
			t.Errorf("%q: got %d/%d, wanted %d/%d\n", test.atoms, a, b, test.alpha, test.beta)
		}
	}
}

func TestRunCalc(t *testing.T) {
	in := defaultInput()
	if err := processInput(strings.Split("Atoms\n"+h2Atoms+"end", "\n"), &in); err != nil {
		t.Fatal(err)
	}
	rep, err := runCalc(&in, &in.mol, quietLog())
	if err != nil {
		t.Fatal(err)
	}
	if rep.State != scf.Converged {
		t.Errorf("got %v, wanted %v\n", rep.State, scf.Converged)
	}
	if math.Abs(rep.Energy-(-1.1167)) > 1e-3 {
		t.Errorf("got %v, wanted %v\n", rep.Energy, -1.1167)
	}
	sum := 0.0
	for _, e := range rep.Breakdown {
		sum += e
	}
	if math.Abs(sum-rep.Energy) > 1e-10 {
		t.Errorf("got %v, wanted %v\n", sum, rep.Energy)
	}
	if want := 1.0 / 1.4; math.Abs(rep.Breakdown["nn"]-want) > 1e-9 {
		t.Errorf("got %v, wanted %v\n", rep.Breakdown["nn"], want)
	}
	if got := len(rep.Orbitals); got != 1 {
		t.Fatalf("got %v, wanted %v\n", got, 1)
	}
	ih, eh := rep.Orbitals[0].Homo()
	il, el := rep.Orbitals[0].Lumo(1)
	if ih < 0 || il < 0 || eh >= el {
		t.Errorf("got HOMO %d (%v), LUMO %d (%v)\n", ih, eh, il, el)
	}

	in.Solver = "bogus"
	if _, err := runCalc(&in, &in.mol, quietLog()); !errors.Is(err, ErrUnknownSolver) {
		t.Errorf("got %v, wanted %v\n", err, ErrUnknownSolver)
	}
}

func TestScan(t *testing.T) {
	in := defaultInput()
	if err := processInput(strings.Split("Atoms\n"+h2Atoms+"end\nSolver ediis2", "\n"), &in); err != nil {
		t.Fatal(err)
	}
	points, err := scan(&in, 2, 0.6, 0.1, 3, quietLog())
	if err != nil {
		t.Fatal(err)
	}
	for i, p := range points {
		if want := 0.6 + 0.1*float64(i); math.Abs(p.Z-want) > 1e-12 {
			t.Errorf("got %v, wanted %v\n", p.Z, want)
		}
		if p.Report.State != scf.Converged {
			t.Errorf("point %d: got %v, wanted %v\n", i, p.Report.State, scf.Converged)
		}
	}
	// the H2 minimum is near 0.71 angstrom in this basis
	if !(points[1].Energy < points[0].Energy && points[1].Energy < points[2].Energy) {
		t.Errorf("got %v %v %v, wanted a minimum at the middle point\n",
			points[0].Energy, points[1].Energy, points[2].Energy)
	}
	// the input molecule is not modified
	if math.Abs(in.mol.Atoms[1].Coords[2]-1.4*a_B) > 1e-9 {
		t.Errorf("got %v, wanted %v\n", in.mol.Atoms[1].Coords[2], 1.4*a_B)
	}

	if _, err := scan(&in, 3, 0.6, 0.1, 3, quietLog()); err == nil {
		t.Errorf("got nil, wanted an error for a missing atom\n")
	}
}

func TestNewSolver(t *testing.T) {
	tests := []struct {
		solver  string
		nvector int
		want    error
	}{
		{"plain", 6, nil},
		{"oda", 6, nil},
		{"cdiis", 24, nil},
		{"ediis", 6, nil},
		{"ediis", 24, scf.ErrNVector},
		{"ediis2", 13, scf.ErrNVector},
		{"bogus", 6, ErrUnknownSolver},
	}
	for _, test := range tests {
		in := defaultInput()
		in.Solver = test.solver
		in.NVector = test.nvector
		s, err := newSolver(&in)
		if !errors.Is(err, test.want) {
			t.Errorf("%s/%d: got %v, wanted %v\n", test.solver, test.nvector, err, test.want)
		}
		if err != nil && s != nil {
			t.Errorf("%s/%d: got a solver together with an error\n", test.solver, test.nvector)
		}
	}
}
