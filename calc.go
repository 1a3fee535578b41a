// calc.go --  This file is part of goHF project.
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
	"time"

	"example.com/gohf/gbasis"
	"example.com/gohf/grid"
	"example.com/gohf/linalg"
	"example.com/gohf/meanfield"
	"example.com/gohf/occ"
	"example.com/gohf/scf"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var ErrUnknownSolver = errors.New("unknown solver")

type solver interface {
	scf.Solver
	SetLogger(log logrus.FieldLogger)
}

func newSolver(in *Input) (solver, error) {
	var (
		diis *scf.DIISSolver
		err  error
	)
	switch in.Solver {
	case "plain":
		return scf.NewPlainSolver(in.Threshold, in.MaxIter), nil
	case "oda":
		return scf.NewODASolver(in.Threshold, in.MaxIter), nil
	case "cdiis":
		return scf.NewCDIISSolver(in.Threshold, in.MaxIter, in.NVector), nil
	case "ediis":
		diis, err = scf.NewEDIISSolver(in.Threshold, in.MaxIter, in.NVector)
	case "ediis2":
		diis, err = scf.NewEDIIS2Solver(in.Threshold, in.MaxIter, in.NVector)
	default:
		return nil, fmt.Errorf("%q: %w", in.Solver, ErrUnknownSolver)
	}
	if err != nil {
		return nil, err
	}
	return diis, nil
}

// Report is the outcome of one calculation.
type Report struct {
	scf.Result
	Breakdown map[string]float64 // per term and external contribution
	Orbitals  []*linalg.Expansion
	DMs       []*linalg.TwoIndex
	NBasis    int
}

// runCalc computes the SCF solution of the input molecule.
func runCalc(in *Input, mol *Molecule, log logrus.FieldLogger) (*Report, error) {
	tstart := time.Now()
	nalpha, nbeta, err := mol.NAlphaBeta()
	if err != nil {
		return nil, err
	}
	centers := mol.Centers()
	numbers := mol.Numbers()
	charges := mol.Charges()

	basis, err := gbasis.New(in.Basis, centers, numbers)
	if err != nil {
		return nil, err
	}
	nbasis := basis.NBasis()
	lf := linalg.NewFactory(nbasis)
	olp := basis.Overlap()
	ints := meanfield.Integrals{
		Kinetic:           basis.Kinetic(),
		NuclearAttraction: basis.NuclearAttraction(centers, charges),
		Repulsion:         basis.ElectronRepulsion(),
		Basis:             basis,
	}
	if in.Method != "hf" {
		g, err := grid.NewBecke(centers, numbers, grid.Config{NRadial: in.Grid.NRadial, NTheta: in.Grid.NTheta})
		if err != nil {
			return nil, err
		}
		ints.Grid = g
		log.Infof("Becke grid with %d points", g.Size())
	}
	log.Infof("Integrals computed: %d basis functions (%v)", nbasis, time.Since(tstart))

	nocc := []float64{float64(nalpha)}
	if in.Unrestricted || nalpha != nbeta {
		nocc = append(nocc, float64(nbeta))
	}
	ndm := len(nocc)
	external := map[string]float64{"nn": gbasis.NuclearRepulsion(centers, charges)}
	ham, err := meanfield.NewFromRecipe(in.Method, ndm, ints, external)
	if err != nil {
		return nil, err
	}

	var occModel occ.Model
	if in.Temperature > 0 {
		occModel, err = occ.NewFermiOccModel(in.Temperature, nocc...)
	} else {
		occModel, err = occ.NewAufbauOccModel(nocc...)
	}
	if err != nil {
		return nil, err
	}

	core := ints.Kinetic.Copy()
	core.AddScaled(ints.NuclearAttraction, 1)
	exps := make([]*linalg.Expansion, ndm)
	dms := make([]*linalg.TwoIndex, ndm)
	for i := range exps {
		exps[i] = lf.CreateExpansion()
		dms[i] = lf.CreateTwoIndex()
	}
	if err := scf.GuessCoreHamiltonian(olp, core, exps...); err != nil {
		return nil, err
	}
	if err := occModel.Assign(exps...); err != nil {
		return nil, err
	}
	for i := range exps {
		exps[i].ToDM(dms[i])
	}

	slv, err := newSolver(in)
	if err != nil {
		return nil, err
	}
	slv.SetLogger(log)
	log.WithFields(logrus.Fields{"method": in.Method, "solver": in.Solver, "ndm": ndm}).Info("Starting SCF")
	res, err := slv.Solve(ham, lf, olp, occModel, dms...)
	if err != nil {
		return nil, err
	}

	// the hamiltonian is left at the returned densities
	focks := make([]*linalg.TwoIndex, ndm)
	for i := range focks {
		focks[i] = lf.CreateTwoIndex()
	}
	if err := ham.ComputeFock(focks...); err != nil {
		return nil, err
	}
	for i := range exps {
		if err := exps[i].FromFockAndDM(focks[i], dms[i], olp); err != nil {
			return nil, err
		}
	}
	log.Infof("Calculation done (%v)", time.Since(tstart))
	return &Report{Result: res, Breakdown: ham.Energies(), Orbitals: exps, DMs: dms, NBasis: nbasis}, nil
}

// printReport writes the energy breakdown and orbital energies.
func printReport(rep *Report, log logrus.FieldLogger) {
	printOutputDelimiter(log)
	log.Infof("SCF %s after %d iterations, error = %.3e", rep.State, rep.Iterations+1, rep.Error)
	labels := maps.Keys(rep.Breakdown)
	slices.Sort(labels)
	for _, l := range labels {
		log.Infof("  %-20s %18.10f", l, rep.Breakdown[l])
	}
	log.Infof("  %-20s %18.10f a.u.", "total", rep.Energy)
	printOutputDelimiter(log)

	spin := []string{"alpha", "beta"}
	for s, exp := range rep.Orbitals {
		if len(rep.Orbitals) == 1 {
			log.Info("Orbital energies (doubly occupied):")
		} else {
			log.Infof("Orbital energies (%s):", spin[s])
		}
		for i, e := range exp.Energies {
			log.Infof("  %4d %16.8f %10.6f", i+1, e, exp.Occupations[i])
		}
		if ih, eh := exp.Homo(); ih >= 0 {
			log.Infof("  HOMO %d: %.8f", ih+1, eh)
		}
		if il, el := exp.Lumo(1); il >= 0 {
			log.Infof("  LUMO %d: %.8f", il+1, el)
		}
		log.Debugf("Density matrix:\n%s", FormatDense(rep.DMs[s].Dense()))
	}
	printOutputDelimiter(log)
}
