// main.go --  This file is part of goHF project.
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
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	debug bool
	quiet bool
)

// outputName replaces the extension of the input file with ".out".
func outputName(inpFname string) string {
	return strings.TrimSuffix(inpFname, filepath.Ext(inpFname)) + ".out"
}

// initLog writes to stdout and to the output file next to the input.
func initLog(inpFname string) (*logrus.Logger, io.Closer, error) {
	file, err := os.OpenFile(outputName(inpFname), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}
	log := logrus.New()
	log.SetOutput(io.MultiWriter(os.Stdout, file))
	if quiet {
		log.SetOutput(file)
	}
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
	if debug {
		log.SetLevel(logrus.DebugLevel)
	}
	return log, file, nil
}

// prepare loads the input file and echoes it to the log.
func prepare(log logrus.FieldLogger, inpFname string) (*Input, error) {
	log.Info("Starting goHF...")
	log.Warn("This is an experimental program on an early stage of development.")
	log.Info("Input file content:")
	printOutputDelimiter(log)
	inpData, err := ReadFileLines(inpFname)
	if err != nil {
		return nil, fmt.Errorf("cannot read input file: %w", err)
	}
	for _, line := range inpData {
		log.Info(line)
	}
	printOutputDelimiter(log)

	in, err := LoadInput(inpFname)
	if err != nil {
		return nil, err
	}
	if in.NProcs > 0 {
		runtime.GOMAXPROCS(in.NProcs)
		log.Infof("Number of threads set to %d.", in.NProcs)
	}
	log.WithFields(logrus.Fields{
		"atoms":  len(in.mol.Atoms),
		"basis":  in.Basis,
		"method": in.Method,
		"solver": in.Solver,
	}).Info("Input parsed")
	return &in, nil
}

func runCommand(inpFname string) error {
	log, closer, err := initLog(inpFname)
	if err != nil {
		return err
	}
	defer closer.Close()

	in, err := prepare(log, inpFname)
	if err != nil {
		log.Error(err)
		return err
	}
	rep, err := runCalc(in, &in.mol, log)
	if err != nil {
		log.Error(err)
		return err
	}
	printReport(rep, log)
	if in.DumpDM != "" {
		for s, dm := range rep.DMs {
			fname := in.DumpDM
			if len(rep.DMs) > 1 {
				fname = fmt.Sprintf("%s.%d", in.DumpDM, s)
			}
			if err := TxtFileFromDense(dm.Dense(), fname); err != nil {
				log.Error(err)
				return err
			}
		}
	}
	fmt.Printf("Final total energy = %.10f a.u.\n", rep.Energy)
	MyMemDebug(log)
	log.Info("Exiting goHF...")
	return nil
}

// ScanPoint is one geometry of a scan.
type ScanPoint struct {
	Z      float64 // angstrom
	Energy float64
	Report *Report
}

// scan moves the z coordinate of atom (1-based) over nsteps values and runs
// the calculations concurrently.
func scan(in *Input, atom int, start, step float64, nsteps int, log logrus.FieldLogger) ([]ScanPoint, error) {
	if atom < 1 || atom > len(in.mol.Atoms) {
		return nil, fmt.Errorf("atom %d out of range 1..%d", atom, len(in.mol.Atoms))
	}
	points := make([]ScanPoint, nsteps)
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := 0; i < nsteps; i++ {
		i := i
		g.Go(func() error {
			mol := in.mol.clone()
			z := start + float64(i)*step
			mol.Atoms[atom-1].Coords[2] = z
			rep, err := runCalc(in, &mol, log.WithField("point", i))
			if err != nil {
				return fmt.Errorf("point %d (z = %.4f): %w", i, z, err)
			}
			points[i] = ScanPoint{Z: z, Energy: rep.Energy, Report: rep}
			return nil
		})
	}
	return points, g.Wait()
}

func scanCommand(inpFname string, atom int, start, step float64, nsteps int) error {
	log, closer, err := initLog(inpFname)
	if err != nil {
		return err
	}
	defer closer.Close()

	in, err := prepare(log, inpFname)
	if err != nil {
		log.Error(err)
		return err
	}
	points, err := scan(in, atom, start, step, nsteps, log)
	if err != nil {
		log.Error(err)
		return err
	}
	printOutputDelimiter(log)
	log.Infof("%10s %20s %12s", "z", "energy", "state")
	for _, p := range points {
		log.Infof("%10.4f %20.10f %12s", p.Z, p.Energy, p.Report.State)
	}
	printOutputDelimiter(log)
	return nil
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "gohf",
		Short:         "Hartree-Fock and Kohn-Sham DFT for small molecules",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "log debug output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "log to the output file only")

	runCmd := &cobra.Command{
		Use:   "run <input>",
		Short: "Run a single point calculation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommand(args[0])
		},
	}

	var (
		atom   int
		start  float64
		step   float64
		nsteps int
	)
	scanCmd := &cobra.Command{
		Use:   "scan <input>",
		Short: "Scan the z coordinate of one atom",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return scanCommand(args[0], atom, start, step, nsteps)
		},
	}
	scanCmd.Flags().IntVar(&atom, "atom", 2, "atom to move (1-based)")
	scanCmd.Flags().Float64Var(&start, "start", 0.5, "first z coordinate, angstrom")
	scanCmd.Flags().Float64Var(&step, "step", 0.1, "z increment, angstrom")
	scanCmd.Flags().IntVar(&nsteps, "nsteps", 10, "number of points")

	rootCmd.AddCommand(runCmd, scanCmd)
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "gohf:", err)
		os.Exit(1)
	}
}
