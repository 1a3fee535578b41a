// input.go --  This file is part of goHF project.
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
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"example.com/gohf/grid"
	"example.com/gohf/scf"
	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

var (
	ErrNoAtoms    = errors.New("no atoms found")
	ErrNoBlockEnd = errors.New("no end of block")
	ErrKeyword    = errors.New("bad keyword value")
)

// Input holds everything a calculation needs. TOML and YAML files map onto
// it directly; the atoms are given as "Symbol x y z" lines in both.
type Input struct {
	Atoms        string  `toml:"atoms" yaml:"atoms"`
	Basis        string  `toml:"basis" yaml:"basis"`
	Method       string  `toml:"method" yaml:"method"`
	Charge       int     `toml:"charge" yaml:"charge"`
	Multiplicity int     `toml:"multiplicity" yaml:"multiplicity"`
	Unrestricted bool    `toml:"unrestricted" yaml:"unrestricted"`
	Solver       string  `toml:"solver" yaml:"solver"`
	Threshold    float64 `toml:"threshold" yaml:"threshold"`
	MaxIter      int     `toml:"maxiter" yaml:"maxiter"`
	NVector      int     `toml:"nvector" yaml:"nvector"`
	Temperature  float64 `toml:"temperature" yaml:"temperature"` // Fermi smearing, K
	NProcs       int     `toml:"nprocs" yaml:"nprocs"`
	Grid         struct {
		NRadial int `toml:"nradial" yaml:"nradial"`
		NTheta  int `toml:"ntheta" yaml:"ntheta"`
	} `toml:"grid" yaml:"grid"`
	DumpDM string `toml:"dump_dm" yaml:"dump_dm"` // file for the final density matrix

	mol Molecule
}

func defaultInput() Input {
	var in Input
	in.Basis = "sto-3g"
	in.Method = "hf"
	in.Solver = "cdiis"
	in.Threshold = scf.DefaultThreshold
	in.MaxIter = scf.DefaultMaxIter
	in.NVector = scf.DefaultNVector
	cfg := grid.DefaultConfig()
	in.Grid.NRadial = cfg.NRadial
	in.Grid.NTheta = cfg.NTheta
	return in
}

// LoadInput reads an input file. The format follows the extension: .toml,
// .yaml/.yml or the block format for anything else.
func LoadInput(fname string) (Input, error) {
	in := defaultInput()
	switch strings.ToLower(filepath.Ext(fname)) {
	case ".toml":
		if _, err := toml.DecodeFile(fname, &in); err != nil {
			return in, fmt.Errorf("decode %s: %w", fname, err)
		}
	case ".yaml", ".yml":
		raw, err := os.ReadFile(fname)
		if err != nil {
			return in, err
		}
		if err := yaml.Unmarshal(raw, &in); err != nil {
			return in, fmt.Errorf("decode %s: %w", fname, err)
		}
	default:
		data, err := ReadFileLines(fname)
		if err != nil {
			return in, err
		}
		if err := processInput(data, &in); err != nil {
			return in, fmt.Errorf("%s: %w", fname, err)
		}
		return in, nil
	}
	if err := in.finish(strings.Split(in.Atoms, "\n")); err != nil {
		return in, fmt.Errorf("%s: %w", fname, err)
	}
	return in, nil
}

// finish builds the molecule from the atom lines.
func (in *Input) finish(atomLines []string) error {
	in.mol = Molecule{Charge: in.Charge, Multiplicity: in.Multiplicity}
	if err := in.mol.addAtoms(atomLines); err != nil {
		return err
	}
	if len(in.mol.Atoms) == 0 {
		return ErrNoAtoms
	}
	in.Method = strings.ToLower(in.Method)
	in.Solver = strings.ToLower(in.Solver)
	in.Basis = strings.ToLower(in.Basis)
	return nil
}

// processInput parses the block format:
//
//	Atoms
//	H 0.0 0.0 0.0
//	H 0.0 0.0 0.74
//	end
//	Basis
//	6-31g
//	end
//	Method lda
//	Solver ediis2
func processInput(data []string, in *Input) error {
	var atomLines []string
	for i := 0; i < len(data); i++ {
		words := strings.Fields(data[i])
		if len(words) == 0 || strings.HasPrefix(words[0], "#") {
			continue
		}
		key := strings.ToLower(words[0])
		switch key {
		case "atoms":
			end, err := findBlockEnd(i, data, "Atoms")
			if err != nil {
				return err
			}
			atomLines = data[i+1 : end]
			i = end
			continue
		case "basis":
			end, err := findBlockEnd(i, data, "Basis")
			if err != nil {
				return err
			}
			if end > i+1 {
				in.Basis = strings.TrimSpace(data[i+1])
			}
			i = end
			continue
		case "unrestricted":
			in.Unrestricted = true
			continue
		}
		if len(words) < 2 {
			return fmt.Errorf("%s: %w: missing value", words[0], ErrKeyword)
		}
		var err error
		switch key {
		case "method":
			in.Method = words[1]
		case "solver":
			in.Solver = words[1]
		case "dumpdm":
			in.DumpDM = words[1]
		case "charge":
			in.Charge, err = strconv.Atoi(words[1])
		case "multiplicity":
			in.Multiplicity, err = strconv.Atoi(words[1])
		case "maxiter":
			in.MaxIter, err = strconv.Atoi(words[1])
		case "nvector":
			in.NVector, err = strconv.Atoi(words[1])
		case "nprocs":
			in.NProcs, err = strconv.Atoi(words[1])
		case "threshold":
			in.Threshold, err = strconv.ParseFloat(words[1], 64)
		case "temperature":
			in.Temperature, err = strconv.ParseFloat(words[1], 64)
		case "grid":
			in.Grid.NRadial, err = strconv.Atoi(words[1])
			if err == nil && len(words) > 2 {
				in.Grid.NTheta, err = strconv.Atoi(words[2])
			}
		default:
			return fmt.Errorf("%s: %w: unknown keyword", words[0], ErrKeyword)
		}
		if err != nil {
			return fmt.Errorf("%s: %w: %v", words[0], ErrKeyword, err)
		}
	}
	return in.finish(atomLines)
}

func findBlockEnd(n int, data []string, bname string) (int, error) {
	for i := n + 1; i < len(data); i++ {
		words := strings.Fields(data[i])
		if len(words) > 0 && strings.ToLower(words[0]) == "end" {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w %s", ErrNoBlockEnd, bname)
}
