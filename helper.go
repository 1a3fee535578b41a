// helper.go --  This file is part of goHF project.
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
	"bufio"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
)

func ReadFileLines(fname string) ([]string, error) {
	var result []string

	file, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		result = append(result, scanner.Text())
	}
	return result, scanner.Err()
}

// TxtFileFromDense writes the matrix as fixed-width text, one row per line.
func TxtFileFromDense(m mat.Matrix, fname string) error {
	var sb strings.Builder
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			fmt.Fprintf(&sb, "%14.8f", m.At(i, j))
		}
		sb.WriteString("\n")
	}
	return os.WriteFile(fname, []byte(sb.String()), 0644)
}

func FormatDense(m mat.Matrix) string {
	fa := mat.Formatted(m, mat.Prefix("    "), mat.Squeeze())
	return fmt.Sprintf("    %.8f", fa)
}

func printOutputDelimiter(log logrus.FieldLogger) {
	log.Info(strings.Repeat("-", 70))
}

func MyMemDebug(log logrus.FieldLogger) {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	log.WithFields(logrus.Fields{
		"alloc":       memStats.Alloc,
		"total_alloc": memStats.TotalAlloc,
		"heap_alloc":  memStats.HeapAlloc,
		"heap_sys":    memStats.HeapSys,
	}).Debug("memory")
}
