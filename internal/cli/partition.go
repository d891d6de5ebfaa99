package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	errs "github.com/matzehuels/gridfit/pkg/errors"
	"github.com/matzehuels/gridfit/pkg/partition"
)

// partitionCommand runs the linear partitioner directly.
func (c *CLI) partitionCommand() *cobra.Command {
	var (
		k      int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "partition [weights...]",
		Short: "Split a sequence into k contiguous groups with balanced sums",
		Long: `Split a sequence into k contiguous groups with balanced sums.

Runs the same optimal linear partition used to assign elements to rows: the
largest group sum is as small as possible and order is preserved. Weights
may be given as separate arguments or comma-separated.`,
		Example: `  gridfit partition 1 2 3 4 5 6 7 8 9 -k 3
  gridfit partition 1.78,0.67,1.5,1 -k 2 --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			weights, err := parseWeights(args)
			if err != nil {
				return err
			}
			ranges := partition.Ranges(weights, k)
			if asJSON {
				return printPartitionJSON(weights, ranges)
			}
			printPartitionTable(weights, ranges)
			return nil
		},
	}

	cmd.Flags().IntVarP(&k, "groups", "k", 2, "number of groups")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")

	return cmd
}

// parseWeights parses arguments that may each hold several comma-separated
// numbers.
func parseWeights(args []string) ([]float64, error) {
	var out []float64
	for _, arg := range args {
		for _, field := range strings.Split(arg, ",") {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, errs.New(errs.ErrCodeInvalidInput, "invalid weight %q", field)
			}
			out = append(out, v)
		}
	}
	return out, nil
}

func groupWeights(weights []float64, ranges []partition.Range) [][]float64 {
	groups := make([][]float64, len(ranges))
	for i, r := range ranges {
		groups[i] = weights[r.Start:r.End]
	}
	return groups
}

func printPartitionJSON(weights []float64, ranges []partition.Range) error {
	groups := groupWeights(weights, ranges)
	data, err := json.MarshalIndent(struct {
		Groups [][]float64 `json:"groups"`
		MaxSum float64     `json:"max_sum"`
	}{groups, partition.MaxSum(groups)}, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, string(data))
	return err
}

// partitionRows builds the table rows: group number, index range, weights
// and group sum.
func partitionRows(weights []float64, ranges []partition.Range) [][]string {
	rows := make([][]string, len(ranges))
	for i, r := range ranges {
		vals := make([]string, 0, r.Len())
		for _, w := range weights[r.Start:r.End] {
			vals = append(vals, strconv.FormatFloat(w, 'g', 4, 64))
		}
		rows[i] = []string{
			strconv.Itoa(i + 1),
			fmt.Sprintf("%d–%d", r.Start, r.End-1),
			strings.Join(vals, " "),
			strconv.FormatFloat(partition.Sum(weights[r.Start:r.End]), 'g', 6, 64),
		}
	}
	return rows
}

func printPartitionTable(weights []float64, ranges []partition.Range) {
	if len(ranges) == 0 {
		printWarning("No groups: k must be positive")
		return
	}
	groups := groupWeights(weights, ranges)
	maxSum := partition.MaxSum(groups)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Range", "Weights", "Sum").
		Rows(partitionRows(weights, ranges)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return base.Inherit(styleHeader)
			}
			if col == 3 && row < len(groups) && partition.Sum(groups[row]) == maxSum {
				return base.Foreground(colorCyan).Bold(true)
			}
			return base.Foreground(colorWhite)
		})

	fmt.Fprintln(stdout, t.Render())
	printKeyValue("groups", strconv.Itoa(len(ranges)))
	printKeyValue("max sum", StyleNumber.Render(strconv.FormatFloat(maxSum, 'g', 6, 64)))
}
