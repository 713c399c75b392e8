package simulation

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Report formats
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatCSV  = "csv"
)

// ReportSettings echoes the run parameters in an exported report.
type ReportSettings struct {
	Multiplier float64 `json:"multiplier" yaml:"multiplier"`
	TrialCount int     `json:"trial_count" yaml:"trial_count"`
	Stake      float64 `json:"stake" yaml:"stake"`
	RankBy     RankBy  `json:"rank_by" yaml:"rank_by"`
}

// ReportDocument is the exported form of a ranking.
type ReportDocument struct {
	RunID             string             `json:"run_id" yaml:"run_id"`
	GeneratedAt       time.Time          `json:"generated_at" yaml:"generated_at"`
	Settings          ReportSettings     `json:"settings" yaml:"settings"`
	TotalCombinations int                `json:"total_combinations" yaml:"total_combinations"`
	Summary           RankingSummary     `json:"summary" yaml:"summary"`
	Results           []EvaluationResult `json:"results" yaml:"results"`
}

// NewReportDocument builds an exportable document for a ranking.
func NewReportDocument(runID string, ranking Ranking, cfg SimulationConfig) ReportDocument {
	return ReportDocument{
		RunID:       runID,
		GeneratedAt: time.Now().UTC(),
		Settings: ReportSettings{
			Multiplier: cfg.Multiplier,
			TrialCount: cfg.TrialCount,
			Stake:      cfg.Stake,
			RankBy:     ranking.RankBy,
		},
		TotalCombinations: ranking.TotalCombinations,
		Summary:           ranking.Summary(),
		Results:           ranking.Results,
	}
}

// GenerateSingleReport formats one evaluation for terminal output
func GenerateSingleReport(result EvaluationResult, cfg SimulationConfig) string {
	var builder strings.Builder
	builder.WriteString("Parlay Simulation Report\n")
	builder.WriteString("========================\n")
	builder.WriteString("Legs:\n")
	for i, leg := range result.Combination {
		builder.WriteString(fmt.Sprintf("  %d. %s: %.2f%%\n", i+1, leg.Outcome.Name, leg.Outcome.Probability*100))
	}
	builder.WriteString(fmt.Sprintf("Multiplier: %gx\n", cfg.Multiplier))
	builder.WriteString(fmt.Sprintf("Simulations: %d\n", cfg.TrialCount))
	writeResultBody(&builder, result)
	builder.WriteString(evVerdict(result.SimulatedEVPerUnitStake))
	return builder.String()
}

// GenerateConsoleReport formats a full ranking for terminal output
func GenerateConsoleReport(ranking Ranking, cfg SimulationConfig) string {
	var builder strings.Builder
	builder.WriteString("All Parlay Combinations\n")
	builder.WriteString("=======================\n")
	builder.WriteString(fmt.Sprintf("Multiplier: %gx\n", cfg.Multiplier))
	builder.WriteString(fmt.Sprintf("Simulations per Combination: %d\n", cfg.TrialCount))
	builder.WriteString(fmt.Sprintf("Bet Amount per Simulation: $%.2f\n", cfg.Stake))
	builder.WriteString(fmt.Sprintf("Total Combinations: %d\n", ranking.TotalCombinations))
	builder.WriteString(fmt.Sprintf("Ranked By: %s EV\n", ranking.RankBy))

	for idx, result := range ranking.Results {
		builder.WriteString(strings.Repeat("=", 60) + "\n")
		builder.WriteString(fmt.Sprintf("#%d: %s\n", idx+1, result.Combination.Label()))
		builder.WriteString(strings.Repeat("=", 60) + "\n")
		probs := make([]string, len(result.Combination))
		for i, p := range result.Combination.Probabilities() {
			probs[i] = fmt.Sprintf("%.2f%%", p*100)
		}
		builder.WriteString(fmt.Sprintf("  Probabilities: %s\n", strings.Join(probs, ", ")))
		writeResultBody(&builder, result)
	}

	if best, ok := ranking.Best(); ok {
		builder.WriteString(strings.Repeat("-", 60) + "\n")
		builder.WriteString(fmt.Sprintf("Best:  %s (EV %.4f)\n", best.Combination.Label(), ranking.RankBy.EV(best)))
	}
	if worst, ok := ranking.Worst(); ok {
		builder.WriteString(fmt.Sprintf("Worst: %s (EV %.4f)\n", worst.Combination.Label(), ranking.RankBy.EV(worst)))
	}
	return builder.String()
}

func writeResultBody(builder *strings.Builder, result EvaluationResult) {
	builder.WriteString(fmt.Sprintf("  Theoretical Chance: %.4f%%\n", result.TheoreticalWinProbability*100))
	builder.WriteString(fmt.Sprintf("  Simulated Wins: %d\n", result.SimulatedWins))
	builder.WriteString(fmt.Sprintf("  Simulated Losses: %d\n", result.SimulatedLosses))
	builder.WriteString(fmt.Sprintf("  Simulated Win Rate: %.4f%% (%.0f%% CI %.4f%% - %.4f%%)\n",
		result.SimulatedWinRate*100,
		result.WinRateInterval.Level*100,
		result.WinRateInterval.Lower*100,
		result.WinRateInterval.Upper*100,
	))
	builder.WriteString(fmt.Sprintf("  EV per $1 bet (simulated): $%.4f\n", result.SimulatedEVPerUnitStake))
	builder.WriteString(fmt.Sprintf("  EV per $1 bet (theoretical): $%.4f\n", result.TheoreticalEVPerUnitStake))
	builder.WriteString("  Money Conclusion:\n")
	builder.WriteString(fmt.Sprintf("    Money Won (Wins):    $%.2f\n", result.MoneyWon))
	builder.WriteString(fmt.Sprintf("    Money Lost (Losses): $%.2f\n", result.MoneyLost))
	if result.NetProfit >= 0 {
		builder.WriteString(fmt.Sprintf("    NET PROFIT:          $%.2f\n", result.NetProfit))
	} else {
		builder.WriteString(fmt.Sprintf("    NET LOSS:            $%.2f\n", result.NetProfit))
	}
}

func evVerdict(ev float64) string {
	if ev < 0 {
		return fmt.Sprintf("This is a NEGATIVE EV bet (expected loss of $%.4f per $1 bet)\n", -ev)
	}
	return fmt.Sprintf("This is a POSITIVE EV bet (expected gain of $%.4f per $1 bet)\n", ev)
}

// Export writes the document in the given format
func Export(doc ReportDocument, format, outputPath string) error {
	switch format {
	case FormatJSON:
		return ExportJSON(doc, outputPath)
	case FormatYAML:
		return ExportYAML(doc, outputPath)
	case FormatCSV:
		return ExportCSV(doc, outputPath)
	default:
		return fmt.Errorf("unsupported report format %q", format)
	}
}

// ExportJSON writes the document as indented JSON
func ExportJSON(doc ReportDocument, outputPath string) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	return writeReport(outputPath, data)
}

// ExportYAML writes the document as YAML
func ExportYAML(doc ReportDocument, outputPath string) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	return writeReport(outputPath, data)
}

// ExportCSV writes one row per ranked combination
func ExportCSV(doc ReportDocument, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"rank", "combination", "simulated_wins", "simulated_losses", "simulated_win_rate",
		"theoretical_win_probability", "simulated_ev", "theoretical_ev",
		"money_won", "money_lost", "net_profit",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for i, r := range doc.Results {
		row := []string{
			strconv.Itoa(i + 1),
			r.Combination.Label(),
			strconv.Itoa(r.SimulatedWins),
			strconv.Itoa(r.SimulatedLosses),
			formatFloat(r.SimulatedWinRate),
			formatFloat(r.TheoreticalWinProbability),
			formatFloat(r.SimulatedEVPerUnitStake),
			formatFloat(r.TheoreticalEVPerUnitStake),
			strconv.FormatFloat(r.MoneyWon, 'f', 2, 64),
			strconv.FormatFloat(r.MoneyLost, 'f', 2, 64),
			strconv.FormatFloat(r.NetProfit, 'f', 2, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

func writeReport(outputPath string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(outputPath, data, 0o644)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
