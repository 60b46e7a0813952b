// Package export renders evaluations and picks as CSV and JSON for
// spreadsheets and downstream consumers.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/yourusername/hot-streak/internal/models"
)

// EvaluationExport is the JSON envelope for one player's evaluation.
type EvaluationExport struct {
	Player     models.Player      `json:"player"`
	Season     int                `json:"season"`
	Evaluation *models.Evaluation `json:"evaluation"`
	ExportedAt time.Time          `json:"export_timestamp"`
}

// WriteEvaluationJSON writes one player's evaluation as indented JSON.
func WriteEvaluationJSON(w io.Writer, export EvaluationExport) error {
	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal evaluation: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// WriteEvaluationCSV writes one row per (stat, threshold) of an evaluation.
func WriteEvaluationCSV(w io.Writer, playerName string, evaluation *models.Evaluation) error {
	writer := csv.NewWriter(w)

	header := []string{
		"player", "stat", "threshold", "frequency", "weighted_frequency",
		"inverse_probability", "weighted_inverse_probability",
		"n_games", "n_exceeds", "ci_lower", "ci_upper", "p_value",
		"composite_regression_probability", "final_sustainability_score",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, stat := range sortedStats(evaluation.Results) {
		statResult := evaluation.Results[stat]
		if statResult.Outcome != models.StatOK {
			continue
		}
		for _, threshold := range sortedThresholds(statResult.Thresholds) {
			result := statResult.Thresholds[threshold]
			row := []string{
				playerName,
				string(stat),
				formatFloat(threshold),
				formatFloat(result.Frequency),
				formatFloat(result.WeightedFrequency),
				formatFloat(result.InverseProbability),
				formatFloat(result.WeightedInverseProbability),
				strconv.Itoa(result.NGames),
				strconv.Itoa(result.NExceeds),
				formatFloat(result.CILower),
				formatFloat(result.CIUpper),
				formatFloat(result.PValue),
				formatFloat(result.CompositeRegressionProbability),
				formatFloat(result.FinalSustainabilityScore),
			}
			if err := writer.Write(row); err != nil {
				return fmt.Errorf("failed to write row: %w", err)
			}
		}
	}

	writer.Flush()
	return writer.Error()
}

// WritePicksCSV writes generated picks as CSV, one pick per row.
func WritePicksCSV(w io.Writer, picks []models.Pick) error {
	writer := csv.NewWriter(w)

	header := []string{
		"game_date", "player", "team", "stat", "threshold",
		"hit_probability", "sustainability", "confidence", "fair_odds",
		"preset", "career_phase",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, pick := range picks {
		row := []string{
			pick.GameDate.Format("2006-01-02"),
			pick.PlayerName,
			pick.Team,
			string(pick.Stat),
			formatFloat(pick.Threshold),
			formatFloat(pick.HitProbability),
			formatFloat(pick.Sustainability),
			formatFloat(pick.Confidence),
			pick.FairOdds.String(),
			pick.Preset,
			string(pick.Phase),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WritePicksJSON writes generated picks as indented JSON.
func WritePicksJSON(w io.Writer, picks []models.Pick) error {
	data, err := json.MarshalIndent(picks, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal picks: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// ToFile writes an export to disk, creating parent directories as needed.
func ToFile(outputPath string, write func(io.Writer) error) error {
	if outputPath == "" {
		return fmt.Errorf("output path is required")
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func sortedStats(results map[models.Stat]models.CompositeStatResult) []models.Stat {
	stats := make([]models.Stat, 0, len(results))
	for stat := range results {
		stats = append(stats, stat)
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i] < stats[j] })
	return stats
}

func sortedThresholds(thresholds map[float64]models.CompositeResult) []float64 {
	out := make([]float64, 0, len(thresholds))
	for threshold := range thresholds {
		out = append(out, threshold)
	}
	sort.Float64s(out)
	return out
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
