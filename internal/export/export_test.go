package export

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yourusername/hot-streak/internal/models"
)

func sampleEvaluation() *models.Evaluation {
	return &models.Evaluation{
		Phase:  models.PhasePeak,
		NGames: 20,
		Results: map[models.Stat]models.CompositeStatResult{
			models.StatPoints: {
				Stat:    models.StatPoints,
				Outcome: models.StatOK,
				Thresholds: map[float64]models.CompositeResult{
					25: {
						ProbabilityEstimate: models.ProbabilityEstimate{
							Threshold:                  25,
							Frequency:                  0.7,
							WeightedFrequency:          0.72,
							InverseProbability:         0.3,
							WeightedInverseProbability: 0.28,
							NGames:                     20,
							NExceeds:                   14,
							CILower:                    0.48,
							CIUpper:                    0.85,
							PValue:                     0.11,
						},
						CompositeRegressionProbability: 0.31,
						FinalSustainabilityScore:       0.69,
					},
					30: {
						ProbabilityEstimate: models.ProbabilityEstimate{
							Threshold:         30,
							Frequency:         0.4,
							WeightedFrequency: 0.38,
							NGames:            20,
							NExceeds:          8,
						},
						CompositeRegressionProbability: 0.6,
						FinalSustainabilityScore:       0.4,
					},
				},
			},
			models.StatRebounds: {
				Stat:    models.StatRebounds,
				Outcome: models.StatNotAvailable,
			},
		},
	}
}

func TestWriteEvaluationCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteEvaluationCSV(&buf, "Stephen Curry", sampleEvaluation()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	// Header plus two points thresholds; unavailable rebounds stay out.
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "player,stat,threshold") {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if !strings.HasPrefix(lines[1], "Stephen Curry,pts,25,") {
		t.Errorf("expected threshold 25 first, got: %s", lines[1])
	}
	if !strings.HasPrefix(lines[2], "Stephen Curry,pts,30,") {
		t.Errorf("expected threshold 30 second, got: %s", lines[2])
	}
	if !strings.Contains(lines[1], "0.72") {
		t.Errorf("weighted frequency missing from row: %s", lines[1])
	}
}

func TestWriteEvaluationJSON(t *testing.T) {
	var buf bytes.Buffer
	export := EvaluationExport{
		Player:     models.Player{ID: 115, Name: "Stephen Curry", Team: "GSW"},
		Season:     2024,
		Evaluation: sampleEvaluation(),
		ExportedAt: time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := WriteEvaluationJSON(&buf, export); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded EvaluationExport
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Player.Name != "Stephen Curry" || decoded.Season != 2024 {
		t.Errorf("round trip lost fields: %+v", decoded.Player)
	}
	if decoded.Evaluation.Phase != models.PhasePeak {
		t.Errorf("expected peak phase, got %s", decoded.Evaluation.Phase)
	}
}

func TestWritePicksCSV(t *testing.T) {
	picks := []models.Pick{
		{
			PlayerName:     "Stephen Curry",
			Team:           "GSW",
			Stat:           models.StatPoints,
			Threshold:      25,
			HitProbability: 0.81,
			Sustainability: 0.7,
			Confidence:     0.62,
			FairOdds:       decimal.NewFromFloat(1.23),
			Preset:         "default",
			Phase:          models.PhasePeak,
			GameDate:       time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	if err := WritePicksCSV(&buf, picks); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "2025-02-01,Stephen Curry,GSW,pts,25,0.81,0.7,0.62,1.23,default,peak") {
		t.Errorf("unexpected pick row:\n%s", out)
	}
}

func TestWritePicksJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePicksJSON(&buf, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "null" {
		t.Errorf("expected null for empty picks, got %q", buf.String())
	}
}

func TestToFileRequiresPath(t *testing.T) {
	err := ToFile("", func(w io.Writer) error { return nil })
	if err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestToFileWritesContent(t *testing.T) {
	path := t.TempDir() + "/nested/picks.csv"
	err := ToFile(path, func(w io.Writer) error {
		_, err := w.Write([]byte("hello"))
		return err
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read back: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("unexpected content %q", data)
	}
}
