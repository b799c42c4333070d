package assessment

import (
	"testing"

	"gearcheck-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestClassify(t *testing.T) {
	th := domain.ConditionThresholds{Excellent: 90, Good: 75, Fair: 60, Poor: 40}

	tests := []struct {
		score    float64
		expected domain.ConditionGrade
	}{
		{100, domain.ConditionExcellent},
		{90, domain.ConditionExcellent}, // boundary is inclusive
		{89.99, domain.ConditionGood},
		{86.67, domain.ConditionGood},
		{75, domain.ConditionGood},
		{74.5, domain.ConditionFair},
		{60, domain.ConditionFair},
		{59, domain.ConditionPoor},
		{40, domain.ConditionPoor},
		{39.99, domain.ConditionDamaged},
		{0, domain.ConditionDamaged},
		{-5, domain.ConditionDamaged},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Classify(tt.score, th), "score %v", tt.score)
	}
}

func TestClassify_MonotonicProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		// Build strictly decreasing thresholds.
		poor := rapid.Float64Range(1, 40).Draw(t, "poor")
		fair := poor + rapid.Float64Range(1, 20).Draw(t, "fairGap")
		good := fair + rapid.Float64Range(1, 20).Draw(t, "goodGap")
		excellent := good + rapid.Float64Range(1, 20).Draw(t, "excellentGap")
		th := domain.ConditionThresholds{Excellent: excellent, Good: good, Fair: fair, Poor: poor}

		a := rapid.Float64Range(-10, 110).Draw(t, "scoreA")
		b := rapid.Float64Range(-10, 110).Draw(t, "scoreB")
		if a < b {
			a, b = b, a
		}

		gradeA, gradeB := Classify(a, th), Classify(b, th)
		if !gradeA.Valid() || !gradeB.Valid() {
			t.Fatalf("classifier not total: %q / %q", gradeA, gradeB)
		}
		if gradeA.Rank() < gradeB.Rank() {
			t.Fatalf("not monotonic: score %v -> %s below score %v -> %s", a, gradeA, b, gradeB)
		}
	})
}
