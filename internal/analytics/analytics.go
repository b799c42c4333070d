package analytics

import (
	"sort"
	"time"

	"gearcheck-backend/internal/domain"
	"gearcheck-backend/internal/logger"
)

// Granularity selects how trend buckets are keyed.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

// ParseGranularity validates a caller-supplied granularity string.
func ParseGranularity(s string) (Granularity, error) {
	switch Granularity(s) {
	case GranularityDay, GranularityWeek, GranularityMonth:
		return Granularity(s), nil
	case "":
		return GranularityDay, nil
	default:
		return "", domain.NewValidationError("unknown granularity %q", s)
	}
}

// BucketKey maps a timestamp to its period key. Day and month keys are the
// zero-padded calendar forms; week keys are the date of the week's Sunday.
// Zero-padding keeps plain string comparison equivalent to time order.
func BucketKey(t time.Time, g Granularity) string {
	switch g {
	case GranularityWeek:
		sunday := t.AddDate(0, 0, -int(t.Weekday()))
		return sunday.Format("2006-01-02")
	case GranularityMonth:
		return t.Format("2006-01")
	default:
		return t.Format("2006-01-02")
	}
}

// Row is one decoded assessment observation. Rows are derived from event log
// entries; malformed history never reaches this type.
type Row struct {
	Condition  domain.ConditionGrade
	Score      float64
	Penalty    float64
	UserID     int32
	ItemID     int32
	TemplateID int32
	At         time.Time
}

// RowsFromEventLog decodes assessment envelopes into analytics rows. Rows
// that fail to decode or carry an unknown grade are skipped and logged; one
// bad historical payload never fails a whole report.
func RowsFromEventLog(entries []domain.EventLogEntry) []Row {
	rows := make([]Row, 0, len(entries))
	for i := range entries {
		e := &entries[i]
		if e.EntityType != domain.EntityAssessment {
			continue
		}
		decoded, err := e.DecodePayload()
		if err != nil {
			logger.Warn("Skipping malformed event log payload", "entry_id", e.ID, "error", err)
			continue
		}
		p, ok := decoded.(*domain.AssessmentPayload)
		if !ok {
			logger.Warn("Skipping event log entry with unexpected payload shape", "entry_id", e.ID)
			continue
		}
		if !p.FinalCondition.Valid() {
			logger.Warn("Skipping event log entry with unknown condition grade",
				"entry_id", e.ID, "condition", string(p.FinalCondition))
			continue
		}
		rows = append(rows, Row{
			Condition:  p.FinalCondition,
			Score:      p.OverallScore,
			Penalty:    p.FinalPenalty,
			UserID:     p.UserID,
			ItemID:     p.ItemID,
			TemplateID: p.TemplateID,
			At:         e.CreatedAt,
		})
	}
	return rows
}

// GradeShare is one slice of the condition distribution.
type GradeShare struct {
	Condition  domain.ConditionGrade `json:"condition"`
	Count      int                   `json:"count"`
	Percentage float64               `json:"percentage"`
}

// Distribution counts rows per condition grade across the set. Grades with
// no rows are included with zero counts so consumers always see all five.
func Distribution(rows []Row) []GradeShare {
	counts := make(map[domain.ConditionGrade]int)
	for _, r := range rows {
		counts[r.Condition]++
	}

	total := len(rows)
	shares := make([]GradeShare, 0, 5)
	for _, grade := range domain.AllConditionGrades() {
		share := GradeShare{Condition: grade, Count: counts[grade]}
		if total > 0 {
			share.Percentage = float64(counts[grade]) / float64(total) * 100
		}
		shares = append(shares, share)
	}
	return shares
}

// TrendBucket is one period of the trend report.
type TrendBucket struct {
	Period      string                        `json:"period"`
	Count       int                           `json:"count"`
	GradeCounts map[domain.ConditionGrade]int `json:"grade_counts"`
	MeanScore   float64                       `json:"mean_score"`
}

// Trend groups rows into calendar buckets at the requested granularity.
// Buckets are sorted ascending by period key, and together they partition
// the input exactly: the bucket counts always sum to len(rows).
func Trend(rows []Row, g Granularity) []TrendBucket {
	byKey := make(map[string]*TrendBucket)
	scoreSums := make(map[string]float64)

	for _, r := range rows {
		key := BucketKey(r.At, g)
		b, ok := byKey[key]
		if !ok {
			b = &TrendBucket{Period: key, GradeCounts: make(map[domain.ConditionGrade]int)}
			byKey[key] = b
		}
		b.Count++
		b.GradeCounts[r.Condition]++
		scoreSums[key] += r.Score
	}

	buckets := make([]TrendBucket, 0, len(byKey))
	for key, b := range byKey {
		b.MeanScore = scoreSums[key] / float64(b.Count)
		buckets = append(buckets, *b)
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Period < buckets[j].Period })
	return buckets
}

// Summary carries the headline statistics of a filtered set. All fields are
// zero for an empty set, never NaN.
type Summary struct {
	TotalCount   int     `json:"total_count"`
	MeanScore    float64 `json:"mean_score"`
	TotalPenalty float64 `json:"total_penalty"`
	MeanPenalty  float64 `json:"mean_penalty"`
}

// Summarize reduces rows to the summary statistics.
func Summarize(rows []Row) Summary {
	s := Summary{TotalCount: len(rows)}
	if len(rows) == 0 {
		return s
	}
	var scoreSum float64
	for _, r := range rows {
		scoreSum += r.Score
		s.TotalPenalty += r.Penalty
	}
	s.MeanScore = scoreSum / float64(len(rows))
	s.MeanPenalty = s.TotalPenalty / float64(len(rows))
	return s
}

// Report is the full analytics block returned alongside assessment queries.
type Report struct {
	Granularity  Granularity   `json:"granularity"`
	Distribution []GradeShare  `json:"distribution"`
	Trend        []TrendBucket `json:"trend"`
	Summary      Summary       `json:"summary"`
}

// BuildReport runs the whole reduce pipeline over one row set.
func BuildReport(rows []Row, g Granularity) *Report {
	return &Report{
		Granularity:  g,
		Distribution: Distribution(rows),
		Trend:        Trend(rows, g),
		Summary:      Summarize(rows),
	}
}

// FilterRows applies the in-memory part of an assessment filter to decoded
// rows. Time filtering happens at the store; entity filters are re-applied
// here because payload fields are not indexed columns.
func FilterRows(rows []Row, f domain.AssessmentFilter) []Row {
	out := rows[:0:0]
	for _, r := range rows {
		if f.UserID != 0 && r.UserID != f.UserID {
			continue
		}
		if f.ItemID != 0 && r.ItemID != f.ItemID {
			continue
		}
		if f.TemplateID != 0 && r.TemplateID != f.TemplateID {
			continue
		}
		if f.Condition != "" && r.Condition != f.Condition {
			continue
		}
		out = append(out, r)
	}
	return out
}

func (g Granularity) String() string { return string(g) }
