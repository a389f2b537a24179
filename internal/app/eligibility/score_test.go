package eligibility

import (
	"testing"

	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/app/models"
)

func TestScoreFormula(t *testing.T) {
	p := DefaultScoringPolicy()

	cases := []struct {
		name     string
		gpa      float64
		income   models.IncomeBracket
		override float64
		want     float64
	}{
		{"low_income", 88, models.IncomeLessThan1500, 0, 81.6},
		{"high_income_with_override", 100, models.IncomeMoreThan1500, 5, 85.0},
		{"unknown_bracket_no_bonus", 90, "", 0, 63.0},
		{"rounding_half_up", 90.07, models.IncomeMoreThan1500, 0, 73.05}, // 73.049 rounds to 73.05
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := p.Score(tc.gpa, tc.income, tc.override)
			if got != tc.want {
				t.Fatalf("Score(%v, %q, %v) = %v, want %v", tc.gpa, tc.income, tc.override, got, tc.want)
			}
		})
	}
}

func TestScoreMonotonicity(t *testing.T) {
	p := DefaultScoringPolicy()

	prev := p.Score(60, models.IncomeLessThan1500, 0)
	for gpa := 61.0; gpa <= 100; gpa++ {
		cur := p.Score(gpa, models.IncomeLessThan1500, 0)
		if cur < prev {
			t.Fatalf("score decreased from %v to %v at gpa %v", prev, cur, gpa)
		}
		prev = cur
	}

	if p.Score(90, models.IncomeMoreThan1500, 3) < p.Score(90, models.IncomeMoreThan1500, 2) {
		t.Fatal("score must be non-decreasing in the admin override")
	}
}

func TestScoreOnUpdateUsesVerifiedValues(t *testing.T) {
	p := DefaultScoringPolicy()
	verified := 95.0

	app := &models.Application{
		GPA:           88,
		VerifiedGPA:   &verified,
		AdminPoints:   2,
		IncomeBracket: models.IncomeLessThan1500,
	}

	t.Run("eligible_uses_verified_gpa_and_points", func(t *testing.T) {
		got := p.ScoreOnUpdate(app, models.StatusEligible)
		if want := p.Score(95, models.IncomeLessThan1500, 2); got != want {
			t.Fatalf("got %v, want %v", got, want)
		}
	})

	t.Run("non_eligible_uses_applicant_gpa", func(t *testing.T) {
		got := p.ScoreOnUpdate(app, models.StatusReview)
		if want := p.Score(88, models.IncomeLessThan1500, 0); got != want {
			t.Fatalf("got %v, want %v", got, want)
		}
	})

	t.Run("eligible_without_verified_gpa_keeps_applicant_gpa", func(t *testing.T) {
		unverified := &models.Application{GPA: 88, AdminPoints: 1, IncomeBracket: models.IncomeLessThan1500}
		got := p.ScoreOnUpdate(unverified, models.StatusEligible)
		if want := p.Score(88, models.IncomeLessThan1500, 1); got != want {
			t.Fatalf("got %v, want %v", got, want)
		}
	})
}

func TestScoreOnCreateIgnoresAdminFields(t *testing.T) {
	p := DefaultScoringPolicy()
	verified := 99.0
	app := &models.Application{
		GPA:           80,
		VerifiedGPA:   &verified,
		AdminPoints:   10,
		IncomeBracket: models.IncomeMoreThan1500,
	}

	if got, want := p.ScoreOnCreate(app), p.Score(80, models.IncomeMoreThan1500, 0); got != want {
		t.Fatalf("ScoreOnCreate = %v, want %v", got, want)
	}
}
