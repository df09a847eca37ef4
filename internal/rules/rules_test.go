package rules

import (
	"reflect"
	"testing"
)

func TestClassifyCycle_NormalInsideRanges(t *testing.T) {
	for _, length := range []int{21, 28, 35, 45} {
		for _, duration := range []int{3, 5, 7} {
			result := ClassifyCycle(Observation{
				CycleLength:   length,
				CycleDuration: duration,
				Symptoms:      []string{"mild cramps"},
			})
			if result.Status != StatusNormal {
				t.Errorf("length=%d duration=%d: expected Normal, got %s (%v)",
					length, duration, result.Status, result.Abnormalities)
			}
			if len(result.Abnormalities) != 0 {
				t.Errorf("length=%d duration=%d: expected no abnormalities, got %v",
					length, duration, result.Abnormalities)
			}
			if result.Recommendation != RecommendationNone {
				t.Errorf("unexpected recommendation: %q", result.Recommendation)
			}
		}
	}
}

func TestClassifyCycle_Flags(t *testing.T) {
	tests := []struct {
		name string
		obs  Observation
		want []string
	}{
		{
			name: "short cycle",
			obs:  Observation{CycleLength: 20, CycleDuration: 5},
			want: []string{FlagPolymenorrhea},
		},
		{
			name: "long cycle",
			obs:  Observation{CycleLength: 46, CycleDuration: 5},
			want: []string{FlagOligomenorrhea},
		},
		{
			name: "short duration",
			obs:  Observation{CycleLength: 28, CycleDuration: 2},
			want: []string{FlagAbnormalDuration},
		},
		{
			name: "long duration",
			obs:  Observation{CycleLength: 28, CycleDuration: 10},
			want: []string{FlagAbnormalDuration},
		},
		{
			name: "missed periods above threshold",
			obs:  Observation{CycleLength: 28, CycleDuration: 5, MissedPeriods: 4},
			want: []string{FlagAmenorrhea},
		},
		{
			name: "missed periods at threshold stays normal",
			obs:  Observation{CycleLength: 28, CycleDuration: 5, MissedPeriods: 3},
			want: []string{},
		},
		{
			name: "heavy bleeding with long duration",
			obs: Observation{
				CycleLength:   28,
				CycleDuration: 8,
				Symptoms:      []string{"heavy bleeding"},
			},
			want: []string{FlagAbnormalDuration, FlagMenorrhagia, FlagConcerningSymptoms},
		},
		{
			name: "heavy bleeding with normal duration is concerning only",
			obs: Observation{
				CycleLength:   28,
				CycleDuration: 5,
				Symptoms:      []string{"heavy bleeding"},
			},
			want: []string{FlagConcerningSymptoms},
		},
		{
			name: "concerning symptom alone",
			obs: Observation{
				CycleLength:   28,
				CycleDuration: 5,
				Symptoms:      []string{"severe pain"},
			},
			want: []string{FlagConcerningSymptoms},
		},
		{
			name: "symptom matching ignores case and whitespace",
			obs: Observation{
				CycleLength:   28,
				CycleDuration: 5,
				Symptoms:      []string{"  Severe Pain "},
			},
			want: []string{FlagConcerningSymptoms},
		},
		{
			name: "every rule at once",
			obs: Observation{
				CycleLength:   46,
				CycleDuration: 10,
				Symptoms:      []string{"heavy bleeding", "severe pain"},
				MissedPeriods: 5,
			},
			want: []string{
				FlagOligomenorrhea, FlagAbnormalDuration, FlagAmenorrhea,
				FlagMenorrhagia, FlagConcerningSymptoms,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ClassifyCycle(tt.obs)
			if !reflect.DeepEqual(result.Abnormalities, tt.want) {
				t.Errorf("abnormalities = %v, want %v", result.Abnormalities, tt.want)
			}
			if len(tt.want) == 0 {
				if result.Status != StatusNormal {
					t.Errorf("status = %s, want %s", result.Status, StatusNormal)
				}
			} else {
				if result.Status != StatusAbnormal {
					t.Errorf("status = %s, want %s", result.Status, StatusAbnormal)
				}
				if result.Recommendation != RecommendationConsult {
					t.Errorf("recommendation = %q, want %q", result.Recommendation, RecommendationConsult)
				}
			}
		})
	}
}

func TestClassifyCycle_BoundariesAreNormal(t *testing.T) {
	boundaries := []Observation{
		{CycleLength: 21, CycleDuration: 5},
		{CycleLength: 45, CycleDuration: 5},
		{CycleLength: 28, CycleDuration: 3},
		{CycleLength: 28, CycleDuration: 7},
	}
	for _, obs := range boundaries {
		result := ClassifyCycle(obs)
		if result.Status != StatusNormal {
			t.Errorf("boundary %+v flagged as %v", obs, result.Abnormalities)
		}
	}
}

func TestRecommendationForSeverity(t *testing.T) {
	if got := RecommendationForSeverity("high"); got != "Seek medical attention immediately." {
		t.Errorf("high severity: got %q", got)
	}
	if got := RecommendationForSeverity("HIGH"); got != "Seek medical attention immediately." {
		t.Errorf("severity comparison should be case-insensitive, got %q", got)
	}
	if got := RecommendationForSeverity("medium"); got != "Monitor and consult a doctor if persists." {
		t.Errorf("medium severity: got %q", got)
	}
	if got := RecommendationForSeverity(""); got != "Monitor and consult a doctor if persists." {
		t.Errorf("empty severity: got %q", got)
	}
}
