package records

import (
	"reflect"
	"testing"
)

func TestTagsCaseInsensitiveAndOrdered(t *testing.T) {
	got := Tags("Patient has DIABETES and mild Asthma")
	want := []string{"Diabetes", "Asthma"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestTagsVocabularyOrderNotTextOrder(t *testing.T) {
	got := Tags("cancer complicated by hypertension and diabetes")
	want := []string{"Diabetes", "Hypertension", "Cancer"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected vocabulary order %v, got %v", want, got)
	}
}

func TestTagsNoMatch(t *testing.T) {
	if got := Tags("a sprained ankle"); len(got) != 0 {
		t.Errorf("expected no tags, got %v", got)
	}
}

func TestTagsEachKeywordOnce(t *testing.T) {
	got := Tags("diabetes, diabetes and more diabetes")
	if len(got) != 1 || got[0] != "Diabetes" {
		t.Errorf("expected single Diabetes tag, got %v", got)
	}
}

func TestSeverityLevels(t *testing.T) {
	cases := []struct {
		diagnosis string
		label     string
		color     string
	}{
		{"mild seasonal allergy", "Mild", "success"},
		{"Moderate hypertension", "Moderate", "warning"},
		{"SEVERE asthma attack", "Severe", "danger"},
	}
	for _, tc := range cases {
		level, ok := Severity(tc.diagnosis)
		if !ok {
			t.Errorf("expected classification for %q", tc.diagnosis)
			continue
		}
		if level.Label != tc.label || level.Color != tc.color {
			t.Errorf("%q: expected %s/%s, got %s/%s", tc.diagnosis, tc.label, tc.color, level.Label, level.Color)
		}
	}
}

func TestSeverityPriorityFirstMatchWins(t *testing.T) {
	level, ok := Severity("severe complications of a mild condition")
	if !ok {
		t.Fatal("expected classification")
	}
	if level.Label != "Mild" {
		t.Errorf("expected Mild to win on priority, got %s", level.Label)
	}
}

func TestSeverityNoMatch(t *testing.T) {
	if _, ok := Severity("routine blood work"); ok {
		t.Error("expected no classification")
	}
}

func TestDecorate(t *testing.T) {
	views := Decorate([]Record{
		{ID: "r1", Diagnosis: "severe diabetes"},
		{ID: "r2", Diagnosis: "common cold"},
	})
	if len(views) != 2 {
		t.Fatalf("expected 2 views, got %d", len(views))
	}
	if !reflect.DeepEqual(views[0].Tags, []string{"Diabetes"}) {
		t.Errorf("expected Diabetes tag, got %v", views[0].Tags)
	}
	if views[0].Severity == nil || views[0].Severity.Label != "Severe" {
		t.Errorf("expected Severe badge, got %+v", views[0].Severity)
	}
	if len(views[1].Tags) != 0 || views[1].Severity != nil {
		t.Errorf("expected undecorated view, got %+v", views[1])
	}
}
