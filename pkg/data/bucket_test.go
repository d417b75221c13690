package data

import (
	"math"
	"testing"
	"time"

	"gitlab.com/tinyland/lab/timebrush/pkg/timebrush"
)

func TestBucketDailyCount(t *testing.T) {
	obs := []timebrush.DataItem{
		{Date: time.Date(2020, 1, 2, 23, 0, 0, 0, time.UTC), Value: 7},
		{Date: time.Date(2020, 1, 1, 8, 0, 0, 0, time.UTC), Value: 1},
		{Date: time.Date(2020, 1, 1, 9, 30, 0, 0, time.UTC), Value: 1},
		{Date: time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC), Value: 3},
	}

	got := Bucket(obs, Day, AggCount)
	want := []timebrush.DataItem{
		{Date: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), Value: 2},
		{Date: time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC), Value: 2},
	}
	if len(got) != len(want) {
		t.Fatalf("Bucket = %v, want %v", got, want)
	}
	for i := range want {
		if !got[i].Date.Equal(want[i].Date) || got[i].Value != want[i].Value {
			t.Errorf("bucket %d = %v, want %v", i, got[i], want[i])
		}
	}

	sums := Bucket(obs, Day, AggSum)
	if sums[0].Value != 2 || sums[1].Value != 10 {
		t.Errorf("sums = %v, want 2 and 10", sums)
	}
}

func TestBucketCalendarUnits(t *testing.T) {
	ts := time.Date(2021, 7, 15, 13, 45, 10, 0, time.UTC) // a Thursday
	tests := []struct {
		iv   Interval
		want time.Time
	}{
		{Minute, time.Date(2021, 7, 15, 13, 45, 0, 0, time.UTC)},
		{Hour, time.Date(2021, 7, 15, 13, 0, 0, 0, time.UTC)},
		{Every(15 * time.Minute), time.Date(2021, 7, 15, 13, 45, 0, 0, time.UTC)},
		{Day, time.Date(2021, 7, 15, 0, 0, 0, 0, time.UTC)},
		{Week, time.Date(2021, 7, 11, 0, 0, 0, 0, time.UTC)},
		{Month, time.Date(2021, 7, 1, 0, 0, 0, 0, time.UTC)},
		{Year, time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)},
		{NoBucket, ts},
	}
	for _, tt := range tests {
		t.Run(tt.iv.String(), func(t *testing.T) {
			if got := tt.iv.Floor(ts); !got.Equal(tt.want) {
				t.Errorf("Floor = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBucketNoneKeepsEveryObservation(t *testing.T) {
	at := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	obs := []timebrush.DataItem{{Date: at, Value: 1}, {Date: at, Value: 2}}
	if got := Bucket(obs, NoBucket, AggSum); len(got) != 2 {
		t.Errorf("Bucket(NoBucket) = %v, want 2 items", got)
	}
}

func TestBucketSkipsZeroDatesAndNaN(t *testing.T) {
	at := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	obs := []timebrush.DataItem{
		{Value: 100},
		{Date: at, Value: math.NaN()},
		{Date: at, Value: 4},
	}
	got := Bucket(obs, Day, AggSum)
	if len(got) != 1 || got[0].Value != 4 {
		t.Errorf("Bucket = %v, want one bucket of 4", got)
	}
	if got := Bucket(nil, Day, AggSum); got == nil || len(got) != 0 {
		t.Errorf("Bucket(nil) = %#v, want empty non-nil", got)
	}
}

func TestParseInterval(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", "none", false},
		{"day", "day", false},
		{"Month", "month", false},
		{"15m", "15m0s", false},
		{"-1h", "", true},
		{"fortnight", "", true},
	}
	for _, tt := range tests {
		iv, err := ParseInterval(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseInterval(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && iv.String() != tt.want {
			t.Errorf("ParseInterval(%q) = %s, want %s", tt.in, iv, tt.want)
		}
	}
}

func TestParseAggregation(t *testing.T) {
	if a, err := ParseAggregation("COUNT"); err != nil || a != AggCount {
		t.Errorf("ParseAggregation(COUNT) = %v, %v", a, err)
	}
	if a, err := ParseAggregation(""); err != nil || a != AggSum {
		t.Errorf("ParseAggregation(\"\") = %v, %v", a, err)
	}
	if _, err := ParseAggregation("mean"); err == nil {
		t.Error("expected error for mean")
	}
}
