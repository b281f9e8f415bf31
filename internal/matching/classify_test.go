package matching

import (
	"testing"

	"github.com/monkeydluthy/prophitline/internal/teams"
)

func TestClassify(t *testing.T) {
	c := NewClassifier(teams.NewRegistry())

	tests := []struct {
		title string
		want  Category
	}{
		{"national football league baltimore green bay", CategorySports},
		{"super bowl champion", CategorySports},
		{"ohio senate race", CategoryPolitics},
		{"president elected 2028", CategoryPolitics},
		{"bitcoin above 100k", CategoryCrypto},
		{"ethereum flips bitcoin", CategoryCrypto},
		{"fed cuts rates in december", CategoryOther},
		// No league keyword, but two extractable teams.
		{"baltimore green bay", CategorySports},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			if got := c.Classify(tt.title); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.title, got, tt.want)
			}
		})
	}
}
