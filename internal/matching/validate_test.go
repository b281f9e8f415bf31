package matching

import (
	"testing"

	"github.com/monkeydluthy/prophitline/internal/teams"
)

func TestValidateSports(t *testing.T) {
	v := NewValidator(teams.NewRegistry())

	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{
			name: "same pair different phrasing",
			a:    "Ravens vs Packers",
			b:    "Baltimore at Green Bay Winner?",
			want: true,
		},
		{
			name: "same pair reversed order",
			a:    "Ravens vs Packers",
			b:    "Packers vs Ravens",
			want: true,
		},
		{
			name: "same sport different game",
			a:    "Ravens vs Packers",
			b:    "Chiefs vs Bills",
			want: false,
		},
		{
			name: "overlapping single team",
			a:    "Will the Ravens win the game?",
			b:    "Ravens vs Packers",
			want: true,
		},
		{
			name: "single team no overlap",
			a:    "Will the Chiefs win the game?",
			b:    "Ravens vs Packers",
			want: false,
		},
		{
			name: "no teams on either side passes",
			a:    "Super Bowl total points over 50",
			b:    "Highest scoring Super Bowl ever",
			want: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := v.Validate(CategorySports, tt.a, tt.b); got != tt.want {
				t.Errorf("Validate(sports, %q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestValidatePolitics(t *testing.T) {
	v := NewValidator(teams.NewRegistry())

	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{
			name: "same office same state",
			a:    "Who wins the Ohio Senate race?",
			b:    "Ohio Senate election winner",
			want: true,
		},
		{
			name: "different states",
			a:    "Who wins the Ohio Senate race?",
			b:    "Who wins the Texas Senate race?",
			want: false,
		},
		{
			name: "different offices",
			a:    "Ohio Senate winner",
			b:    "Ohio Governor winner",
			want: false,
		},
		{
			name: "primary never matches general",
			a:    "Ohio Senate primary winner",
			b:    "Ohio Senate general election winner",
			want: false,
		},
		{
			name: "office alias folds",
			a:    "Presidential election winner",
			b:    "Who will be president?",
			want: true,
		},
		{
			name: "one side names a state the other omits",
			a:    "Senate control after the election",
			b:    "Ohio Senate race winner",
			want: false,
		},
		{
			name: "party mismatch",
			a:    "Democratic nominee wins Ohio Senate race",
			b:    "Republican nominee wins Ohio Senate race",
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := v.Validate(CategoryPolitics, tt.a, tt.b); got != tt.want {
				t.Errorf("Validate(politics, %q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestValidateOtherCategoriesPass(t *testing.T) {
	v := NewValidator(teams.NewRegistry())
	if !v.Validate(CategoryCrypto, "bitcoin above 100k", "btc above 100k") {
		t.Error("crypto has no structural gate and must pass")
	}
	if !v.Validate(CategoryOther, "anything", "else") {
		t.Error("other has no structural gate and must pass")
	}
}
