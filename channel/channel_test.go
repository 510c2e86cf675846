package channel

import (
	"reflect"
	"testing"
)

func TestChannel_Parent(t *testing.T) {
	tests := []struct {
		channel Channel
		want    Channel
	}{
		{"Game.Death.Player", "Game.Death"},
		{"Game.Death", "Game"},
		{"Game", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := tt.channel.Parent(); got != tt.want {
			t.Errorf("Channel(%q).Parent() = %q, want %q", tt.channel, got, tt.want)
		}
	}
}

func TestChannel_HasParent(t *testing.T) {
	if !Channel("Game.Death").HasParent() {
		t.Error("expected Game.Death to have a parent")
	}
	if Channel("Game").HasParent() {
		t.Error("expected Game to have no parent")
	}
	if Channel("").HasParent() {
		t.Error("expected empty channel to have no parent")
	}
}

func TestChannel_Segments(t *testing.T) {
	tests := []struct {
		channel Channel
		want    []string
	}{
		{"Game.Death.Player", []string{"Game", "Death", "Player"}},
		{"Game", []string{"Game"}},
		{"", nil},
	}

	for _, tt := range tests {
		if got := tt.channel.Segments(); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Channel(%q).Segments() = %v, want %v", tt.channel, got, tt.want)
		}
	}
}

func TestChannel_SegmentCount(t *testing.T) {
	tests := []struct {
		channel Channel
		want    int
	}{
		{"Game.Death.Player", 3},
		{"Game", 1},
		{"", 0},
	}

	for _, tt := range tests {
		if got := tt.channel.SegmentCount(); got != tt.want {
			t.Errorf("Channel(%q).SegmentCount() = %d, want %d", tt.channel, got, tt.want)
		}
	}
}

func TestChannel_Child(t *testing.T) {
	if got := Channel("Game").Child("Death"); got != "Game.Death" {
		t.Errorf("Child() = %q, want %q", got, "Game.Death")
	}
	if got := Channel("").Child("Game"); got != "Game" {
		t.Errorf("Child() on empty = %q, want %q", got, "Game")
	}
}

func TestChannel_Base(t *testing.T) {
	tests := []struct {
		channel Channel
		want    string
	}{
		{"Game.Death.Player", "Player"},
		{"Game", "Game"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := tt.channel.Base(); got != tt.want {
			t.Errorf("Channel(%q).Base() = %q, want %q", tt.channel, got, tt.want)
		}
	}
}

func TestChannel_HasPrefix(t *testing.T) {
	tests := []struct {
		channel Channel
		prefix  Channel
		want    bool
	}{
		{"Game.Death", "Game", true},
		{"Game.Death", "Game.Death", true},
		{"Game.Death", "", true},
		{"Game.Death", "Ga", false},
		{"Game", "Game.Death", false},
		{"Gameplay", "Game", false},
	}

	for _, tt := range tests {
		if got := tt.channel.HasPrefix(tt.prefix); got != tt.want {
			t.Errorf("Channel(%q).HasPrefix(%q) = %v, want %v", tt.channel, tt.prefix, got, tt.want)
		}
	}
}

func TestChannel_IsValid(t *testing.T) {
	tests := []struct {
		channel Channel
		want    bool
	}{
		{"Game.Death", true},
		{"Game", true},
		{"", false},
		{".Game", false},
		{"Game.", false},
		{"Game..Death", false},
	}

	for _, tt := range tests {
		if got := tt.channel.IsValid(); got != tt.want {
			t.Errorf("Channel(%q).IsValid() = %v, want %v", tt.channel, got, tt.want)
		}
	}
}

func TestChannel_MatchesPattern(t *testing.T) {
	tests := []struct {
		channel Channel
		pattern string
		want    bool
	}{
		{"Game.Death", "Game.*", true},
		{"Game.Death.Player", "Game.*", true},
		{"UI.Menu", "Game.*", false},
		{"Game.Death", "*", true},
		{"Game.Death", "Game.Death", true},
	}

	for _, tt := range tests {
		if got := tt.channel.MatchesPattern(tt.pattern); got != tt.want {
			t.Errorf("Channel(%q).MatchesPattern(%q) = %v, want %v", tt.channel, tt.pattern, got, tt.want)
		}
	}
}

func TestJoin(t *testing.T) {
	if got := Join("Game", "Death", "Player"); got != "Game.Death.Player" {
		t.Errorf("Join() = %q, want %q", got, "Game.Death.Player")
	}
}
