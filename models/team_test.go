package models

import (
	"testing"
)

func TestParseTeamIsCaseInsensitive(t *testing.T) {
	cases := map[string]Team{
		"red":     TeamRed,
		"RED":     TeamRed,
		"  red ":  TeamRed,
		"Purple":  TeamPurple,
		"navy":    TeamNavy,
		"":        TeamBlank,
		"magenta": TeamBlank,
	}

	for name, want := range cases {
		if got := ParseTeam(name); got != want {
			t.Errorf("ParseTeam(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestParseTeamsDropsUnknownTokens(t *testing.T) {
	teams := ParseTeams("RED blue magenta")

	if len(teams) != 2 {
		t.Fatalf("Expected 2 teams, got %d: %v", len(teams), teams)
	}
	if teams[0] != TeamRed || teams[1] != TeamBlue {
		t.Errorf("Expected [red blue], got %v", teams)
	}
}

func TestParseTeamsEmptyInput(t *testing.T) {
	if teams := ParseTeams("   "); len(teams) != 0 {
		t.Errorf("Expected no teams from blank input, got %v", teams)
	}
}

func TestTeamSetPacksFlags(t *testing.T) {
	set := TeamSet([]Team{TeamRed, TeamBlue})

	if set&TeamRed == 0 || set&TeamBlue == 0 {
		t.Errorf("Set %b should contain red and blue", set)
	}
	if set&TeamGreen != 0 {
		t.Errorf("Set %b should not contain green", set)
	}
}

func TestTeamNames(t *testing.T) {
	if TeamRed.Name() != "red" {
		t.Errorf("Expected wire name \"red\", got %q", TeamRed.Name())
	}
	if TeamBlank.Name() != "" {
		t.Errorf("The blank team has no wire name, got %q", TeamBlank.Name())
	}

	for _, team := range AllTeams {
		if team.Name() == "" {
			t.Errorf("Team %v has no wire name", team)
		}
		if ParseTeam(team.Name()) != team {
			t.Errorf("Name round trip failed for %v", team)
		}
	}
}

func TestHexColorFallsBackToWhite(t *testing.T) {
	if TeamBlank.HexColor() != "#FFFFFF" {
		t.Errorf("Blank team should render white, got %q", TeamBlank.HexColor())
	}
	if TeamRed.HexColor() != "#FF0000" {
		t.Errorf("Unexpected red hex %q", TeamRed.HexColor())
	}
}
