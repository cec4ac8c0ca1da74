package models

import (
	"strings"
)

// Team is a player's color affiliation. Values are bit flags so a board
// square can hold the set of teams that claimed it in a single value.
type Team uint16

const (
	// TeamBlank is the "no team" sentinel. It never appears in a square's
	// team set.
	TeamBlank Team = 0

	TeamPink   Team = 1 << 1
	TeamRed    Team = 1 << 2
	TeamOrange Team = 1 << 3
	TeamBrown  Team = 1 << 4
	TeamYellow Team = 1 << 5
	TeamGreen  Team = 1 << 6
	TeamTeal   Team = 1 << 7
	TeamBlue   Team = 1 << 8
	TeamNavy   Team = 1 << 9
	TeamPurple Team = 1 << 10
)

// AllTeams lists every real team color in palette order.
var AllTeams = []Team{
	TeamPink, TeamRed, TeamOrange, TeamBrown, TeamYellow,
	TeamGreen, TeamTeal, TeamBlue, TeamNavy, TeamPurple,
}

var teamNames = map[Team]string{
	TeamPink:   "pink",
	TeamRed:    "red",
	TeamOrange: "orange",
	TeamBrown:  "brown",
	TeamYellow: "yellow",
	TeamGreen:  "green",
	TeamTeal:   "teal",
	TeamBlue:   "blue",
	TeamNavy:   "navy",
	TeamPurple: "purple",
}

var teamsByName = func() map[string]Team {
	m := make(map[string]Team, len(teamNames))
	for team, name := range teamNames {
		m[name] = team
	}
	return m
}()

var teamHexColors = map[Team]string{
	TeamPink:   "#FFC0CB",
	TeamRed:    "#FF0000",
	TeamOrange: "#FFA500",
	TeamBrown:  "#964B00",
	TeamYellow: "#FFFF00",
	TeamGreen:  "#00FF00",
	TeamTeal:   "#66b2b2",
	TeamBlue:   "#00f1ff",
	TeamNavy:   "#7d90ff",
	TeamPurple: "#800080",
}

// Name returns the wire name of the team, e.g. "red". The blank team has no
// wire name and returns the empty string.
func (t Team) Name() string {
	return teamNames[t]
}

// HexColor returns the display color for the team. The blank team renders
// white.
func (t Team) HexColor() string {
	if hex, ok := teamHexColors[t]; ok {
		return hex
	}
	return "#FFFFFF"
}

func (t Team) String() string {
	if t == TeamBlank {
		return "blank"
	}
	if name, ok := teamNames[t]; ok {
		return name
	}
	return "unknown"
}

// ParseTeam resolves a team from its wire name. The lookup is
// case-insensitive and tolerates surrounding whitespace; empty or unknown
// names resolve to TeamBlank.
func ParseTeam(name string) Team {
	return teamsByName[strings.ToLower(strings.TrimSpace(name))]
}

// ParseTeams resolves a whitespace-separated list of team names into a team
// set. Unknown tokens are dropped; the blank team is never part of the set.
func ParseTeams(names string) []Team {
	var teams []Team
	for _, token := range strings.Fields(names) {
		if team := ParseTeam(token); team != TeamBlank {
			teams = append(teams, team)
		}
	}
	return teams
}

// TeamSet packs a list of teams into a single bit-flag value.
func TeamSet(teams []Team) Team {
	var set Team
	for _, t := range teams {
		set |= t
	}
	return set
}
