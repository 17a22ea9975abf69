package models

import "strings"

// Season is the academic term of a quarter
type Season string

const (
	SeasonWinter Season = "Winter"
	SeasonSpring Season = "Spring"
	SeasonSummer Season = "Summer"
	SeasonFall   Season = "Fall"
)

// Seasons lists the seasons in calendar order
var Seasons = []Season{SeasonWinter, SeasonSpring, SeasonSummer, SeasonFall}

// ParseSeason resolves s case-insensitively to a known season
func ParseSeason(s string) (Season, bool) {
	for _, season := range Seasons {
		if strings.EqualFold(strings.TrimSpace(s), string(season)) {
			return season, true
		}
	}
	return "", false
}
