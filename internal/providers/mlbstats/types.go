package mlbstats

import (
	"bytes"
	"strconv"
)

type leadersResponse struct {
	LeagueLeaders []leagueLeaders `json:"leagueLeaders"`
}

type leagueLeaders struct {
	LeaderCategory string           `json:"leaderCategory"`
	Leaders        []leaderResponse `json:"leaders"`
}

type leaderResponse struct {
	Rank     int              `json:"rank"`
	Value    flexInt          `json:"value"`
	Person   personResponse   `json:"person"`
	Team     teamResponse     `json:"team"`
	Position positionResponse `json:"position"`
}

type personResponse struct {
	ID       int    `json:"id"`
	FullName string `json:"fullName"`
}

type teamResponse struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
}

type positionResponse struct {
	Code         string `json:"code"`
	Abbreviation string `json:"abbreviation"`
}

// flexInt tolerates the stats API's habit of returning leader values as
// either a bare number or a quoted string.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	val, err := strconv.Atoi(string(data))
	if err != nil {
		return err
	}
	*f = flexInt(val)
	return nil
}
