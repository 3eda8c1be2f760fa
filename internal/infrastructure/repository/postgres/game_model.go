package postgres

import "time"

type gameTableModel struct {
	ID           int64     `db:"id"`
	Season       int       `db:"season"`
	Week         int       `db:"week"`
	AwayTeam     string    `db:"away_team"`
	HomeTeam     string    `db:"home_team"`
	CommenceTime time.Time `db:"commence_time"`
	Bookmakers   []byte    `db:"bookmakers"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type gameInsertModel struct {
	Season       int       `db:"season"`
	Week         int       `db:"week"`
	AwayTeam     string    `db:"away_team"`
	HomeTeam     string    `db:"home_team"`
	CommenceTime time.Time `db:"commence_time"`
	Bookmakers   string    `db:"bookmakers"`
	UpdatedAt    time.Time `db:"updated_at"`
}
