package postgres

import (
	"database/sql"
	"time"
)

type gameResultTableModel struct {
	ID              int64           `db:"id"`
	Season          int             `db:"season"`
	Week            int             `db:"week"`
	AwayTeam        string          `db:"away_team"`
	HomeTeam        string          `db:"home_team"`
	HomeScore       sql.NullInt64   `db:"home_score"`
	AwayScore       sql.NullInt64   `db:"away_score"`
	Final           bool            `db:"final"`
	Spread          sql.NullFloat64 `db:"spread"`
	Total           sql.NullFloat64 `db:"total"`
	MoneylineWinner sql.NullString  `db:"moneyline_winner"`
	SpreadWinner    sql.NullString  `db:"spread_winner"`
	MoneylinePush   bool            `db:"moneyline_push"`
	SpreadPush      bool            `db:"spread_push"`
	TotalResult     sql.NullString  `db:"total_result"`
	LastUpdated     time.Time       `db:"last_updated"`
}

type gameResultInsertModel struct {
	Season          int             `db:"season"`
	Week            int             `db:"week"`
	AwayTeam        string          `db:"away_team"`
	HomeTeam        string          `db:"home_team"`
	HomeScore       sql.NullInt64   `db:"home_score"`
	AwayScore       sql.NullInt64   `db:"away_score"`
	Final           bool            `db:"final"`
	Spread          sql.NullFloat64 `db:"spread"`
	Total           sql.NullFloat64 `db:"total"`
	MoneylineWinner sql.NullString  `db:"moneyline_winner"`
	SpreadWinner    sql.NullString  `db:"spread_winner"`
	MoneylinePush   bool            `db:"moneyline_push"`
	SpreadPush      bool            `db:"spread_push"`
	TotalResult     sql.NullString  `db:"total_result"`
	LastUpdated     time.Time       `db:"last_updated"`
}
