package postgres

import "time"

type pickTableModel struct {
	ID        int64     `db:"id"`
	PublicID  string    `db:"public_id"`
	Season    int       `db:"season"`
	Week      int       `db:"week"`
	Player    string    `db:"player_name"`
	Category  string    `db:"category"`
	Value     string    `db:"value"`
	UpdatedAt time.Time `db:"updated_at"`
}

type pickInsertModel struct {
	PublicID  string    `db:"public_id"`
	Season    int       `db:"season"`
	Week      int       `db:"week"`
	Player    string    `db:"player_name"`
	Category  string    `db:"category"`
	Value     string    `db:"value"`
	UpdatedAt time.Time `db:"updated_at"`
}
