package postgres

type playerTableModel struct {
	ID       int64  `db:"id"`
	PublicID string `db:"public_id"`
	Name     string `db:"name"`
	Position string `db:"position"`
	Team     string `db:"team"`
	Active   bool   `db:"active"`
}

type playerInsertModel struct {
	PublicID string `db:"public_id"`
	Name     string `db:"name"`
	Position string `db:"position"`
	Team     string `db:"team"`
	Active   bool   `db:"active"`
}
