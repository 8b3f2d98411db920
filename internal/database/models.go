package database

// CannedAnswer is one row of the canned answer table: a short topic phrase
// and the fixed reply returned for it. Position fixes the match iteration
// order.
type CannedAnswer struct {
	Position int64  `db:"position"`
	Topic    string `db:"topic"`
	Answer   string `db:"answer"`
}
