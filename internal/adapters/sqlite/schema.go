package sqlite

import "fmt"

// schemaSQL is the authoritative schema for the quotes table, created
// idempotently at startup and destructively inside a reload transaction.
// The author index serves the case-insensitive author lookup; the
// season/episode index serves ad-hoc operational queries.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS %[1]s (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	quote      TEXT    NOT NULL,
	author     TEXT    NOT NULL,
	season     INTEGER NOT NULL,
	episode    INTEGER NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_%[1]s_author ON %[1]s (author);
CREATE INDEX IF NOT EXISTS idx_%[1]s_season_episode ON %[1]s (season, episode);
`

// dropSQL removes the table and its indexes ahead of a destructive reload.
const dropSQL = `DROP TABLE IF EXISTS %s;`

// SchemaFor renders the schema statements for the given table name.
// The name must already have passed validateTableName.
func SchemaFor(table string) string {
	return fmt.Sprintf(schemaSQL, table)
}
