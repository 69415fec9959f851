package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS sessions (
	email      TEXT PRIMARY KEY,
	user_json  TEXT NOT NULL DEFAULT '{}',
	login_at   DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS prefs (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL DEFAULT ''
);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
	{
		version: 2,
		sql: `
CREATE TABLE IF NOT EXISTS mail_cache (
	account    TEXT NOT NULL,
	view       TEXT NOT NULL,
	position   INTEGER NOT NULL,
	mail_id    TEXT NOT NULL,
	mail_json  TEXT NOT NULL,
	cached_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (account, view, position)
);

CREATE INDEX IF NOT EXISTS idx_mail_cache_account ON mail_cache(account);

INSERT INTO schema_version (version) VALUES (2);
`,
	},
}
