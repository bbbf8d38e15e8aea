package sqlite

// Table names in backup snapshot order. The layout is compatible with
// pre-existing JSON backups, so columns follow the historical schema.
var backupTables = []string{
	"settings",
	"roles",
	"bans",
	"mutes",
	"blacklist",
	"notes",
	"reminders",
	"birthdays",
	"birthday_settings",
	"users",
	"say_blocks",
	"action_logs",
	"forwarding_stats",
	"message_mapping",
}

const schema = `
CREATE TABLE IF NOT EXISTS settings (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS users (
	user_id INTEGER PRIMARY KEY,
	username TEXT,
	full_name TEXT,
	first_message_at TEXT,
	joined_at TEXT,
	left_at TEXT,
	invited_by INTEGER,
	invited_by_name TEXT,
	birth_date TEXT
);

CREATE TABLE IF NOT EXISTS roles (
	user_id INTEGER PRIMARY KEY,
	role TEXT NOT NULL,
	added_by INTEGER,
	added_at TEXT NOT NULL,
	full_name TEXT,
	username TEXT
);

CREATE TABLE IF NOT EXISTS message_mapping (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	admin_message_id INTEGER NOT NULL,
	user_message_id INTEGER NOT NULL,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_mapping_admin ON message_mapping(admin_message_id);
CREATE INDEX IF NOT EXISTS idx_mapping_user ON message_mapping(user_message_id);

CREATE TABLE IF NOT EXISTS bans (
	user_id INTEGER PRIMARY KEY,
	banned_by INTEGER NOT NULL,
	reason TEXT,
	banned_at TEXT NOT NULL,
	is_active INTEGER DEFAULT 1
);

CREATE TABLE IF NOT EXISTS mutes (
	user_id INTEGER PRIMARY KEY,
	muted_by INTEGER NOT NULL,
	reason TEXT,
	muted_at TEXT NOT NULL,
	is_active INTEGER DEFAULT 1
);

CREATE TABLE IF NOT EXISTS blacklist (
	user_id INTEGER PRIMARY KEY,
	added_by INTEGER NOT NULL,
	added_at TEXT NOT NULL,
	reason TEXT
);

CREATE TABLE IF NOT EXISTS say_blocks (
	user_id INTEGER PRIMARY KEY,
	blocked_by INTEGER NOT NULL,
	blocked_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS notes (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	note_text TEXT NOT NULL,
	created_by_id INTEGER NOT NULL,
	created_by_name TEXT,
	created_by_username TEXT,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_notes_user ON notes(user_id);

CREATE TABLE IF NOT EXISTS reminders (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	target_user_id INTEGER,
	reminder_text TEXT NOT NULL,
	remind_at TEXT NOT NULL,
	created_at TEXT NOT NULL,
	is_sent INTEGER DEFAULT 0,
	chat_id INTEGER
);
CREATE INDEX IF NOT EXISTS idx_reminders_due ON reminders(is_sent, remind_at);

CREATE TABLE IF NOT EXISTS birthdays (
	user_id INTEGER PRIMARY KEY,
	username TEXT,
	full_name TEXT,
	birth_date TEXT NOT NULL,
	added_by INTEGER NOT NULL,
	added_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS birthday_settings (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	gif_file_id TEXT,
	greeting_text TEXT DEFAULT 'З Днем Народження!'
);

CREATE TABLE IF NOT EXISTS forwarding_stats (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	message_type TEXT NOT NULL,
	forwarded_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS action_logs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	action_type TEXT NOT NULL,
	user_id INTEGER,
	target_user_id INTEGER,
	details TEXT,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_action_logs_type ON action_logs(action_type, target_user_id);

CREATE TABLE IF NOT EXISTS online_modes (
	user_id INTEGER PRIMARY KEY,
	mode TEXT NOT NULL,
	started_at TEXT NOT NULL,
	last_activity TEXT NOT NULL,
	source_chat_id INTEGER
);
`
