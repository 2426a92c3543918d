package sqlite

import "github.com/DavideLicci/MindGarden/internal/store/sqlstore"

// SchemaVersion is the newest entry of Migrations.
const SchemaVersion = 1

// Migrations creates the SQLite schema. Timestamps are TIMESTAMP-typed text so
// the driver parses them back into time.Time.
var Migrations = []sqlstore.Migration{
	{Version: 1, Statements: []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS gardens (
			id TEXT PRIMARY KEY,
			user_id INTEGER NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
			health REAL NOT NULL DEFAULT 0.5,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS checkins (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			text TEXT NULL,
			stt_text TEXT NULL,
			audio_object_key TEXT NULL,
			emotion_label TEXT NOT NULL,
			sentiment_score REAL NOT NULL,
			intensity REAL NOT NULL,
			tags TEXT NOT NULL DEFAULT '[]',
			status TEXT NOT NULL DEFAULT 'complete',
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_checkins_user_created ON checkins(user_id, created_at)`,
		`CREATE TABLE IF NOT EXISTS plants (
			id TEXT PRIMARY KEY,
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			checkin_id INTEGER NULL REFERENCES checkins(id) ON DELETE SET NULL,
			archetype TEXT NOT NULL,
			params TEXT NOT NULL,
			position TEXT NOT NULL,
			style_skin TEXT NOT NULL DEFAULT 'default',
			health REAL NOT NULL DEFAULT 0.5,
			growth_progress REAL NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_plants_user ON plants(user_id)`,
		`CREATE TABLE IF NOT EXISTS insights (
			id TEXT PRIMARY KEY,
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			text TEXT NOT NULL,
			insight_type TEXT NOT NULL,
			source_checkins TEXT NOT NULL DEFAULT '[]',
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_insights_user_created ON insights(user_id, created_at)`,
		`CREATE TABLE IF NOT EXISTS settings (
			user_id INTEGER PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
			processing_mode TEXT NOT NULL DEFAULT 'cloud',
			audio_retention_days INTEGER NOT NULL DEFAULT 30,
			share_anonymized INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS jobs (
			id TEXT PRIMARY KEY,
			user_id INTEGER NOT NULL,
			kind TEXT NOT NULL,
			format TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL,
			attempts INTEGER NOT NULL DEFAULT 0,
			result_path TEXT NOT NULL DEFAULT '',
			error TEXT NOT NULL DEFAULT '',
			next_attempt_at TIMESTAMP NOT NULL,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL,
			completed_at TIMESTAMP NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_jobs_ready ON jobs(status, next_attempt_at)`,
	}},
}
