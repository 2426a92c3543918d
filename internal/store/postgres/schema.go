package postgres

import "github.com/DavideLicci/MindGarden/internal/store/sqlstore"

// Migrations creates the Postgres schema.
var Migrations = []sqlstore.Migration{
	{Version: 1, Statements: []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS gardens (
			id TEXT PRIMARY KEY,
			user_id BIGINT NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
			health DOUBLE PRECISION NOT NULL DEFAULT 0.5,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS checkins (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			text TEXT NULL,
			stt_text TEXT NULL,
			audio_object_key TEXT NULL,
			emotion_label TEXT NOT NULL,
			sentiment_score DOUBLE PRECISION NOT NULL,
			intensity DOUBLE PRECISION NOT NULL,
			tags JSONB NOT NULL DEFAULT '[]',
			status TEXT NOT NULL DEFAULT 'complete',
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_checkins_user_created ON checkins(user_id, created_at DESC)`,
		`CREATE TABLE IF NOT EXISTS plants (
			id TEXT PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			checkin_id BIGINT NULL REFERENCES checkins(id) ON DELETE SET NULL,
			archetype TEXT NOT NULL,
			params JSONB NOT NULL,
			position JSONB NOT NULL,
			style_skin TEXT NOT NULL DEFAULT 'default',
			health DOUBLE PRECISION NOT NULL DEFAULT 0.5,
			growth_progress DOUBLE PRECISION NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_plants_user ON plants(user_id)`,
		`CREATE TABLE IF NOT EXISTS insights (
			id TEXT PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			text TEXT NOT NULL,
			insight_type TEXT NOT NULL,
			source_checkins JSONB NOT NULL DEFAULT '[]',
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_insights_user_created ON insights(user_id, created_at DESC)`,
		`CREATE TABLE IF NOT EXISTS settings (
			user_id BIGINT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
			processing_mode TEXT NOT NULL DEFAULT 'cloud',
			audio_retention_days INTEGER NOT NULL DEFAULT 30,
			share_anonymized BOOLEAN NOT NULL DEFAULT FALSE
		)`,
		`CREATE TABLE IF NOT EXISTS jobs (
			id TEXT PRIMARY KEY,
			user_id BIGINT NOT NULL,
			kind TEXT NOT NULL,
			format TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL,
			attempts INTEGER NOT NULL DEFAULT 0,
			result_path TEXT NOT NULL DEFAULT '',
			error TEXT NOT NULL DEFAULT '',
			next_attempt_at TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL,
			completed_at TIMESTAMPTZ NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_jobs_ready ON jobs(status, next_attempt_at)`,
	}},
}
