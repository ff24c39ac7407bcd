package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schema lists the DDL statements run at startup. Every statement is
// idempotent so a restart against an existing database is harmless.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS operators (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		email VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		role VARCHAR(32) NOT NULL DEFAULT 'OPERATOR',
		is_active TINYINT(1) NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_operators_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		operator_id BIGINT UNSIGNED NOT NULL,
		token_hash CHAR(64) NOT NULL,
		expires_at DATETIME NOT NULL,
		revoked_at DATETIME NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_refresh_tokens_hash (token_hash),
		KEY ix_refresh_tokens_operator (operator_id),
		CONSTRAINT fk_refresh_tokens_operator FOREIGN KEY (operator_id) REFERENCES operators (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS exams (
		exam_key VARCHAR(255) NOT NULL,
		name VARCHAR(200) NOT NULL,
		year VARCHAR(16) NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (exam_key)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS io_allocations (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		exam_key VARCHAR(255) NOT NULL,
		venue VARCHAR(255) NOT NULL,
		slot_date VARCHAR(10) NOT NULL,
		shift VARCHAR(64) NOT NULL,
		person_name VARCHAR(200) NOT NULL,
		area VARCHAR(200) NOT NULL DEFAULT '',
		role VARCHAR(64) NOT NULL,
		mock_test TINYINT(1) NOT NULL DEFAULT 0,
		order_no VARCHAR(100) NOT NULL DEFAULT '',
		page_no VARCHAR(100) NOT NULL DEFAULT '',
		reference_remarks VARCHAR(500) NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY ix_io_allocations_exam (exam_key),
		KEY ix_io_allocations_person_slot (person_name, slot_date, shift),
		CONSTRAINT fk_io_allocations_exam FOREIGN KEY (exam_key) REFERENCES exams (exam_key)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS ey_allocations (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		exam_key VARCHAR(255) NOT NULL,
		venue VARCHAR(255) NOT NULL,
		slot_date VARCHAR(10) NOT NULL,
		shift VARCHAR(64) NOT NULL,
		person_name VARCHAR(200) NOT NULL,
		mobile VARCHAR(32) NOT NULL DEFAULT '',
		email VARCHAR(255) NOT NULL DEFAULT '',
		id_number VARCHAR(100) NOT NULL DEFAULT '',
		designation VARCHAR(200) NOT NULL DEFAULT '',
		department VARCHAR(200) NOT NULL DEFAULT '',
		mock_test TINYINT(1) NOT NULL DEFAULT 0,
		rate INT UNSIGNED NOT NULL DEFAULT 0,
		order_no VARCHAR(100) NOT NULL DEFAULT '',
		page_no VARCHAR(100) NOT NULL DEFAULT '',
		reference_remarks VARCHAR(500) NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY ix_ey_allocations_exam (exam_key),
		KEY ix_ey_allocations_person_slot (person_name, slot_date, shift),
		CONSTRAINT fk_ey_allocations_exam FOREIGN KEY (exam_key) REFERENCES exams (exam_key)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS allocation_references (
		exam_key VARCHAR(255) NOT NULL,
		role VARCHAR(64) NOT NULL,
		order_no VARCHAR(100) NOT NULL,
		page_no VARCHAR(100) NOT NULL DEFAULT '',
		remarks VARCHAR(500) NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (exam_key, role),
		CONSTRAINT fk_allocation_references_exam FOREIGN KEY (exam_key) REFERENCES exams (exam_key)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS deleted_records (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		kind VARCHAR(32) NOT NULL,
		exam_key VARCHAR(255) NOT NULL,
		venue VARCHAR(255) NOT NULL,
		slot_date VARCHAR(10) NOT NULL,
		shift VARCHAR(64) NOT NULL,
		person_name VARCHAR(200) NOT NULL,
		area VARCHAR(200) NOT NULL DEFAULT '',
		role VARCHAR(64) NOT NULL DEFAULT '',
		mock_test TINYINT(1) NOT NULL DEFAULT 0,
		rate INT UNSIGNED NOT NULL DEFAULT 0,
		order_no VARCHAR(100) NOT NULL DEFAULT '',
		page_no VARCHAR(100) NOT NULL DEFAULT '',
		reference_remarks VARCHAR(500) NOT NULL DEFAULT '',
		deletion_reason VARCHAR(500) NOT NULL,
		deletion_order_no VARCHAR(100) NOT NULL,
		deleted_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY ix_deleted_records_exam (exam_key)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS remuneration_rates (
		id TINYINT UNSIGNED NOT NULL,
		multiple_shifts INT UNSIGNED NOT NULL,
		single_shift INT UNSIGNED NOT NULL,
		mock_test INT UNSIGNED NOT NULL,
		ey_personnel INT UNSIGNED NOT NULL,
		PRIMARY KEY (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS coordinator_roster (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name VARCHAR(200) NOT NULL,
		area VARCHAR(200) NOT NULL DEFAULT '',
		centre_code VARCHAR(8) NOT NULL DEFAULT '',
		mobile VARCHAR(32) NOT NULL DEFAULT '',
		email VARCHAR(255) NOT NULL DEFAULT '',
		PRIMARY KEY (id),
		KEY ix_coordinator_roster_name (name)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS venue_slots (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		venue VARCHAR(255) NOT NULL,
		slot_date VARCHAR(10) NOT NULL,
		shift VARCHAR(64) NOT NULL,
		centre_code VARCHAR(8) NOT NULL DEFAULT '',
		address VARCHAR(500) NOT NULL DEFAULT '',
		PRIMARY KEY (id),
		KEY ix_venue_slots_venue (venue)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS ey_roster (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name VARCHAR(200) NOT NULL,
		mobile VARCHAR(32) NOT NULL DEFAULT '',
		email VARCHAR(255) NOT NULL DEFAULT '',
		id_number VARCHAR(100) NOT NULL DEFAULT '',
		designation VARCHAR(200) NOT NULL DEFAULT '',
		department VARCHAR(200) NOT NULL DEFAULT '',
		PRIMARY KEY (id),
		KEY ix_ey_roster_name (name)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates all tables the service needs. Called once at
// startup, before the HTTP server accepts traffic.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
