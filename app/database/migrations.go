package database

import (
	"database/sql"
	"log"
)

// RunMigrations creates the schema if it does not exist. Every statement
// is idempotent so the application can run it on every start.
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto`,

		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL CHECK (role IN ('Admin', 'Teacher')),
			status BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS academic_years (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			starts_on DATE NOT NULL,
			ends_on DATE NOT NULL,
			is_current BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		// Only one year may carry the is_current flag.
		`CREATE UNIQUE INDEX IF NOT EXISTS ux_academic_years_current
			ON academic_years (is_current) WHERE is_current`,

		`CREATE TABLE IF NOT EXISTS classes (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name TEXT NOT NULL UNIQUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS sections (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name TEXT NOT NULL UNIQUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS class_sections (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			class_id UUID NOT NULL REFERENCES classes(id),
			section_id UUID NOT NULL REFERENCES sections(id),
			class_teacher_id UUID REFERENCES users(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (class_id, section_id)
		)`,

		`CREATE TABLE IF NOT EXISTS students (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			full_name TEXT NOT NULL,
			roll_number TEXT,
			father_name TEXT,
			mother_name TEXT,
			address TEXT,
			contact_number TEXT,
			email TEXT,
			status BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,

		`CREATE TABLE IF NOT EXISTS student_enrollments (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			student_id UUID NOT NULL REFERENCES students(id),
			academic_year_id BIGINT NOT NULL REFERENCES academic_years(id),
			class_section_id UUID NOT NULL REFERENCES class_sections(id),
			roll_number TEXT,
			status TEXT NOT NULL DEFAULT 'active'
				CHECK (status IN ('active', 'promoted', 'withdrawn')),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CONSTRAINT ux_enrollments_student_year UNIQUE (student_id, academic_year_id)
		)`,

		`CREATE TABLE IF NOT EXISTS student_year_outcomes (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			student_id UUID NOT NULL REFERENCES students(id),
			academic_year_id BIGINT NOT NULL REFERENCES academic_years(id),
			class_section_id UUID REFERENCES class_sections(id),
			overall_percentage NUMERIC(5,2),
			overall_grade TEXT,
			overall_result TEXT NOT NULL CHECK (overall_result IN ('pass', 'fail')),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (student_id, academic_year_id)
		)`,

		`CREATE TABLE IF NOT EXISTS promotion_paths (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			from_academic_year_id BIGINT NOT NULL REFERENCES academic_years(id),
			to_academic_year_id BIGINT NOT NULL REFERENCES academic_years(id),
			from_class_section_id UUID NOT NULL REFERENCES class_sections(id),
			to_class_section_id UUID NOT NULL REFERENCES class_sections(id),
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (from_academic_year_id, to_academic_year_id, from_class_section_id)
		)`,

		`CREATE TABLE IF NOT EXISTS promotion_runs (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			from_academic_year_id BIGINT NOT NULL REFERENCES academic_years(id),
			to_academic_year_id BIGINT NOT NULL REFERENCES academic_years(id),
			class_section_id UUID NOT NULL REFERENCES class_sections(id),
			status TEXT NOT NULL DEFAULT 'draft'
				CHECK (status IN ('draft', 'confirmed', 'cancelled')),
			confirmed_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		// At most one draft run per (from year, to year, cohort). Concurrent
		// fetch-or-create requests race on this index and recover by
		// re-reading the winner's row.
		`CREATE UNIQUE INDEX IF NOT EXISTS ux_promotion_runs_one_draft
			ON promotion_runs (from_academic_year_id, to_academic_year_id, class_section_id)
			WHERE status = 'draft'`,

		`CREATE TABLE IF NOT EXISTS promotion_run_students (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			promotion_run_id UUID NOT NULL REFERENCES promotion_runs(id),
			student_id UUID NOT NULL REFERENCES students(id),
			from_enrollment_id UUID NOT NULL REFERENCES student_enrollments(id),
			decision TEXT NOT NULL
				CHECK (decision IN ('retain', 'promote', 'conditional_promote')),
			eligibility_status TEXT CHECK (eligibility_status IN ('pass', 'fail')),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CONSTRAINT ux_run_students_run_student UNIQUE (promotion_run_id, student_id)
		)`,

		`CREATE TABLE IF NOT EXISTS teacher_assignments (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			teacher_id UUID NOT NULL REFERENCES users(id),
			class_section_id UUID NOT NULL REFERENCES class_sections(id),
			subject_name TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (teacher_id, class_section_id, subject_name)
		)`,

		`CREATE TABLE IF NOT EXISTS class_grading_config (
			class_id UUID PRIMARY KEY REFERENCES classes(id),
			weight_1 INT NOT NULL DEFAULT 25,
			weight_2 INT NOT NULL DEFAULT 25,
			weight_mid INT NOT NULL DEFAULT 25,
			weight_final INT NOT NULL DEFAULT 25
		)`,

		`CREATE TABLE IF NOT EXISTS grades (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			student_id UUID NOT NULL REFERENCES students(id),
			assignment_id UUID NOT NULL REFERENCES teacher_assignments(id),
			assessment_1 NUMERIC(5,2) NOT NULL DEFAULT 0,
			assessment_2 NUMERIC(5,2) NOT NULL DEFAULT 0,
			midterm NUMERIC(5,2) NOT NULL DEFAULT 0,
			final_exam NUMERIC(5,2) NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CONSTRAINT ux_grades_student_assignment UNIQUE (student_id, assignment_id)
		)`,

		`CREATE TABLE IF NOT EXISTS notifications (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			title TEXT NOT NULL,
			description TEXT,
			type TEXT NOT NULL,
			entity_id TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			log.Printf("Migration failed: %v", err)
			return err
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}
