package postgresql

func migrations() map[int]string {
	return map[int]string{
		1: `
			-- Core workflow automation tables
			CREATE TABLE workflows (
				id TEXT PRIMARY KEY,
				name VARCHAR(255) NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				trigger JSONB NOT NULL,
				actions JSONB NOT NULL,
				scope JSONB,
				is_active BOOLEAN NOT NULL DEFAULT FALSE,
				trigger_count BIGINT NOT NULL DEFAULT 0,
				last_triggered TIMESTAMP WITH TIME ZONE,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL,
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL
			);

			CREATE INDEX idx_workflows_is_active ON workflows(is_active);
			CREATE INDEX idx_workflows_trigger_type ON workflows((trigger->>'type'));

			CREATE TABLE candidates (
				id TEXT PRIMARY KEY,
				job_id TEXT NOT NULL DEFAULT '',
				name VARCHAR(255) NOT NULL,
				email VARCHAR(255) NOT NULL DEFAULT '',
				status VARCHAR(100) NOT NULL DEFAULT '',
				tags JSONB,
				timeline JSONB,
				entered_stage TIMESTAMP WITH TIME ZONE,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL,
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL
			);

			CREATE INDEX idx_candidates_job_id ON candidates(job_id);

			CREATE TABLE jobs (
				id TEXT PRIMARY KEY,
				title VARCHAR(255) NOT NULL,
				department VARCHAR(255) NOT NULL DEFAULT '',
				company VARCHAR(255) NOT NULL DEFAULT '',
				hiring_team JSONB,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL,
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL
			);

			CREATE TABLE applications (
				id TEXT PRIMARY KEY,
				candidate_id TEXT NOT NULL,
				job_id TEXT NOT NULL,
				status VARCHAR(100) NOT NULL DEFAULT '',
				applied_at TIMESTAMP WITH TIME ZONE NOT NULL
			);

			CREATE INDEX idx_applications_job_id ON applications(job_id);
			CREATE INDEX idx_applications_applied_at ON applications(applied_at);
		`,
		2: `
			-- Action side-effect tables
			CREATE TABLE emails (
				id TEXT PRIMARY KEY,
				candidate_id TEXT NOT NULL,
				job_id TEXT NOT NULL,
				template_id VARCHAR(255) NOT NULL DEFAULT '',
				recipient VARCHAR(255) NOT NULL,
				subject TEXT NOT NULL,
				body TEXT NOT NULL,
				status VARCHAR(50) NOT NULL,
				sent_at TIMESTAMP WITH TIME ZONE NOT NULL
			);

			CREATE INDEX idx_emails_candidate_id ON emails(candidate_id);

			CREATE TABLE tasks (
				id TEXT PRIMARY KEY,
				candidate_id TEXT NOT NULL,
				job_id TEXT NOT NULL,
				task_type VARCHAR(100) NOT NULL DEFAULT '',
				assignee_id TEXT NOT NULL,
				title TEXT NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				priority VARCHAR(50) NOT NULL DEFAULT '',
				due_date TIMESTAMP WITH TIME ZONE NOT NULL,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL
			);

			CREATE TABLE notifications (
				id TEXT PRIMARY KEY,
				user_id TEXT NOT NULL,
				candidate_id TEXT NOT NULL,
				job_id TEXT NOT NULL,
				message TEXT NOT NULL,
				read BOOLEAN NOT NULL DEFAULT FALSE,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL
			);

			CREATE TABLE activity (
				id TEXT PRIMARY KEY,
				job_id TEXT NOT NULL,
				candidate_id TEXT NOT NULL,
				user_id TEXT NOT NULL DEFAULT '',
				kind VARCHAR(100) NOT NULL DEFAULT '',
				message TEXT NOT NULL,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL
			);

			CREATE INDEX idx_activity_job_id ON activity(job_id);
		`,
		3: `
			-- Compliance and AI-audit tables
			CREATE TABLE eeo_records (
				candidate_id TEXT PRIMARY KEY,
				race VARCHAR(100) NOT NULL DEFAULT '',
				gender VARCHAR(100) NOT NULL DEFAULT '',
				veteran_status VARCHAR(100) NOT NULL DEFAULT '',
				disability_status VARCHAR(100) NOT NULL DEFAULT '',
				created_at TIMESTAMP WITH TIME ZONE NOT NULL,
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL
			);

			CREATE TABLE ai_decisions (
				id TEXT PRIMARY KEY,
				candidate_id TEXT NOT NULL,
				job_id TEXT NOT NULL,
				decision_type VARCHAR(100) NOT NULL,
				model VARCHAR(255) NOT NULL,
				model_version VARCHAR(100) NOT NULL DEFAULT '',
				input TEXT NOT NULL DEFAULT '',
				output TEXT NOT NULL DEFAULT '',
				score DOUBLE PRECISION,
				reasoning TEXT NOT NULL DEFAULT '',
				attributes_masked BOOLEAN NOT NULL DEFAULT FALSE,
				review JSONB,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL
			);

			CREATE INDEX idx_ai_decisions_job_id ON ai_decisions(job_id);

			CREATE TABLE bias_audits (
				id TEXT PRIMARY KEY,
				job_id TEXT NOT NULL,
				period_start TIMESTAMP WITH TIME ZONE NOT NULL,
				period_end TIMESTAMP WITH TIME ZONE NOT NULL,
				total_applicants INTEGER NOT NULL DEFAULT 0,
				overall_selection_rate DOUBLE PRECISION NOT NULL DEFAULT 0,
				group_rates JSONB,
				impact_ratios JSONB,
				four_fifths_compliant BOOLEAN NOT NULL,
				recommendations JSONB,
				status VARCHAR(50) NOT NULL,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL
			);

			CREATE INDEX idx_bias_audits_job_id ON bias_audits(job_id);
			CREATE INDEX idx_bias_audits_created_at ON bias_audits(created_at);
		`,
	}
}
