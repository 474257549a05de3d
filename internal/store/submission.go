package store

import (
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"craftpress/internal/models"
)

// SubmissionStore handles contact form submission database operations.
type SubmissionStore struct {
	db *sql.DB
}

// NewSubmissionStore creates a new SubmissionStore with the given database connection.
func NewSubmissionStore(db *sql.DB) *SubmissionStore {
	return &SubmissionStore{db: db}
}

const submissionColumns = `id, name, email, message, processed, processed_at, created_at`

func scanSubmission(scanner interface{ Scan(...any) error }) (*models.FormSubmission, error) {
	var f models.FormSubmission
	err := scanner.Scan(
		&f.ID, &f.Name, &f.Email, &f.Message, &f.Processed, &f.ProcessedAt, &f.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// Create inserts a new contact form submission.
func (s *SubmissionStore) Create(f *models.FormSubmission) (*models.FormSubmission, error) {
	row := s.db.QueryRow(`
		INSERT INTO form_submissions (name, email, message)
		VALUES ($1, $2, $3)
		RETURNING `+submissionColumns,
		f.Name, f.Email, f.Message,
	)
	created, err := scanSubmission(row)
	if err != nil {
		return nil, fmt.Errorf("create submission: %w", err)
	}
	return created, nil
}

// FindByID retrieves a submission by UUID. Returns nil if not found.
func (s *SubmissionStore) FindByID(id uuid.UUID) (*models.FormSubmission, error) {
	row := s.db.QueryRow(`SELECT `+submissionColumns+` FROM form_submissions WHERE id = $1`, id)
	f, err := scanSubmission(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find submission by id: %w", err)
	}
	return f, nil
}

// List returns submissions newest first with the total count. processed
// filters by the work-queue flag when non-nil.
func (s *SubmissionStore) List(p ListParams, processed *bool) ([]models.FormSubmission, int, error) {
	p = p.Normalize()

	base := psql.Select().From("form_submissions")
	if processed != nil {
		base = base.Where(sq.Eq{"processed": *processed})
	}
	if p.Search != "" {
		pattern := "%" + p.Search + "%"
		base = base.Where(sq.Or{
			sq.ILike{"name": pattern},
			sq.ILike{"email": pattern},
			sq.ILike{"message": pattern},
		})
	}

	var total int
	countSQL, countArgs, err := base.Columns("COUNT(*)").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build submission count: %w", err)
	}
	if err := s.db.QueryRow(countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count submissions: %w", err)
	}

	listSQL, listArgs, err := base.Columns(submissionColumns).
		OrderBy("created_at DESC").
		Limit(uint64(p.Limit)).
		Offset(p.Offset()).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build submission list: %w", err)
	}

	rows, err := s.db.Query(listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	var items []models.FormSubmission
	for rows.Next() {
		f, err := scanSubmission(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan submission: %w", err)
		}
		items = append(items, *f)
	}
	return items, total, rows.Err()
}

// MarkProcessed flips the processed flag and stamps processed_at.
// Returns nil if the submission doesn't exist.
func (s *SubmissionStore) MarkProcessed(id uuid.UUID) (*models.FormSubmission, error) {
	row := s.db.QueryRow(`
		UPDATE form_submissions
		SET processed = TRUE, processed_at = NOW()
		WHERE id = $1
		RETURNING `+submissionColumns, id)
	f, err := scanSubmission(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("mark submission processed: %w", err)
	}
	return f, nil
}

// Delete removes a submission by ID. Returns nil if not found.
func (s *SubmissionStore) Delete(id uuid.UUID) (*models.FormSubmission, error) {
	row := s.db.QueryRow(`DELETE FROM form_submissions WHERE id = $1 RETURNING `+submissionColumns, id)
	f, err := scanSubmission(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("delete submission: %w", err)
	}
	return f, nil
}

// CountUnprocessed returns the number of submissions not yet handled.
func (s *SubmissionStore) CountUnprocessed() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM form_submissions WHERE NOT processed`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count unprocessed submissions: %w", err)
	}
	return count, nil
}
