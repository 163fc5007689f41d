package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"talentmatch-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type consultantRepository struct {
	db *pgxpool.Pool
}

func NewConsultantRepository(db *pgxpool.Pool) domain.ConsultantRepository {
	return &consultantRepository{db: db}
}

func (r *consultantRepository) Create(ctx context.Context, payload *domain.ConsultantCreate) (*domain.Consultant, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO consultants (
			user_id, company_id, first_name, last_name, title,
			experience_years, availability_status, availability_date,
			daily_rate, bio, location, remote_work, max_travel_distance,
			photo_url, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW(), NOW())
		RETURNING id, created_at, updated_at`

	status := payload.AvailabilityStatus
	if status == "" {
		status = domain.StatusSourced
	}

	var id int64
	var createdAt, updatedAt time.Time
	err = tx.QueryRow(ctx, query,
		payload.UserID, payload.CompanyID, payload.FirstName, payload.LastName, payload.Title,
		payload.ExperienceYears, status, parseDate(payload.AvailabilityDate),
		payload.DailyRate, payload.Bio, payload.Location, payload.RemoteWork, payload.MaxTravelDistance,
		payload.PhotoURL,
	).Scan(&id, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert consultant: %w", err)
	}

	if err := replaceSkills(ctx, tx, id, payload.Skills); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

func (r *consultantRepository) Update(ctx context.Context, id int64, payload *domain.ConsultantCreate) (*domain.Consultant, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE consultants SET
			first_name = $1, last_name = $2, title = $3,
			experience_years = $4, availability_status = $5, availability_date = $6,
			daily_rate = $7, bio = $8, location = $9, remote_work = $10,
			max_travel_distance = $11, photo_url = $12,
			updated_at = NOW()
		WHERE id = $13 AND company_id = $14`

	status := payload.AvailabilityStatus
	if status == "" {
		status = domain.StatusSourced
	}

	cmdTag, err := tx.Exec(ctx, query,
		payload.FirstName, payload.LastName, payload.Title,
		payload.ExperienceYears, status, parseDate(payload.AvailabilityDate),
		payload.DailyRate, payload.Bio, payload.Location, payload.RemoteWork,
		payload.MaxTravelDistance, payload.PhotoURL,
		id, payload.CompanyID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update consultant: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, nil
	}

	if err := replaceSkills(ctx, tx, id, payload.Skills); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

func (r *consultantRepository) GetByID(ctx context.Context, id int64) (*domain.Consultant, error) {
	query := `
		SELECT id, user_id, company_id, first_name, last_name, title,
		       experience_years, availability_status, availability_date,
		       daily_rate, COALESCE(bio, ''), COALESCE(location, ''),
		       remote_work, max_travel_distance, COALESCE(photo_url, ''),
		       created_at, updated_at
		FROM consultants WHERE id = $1`

	var c domain.Consultant
	var availabilityDate *time.Time
	err := r.db.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.UserID, &c.CompanyID, &c.FirstName, &c.LastName, &c.Title,
		&c.ExperienceYears, &c.AvailabilityStatus, &availabilityDate,
		&c.DailyRate, &c.Bio, &c.Location,
		&c.RemoteWork, &c.MaxTravelDistance, &c.PhotoURL,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if availabilityDate != nil {
		d := availabilityDate.Format("2006-01-02")
		c.AvailabilityDate = &d
	}

	skills, err := r.getSkills(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Skills = skills

	return &c, nil
}

func (r *consultantRepository) List(ctx context.Context, filters domain.ConsultantFilters) ([]domain.Consultant, error) {
	query := `
		SELECT id, user_id, company_id, first_name, last_name, title,
		       experience_years, availability_status, availability_date,
		       daily_rate, COALESCE(bio, ''), COALESCE(location, ''),
		       remote_work, max_travel_distance, COALESCE(photo_url, ''),
		       created_at, updated_at
		FROM consultants
		WHERE 1=1`

	args := []interface{}{}
	argPos := 1

	if filters.Search != "" {
		query += fmt.Sprintf(" AND (first_name ILIKE $%d OR last_name ILIKE $%d OR title ILIKE $%d)", argPos, argPos, argPos)
		args = append(args, "%"+filters.Search+"%")
		argPos++
	}
	if len(filters.Statuses) > 0 {
		statuses := make([]string, len(filters.Statuses))
		for i, s := range filters.Statuses {
			statuses[i] = string(s)
		}
		query += fmt.Sprintf(" AND availability_status = ANY($%d)", argPos)
		args = append(args, pq.Array(statuses))
		argPos++
	}

	query += " ORDER BY created_at DESC"
	if filters.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argPos)
		args = append(args, filters.Limit)
		argPos++
	}
	if filters.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argPos)
		args = append(args, filters.Offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list consultants: %w", err)
	}
	defer rows.Close()

	consultants := []domain.Consultant{}
	for rows.Next() {
		var c domain.Consultant
		var availabilityDate *time.Time
		err := rows.Scan(
			&c.ID, &c.UserID, &c.CompanyID, &c.FirstName, &c.LastName, &c.Title,
			&c.ExperienceYears, &c.AvailabilityStatus, &availabilityDate,
			&c.DailyRate, &c.Bio, &c.Location,
			&c.RemoteWork, &c.MaxTravelDistance, &c.PhotoURL,
			&c.CreatedAt, &c.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		if availabilityDate != nil {
			d := availabilityDate.Format("2006-01-02")
			c.AvailabilityDate = &d
		}
		c.Skills = []domain.Skill{}
		consultants = append(consultants, c)
	}
	return consultants, rows.Err()
}

func (r *consultantRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM consultant_skills WHERE consultant_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete skills: %w", err)
	}

	// Deleting an already-missing consultant is not an error
	if _, err := tx.Exec(ctx, `DELETE FROM consultants WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete consultant: %w", err)
	}

	return tx.Commit(ctx)
}

// replaceSkills rewrites the skill rows of a consultant (delete all, insert new)
func replaceSkills(ctx context.Context, tx pgx.Tx, consultantID int64, skills []domain.Skill) error {
	if _, err := tx.Exec(ctx, `DELETE FROM consultant_skills WHERE consultant_id = $1`, consultantID); err != nil {
		return fmt.Errorf("failed to clean skills: %w", err)
	}

	if len(skills) == 0 {
		return nil
	}

	insert := `
		INSERT INTO consultant_skills (consultant_id, name, level, years, category)
		VALUES ($1, $2, $3, $4, $5)`
	for _, s := range skills {
		if _, err := tx.Exec(ctx, insert, consultantID, s.Name, s.Level, s.Years, s.Category); err != nil {
			return fmt.Errorf("failed to insert skill %q: %w", s.Name, err)
		}
	}
	return nil
}

func (r *consultantRepository) getSkills(ctx context.Context, consultantID int64) ([]domain.Skill, error) {
	query := `
		SELECT id, name, COALESCE(level, ''), years, COALESCE(category, '')
		FROM consultant_skills WHERE consultant_id = $1 ORDER BY id`

	rows, err := r.db.Query(ctx, query, consultantID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch skills: %w", err)
	}
	defer rows.Close()

	skills := []domain.Skill{}
	for rows.Next() {
		var s domain.Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.Level, &s.Years, &s.Category); err != nil {
			return nil, err
		}
		skills = append(skills, s)
	}
	return skills, rows.Err()
}

func parseDate(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil
	}
	return &t
}
