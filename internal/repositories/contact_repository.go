package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"portfolio/internal/apperr"
	"portfolio/internal/models"
)

type ContactRepository interface {
	Create(ctx context.Context, c *models.Contact) error
	GetByID(ctx context.Context, id int64) (*models.Contact, error)
	// List returns submissions in insertion order (id ascending).
	List(ctx context.Context) ([]models.Contact, error)
	SetReply(ctx context.Context, id int64, reply string, at time.Time) error
	Delete(ctx context.Context, id int64) error
}

type contactRepository struct {
	db *sql.DB
}

func NewContactRepository(db *sql.DB) ContactRepository {
	return &contactRepository{db: db}
}

const contactColumns = `id, name, email, message, status, reply, reply_date, created_at`

func scanContact(s rowScanner) (*models.Contact, error) {
	var (
		c         models.Contact
		reply     sql.NullString
		replyDate sql.NullTime
	)
	if err := s.Scan(&c.ID, &c.Name, &c.Email, &c.Message, &c.Status, &reply, &replyDate, &c.CreatedAt); err != nil {
		return nil, err
	}
	if reply.Valid {
		r := reply.String
		c.Reply = &r
	}
	if replyDate.Valid {
		t := replyDate.Time
		c.ReplyDate = &t
	}
	return &c, nil
}

func (r *contactRepository) Create(ctx context.Context, c *models.Contact) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO contacts (name, email, message, status, created_at)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id`, c.Name, c.Email, c.Message, c.Status, c.CreatedAt).Scan(&c.ID)
}

func (r *contactRepository) GetByID(ctx context.Context, id int64) (*models.Contact, error) {
	c, err := scanContact(r.db.QueryRowContext(ctx, `SELECT `+contactColumns+` FROM contacts WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("contact", id)
		}
		return nil, err
	}
	return c, nil
}

func (r *contactRepository) List(ctx context.Context) ([]models.Contact, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+contactColumns+` FROM contacts ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Contact{}
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *contactRepository) SetReply(ctx context.Context, id int64, reply string, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE contacts SET status = $1, reply = $2, reply_date = $3 WHERE id = $4`,
		models.ContactReplied, reply, at, id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res, apperr.NotFound("contact", id))
}

func (r *contactRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res, apperr.NotFound("contact", id))
}
