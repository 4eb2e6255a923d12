package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/davihchagas/feedback-system-project/internal/domain/entity"
	"github.com/davihchagas/feedback-system-project/internal/domain/repository"
)

var (
	_ repository.FeedbackRepository = (*FeedbackRepo)(nil)
	_ repository.ResponseRepository = (*ResponseRepo)(nil)
)

// FeedbackRepo implementación del puerto FeedbackRepository sobre PostgreSQL.
type FeedbackRepo struct {
	q Querier
}

// NewFeedbackRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFeedbackRepository(q Querier) *FeedbackRepo {
	return &FeedbackRepo{q: q}
}

// Insert delega en la función insert_feedback, que valida producto activo, nota y comentario.
func (r *FeedbackRepo) Insert(ctx context.Context, f *entity.Feedback) error {
	var id string
	err := r.q.QueryRow(ctx, `SELECT insert_feedback($1, $2, $3, $4, $5, $6)`,
		f.ID, f.ClientID, f.ProductID, f.Rating, f.ShortComment, f.CreatedAt,
	).Scan(&id)
	if err != nil {
		return mapWriteError("insert feedback", err)
	}
	f.ID = id
	return nil
}

// GetByID obtiene un feedback por ID.
func (r *FeedbackRepo) GetByID(ctx context.Context, id string) (*entity.Feedback, error) {
	query := `SELECT id, client_id, product_id, rating, short_comment, created_at FROM feedbacks WHERE id = $1`
	var f entity.Feedback
	err := r.q.QueryRow(ctx, query, id).Scan(&f.ID, &f.ClientID, &f.ProductID, &f.Rating, &f.ShortComment, &f.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapReadError("get feedback", err)
	}
	return &f, nil
}

// ListDetailed devuelve feedback + producto + cliente, del más reciente al más antiguo.
func (r *FeedbackRepo) ListDetailed(ctx context.Context, filter repository.FeedbackFilter) ([]*entity.FeedbackDetail, error) {
	where, args := feedbackWhere(filter)
	query := `
		SELECT f.id, f.client_id, f.product_id, f.rating, f.short_comment, f.created_at,
		       p.name, p.category, c.name
		FROM feedbacks f
		JOIN products p ON p.id = f.product_id
		JOIN clients c ON c.id = f.client_id` + where + `
		ORDER BY f.created_at DESC, f.id DESC`
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapReadError("list feedbacks", err)
	}
	defer rows.Close()

	list := []*entity.FeedbackDetail{}
	for rows.Next() {
		var d entity.FeedbackDetail
		if err := rows.Scan(
			&d.ID, &d.ClientID, &d.ProductID, &d.Rating, &d.ShortComment, &d.CreatedAt,
			&d.ProductName, &d.Category, &d.ClientName,
		); err != nil {
			return nil, mapReadError("scan feedback", err)
		}
		list = append(list, &d)
	}
	return list, mapReadError("list feedbacks", rows.Err())
}

// feedbackWhere arma la cláusula WHERE con placeholders posicionales.
func feedbackWhere(f repository.FeedbackFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.ProductID != "" {
		add("f.product_id = $%d", f.ProductID)
	}
	if f.ClientID != "" {
		add("f.client_id = $%d", f.ClientID)
	}
	if f.DateFrom != nil {
		add("f.created_at >= $%d", *f.DateFrom)
	}
	if f.DateTo != nil {
		add("f.created_at <= $%d", *f.DateTo)
	}
	if f.RatingMin != nil {
		add("f.rating >= $%d", *f.RatingMin)
	}
	if f.RatingMax != nil {
		add("f.rating <= $%d", *f.RatingMax)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return "\n\t\tWHERE " + strings.Join(conds, " AND "), args
}

// ResponseRepo implementación append-only del puerto ResponseRepository.
type ResponseRepo struct {
	q Querier
}

// NewResponseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewResponseRepository(q Querier) *ResponseRepo {
	return &ResponseRepo{q: q}
}

// Create inserta la respuesta y asigna el ID generado por la secuencia.
func (r *ResponseRepo) Create(ctx context.Context, resp *entity.Response) error {
	query := `
		INSERT INTO responses (feedback_id, analyst_id, response_text, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, resp.FeedbackID, resp.AnalystID, resp.ResponseText, resp.CreatedAt).Scan(&resp.ID)
	return mapWriteError("insert response", err)
}

// ListByFeedback lista las respuestas de un feedback en orden cronológico.
func (r *ResponseRepo) ListByFeedback(ctx context.Context, feedbackID string) ([]*entity.Response, error) {
	query := `
		SELECT r.id, r.feedback_id, r.analyst_id, u.name, r.response_text, r.created_at
		FROM responses r
		JOIN users u ON u.id = r.analyst_id
		WHERE r.feedback_id = $1
		ORDER BY r.created_at, r.id`
	rows, err := r.q.Query(ctx, query, feedbackID)
	if err != nil {
		return nil, mapReadError("list responses", err)
	}
	defer rows.Close()
	list := []*entity.Response{}
	for rows.Next() {
		var resp entity.Response
		if err := rows.Scan(&resp.ID, &resp.FeedbackID, &resp.AnalystID, &resp.AnalystName, &resp.ResponseText, &resp.CreatedAt); err != nil {
			return nil, mapReadError("scan response", err)
		}
		list = append(list, &resp)
	}
	return list, mapReadError("list responses", rows.Err())
}
