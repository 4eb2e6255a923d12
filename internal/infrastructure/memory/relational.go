package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/davihchagas/feedback-system-project/internal/domain"
	"github.com/davihchagas/feedback-system-project/internal/domain/entity"
	"github.com/davihchagas/feedback-system-project/internal/domain/repository"
)

type userRepo struct{ s *Store }

func (r *userRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.injected(OpUserCreate); err != nil {
		return err
	}
	if _, ok := r.s.t.users[u.ID]; ok {
		return domain.ErrDuplicateID
	}
	for _, existing := range r.s.t.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.s.t.users[u.ID] = *u
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.t.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.t.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *userRepo) Update(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.t.users[u.ID]; !ok {
		return domain.ErrNotFound
	}
	for id, existing := range r.s.t.users {
		if id != u.ID && strings.EqualFold(existing.Email, u.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.s.t.users[u.ID] = *u
	return nil
}

func (r *userRepo) SetActive(_ context.Context, id string, active bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.t.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.Active = active
	r.s.t.users[id] = u
	return nil
}

func (r *userRepo) List(_ context.Context, role *entity.Role) ([]*entity.UserWithClient, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.UserWithClient, 0, len(r.s.t.users))
	for _, u := range r.s.t.users {
		if role != nil && u.Role != *role {
			continue
		}
		row := &entity.UserWithClient{User: u}
		for _, c := range r.s.t.clients {
			if c.UserID == u.ID {
				id := c.ID
				row.ClientID = &id
				row.Document = c.Document
				break
			}
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type clientRepo struct{ s *Store }

func (r *clientRepo) Create(_ context.Context, c *entity.Client) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.injected(OpClientCreate); err != nil {
		return err
	}
	if _, ok := r.s.t.clients[c.ID]; ok {
		return domain.ErrDuplicateID
	}
	if _, ok := r.s.t.users[c.UserID]; !ok {
		return domain.ErrReferentialIntegrity
	}
	// Unicidad de user_id: mismo error que clients_user_id_key en PostgreSQL.
	for _, existing := range r.s.t.clients {
		if existing.UserID == c.UserID {
			return domain.ErrDuplicateID
		}
	}
	r.s.t.clients[c.ID] = *c
	return nil
}

func (r *clientRepo) GetByUserID(_ context.Context, userID string) (*entity.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.t.clients {
		if c.UserID == userID {
			return &c, nil
		}
	}
	return nil, nil
}

func (r *clientRepo) Update(_ context.Context, c *entity.Client) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.t.clients[c.ID]
	if !ok {
		return domain.ErrNotFound
	}
	existing.Name = c.Name
	existing.Document = c.Document
	r.s.t.clients[c.ID] = existing
	return nil
}

type productRepo struct{ s *Store }

func (r *productRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.injected(OpProductCreate); err != nil {
		return err
	}
	if _, ok := r.s.t.products[p.ID]; ok {
		return domain.ErrDuplicateID
	}
	r.s.t.products[p.ID] = *p
	return nil
}

func (r *productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.t.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *productRepo) SetActive(_ context.Context, id string, active bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.t.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Active = active
	r.s.t.products[id] = p
	return nil
}

func (r *productRepo) List(_ context.Context, includeInactive bool) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Product, 0, len(r.s.t.products))
	for _, p := range r.s.t.products {
		if !includeInactive && !p.Active {
			continue
		}
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type feedbackRepo struct{ s *Store }

// Insert replica las comprobaciones del procedimiento relacional.
func (r *feedbackRepo) Insert(_ context.Context, f *entity.Feedback) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.injected(OpFeedbackInsert); err != nil {
		return err
	}
	if f.Rating < entity.MinRating || f.Rating > entity.MaxRating {
		return domain.NewValidationError("rating", "debe estar entre 1 y 5")
	}
	if strings.TrimSpace(f.ShortComment) == "" {
		return domain.NewValidationError("shortComment", "es obligatorio")
	}
	p, ok := r.s.t.products[f.ProductID]
	if !ok || !p.Active {
		return domain.NewValidationError("productId", "el producto no existe o está inactivo")
	}
	if _, ok := r.s.t.clients[f.ClientID]; !ok {
		return domain.ErrReferentialIntegrity
	}
	if _, ok := r.s.t.feedbacks[f.ID]; ok {
		return domain.ErrDuplicateID
	}
	r.s.t.feedbacks[f.ID] = *f
	return nil
}

func (r *feedbackRepo) GetByID(_ context.Context, id string) (*entity.Feedback, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	f, ok := r.s.t.feedbacks[id]
	if !ok {
		return nil, nil
	}
	return &f, nil
}

func (r *feedbackRepo) ListDetailed(_ context.Context, filter repository.FeedbackFilter) ([]*entity.FeedbackDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.injected(OpFeedbackListing); err != nil {
		return nil, err
	}
	out := []*entity.FeedbackDetail{}
	for _, f := range r.s.t.feedbacks {
		if !matchFeedback(f, filter) {
			continue
		}
		d := &entity.FeedbackDetail{Feedback: f}
		if p, ok := r.s.t.products[f.ProductID]; ok {
			d.ProductName = p.Name
			d.Category = p.Category
		}
		if c, ok := r.s.t.clients[f.ClientID]; ok {
			d.ClientName = c.Name
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func matchFeedback(f entity.Feedback, filter repository.FeedbackFilter) bool {
	switch {
	case filter.ProductID != "" && f.ProductID != filter.ProductID:
		return false
	case filter.ClientID != "" && f.ClientID != filter.ClientID:
		return false
	case filter.DateFrom != nil && f.CreatedAt.Before(*filter.DateFrom):
		return false
	case filter.DateTo != nil && f.CreatedAt.After(*filter.DateTo):
		return false
	case filter.RatingMin != nil && f.Rating < *filter.RatingMin:
		return false
	case filter.RatingMax != nil && f.Rating > *filter.RatingMax:
		return false
	}
	return true
}

type responseRepo struct{ s *Store }

func (r *responseRepo) Create(_ context.Context, resp *entity.Response) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.injected(OpResponseCreate); err != nil {
		return err
	}
	if _, ok := r.s.t.feedbacks[resp.FeedbackID]; !ok {
		return domain.ErrReferentialIntegrity
	}
	if _, ok := r.s.t.users[resp.AnalystID]; !ok {
		return domain.ErrReferentialIntegrity
	}
	r.s.t.nextResp++
	resp.ID = r.s.t.nextResp
	r.s.t.responses = append(r.s.t.responses, *resp)
	return nil
}

func (r *responseRepo) ListByFeedback(_ context.Context, feedbackID string) ([]*entity.Response, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*entity.Response{}
	for _, resp := range r.s.t.responses {
		if resp.FeedbackID != feedbackID {
			continue
		}
		if u, ok := r.s.t.users[resp.AnalystID]; ok {
			resp.AnalystName = u.Name
		}
		out = append(out, &resp)
	}
	return out, nil
}
