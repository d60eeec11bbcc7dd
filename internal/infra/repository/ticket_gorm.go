package repository

import (
	"context"
	"sort"

	"github.com/miigangls/restaurant-tickets/internal/domain/model"
	repo "github.com/miigangls/restaurant-tickets/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TicketGormRepository struct {
	db *gorm.DB
}

// DI
func NewTicketGormRepository(db *gorm.DB) *TicketGormRepository {
	return &TicketGormRepository{db: db}
}

// 公開（is_active=true）のものだけ、新しい順
func (r *TicketGormRepository) ListActive(ctx context.Context) ([]model.Ticket, error) {
	var tickets []model.Ticket
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at desc").
		Order("id desc").
		Find(&tickets).Error
	if err != nil {
		return []model.Ticket{}, err
	}
	return tickets, nil
}

// IDで取得
func (r *TicketGormRepository) FindByID(ctx context.Context, id string) (model.Ticket, error) {
	var t model.Ticket
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&t).Error
	if err != nil {
		return model.Ticket{}, translate(err)
	}
	return t, nil
}

func (r *TicketGormRepository) FindByTitle(ctx context.Context, title string) (model.Ticket, error) {
	var t model.Ticket
	err := r.db.WithContext(ctx).Where("title = ?", title).First(&t).Error
	if err != nil {
		return model.Ticket{}, translate(err)
	}
	return t, nil
}

// SELECT ... FOR UPDATE。
// 複数Txが同じ順番でロックを取るようにidの昇順に並べる（デッドロック回避）
func (r *TicketGormRepository) FindByIDsForUpdate(ctx context.Context, ids []string) ([]model.Ticket, error) {
	if len(ids) == 0 {
		return []model.Ticket{}, nil
	}
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)

	var tickets []model.Ticket
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", sorted).
		Order("id asc").
		Find(&tickets).Error
	if err != nil {
		return []model.Ticket{}, err
	}
	return tickets, nil
}

// 作成
func (r *TicketGormRepository) Create(ctx context.Context, t model.Ticket) (model.Ticket, error) {
	if err := r.db.WithContext(ctx).Create(&t).Error; err != nil {
		return model.Ticket{}, translate(err)
	}
	return t, nil
}

// 指定された列とupdated_atだけ更新
func (r *TicketGormRepository) Update(ctx context.Context, id string, ch repo.TicketChanges) error {
	cols := map[string]any{"updated_at": ch.UpdatedAt}
	if ch.Title != nil {
		cols["title"] = *ch.Title
	}
	if ch.Description != nil {
		cols["description"] = *ch.Description
	}
	if ch.Category != nil {
		cols["category"] = *ch.Category
	}
	if ch.Price != nil {
		cols["price"] = *ch.Price
	}
	if ch.ImageURL != nil {
		cols["image_url"] = *ch.ImageURL
	}
	if ch.Stock != nil {
		cols["stock"] = *ch.Stock
	}
	if ch.IsActive != nil {
		cols["is_active"] = *ch.IsActive
	}

	res := r.db.WithContext(ctx).Model(&model.Ticket{}).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 論理削除（is_active=false）。注文明細から参照されるので行は残す
func (r *TicketGormRepository) SoftDelete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Model(&model.Ticket{}).
		Where("id = ?", id).
		Update("is_active", false)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
