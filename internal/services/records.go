package services

import (
	"fmt"
	"strings"

	"LF-ADMIN/internal"
	"LF-ADMIN/internal/apperrors"

	"gorm.io/gorm"
)

// ListFilter narrows entity listings. Search is matched with LIKE against the
// columns each service names.
type ListFilter struct {
	Status string
	Search string
	Limit  int
}

func (f ListFilter) scope(searchColumns ...string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.Status != "" {
			db = db.Where("status = ?", f.Status)
		}
		if term := strings.TrimSpace(f.Search); term != "" && len(searchColumns) > 0 {
			like := "%" + strings.ToLower(term) + "%"
			clauses := make([]string, 0, len(searchColumns))
			args := make([]interface{}, 0, len(searchColumns))
			for _, col := range searchColumns {
				clauses = append(clauses, fmt.Sprintf("LOWER(%s) LIKE ?", col))
				args = append(args, like)
			}
			db = db.Where(strings.Join(clauses, " OR "), args...)
		}
		if f.Limit > 0 {
			db = db.Limit(f.Limit)
		}
		return db
	}
}

// records holds the gorm plumbing shared by the entity services
type records[T any] struct {
	name string
}

func (r records[T]) list(order string, scopes ...func(*gorm.DB) *gorm.DB) ([]T, error) {
	var items []T
	if err := internal.DB.Scopes(scopes...).Order(order).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", r.name, err)
	}
	return items, nil
}

func (r records[T]) get(id string) (*T, error) {
	var item T
	if err := internal.DB.First(&item, "id = ?", id).Error; err != nil {
		return nil, lookupErr(err)
	}
	return &item, nil
}

func (r records[T]) create(item *T) error {
	if err := internal.DB.Create(item).Error; err != nil {
		return fmt.Errorf("failed to create %s: %w", r.name, err)
	}
	return nil
}

func (r records[T]) save(item *T) error {
	if err := internal.DB.Save(item).Error; err != nil {
		return fmt.Errorf("failed to update %s: %w", r.name, err)
	}
	return nil
}

func (r records[T]) delete(id string) error {
	var item T
	res := internal.DB.Delete(&item, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete %s: %w", r.name, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r records[T]) count(scopes ...func(*gorm.DB) *gorm.DB) (int64, error) {
	var n int64
	var item T
	if err := internal.DB.Model(&item).Scopes(scopes...).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", r.name, err)
	}
	return n, nil
}

// requireValues takes field/value pairs and reports every blank value
func requireValues(pairs ...string) apperrors.ValidationErrors {
	var errs apperrors.ValidationErrors
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			errs = append(errs, apperrors.NewValidation(pairs[i], pairs[i]+" is required"))
		}
	}
	return errs
}
