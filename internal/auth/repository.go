package auth

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	GetManager(ctx context.Context, idNumber string) (*Manager, error)
	CreateManager(ctx context.Context, manager *Manager) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetManager(ctx context.Context, idNumber string) (*Manager, error) {
	var manager Manager
	err := r.db.WithContext(ctx).Where("id_number = ?", idNumber).First(&manager).Error
	if err != nil {
		return nil, err
	}
	return &manager, nil
}

func (r *repository) CreateManager(ctx context.Context, manager *Manager) error {
	return r.db.WithContext(ctx).Create(manager).Error
}
