package repository

import (
	"context"

	"github.com/Edmartinezzz/insulaguaira-sub000/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UsuarioRepository interface {
	FindByUsuario(ctx context.Context, usuario string) (*model.Usuario, error)
	Create(ctx context.Context, u *model.Usuario) error
	// Upsert by username; used by cmd/seedadmin to (re)provision the admin.
	Upsert(ctx context.Context, u *model.Usuario) error
}

type usuarioRepo struct{ db *gorm.DB }

func NewUsuarioRepository(db *gorm.DB) UsuarioRepository { return &usuarioRepo{db: db} }

func (r *usuarioRepo) FindByUsuario(ctx context.Context, usuario string) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).Where("usuario = ? AND activo = true", usuario).First(&u).Error
	return &u, err
}

func (r *usuarioRepo) Create(ctx context.Context, u *model.Usuario) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *usuarioRepo) Upsert(ctx context.Context, u *model.Usuario) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "usuario"}},
		DoUpdates: clause.AssignmentColumns([]string{"contrasena", "nombre", "es_admin", "activo"}),
	}).Create(u).Error
}
