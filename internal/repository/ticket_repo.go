package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Edmartinezzz/insulaguaira-sub000/internal/model"
)

// TicketRepository issues the sequential, date-scoped ticket numbers.
type TicketRepository interface {
	// NextTicketTx returns the next ticket number for wall-clock "hoy".
	// The singleton counter row is read under a row lock, reset when the day
	// changed, incremented and persisted inside the caller's transaction, so
	// concurrent requests never receive duplicate numbers.
	NextTicketTx(tx *gorm.DB, hoy string) (int, error)
}

type ticketRepo struct{ db *gorm.DB }

func NewTicketRepository(db *gorm.DB) TicketRepository { return &ticketRepo{db: db} }

func (r *ticketRepo) NextTicketTx(tx *gorm.DB, hoy string) (int, error) {
	var counter model.TicketCounter
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&counter, 1).Error; err != nil {
		return 0, err
	}

	if counter.FechaUltimoReset != hoy {
		counter.NumeroActual = 0
		counter.FechaUltimoReset = hoy
	}
	counter.NumeroActual++

	if err := tx.Save(&counter).Error; err != nil {
		return 0, err
	}
	return counter.NumeroActual, nil
}
