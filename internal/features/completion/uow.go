// Package completion — uow.go связывает единицу работы с транзакцией PostgreSQL.
package completion

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"serotonyl.ru/habit-casino/internal/db/postgres"
	"serotonyl.ru/habit-casino/internal/features/habits"
	"serotonyl.ru/habit-casino/internal/features/inventory"
	"serotonyl.ru/habit-casino/internal/features/rewards"
	"serotonyl.ru/habit-casino/internal/features/users"
)

// PgTxRunner открывает транзакцию в пуле и отдаёт репозитории на ней.
type PgTxRunner struct {
	pool *pgxpool.Pool
}

// NewPgTxRunner создаёт единицу работы поверх пула.
func NewPgTxRunner(pool *pgxpool.Pool) *PgTxRunner {
	return &PgTxRunner{pool: pool}
}

// InTx выполняет fn в транзакции.
func (r *PgTxRunner) InTx(ctx context.Context, fn func(UnitOfWork) error) error {
	return postgres.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(&pgUnit{
			habits: habits.NewRepository(tx),
			users:  users.NewRepository(tx),
			loot:   inventory.NewRepository(tx),
		})
	})
}

type pgUnit struct {
	habits *habits.Repository
	users  *users.Repository
	loot   *inventory.Repository
}

func (u *pgUnit) Habits() HabitStore        { return u.habits }
func (u *pgUnit) Users() UserStore          { return u.users }
func (u *pgUnit) Loot() rewards.LootCreator { return u.loot }
