package chat

import (
	"context"

	"github.com/m04kA/sto-booking-bot/pkg/dbmetrics"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor
type TxExecutor = dbmetrics.TxExecutor

// TransactionManager выполняет функцию в транзакции, передавая её через контекст
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
