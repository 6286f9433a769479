package pgsql

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/edusuite/school_finance_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every repository over one shared pool. timeout
// bounds each store interaction.
func NewRepositoryProvider(dbPool *pgxpool.Pool, timeout time.Duration) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		SettingsRepo:    newPgxSettingsRepository(dbPool, timeout),
		AccountRepo:     newPgxAccountRepository(dbPool, timeout),
		CategoryRepo:    newPgxCategoryRepository(dbPool, timeout),
		TransactionRepo: newPgxTransactionRepository(dbPool, timeout),
		FeeRepo:         newPgxFeeRepository(dbPool, timeout),
		PaymentRepo:     newPgxPaymentRepository(dbPool, timeout),
		ReportingRepo:   newPgxReportingRepository(dbPool, timeout),
	}
}
