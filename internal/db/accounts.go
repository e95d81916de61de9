package db

import (
	"context"
	"fmt"

	"finaxis-assistant/internal/core"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AccountRepo reads the chart of accounts. The assistant never writes
// accounts; maintenance belongs to the accounting module.
type AccountRepo struct {
	pool *pgxpool.Pool
}

func NewAccountRepo(pool *pgxpool.Pool) *AccountRepo {
	return &AccountRepo{pool: pool}
}

// ListAccounts returns the full chart of accounts for a company, ordered by
// code. The resolver scores the whole list in memory — charts are a few
// hundred rows at most.
func (r *AccountRepo) ListAccounts(ctx context.Context, companyCode string) ([]core.Account, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, company_code, code, name, is_leaf
		FROM accounts
		WHERE company_code = $1
		ORDER BY code
	`, companyCode)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []core.Account
	for rows.Next() {
		var a core.Account
		if err := rows.Scan(&a.ID, &a.CompanyCode, &a.Code, &a.Name, &a.Leaf); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}
