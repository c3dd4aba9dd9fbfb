package repositories

import (
	"context"
	"fmt"
	"time"

	"tradeportal/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX abstracts the pgx pool so a mock can stand in for tests. Both
// *pgxpool.Pool and pgxmock satisfy it.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// maxChunkOps bounds how many operations go into one transaction. Large
// bulk requests are split into chunks committed sequentially; a failed
// chunk does not roll back chunks committed before it.
const maxChunkOps = 500

type TraderRepository interface {
	ListByBranch(ctx context.Context, branchID string) ([]*models.Trader, error)
	GetByID(ctx context.Context, branchID string, id uuid.UUID) (*models.Trader, error)
	Create(ctx context.Context, trader *models.Trader) error
	Update(ctx context.Context, trader *models.Trader) error
	Delete(ctx context.Context, branchID string, id uuid.UUID) error
	CountByBranch(ctx context.Context, branchID string) (int, error)
	PhoneSet(ctx context.Context, branchID string) (map[string]bool, error)
	BulkInsert(ctx context.Context, branchID string, traders []*models.Trader) *models.BulkWriteResult
	BulkDelete(ctx context.Context, branchID string, ids []uuid.UUID) *models.BulkWriteResult
	UpdateFinancialsByName(ctx context.Context, branchID string, upd *models.FinancialUpdate) (bool, error)
	ListBranches(ctx context.Context) ([]string, error)
	DueCallBacks(ctx context.Context, branchID string, by time.Time) ([]*models.Trader, error)
}

type traderRepo struct {
	db DBTX
}

func NewTraderRepo(db DBTX) TraderRepository {
	return &traderRepo{db: db}
}

const traderColumns = `id, branch_id, name, status, last_activity, call_back_date, phone, website, address, owner_name, owner_profile_link, main_category, categories, workday_timing, total_assets, estimated_annual_revenue, estimated_company_value, employee_count, description, notes, reviews, rating, created_at, updated_at`

const insertTraderSQL = `
	INSERT INTO traders (` + traderColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, NOW(), NOW())
`

func insertArgs(t *models.Trader) []interface{} {
	return []interface{}{
		t.ID, t.BranchID, t.Name, t.Status, t.LastActivity, t.CallBackDate,
		t.Phone, t.Website, t.Address, t.OwnerName, t.OwnerProfileLink,
		t.MainCategory, t.Categories, t.WorkdayTiming, t.TotalAssets,
		t.EstimatedAnnualRevenue, t.EstimatedCompanyValue, t.EmployeeCount,
		t.Description, t.Notes, t.Reviews, t.Rating,
	}
}

func scanTrader(row pgx.Row) (*models.Trader, error) {
	t := &models.Trader{}
	err := row.Scan(&t.ID, &t.BranchID, &t.Name, &t.Status, &t.LastActivity, &t.CallBackDate,
		&t.Phone, &t.Website, &t.Address, &t.OwnerName, &t.OwnerProfileLink,
		&t.MainCategory, &t.Categories, &t.WorkdayTiming, &t.TotalAssets,
		&t.EstimatedAnnualRevenue, &t.EstimatedCompanyValue, &t.EmployeeCount,
		&t.Description, &t.Notes, &t.Reviews, &t.Rating, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *traderRepo) ListByBranch(ctx context.Context, branchID string) ([]*models.Trader, error) {
	query := `
		SELECT ` + traderColumns + `
		FROM traders
		WHERE branch_id = $1
		ORDER BY last_activity DESC, created_at DESC
	`
	rows, err := r.db.Query(ctx, query, branchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var traders []*models.Trader
	for rows.Next() {
		t, err := scanTrader(rows)
		if err != nil {
			return nil, err
		}
		traders = append(traders, t)
	}
	return traders, rows.Err()
}

func (r *traderRepo) GetByID(ctx context.Context, branchID string, id uuid.UUID) (*models.Trader, error) {
	query := `
		SELECT ` + traderColumns + `
		FROM traders
		WHERE branch_id = $1 AND id = $2
	`
	return scanTrader(r.db.QueryRow(ctx, query, branchID, id))
}

func (r *traderRepo) Create(ctx context.Context, trader *models.Trader) error {
	_, err := r.db.Exec(ctx, insertTraderSQL, insertArgs(trader)...)
	return err
}

func (r *traderRepo) Update(ctx context.Context, trader *models.Trader) error {
	query := `
		UPDATE traders
		SET name = $1, status = $2, last_activity = $3, call_back_date = $4, phone = $5, website = $6, address = $7, owner_name = $8, owner_profile_link = $9, main_category = $10, categories = $11, workday_timing = $12, total_assets = $13, estimated_annual_revenue = $14, estimated_company_value = $15, employee_count = $16, description = $17, notes = $18, reviews = $19, rating = $20, updated_at = NOW()
		WHERE branch_id = $21 AND id = $22
	`
	_, err := r.db.Exec(ctx, query,
		trader.Name, trader.Status, trader.LastActivity, trader.CallBackDate,
		trader.Phone, trader.Website, trader.Address, trader.OwnerName, trader.OwnerProfileLink,
		trader.MainCategory, trader.Categories, trader.WorkdayTiming, trader.TotalAssets,
		trader.EstimatedAnnualRevenue, trader.EstimatedCompanyValue, trader.EmployeeCount,
		trader.Description, trader.Notes, trader.Reviews, trader.Rating,
		trader.BranchID, trader.ID)
	return err
}

func (r *traderRepo) Delete(ctx context.Context, branchID string, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM traders WHERE branch_id = $1 AND id = $2`, branchID, id)
	return err
}

func (r *traderRepo) CountByBranch(ctx context.Context, branchID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM traders WHERE branch_id = $1`, branchID).Scan(&count)
	return count, err
}

// PhoneSet loads the normalized phone numbers already stored in a branch in
// one query, for duplicate resolution against an incoming batch.
func (r *traderRepo) PhoneSet(ctx context.Context, branchID string) (map[string]bool, error) {
	query := `SELECT phone FROM traders WHERE branch_id = $1 AND phone IS NOT NULL AND phone <> ''`
	rows, err := r.db.Query(ctx, query, branchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	phones := make(map[string]bool)
	for rows.Next() {
		var phone string
		if err := rows.Scan(&phone); err != nil {
			return nil, err
		}
		phones[phone] = true
	}
	return phones, rows.Err()
}

// BulkInsert writes traders in chunks of at most maxChunkOps, one
// transaction per chunk. A failing chunk is rolled back and its operations
// counted as failed; committed chunks stay applied and later chunks are
// still attempted. Created carries the records that actually committed so
// callers can reconcile without a second read. Every record is stamped with
// branchID so one batch cannot span branch partitions.
func (r *traderRepo) BulkInsert(ctx context.Context, branchID string, traders []*models.Trader) *models.BulkWriteResult {
	result := &models.BulkWriteResult{}
	for _, t := range traders {
		t.BranchID = branchID
	}
	for start := 0; start < len(traders); start += maxChunkOps {
		end := start + maxChunkOps
		if end > len(traders) {
			end = len(traders)
		}
		chunk := traders[start:end]
		if err := r.insertChunk(ctx, chunk); err != nil {
			result.FailureCount += len(chunk)
			result.Error = fmt.Sprintf("chunk starting at %d failed: %v", start, err)
			continue
		}
		result.SuccessCount += len(chunk)
		result.Created = append(result.Created, chunk...)
	}
	return result
}

func (r *traderRepo) insertChunk(ctx context.Context, chunk []*models.Trader) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, t := range chunk {
		if _, err := tx.Exec(ctx, insertTraderSQL, insertArgs(t)...); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// BulkDelete removes traders by id list with the same chunked all-or-nothing
// per chunk semantics as BulkInsert. Task rows for deleted traders are
// cleaned in the same chunk transaction.
func (r *traderRepo) BulkDelete(ctx context.Context, branchID string, ids []uuid.UUID) *models.BulkWriteResult {
	result := &models.BulkWriteResult{}
	for start := 0; start < len(ids); start += maxChunkOps {
		end := start + maxChunkOps
		if end > len(ids) {
			end = len(ids)
		}
		chunk := ids[start:end]
		if err := r.deleteChunk(ctx, branchID, chunk); err != nil {
			result.FailureCount += len(chunk)
			result.Error = fmt.Sprintf("chunk starting at %d failed: %v", start, err)
			continue
		}
		result.SuccessCount += len(chunk)
	}
	return result
}

func (r *traderRepo) deleteChunk(ctx context.Context, branchID string, chunk []uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, id := range chunk {
		if _, err := tx.Exec(ctx, `DELETE FROM tasks WHERE branch_id = $1 AND trader_id = $2`, branchID, id); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM traders WHERE branch_id = $1 AND id = $2`, branchID, id); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// ListBranches returns every branch partition that currently holds traders.
func (r *traderRepo) ListBranches(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT DISTINCT branch_id FROM traders ORDER BY branch_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var branches []string
	for rows.Next() {
		var b string
		if err := rows.Scan(&b); err != nil {
			return nil, err
		}
		branches = append(branches, b)
	}
	return branches, rows.Err()
}

// DueCallBacks lists a branch's call-back traders whose call-back date has
// arrived, for the daily reminder scan.
func (r *traderRepo) DueCallBacks(ctx context.Context, branchID string, by time.Time) ([]*models.Trader, error) {
	query := `
		SELECT ` + traderColumns + `
		FROM traders
		WHERE branch_id = $1 AND status = $2 AND call_back_date IS NOT NULL AND call_back_date <= $3
		ORDER BY call_back_date ASC
	`
	rows, err := r.db.Query(ctx, query, branchID, models.StatusCallBack, by)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var traders []*models.Trader
	for rows.Next() {
		t, err := scanTrader(rows)
		if err != nil {
			return nil, err
		}
		traders = append(traders, t)
	}
	return traders, rows.Err()
}

// UpdateFinancialsByName updates only the financial estimate columns on the
// trader whose name matches exactly. Returns false when no row matched.
func (r *traderRepo) UpdateFinancialsByName(ctx context.Context, branchID string, upd *models.FinancialUpdate) (bool, error) {
	query := `
		UPDATE traders
		SET total_assets = COALESCE($1, total_assets),
		    estimated_annual_revenue = COALESCE($2, estimated_annual_revenue),
		    estimated_company_value = COALESCE($3, estimated_company_value),
		    employee_count = COALESCE($4, employee_count),
		    updated_at = NOW()
		WHERE branch_id = $5 AND name = $6
	`
	tag, err := r.db.Exec(ctx, query, upd.TotalAssets, upd.EstimatedAnnualRevenue, upd.EstimatedCompanyValue, upd.EmployeeCount, branchID, upd.Name)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
