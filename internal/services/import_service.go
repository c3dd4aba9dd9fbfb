package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"tradeportal/internal/caching"
	"tradeportal/internal/importer"
	"tradeportal/internal/models"
	"tradeportal/internal/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ImportService interface {
	ImportTraders(ctx context.Context, branchID, filename string, upload io.Reader) (*models.ImportResult, error)
	FinancialBulkUpdate(ctx context.Context, branchID string, upload io.Reader) (*models.FinancialUpdateResult, error)
}

type importService struct {
	traderRepo repositories.TraderRepository
	cache      caching.CacheService
	archive    ArchiveService
	logger     *zap.Logger
}

func NewImportService(traderRepo repositories.TraderRepository, cache caching.CacheService, archive ArchiveService, logger *zap.Logger) ImportService {
	return &importService{
		traderRepo: traderRepo,
		cache:      cache,
		archive:    archive,
		logger:     logger,
	}
}

// ImportTraders runs the bulk reconciliation pipeline: tokenize, map rows
// onto the trader schema, resolve duplicates by normalized phone against
// both the stored set and the batch itself, then write in chunks.
//
// Validation failures (row cap, corrupt framing) reject the upload before
// any write. The duplicate check is evaluated at submission time only; two
// overlapping imports racing each other can both insert, which is an
// accepted limitation.
func (s *importService) ImportTraders(ctx context.Context, branchID, filename string, upload io.Reader) (*models.ImportResult, error) {
	raw, err := io.ReadAll(upload)
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}

	if s.archive != nil {
		if object, err := s.archive.ArchiveUpload(ctx, branchID, filename, raw); err != nil {
			s.logger.Warn("upload archival failed", zap.String("branch", branchID), zap.Error(err))
		} else {
			s.logger.Info("upload archived", zap.String("branch", branchID), zap.String("object", object))
		}
	}

	rows, err := importer.ParseCSV(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	result := &models.ImportResult{RowsRead: len(rows)}

	var drafts []*models.TraderDraft
	for _, row := range rows {
		draft := importer.MapRow(row, now)
		if draft == nil {
			result.RowsDropped++
			continue
		}
		drafts = append(drafts, draft)
	}

	existing, err := s.traderRepo.PhoneSet(ctx, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to load existing phone numbers: %w", err)
	}

	accepted, skipped := importer.ResolveBatch(existing, drafts)
	result.Skipped = skipped

	if len(accepted) == 0 {
		return result, nil
	}

	traders := make([]*models.Trader, 0, len(accepted))
	for _, d := range accepted {
		traders = append(traders, draftToTrader(branchID, d))
	}

	write := s.traderRepo.BulkInsert(ctx, branchID, traders)
	result.Imported = write.SuccessCount
	result.Failed = write.FailureCount
	result.Created = write.Created
	result.Error = write.Error

	if err := s.cache.InvalidateBranch(ctx, branchID); err != nil {
		s.logger.Warn("cache invalidation failed after import", zap.String("branch", branchID), zap.Error(err))
	}

	s.logger.Info("trader import finished",
		zap.String("branch", branchID),
		zap.Int("rows", result.RowsRead),
		zap.Int("imported", result.Imported),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", result.Failed))

	return result, nil
}

func draftToTrader(branchID string, d *models.TraderDraft) *models.Trader {
	t := &models.Trader{
		ID:                     uuid.New(),
		BranchID:               branchID,
		Name:                   d.Name,
		Status:                 d.Status,
		LastActivity:           d.LastActivity,
		Website:                d.Website,
		Address:                d.Address,
		OwnerName:              d.OwnerName,
		OwnerProfileLink:       d.OwnerProfileLink,
		MainCategory:           d.MainCategory,
		Categories:             d.Categories,
		WorkdayTiming:          d.WorkdayTiming,
		TotalAssets:            d.TotalAssets,
		EstimatedAnnualRevenue: d.EstimatedAnnualRevenue,
		EstimatedCompanyValue:  d.EstimatedCompanyValue,
		EmployeeCount:          d.EmployeeCount,
		Description:            d.Description,
		Notes:                  d.Notes,
		Reviews:                d.Reviews,
		Rating:                 d.Rating,
	}
	if d.Phone != "" {
		phone := d.Phone
		t.Phone = &phone
	}
	return t
}

// FinancialBulkUpdate applies a name-keyed CSV of financial estimates.
// Unmatched names are counted and reported, never fatal.
func (s *importService) FinancialBulkUpdate(ctx context.Context, branchID string, upload io.Reader) (*models.FinancialUpdateResult, error) {
	rows, err := importer.ParseCSV(upload)
	if err != nil {
		return nil, err
	}

	result := &models.FinancialUpdateResult{}
	for _, row := range rows {
		upd := importer.MapFinancialRow(row)
		if upd == nil {
			continue
		}
		matched, err := s.traderRepo.UpdateFinancialsByName(ctx, branchID, upd)
		if err != nil {
			return nil, fmt.Errorf("failed to update financials: %w", err)
		}
		if matched {
			result.Updated++
		} else {
			result.Unmatched++
			result.UnmatchedNames = append(result.UnmatchedNames, upd.Name)
		}
	}

	if result.Updated > 0 {
		if err := s.cache.InvalidateBranch(ctx, branchID); err != nil {
			s.logger.Warn("cache invalidation failed after financial update", zap.String("branch", branchID), zap.Error(err))
		}
	}
	return result, nil
}
