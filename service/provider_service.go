package service

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"vaadbayit/domain"
	"vaadbayit/repository"
)

// ProviderService the committee's service-provider directory.
type ProviderService struct {
	repo     repository.ProvidersRepository
	identity Identity
	logger   *zap.Logger
}

func NewProviderService(repo repository.ProvidersRepository, identity Identity, logger *zap.Logger) *ProviderService {
	return &ProviderService{
		repo:     repo,
		identity: identity,
		logger:   logger,
	}
}

// GetServiceProviders lists providers newest first. onlyActive narrows the
// list to is_active rows; without it no active filter is applied at all.
func (s *ProviderService) GetServiceProviders(ctx context.Context, onlyActive bool) ([]domain.ServiceProvider, error) {
	return s.repo.List(ctx, onlyActive)
}

// CreateProviderInput create parameters for a provider
type CreateProviderInput struct {
	Name     string
	Phone    string
	Email    string
	Category domain.ProviderCategory
	Notes    string
}

// CreateServiceProvider validates and inserts a provider row. Name is the
// only required field; an empty category is stored as-is.
func (s *ProviderService) CreateServiceProvider(ctx context.Context, in CreateProviderInput) (*domain.ServiceProvider, error) {
	if in.Name == "" {
		return nil, domain.Required("name")
	}
	if in.Category != "" && !in.Category.Valid() {
		return nil, domain.Invalid("category", "unknown value")
	}

	if _, err := requireUser(ctx, s.identity); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, repository.NewProvider{
		Name:     in.Name,
		Phone:    in.Phone,
		Email:    in.Email,
		Category: in.Category,
		Notes:    in.Notes,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("service provider created", zap.String("provider_id", created.ID))
	return created, nil
}

// UpdateServiceProvider applies a sparse patch to a provider row.
func (s *ProviderService) UpdateServiceProvider(ctx context.Context, id string, patch repository.ProviderPatch) (*domain.ServiceProvider, error) {
	if id == "" {
		return nil, domain.Required("id")
	}
	if patch.Category != nil && !patch.Category.Valid() {
		return nil, domain.Invalid("category", "unknown value")
	}
	if _, err := requireUser(ctx, s.identity); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, patch)
}

// DeleteServiceProvider hard-deletes a provider row.
func (s *ProviderService) DeleteServiceProvider(ctx context.Context, id string) error {
	if id == "" {
		return domain.Required("id")
	}
	if _, err := requireUser(ctx, s.identity); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("service provider deleted", zap.String("provider_id", id))
	return nil
}

// providersExportHeader export column order for the directory spreadsheet
var providersExportHeader = []string{
	"Name",
	"Phone",
	"Email",
	"Category",
	"Notes",
	"Active",
	"Created",
}

// ExportProvidersExcel renders the full provider directory (active and
// inactive) as an xlsx workbook.
func (s *ProviderService) ExportProvidersExcel(ctx context.Context) ([]byte, error) {
	providers, err := s.repo.List(ctx, false)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()

	sheetName := "Service Providers"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range providersExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
	}

	columnWidths := []float64{25, 18, 28, 15, 40, 10, 20}
	for i := range providersExportHeader {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert column number: %w", err)
		}
		if err := f.SetColWidth(sheetName, col, col, columnWidths[i]); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for i, p := range providers {
		row := []any{
			p.Name,
			p.Phone,
			p.Email,
			string(p.Category),
			p.Notes,
			p.IsActive,
			p.CreatedAt.Format(time.RFC3339),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close workbook: %w", err)
	}

	s.logger.Info("provider directory exported", zap.Int("rows", len(providers)))
	return buf.Bytes(), nil
}
