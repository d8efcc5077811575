package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"

	"taxsage/internal/csvexport"
	"taxsage/internal/domain"
	"taxsage/internal/itr"
	"taxsage/internal/port"
	"taxsage/internal/xlsxexport"
)

// ReportService produces downloadable exports of filings.
type ReportService interface {
	// FilingWorkbook renders one filing's computation as an xlsx workbook.
	FilingWorkbook(ctx context.Context, userID, filingID uuid.UUID) ([]byte, string, error)
	// FilingsCSV streams every filing of the user as CSV rows.
	FilingsCSV(ctx context.Context, userID uuid.UUID, w io.Writer) error
}

type reportService struct {
	filingRepo port.FilingRepository
}

// NewReportService creates a new ReportService implementation.
func NewReportService(filingRepo port.FilingRepository) ReportService {
	return &reportService{filingRepo: filingRepo}
}

func (s *reportService) FilingWorkbook(ctx context.Context, userID, filingID uuid.UUID) ([]byte, string, error) {
	filing, err := s.filingRepo.GetByID(ctx, filingID)
	if err != nil {
		return nil, "", err
	}
	if filing.UserID != userID {
		return nil, "", domain.ErrForbidden
	}

	var in itr.FilingInput
	if len(filing.Input) > 0 {
		if err := json.Unmarshal(filing.Input, &in); err != nil {
			return nil, "", fmt.Errorf("unmarshaling filing input: %w", err)
		}
	}
	if !in.TaxRegime.Valid() {
		in.TaxRegime = itr.TaxRegime(filing.TaxRegime)
	}

	totals := itr.Aggregate(in)
	tax := itr.Compute(totals, in.TaxRegime)

	f, err := xlsxexport.Build(filing.AssessmentYear, in, totals, tax)
	if err != nil {
		return nil, "", fmt.Errorf("building workbook: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", fmt.Errorf("writing workbook: %w", err)
	}

	filename := fmt.Sprintf("itr-%s.xlsx", filing.AssessmentYear)
	return buf.Bytes(), filename, nil
}

func (s *reportService) FilingsCSV(ctx context.Context, userID uuid.UUID, w io.Writer) error {
	// Page through in batches to keep memory bounded.
	const batch = 200

	if _, err := w.Write(csvexport.BOM); err != nil {
		return fmt.Errorf("writing BOM: %w", err)
	}
	cw := csvexport.NewWriter(w)
	if err := cw.WriteHeader(); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for offset := 0; ; offset += batch {
		filings, total, err := s.filingRepo.ListByUser(ctx, userID, offset, batch)
		if err != nil {
			return err
		}
		if err := cw.WriteFilings(filings); err != nil {
			return fmt.Errorf("writing rows: %w", err)
		}
		if offset+batch >= total || len(filings) == 0 {
			break
		}
	}
	return cw.Flush()
}
