package service

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/smartjanseva/janseva-api/internal/domain/repository"
)

// reportPageSize is how many rows are pulled per repository call while
// streaming a workbook.
const reportPageSize = 500

// ReportService builds Excel exports for the admin dashboard.
type ReportService struct {
	complaintRepo repository.ComplaintRepository
	billRepo      repository.BillRepository
}

// NewReportService creates a new report service.
func NewReportService(
	complaintRepo repository.ComplaintRepository,
	billRepo repository.BillRepository,
) *ReportService {
	return &ReportService{
		complaintRepo: complaintRepo,
		billRepo:      billRepo,
	}
}

// WriteComplaintsReport streams all complaints (optionally filtered by
// status) into an xlsx workbook written to w.
func (s *ReportService) WriteComplaintsReport(w io.Writer, status string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Complaints"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return fmt.Errorf("create stream writer: %w", err)
	}

	headers := []interface{}{"Reference", "Department", "Subject", "Location", "Status", "Remark", "Filed At", "Updated At"}
	if err := sw.SetRow("A1", headers); err != nil {
		log.Printf("[ReportService] Failed to write header row: %v", err)
	}

	rowNum := 2
	for offset := 0; ; offset += reportPageSize {
		complaints, err := s.complaintRepo.List(status, reportPageSize, offset)
		if err != nil {
			return fmt.Errorf("list complaints: %w", err)
		}
		for _, c := range complaints {
			row := []interface{}{
				c.Reference,
				c.Department,
				sanitizeForExcel(c.Subject),
				sanitizeForExcel(c.Location),
				c.Status,
				sanitizeForExcel(c.Remark),
				c.CreatedAt.Format(time.RFC3339),
				c.UpdatedAt.Format(time.RFC3339),
			}
			if err := sw.SetRow(fmt.Sprintf("A%d", rowNum), row); err != nil {
				log.Printf("[ReportService] Failed to write row %d: %v", rowNum, err)
			}
			rowNum++
		}
		if len(complaints) < reportPageSize {
			break
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush stream writer: %w", err)
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// WritePaymentsReport streams all bill payments into an xlsx workbook
// written to w.
func (s *ReportService) WritePaymentsReport(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Payments"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return fmt.Errorf("create stream writer: %w", err)
	}

	headers := []interface{}{"Receipt", "Bill ID", "User ID", "Amount (₹)", "Method", "Paid At"}
	if err := sw.SetRow("A1", headers); err != nil {
		log.Printf("[ReportService] Failed to write header row: %v", err)
	}

	rowNum := 2
	for offset := 0; ; offset += reportPageSize {
		payments, err := s.billRepo.ListPayments(reportPageSize, offset)
		if err != nil {
			return fmt.Errorf("list payments: %w", err)
		}
		for _, p := range payments {
			row := []interface{}{
				p.Receipt,
				p.BillID,
				p.UserID,
				float64(p.AmountPaise) / 100,
				p.Method,
				p.PaidAt.Format(time.RFC3339),
			}
			if err := sw.SetRow(fmt.Sprintf("A%d", rowNum), row); err != nil {
				log.Printf("[ReportService] Failed to write row %d: %v", rowNum, err)
			}
			rowNum++
		}
		if len(payments) < reportPageSize {
			break
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush stream writer: %w", err)
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// sanitizeForExcel escapes values that would otherwise be interpreted
// as formulas by Excel or LibreOffice.
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}
