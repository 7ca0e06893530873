package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"adminpanel/internal/domain"
	"adminpanel/internal/repositories"
	"adminpanel/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// ExportService renders the filtered user list as a PDF report.
type ExportService struct {
	Repo      repositories.UserRepository
	RequestID string
	Now       func() time.Time
}

const reportBottomMargin = 12.0

type reportColumn struct {
	title string
	width float64
	value func(domain.User) string
}

var userReportColumns = []reportColumn{
	{"Name", 50, func(u domain.User) string { return utils.Truncate(u.Name, 30) }},
	{"Email", 70, func(u domain.User) string { return utils.Truncate(u.Email, 42) }},
	{"Role", 30, func(u domain.User) string { return string(u.Role) }},
	{"Created", 40, func(u domain.User) string { return utils.FormatDate(u.CreatedAt) }},
}

// UsersPDF exports every user matching search, ordered like the list endpoint.
// It returns the document and a suggested filename.
func (s ExportService) UsersPDF(ctx context.Context, search string, sort *domain.Sort) ([]byte, string, error) {
	users, err := s.Repo.ListAll(ctx, search, sort)
	if err != nil {
		return nil, "", err
	}
	now := utils.NowUTC()
	if s.Now != nil {
		now = s.Now().UTC()
	}
	utils.LogEvent(s.RequestID, "export", "users_pdf", fmt.Sprintf("rows=%d", len(users)))
	return buildUsersPDF(users, strings.TrimSpace(search), now)
}

func buildUsersPDF(users []domain.User, search string, now time.Time) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Users report", false)
	pdf.SetMargins(10, 12, 10)
	pdf.SetAutoPageBreak(true, reportBottomMargin)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-10)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 6, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Users report")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, "Generated: "+now.Format("2006-01-02 15:04")+" UTC")
	pdf.Ln(6)
	if search != "" {
		pdf.Cell(0, 6, "Filter: "+search)
		pdf.Ln(6)
	}
	pdf.Cell(0, 6, "Total users: "+utils.FormatAmount(int64(len(users))))
	pdf.Ln(10)

	header := func() {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(230, 230, 230)
		for _, col := range userReportColumns {
			pdf.CellFormat(col.width, 7, col.title, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 9)
	}
	header()

	_, pageHeight := pdf.GetPageSize()
	for _, u := range users {
		if pdf.GetY()+6 > pageHeight-reportBottomMargin {
			pdf.AddPage()
			header()
		}
		for _, col := range userReportColumns {
			pdf.CellFormat(col.width, 6, col.value(u), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
	if len(users) == 0 {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, 6, "No users match the current filter.", "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), "users-" + now.Format("20060102") + ".pdf", nil
}
