package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/ehgns852/moamoa/internal/models"
	"github.com/ehgns852/moamoa/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportHandler exports the journal to spreadsheet files.
type ExportHandler struct {
	DB *gorm.DB
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{DB: db}
}

// ExportXLSX writes every journal entry of the current user as an XLSX
// download, newest first.
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var entries []models.RevenueExpenditure
	if err := h.DB.Where("user_id = ?", user.ID).
		Order("date DESC, id DESC").
		Find(&entries).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load entries")
		return
	}

	f := excelize.NewFile()
	sheetName := "RevenueExpenditure"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create sheet")
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Type", "Category", "Cost", "Content", "Payment method", "Date"}
	for i, head := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, head)
	}

	for idx, e := range entries {
		row := idx + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), e.Type)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), e.CategoryName)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), e.Cost)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), e.Content)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), e.PaymentMethod)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), e.Date.Format("2006-01-02"))
	}

	f.SetColWidth(sheetName, "A", "A", 14)
	f.SetColWidth(sheetName, "B", "B", 16)
	f.SetColWidth(sheetName, "C", "C", 12)
	f.SetColWidth(sheetName, "D", "D", 30)
	f.SetColWidth(sheetName, "E", "E", 16)
	f.SetColWidth(sheetName, "F", "F", 12)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"revenue_expenditure_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "export failed")
	}
}
