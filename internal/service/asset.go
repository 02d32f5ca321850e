package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ehgns852/moamoa/internal/models"
	"github.com/ehgns852/moamoa/internal/storage"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// journal entry types; matched exactly, never case-insensitively
const (
	TypeRevenue     = "REVENUE"
	TypeExpenditure = "EXPENDITURE"
)

// moneyLogDir is the logical upload prefix for money log images.
const moneyLogDir = "moneyLog"

// AssetService holds the bookkeeping rules: budgets, expenditure ratios,
// categories, journal entries, goals and money logs. Every method takes the
// acting user explicitly; nothing here reaches into request state.
type AssetService struct {
	db       *gorm.DB
	uploader storage.Uploader
}

func NewAssetService(db *gorm.DB, uploader storage.Uploader) *AssetService {
	return &AssetService{
		db:       db,
		uploader: uploader,
	}
}

// ---------- categories ----------

// AddCategory creates a category owned by the user. Duplicate names are
// allowed on purpose.
func (s *AssetService) AddCategory(user *models.User, categoryType, name string) (uint, error) {
	category := models.AssetCategory{
		UserID:       user.ID,
		CategoryType: categoryType,
		Name:         name,
	}
	if err := s.db.Create(&category).Error; err != nil {
		return 0, fmt.Errorf("create category: %w", err)
	}
	return category.ID, nil
}

// GetCategories lists the user's category names of the given type in
// insertion order.
func (s *AssetService) GetCategories(user *models.User, categoryType string) ([]string, error) {
	names := make([]string, 0)
	if err := s.db.Model(&models.AssetCategory{}).
		Where("user_id = ? AND category_type = ?", user.ID, categoryType).
		Order("id ASC").
		Pluck("name", &names).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return names, nil
}

// DeleteCategory removes the category with the given id if the user owns it.
// A missing or foreign-owned id is a not-found error, never a silent no-op.
func (s *AssetService) DeleteCategory(user *models.User, id uint) error {
	res := s.db.Where("id = ? AND user_id = ?", id, user.ID).Delete(&models.AssetCategory{})
	if res.Error != nil {
		return fmt.Errorf("delete category: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

// ---------- budget ----------

// SetBudget creates the user's budget or overwrites its amount, last write
// wins. The upsert rides on the unique index over user_id so two concurrent
// first-time calls cannot create duplicate rows.
func (s *AssetService) SetBudget(user *models.User, amount int64) (uint, error) {
	budget := models.Budget{UserID: user.ID, Amount: amount}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"amount": amount}),
	}).Create(&budget).Error
	if err != nil {
		return 0, fmt.Errorf("upsert budget: %w", err)
	}

	// re-read: the insert id is meaningless on the conflict path
	var row models.Budget
	if err := s.db.Where("user_id = ?", user.ID).Take(&row).Error; err != nil {
		return 0, fmt.Errorf("read budget: %w", err)
	}
	return row.ID, nil
}

// ---------- expenditure ratio ----------

// SetExpenditureRatio upserts the user's fixed/variable split. The sum check
// runs before anything touches the database.
func (s *AssetService) SetExpenditureRatio(user *models.User, fixed, variable int) (uint, error) {
	if fixed+variable != 100 {
		return 0, fmt.Errorf("%w: fixed=%d variable=%d", ErrInvalidRatio, fixed, variable)
	}

	ratio := models.ExpenditureRatio{UserID: user.ID, Fixed: fixed, Variable: variable}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"fixed": fixed, "variable": variable}),
	}).Create(&ratio).Error
	if err != nil {
		return 0, fmt.Errorf("upsert expenditure ratio: %w", err)
	}

	var row models.ExpenditureRatio
	if err := s.db.Where("user_id = ?", user.ID).Take(&row).Error; err != nil {
		return 0, fmt.Errorf("read expenditure ratio: %w", err)
	}
	return row.ID, nil
}

// ---------- journal ----------

// RevenueExpenditureInput carries a new journal entry. No field is validated
// here: cost may carry any sign and CategoryName is free text.
type RevenueExpenditureInput struct {
	Type          string
	Content       string
	Cost          int64
	Date          time.Time
	CategoryName  string
	PaymentMethod string
}

// AddRevenueExpenditure appends one journal record.
func (s *AssetService) AddRevenueExpenditure(user *models.User, in RevenueExpenditureInput) (uint, error) {
	entry := models.RevenueExpenditure{
		UserID:        user.ID,
		Type:          in.Type,
		Content:       in.Content,
		Cost:          in.Cost,
		Date:          in.Date,
		CategoryName:  in.CategoryName,
		PaymentMethod: in.PaymentMethod,
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return 0, fmt.Errorf("create revenue expenditure: %w", err)
	}
	return entry.ID, nil
}

// PageRequest is an opaque pagination request passed through from the
// HTTP layer.
type PageRequest struct {
	Page int
	Size int
	Sort string
}

// MonthlySummary is the aggregated view of one calendar month: totals over
// every entry of the month plus one page of entries.
type MonthlySummary struct {
	RevenueTotal     int64
	ExpenditureTotal int64
	RemainingBudget  int64
	Entries          []models.RevenueExpenditure
	Page             int
	Size             int
	Total            int64
}

// FindRevenueExpenditureByMonth aggregates the given month ("YYYY-MM") for
// the user. Requires a budget to exist. RemainingBudget may go negative,
// signaling overspend.
func (s *AssetService) FindRevenueExpenditureByMonth(user *models.User, month string, page PageRequest) (*MonthlySummary, error) {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMonth, month)
	}
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	if page.Page <= 0 {
		page.Page = 1
	}
	if page.Size <= 0 || page.Size > 100 {
		page.Size = 20
	}
	orderBy := "date DESC, id DESC"
	switch page.Sort {
	case "date_asc":
		orderBy = "date ASC, id ASC"
	case "cost_desc":
		orderBy = "cost DESC, id DESC"
	case "cost_asc":
		orderBy = "cost ASC, id ASC"
	}

	base := s.db.Model(&models.RevenueExpenditure{}).
		Where("user_id = ? AND date >= ? AND date < ?", user.ID, start, end)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count entries: %w", err)
	}

	var entries []models.RevenueExpenditure
	if err := base.Session(&gorm.Session{}).
		Order(orderBy).
		Limit(page.Size).
		Offset((page.Page - 1) * page.Size).
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	var budget models.Budget
	if err := s.db.Where("user_id = ?", user.ID).Take(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBudgetNotFound
		}
		return nil, fmt.Errorf("read budget: %w", err)
	}

	// totals must cover the whole month, not just the current page
	var all []models.RevenueExpenditure
	if err := base.Session(&gorm.Session{}).Find(&all).Error; err != nil {
		return nil, fmt.Errorf("list month entries: %w", err)
	}

	summary := &MonthlySummary{
		Entries: entries,
		Page:    page.Page,
		Size:    page.Size,
		Total:   total,
	}
	for i := range all {
		switch all[i].Type {
		case TypeRevenue:
			summary.RevenueTotal += all[i].Cost
		case TypeExpenditure:
			summary.ExpenditureTotal += all[i].Cost
		}
	}
	summary.RemainingBudget = budget.Amount - summary.ExpenditureTotal

	return summary, nil
}

// ---------- goal ----------

// SetAssetGoal upserts the user's goal for the given date, keyed by
// (user, date) through the composite unique index.
func (s *AssetService) SetAssetGoal(user *models.User, content string, date time.Time) (uint, error) {
	goal := models.AssetGoal{UserID: user.ID, Date: date, Content: content}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"content": content}),
	}).Create(&goal).Error
	if err != nil {
		return 0, fmt.Errorf("upsert asset goal: %w", err)
	}

	var row models.AssetGoal
	if err := s.db.Where("user_id = ? AND date = ?", user.ID, date).Take(&row).Error; err != nil {
		return 0, fmt.Errorf("read asset goal: %w", err)
	}
	return row.ID, nil
}

// ---------- money log ----------

// ImageFile is one uploaded file as received from the HTTP layer.
type ImageFile struct {
	Name string
	Data []byte
}

// MoneyLogResult is the created log id plus attachment URLs in request order.
type MoneyLogResult struct {
	ID        uint
	ImageURLs []string
}

// CreateMoneyLog persists a money log and uploads its images. The whole
// operation is one transaction: if any upload fails, the log and all image
// rows roll back so no partial record survives. Already-uploaded blobs are
// not removed from storage.
func (s *AssetService) CreateMoneyLog(ctx context.Context, user *models.User, date time.Time, content string, files []ImageFile) (*MoneyLogResult, error) {
	var result MoneyLogResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		moneyLog := models.MoneyLog{UserID: user.ID, Date: date, Content: content}
		if err := tx.Create(&moneyLog).Error; err != nil {
			return fmt.Errorf("create money log: %w", err)
		}

		// uploads are independent, run them concurrently; the slice is
		// indexed by input position so response order matches request order
		urls := make([]string, len(files))
		g, gctx := errgroup.WithContext(ctx)
		for i, f := range files {
			i, f := i, f
			g.Go(func() error {
				url, err := s.uploader.Upload(gctx, f.Data, f.Name, moneyLogDir)
				if err != nil {
					return fmt.Errorf("upload %s: %w", f.Name, err)
				}
				urls[i] = url
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		for _, url := range urls {
			image := models.MoneyLogImage{
				MoneyLogID:    moneyLog.ID,
				ImageURL:      url,
				StoreFilename: storage.Filename(url),
			}
			if err := tx.Create(&image).Error; err != nil {
				return fmt.Errorf("create money log image: %w", err)
			}
		}

		result = MoneyLogResult{ID: moneyLog.ID, ImageURLs: urls}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
