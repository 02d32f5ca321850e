package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/ehgns852/moamoa/internal/models"
	"github.com/ehgns852/moamoa/internal/service"
	"github.com/ehgns852/moamoa/internal/util"

	"github.com/gin-gonic/gin"
)

// AssetHandler exposes the bookkeeping operations over HTTP. All domain
// rules live in the service; this layer only binds requests, resolves the
// current user and maps errors onto the response envelope.
type AssetHandler struct {
	Service *service.AssetService
}

func NewAssetHandler(svc *service.AssetService) *AssetHandler {
	return &AssetHandler{Service: svc}
}

func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidRatio), errors.Is(err, service.ErrInvalidMonth):
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
	case errors.Is(err, service.ErrBudgetNotFound), errors.Is(err, service.ErrCategoryNotFound):
		util.Error(c, http.StatusNotFound, util.CodeNotFound, err.Error())
	default:
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "operation failed, please retry")
	}
}

// ---------- categories ----------

type createCategoryReq struct {
	CategoryType string `json:"category_type" binding:"required,oneof=REVENUE EXPENDITURE"`
	CategoryName string `json:"category_name" binding:"required,max=64"`
}

func (h *AssetHandler) AddCategory(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req createCategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	id, err := h.Service.AddCategory(user, req.CategoryType, req.CategoryName)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	util.Success(c, util.Response{"id": id})
}

func (h *AssetHandler) GetCategories(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	categoryType := c.Query("type")
	if categoryType != service.TypeRevenue && categoryType != service.TypeExpenditure {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "type must be REVENUE or EXPENDITURE")
		return
	}

	names, err := h.Service.GetCategories(user, categoryType)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	util.Success(c, util.Response{"categories": names})
}

func (h *AssetHandler) DeleteCategory(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}

	if err := h.Service.DeleteCategory(user, uint(id)); err != nil {
		writeServiceError(c, err)
		return
	}

	util.Success(c, util.Response{"message": "category deleted"})
}

// ---------- budget ----------

type budgetReq struct {
	BudgetAmount int64 `json:"budget_amount"`
}

func (h *AssetHandler) SetBudget(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req budgetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	id, err := h.Service.SetBudget(user, req.BudgetAmount)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	util.Success(c, util.Response{"id": id})
}

// ---------- expenditure ratio ----------

// pointers so that an explicit 0 survives binding
type expenditureRatioReq struct {
	Fixed    *int `json:"fixed" binding:"required"`
	Variable *int `json:"variable" binding:"required"`
}

func (h *AssetHandler) SetExpenditureRatio(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req expenditureRatioReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	id, err := h.Service.SetExpenditureRatio(user, *req.Fixed, *req.Variable)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	util.Success(c, util.Response{"id": id})
}

// ---------- journal ----------

type createRevenueExpenditureReq struct {
	RevenueExpenditureType string `json:"revenue_expenditure_type" binding:"required,oneof=REVENUE EXPENDITURE"`
	Content                string `json:"content" binding:"max=255"`
	Cost                   int64  `json:"cost"`
	Date                   string `json:"date" binding:"required"`
	CategoryName           string `json:"category_name" binding:"max=64"`
	PaymentMethod          string `json:"payment_method" binding:"max=32"`
}

type revenueExpenditureResp struct {
	ID            uint   `json:"id"`
	Type          string `json:"revenue_expenditure_type"`
	Content       string `json:"content"`
	Cost          int64  `json:"cost"`
	Date          string `json:"date"`
	CategoryName  string `json:"category_name"`
	PaymentMethod string `json:"payment_method"`
}

func toRevenueExpenditureResp(e *models.RevenueExpenditure) revenueExpenditureResp {
	return revenueExpenditureResp{
		ID:            e.ID,
		Type:          e.Type,
		Content:       e.Content,
		Cost:          e.Cost,
		Date:          e.Date.Format("2006-01-02"),
		CategoryName:  e.CategoryName,
		PaymentMethod: e.PaymentMethod,
	}
}

func (h *AssetHandler) AddRevenueExpenditure(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req createRevenueExpenditureReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	date, err := util.ParseDate(req.Date)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid date, use YYYY-MM-DD")
		return
	}

	id, err := h.Service.AddRevenueExpenditure(user, service.RevenueExpenditureInput{
		Type:          req.RevenueExpenditureType,
		Content:       req.Content,
		Cost:          req.Cost,
		Date:          date,
		CategoryName:  req.CategoryName,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}

	util.Success(c, util.Response{"id": id})
}

// GetMonthlySummary returns aggregated totals plus one page of entries
// for ?month=YYYY-MM.
func (h *AssetHandler) GetMonthlySummary(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	month := c.Query("month")
	if month == "" {
		month = time.Now().Format("2006-01")
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))
	sort := c.DefaultQuery("sort", "date_desc")

	summary, err := h.Service.FindRevenueExpenditureByMonth(user, month, service.PageRequest{
		Page: page,
		Size: size,
		Sort: sort,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}

	items := make([]revenueExpenditureResp, 0, len(summary.Entries))
	for i := range summary.Entries {
		items = append(items, toRevenueExpenditureResp(&summary.Entries[i]))
	}

	util.Success(c, util.Response{
		"revenue_total":     summary.RevenueTotal,
		"expenditure_total": summary.ExpenditureTotal,
		"remaining_budget":  summary.RemainingBudget,
		"items":             items,
		"page":              summary.Page,
		"size":              summary.Size,
		"total":             summary.Total,
	})
}

// ---------- goal ----------

type assetGoalReq struct {
	Content string `json:"content" binding:"required,max=255"`
	Date    string `json:"date" binding:"required"`
}

func (h *AssetHandler) SetAssetGoal(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req assetGoalReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	date, err := util.ParseDate(req.Date)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid date, use YYYY-MM-DD")
		return
	}

	id, err := h.Service.SetAssetGoal(user, req.Content, date)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	util.Success(c, util.Response{"id": id})
}

// ---------- money log ----------

// CreateMoneyLog accepts a multipart form: "date", "content" and zero or
// more "images" files.
func (h *AssetHandler) CreateMoneyLog(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	date, err := util.ParseDate(c.PostForm("date"))
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid date, use YYYY-MM-DD")
		return
	}
	content := c.PostForm("content")

	// zero files is valid; a plain form post simply has none
	form, err := c.MultipartForm()
	if err != nil && !errors.Is(err, http.ErrNotMultipart) {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid multipart form")
		return
	}

	var fileHeaders []*multipart.FileHeader
	if form != nil {
		fileHeaders = form.File["images"]
	}

	var files []service.ImageFile
	for _, fh := range fileHeaders {
		f, err := fh.Open()
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "unreadable upload "+fh.Filename)
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "unreadable upload "+fh.Filename)
			return
		}
		files = append(files, service.ImageFile{Name: fh.Filename, Data: data})
	}

	result, err := h.Service.CreateMoneyLog(c.Request.Context(), user, date, content, files)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	util.Success(c, util.Response{
		"id":         result.ID,
		"image_urls": result.ImageURLs,
	})
}
