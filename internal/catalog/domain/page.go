package domain

import "strings"

const (
	DefaultPageSize = 10
	DefaultSort     = "id"
)

// sortColumns whitelists the sortable fields and maps request names to
// column names. Sort fields are interpolated into SQL, so anything off this
// list falls back to the default instead of reaching the database.
var sortColumns = map[string]string{
	"id":            "id",
	"name":          "name",
	"description":   "description",
	"price":         "price",
	"sku":           "sku",
	"category":      "category",
	"stockquantity": "stock_quantity",
	"createdat":     "created_at",
	"updatedat":     "updated_at",
}

// PageRequest carries pagination and sorting parameters. Page numbers are
// zero-based.
type PageRequest struct {
	Page       int
	Size       int
	Sort       string
	Descending bool
}

// NewPageRequest builds a PageRequest, applying the boundary defaults:
// page 0, size 10, sort by id ascending. Direction "desc" (case-insensitive)
// sorts descending; anything else ascending.
func NewPageRequest(page, size int, sort, direction string) PageRequest {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if sort == "" {
		sort = DefaultSort
	}
	return PageRequest{
		Page:       page,
		Size:       size,
		Sort:       sort,
		Descending: strings.EqualFold(direction, "desc"),
	}
}

// SortColumn resolves the requested sort field against the whitelist.
func (r PageRequest) SortColumn() string {
	col, ok := sortColumns[strings.ToLower(strings.ReplaceAll(r.Sort, "_", ""))]
	if !ok {
		return "id"
	}
	return col
}

func (r PageRequest) Offset() int {
	return r.Page * r.Size
}

func (r PageRequest) Limit() int {
	return r.Size
}

// Page is one page of products plus the totals over the full result set.
type Page struct {
	Content       []Product `json:"content"`
	TotalElements int64     `json:"totalElements"`
	TotalPages    int       `json:"totalPages"`
	Number        int       `json:"number"`
	Size          int       `json:"size"`
}

// NewPage assembles a Page from the slice for the requested window and the
// total matching row count.
func NewPage(content []Product, total int64, req PageRequest) *Page {
	if content == nil {
		content = []Product{}
	}
	pages := int(total) / req.Size
	if int(total)%req.Size != 0 {
		pages++
	}
	return &Page{
		Content:       content,
		TotalElements: total,
		TotalPages:    pages,
		Number:        req.Page,
		Size:          req.Size,
	}
}
