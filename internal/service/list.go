// list.go — общие типы списочных операций: параметры запроса и блок
// пагинации ответа.
package service

import "github.com/assetboard/dashboard-module/internal/query"

// ListParams — параметры списочного запроса с пагинацией.
type ListParams struct {
	query.Params
	// Page — запрошенный номер страницы (1-based)
	Page int
	// PageSize — размер страницы; 0 — значение по умолчанию из конфигурации
	PageSize int
}

// Pagination — блок пагинации ответа.
type Pagination struct {
	// Page — фактический номер страницы после зажима
	Page int `json:"page"`
	// PageSize — размер страницы
	PageSize int `json:"pageSize"`
	// Total — общее количество элементов после фильтрации
	Total int `json:"total"`
	// TotalPages — количество страниц, всегда >= 1
	TotalPages int `json:"totalPages"`
	// Start, End — 1-based границы отображаемого диапазона (0-0 — пусто)
	Start int `json:"start"`
	End   int `json:"end"`
	// Buttons — кнопки страниц; -1 обозначает эллипсис
	Buttons []int `json:"buttons"`
}

// paginationOf строит блок пагинации из результата пагинатора.
func paginationOf[T any](pg query.Page[T], pageSize int) Pagination {
	return Pagination{
		Page:       pg.Current,
		PageSize:   pageSize,
		Total:      pg.Total,
		TotalPages: pg.TotalPages,
		Start:      pg.Start,
		End:        pg.End,
		Buttons:    query.PageButtons(pg.TotalPages, pg.Current),
	}
}
