// paginate.go — Paginator: нарезка упорядоченной коллекции на страницы
// фиксированного размера с подсчётом и зажимом номера страницы.
package query

// PageEllipsis — маркер пропуска в списке кнопок страниц.
const PageEllipsis = -1

// Page — результат пагинации.
type Page[T any] struct {
	// Items — элементы текущей страницы
	Items []T
	// Total — общее количество элементов после фильтрации
	Total int
	// TotalPages — количество страниц, всегда >= 1
	TotalPages int
	// Current — фактический номер страницы после зажима, в [1, TotalPages]
	Current int
	// Start, End — границы отображаемого диапазона (1-based, End включительно);
	// 0-0 для пустой коллекции
	Start int
	End   int
}

// Paginate нарезает упорядоченную коллекцию на страницы.
// Номер страницы зажимается в [1, TotalPages]: если фильтр сократил
// коллекцию и запрошенная страница вышла за предел, она молча опускается
// до последней — выход за границы среза невозможен. Повторный вызов с теми
// же аргументами даёт тот же результат.
func Paginate[T any](items []T, pageSize, page int) Page[T] {
	if pageSize < 1 {
		pageSize = 1
	}

	total := len(items)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if end > total {
		end = total
	}
	if start > total {
		start = total
	}

	p := Page[T]{
		Items:      items[start:end],
		Total:      total,
		TotalPages: totalPages,
		Current:    page,
	}
	if total > 0 {
		p.Start = start + 1
		p.End = end
	}
	return p
}

// PageButtons строит список кнопок страниц с эллипсисом: всегда первая и
// последняя страницы плюс окно ±2 вокруг текущей; каждый разрыв
// схлопывается в один маркер PageEllipsis.
func PageButtons(totalPages, current int) []int {
	if totalPages < 1 {
		totalPages = 1
	}
	if current < 1 {
		current = 1
	}
	if current > totalPages {
		current = totalPages
	}

	buttons := make([]int, 0, totalPages)
	prev := 0
	for page := 1; page <= totalPages; page++ {
		show := page == 1 || page == totalPages ||
			(page >= current-2 && page <= current+2)
		if !show {
			continue
		}
		if prev != 0 && page-prev > 1 {
			buttons = append(buttons, PageEllipsis)
		}
		buttons = append(buttons, page)
		prev = page
	}
	return buttons
}
