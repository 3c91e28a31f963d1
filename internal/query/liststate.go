// liststate.go — состояние списочного экрана: какой вопрос задан и на
// какой странице находится пользователь. Любое изменение вопроса (поиск,
// фильтры, сортировка) сбрасывает страницу на первую: старая позиция
// относится к другому вопросу и недействительна, даже если её номер ещё
// существует.
package query

import (
	"sort"
	"strings"
	"sync"
)

// ListState — позиция одного списочного экрана одного субъекта.
type ListState struct {
	mu        sync.Mutex
	seen      bool
	signature string
	page      int
}

// NewListState создаёт состояние с первой страницей.
func NewListState() *ListState {
	return &ListState{page: 1}
}

// Resolve возвращает действующий номер страницы для параметров запроса.
// Если поиск, фильтры или сортировка изменились с прошлого вызова,
// возвращается страница 1 независимо от requested; иначе — requested.
// Первый вопрос свежего состояния изменением не считается: requested
// уважается, иначе прямая ссылка на страницу N ломалась бы после
// рестарта или истечения TTL. Возвращённое значение ещё подлежит
// зажиму пагинатором.
func (s *ListState) Resolve(params Params, requested int) int {
	sig := canonical(params)

	s.mu.Lock()
	defer s.mu.Unlock()

	changed := s.seen && sig != s.signature
	s.seen = true
	s.signature = sig

	if changed {
		s.page = 1
		return 1
	}
	if requested < 1 {
		requested = 1
	}
	s.page = requested
	return requested
}

// Remember фиксирует фактическую страницу после зажима пагинатором.
func (s *ListState) Remember(page int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page = page
}

// Page возвращает текущую страницу.
func (s *ListState) Page() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

// canonical строит каноническую строку вопроса: поиск, отсортированные
// фильтры и сортировка. Порядок ключей фильтров не влияет на сигнатуру.
func canonical(params Params) string {
	keys := make([]string, 0, len(params.Filters))
	for k, v := range params.Filters {
		if v == "" || v == "all" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("q=")
	b.WriteString(strings.ToLower(strings.TrimSpace(params.Search)))
	for _, k := range keys {
		b.WriteString("&f:")
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(params.Filters[k])
	}
	b.WriteString("&sort=")
	b.WriteString(params.SortBy)
	b.WriteString("&order=")
	b.WriteString(params.SortOrder)
	return b.String()
}
