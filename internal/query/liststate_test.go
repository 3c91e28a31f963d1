package query

import "testing"

// TestListState_ParamChangeResetsPage проверяет сброс страницы при
// изменении вопроса — даже если старый номер страницы всё ещё существует.
func TestListState_ParamChangeResetsPage(t *testing.T) {
	s := NewListState()

	p1 := Params{Search: "ноут", SortBy: "name", SortOrder: "asc"}
	if got := s.Resolve(p1, 1); got != 1 {
		t.Fatalf("первый запрос: страница %d, ожидалась 1", got)
	}
	if got := s.Resolve(p1, 3); got != 3 {
		t.Fatalf("тот же вопрос: страница %d, ожидалась 3", got)
	}

	// Изменился поиск — страница сбрасывается, requested игнорируется
	p2 := p1
	p2.Search = "монитор"
	if got := s.Resolve(p2, 3); got != 1 {
		t.Errorf("после смены поиска: страница %d, ожидалась 1", got)
	}

	// Изменилась сортировка — тоже сброс
	p3 := p2
	p3.SortOrder = "desc"
	if got := s.Resolve(p3, 2); got != 1 {
		t.Errorf("после смены сортировки: страница %d, ожидалась 1", got)
	}
}

// TestListState_ColdStartHonorsRequestedPage проверяет, что первый вопрос
// свежего состояния не считается изменением: запрошенная страница
// уважается (прямая ссылка на страницу N после рестарта или TTL).
func TestListState_ColdStartHonorsRequestedPage(t *testing.T) {
	s := NewListState()

	p := Params{Search: "ноут", SortBy: "name"}
	if got := s.Resolve(p, 3); got != 3 {
		t.Errorf("свежее состояние: страница %d, ожидалась 3", got)
	}

	// Следующее изменение вопроса сбрасывает как обычно
	p.Search = "монитор"
	if got := s.Resolve(p, 3); got != 1 {
		t.Errorf("после смены вопроса: страница %d, ожидалась 1", got)
	}
}

// TestListState_FilterKeyOrderIrrelevant проверяет, что порядок ключей
// фильтров не считается изменением вопроса.
func TestListState_FilterKeyOrderIrrelevant(t *testing.T) {
	s := NewListState()

	p1 := Params{Filters: map[string]string{"status": "IN_USE", "typeId": "2"}}
	s.Resolve(p1, 1)

	p2 := Params{Filters: map[string]string{"typeId": "2", "status": "IN_USE"}}
	if got := s.Resolve(p2, 4); got != 4 {
		t.Errorf("тот же набор фильтров: страница %d, ожидалась 4", got)
	}
}

// TestListState_IgnoredFilterValues проверяет, что "" и "all" не входят
// в сигнатуру вопроса.
func TestListState_IgnoredFilterValues(t *testing.T) {
	s := NewListState()

	s.Resolve(Params{Filters: map[string]string{"status": ""}}, 1)
	if got := s.Resolve(Params{Filters: map[string]string{"status": "all"}}, 2); got != 2 {
		t.Errorf("пустой фильтр и \"all\" эквивалентны, страница %d, ожидалась 2", got)
	}
}

// TestListState_Remember проверяет фиксацию фактической страницы
// после зажима пагинатором.
func TestListState_Remember(t *testing.T) {
	s := NewListState()

	p := Params{Search: "x"}
	s.Resolve(p, 7)
	s.Remember(3)

	if got := s.Page(); got != 3 {
		t.Errorf("Page() = %d, ожидалось 3 после Remember", got)
	}
}

// TestListState_BadRequestedPage проверяет нормализацию запрошенной страницы.
func TestListState_BadRequestedPage(t *testing.T) {
	s := NewListState()

	p := Params{}
	s.Resolve(p, 1)
	if got := s.Resolve(p, 0); got != 1 {
		t.Errorf("requested 0: страница %d, ожидалась 1", got)
	}
	if got := s.Resolve(p, -5); got != 1 {
		t.Errorf("requested -5: страница %d, ожидалась 1", got)
	}
}
