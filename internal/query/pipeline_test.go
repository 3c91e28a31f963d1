package query

import (
	"testing"
)

// item — тестовая сущность конвейера.
type item struct {
	Name   string
	Status string
	Value  float64
	Stamp  int64
}

// testSpec — спецификация тестовой сущности.
func testSpec() Spec[item] {
	return Spec[item]{
		Search: []func(item) string{
			func(i item) string { return i.Name },
		},
		Filters: map[string]func(item) string{
			"status": func(i item) string { return i.Status },
		},
		Sort: map[string]SortKey[item]{
			"name":  {Text: func(i item) string { return i.Name }},
			"value": {Number: func(i item) float64 { return i.Value }},
			"stamp": {Time: func(i item) int64 { return i.Stamp }},
		},
		DefaultSort: "name",
	}
}

// TestPipeline_Search проверяет поиск по подстроке без учёта регистра.
func TestPipeline_Search(t *testing.T) {
	p := New(testSpec(), "ru")
	items := []item{
		{Name: "Ноутбук Dell"},
		{Name: "Монитор LG"},
		{Name: "ноутбук HP"},
	}

	got := p.Apply(items, Params{Search: "НОУТ"})
	if len(got) != 2 {
		t.Fatalf("найдено %d элементов, ожидалось 2", len(got))
	}
	for _, i := range got {
		if i.Name != "Ноутбук Dell" && i.Name != "ноутбук HP" {
			t.Errorf("неожиданный элемент %q в результате поиска", i.Name)
		}
	}

	// Пробелы по краям не влияют
	got = p.Apply(items, Params{Search: "  ноут  "})
	if len(got) != 2 {
		t.Errorf("поиск с пробелами: найдено %d, ожидалось 2", len(got))
	}
}

// TestPipeline_Filters проверяет точные фильтры и пропуск значений "" и "all".
func TestPipeline_Filters(t *testing.T) {
	p := New(testSpec(), "ru")
	items := []item{
		{Name: "a", Status: "IN_USE"},
		{Name: "b", Status: "IN_STOCK"},
		{Name: "c", Status: "IN_USE"},
	}

	got := p.Apply(items, Params{Filters: map[string]string{"status": "IN_USE"}})
	if len(got) != 2 {
		t.Fatalf("фильтр status: %d элементов, ожидалось 2", len(got))
	}

	// "all" и пустое значение — фильтр не применяется
	for _, v := range []string{"all", ""} {
		got = p.Apply(items, Params{Filters: map[string]string{"status": v}})
		if len(got) != 3 {
			t.Errorf("фильтр %q: %d элементов, ожидалось 3", v, len(got))
		}
	}

	// Неизвестное имя фильтра игнорируется
	got = p.Apply(items, Params{Filters: map[string]string{"unknown": "x"}})
	if len(got) != 3 {
		t.Errorf("неизвестный фильтр: %d элементов, ожидалось 3", len(got))
	}
}

// TestPipeline_SortAscDesc проверяет сортировку и инверсию направления.
func TestPipeline_SortAscDesc(t *testing.T) {
	p := New(testSpec(), "ru")
	items := []item{
		{Name: "b", Value: 2},
		{Name: "c", Value: 3},
		{Name: "a", Value: 1},
	}

	got := p.Apply(items, Params{SortBy: "value", SortOrder: "asc"})
	if got[0].Value != 1 || got[2].Value != 3 {
		t.Errorf("asc: порядок %v, ожидался 1..3", []float64{got[0].Value, got[1].Value, got[2].Value})
	}

	got = p.Apply(items, Params{SortBy: "value", SortOrder: "desc"})
	if got[0].Value != 3 || got[2].Value != 1 {
		t.Errorf("desc: порядок %v, ожидался 3..1", []float64{got[0].Value, got[1].Value, got[2].Value})
	}
}

// TestPipeline_SortStability проверяет устойчивость: равные элементы
// сохраняют исходный порядок и при asc, и при desc.
func TestPipeline_SortStability(t *testing.T) {
	p := New(testSpec(), "ru")
	items := []item{
		{Name: "first", Value: 1},
		{Name: "second", Value: 1},
		{Name: "third", Value: 1},
	}

	for _, order := range []string{"asc", "desc"} {
		got := p.Apply(items, Params{SortBy: "value", SortOrder: order})
		if got[0].Name != "first" || got[1].Name != "second" || got[2].Name != "third" {
			t.Errorf("%s: равные элементы переставлены: %q, %q, %q",
				order, got[0].Name, got[1].Name, got[2].Name)
		}
	}
}

// TestPipeline_UnknownSortFallsBack проверяет деградацию неизвестного
// поля сортировки к полю по умолчанию.
func TestPipeline_UnknownSortFallsBack(t *testing.T) {
	p := New(testSpec(), "ru")
	items := []item{
		{Name: "b"},
		{Name: "a"},
	}

	got := p.Apply(items, Params{SortBy: "nonexistent"})
	if got[0].Name != "a" {
		t.Errorf("ожидалась сортировка по name (дефолт), первый элемент %q", got[0].Name)
	}
}

// TestPipeline_InputNotModified проверяет, что вход не модифицируется.
func TestPipeline_InputNotModified(t *testing.T) {
	p := New(testSpec(), "ru")
	items := []item{
		{Name: "b", Status: "X"},
		{Name: "a", Status: "Y"},
	}

	_ = p.Apply(items, Params{
		Search:  "a",
		Filters: map[string]string{"status": "Y"},
		SortBy:  "name",
	})

	if items[0].Name != "b" || items[1].Name != "a" {
		t.Errorf("входной срез модифицирован: %q, %q", items[0].Name, items[1].Name)
	}
}

// TestPipeline_EmptyInput проверяет пустой вход.
func TestPipeline_EmptyInput(t *testing.T) {
	p := New(testSpec(), "ru")

	got := p.Apply(nil, Params{Search: "x"})
	if len(got) != 0 {
		t.Errorf("пустой вход: %d элементов, ожидалось 0", len(got))
	}
}

// TestPipeline_BadLocaleDegrades проверяет деградацию некорректной локали.
func TestPipeline_BadLocaleDegrades(t *testing.T) {
	p := New(testSpec(), "не-локаль!!!")
	items := []item{{Name: "b"}, {Name: "a"}}

	got := p.Apply(items, Params{SortBy: "name"})
	if got[0].Name != "a" {
		t.Errorf("сортировка с деградировавшей локалью: первый элемент %q, ожидался \"a\"", got[0].Name)
	}
}
