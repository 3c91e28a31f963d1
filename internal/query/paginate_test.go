package query

import (
	"reflect"
	"testing"
)

// seq возвращает срез 1..n.
func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// TestPaginate_Basics проверяет нарезку 25 элементов по 10.
func TestPaginate_Basics(t *testing.T) {
	pg := Paginate(seq(25), 10, 1)

	if pg.Total != 25 {
		t.Errorf("Total = %d, ожидалось 25", pg.Total)
	}
	if pg.TotalPages != 3 {
		t.Errorf("TotalPages = %d, ожидалось 3", pg.TotalPages)
	}
	if len(pg.Items) != 10 || pg.Items[0] != 1 || pg.Items[9] != 10 {
		t.Errorf("страница 1: %v", pg.Items)
	}
	if pg.Start != 1 || pg.End != 10 {
		t.Errorf("диапазон %d-%d, ожидался 1-10", pg.Start, pg.End)
	}

	// Последняя неполная страница
	pg = Paginate(seq(25), 10, 3)
	if len(pg.Items) != 5 || pg.Items[0] != 21 || pg.Items[4] != 25 {
		t.Errorf("страница 3: %v", pg.Items)
	}
	if pg.Start != 21 || pg.End != 25 {
		t.Errorf("диапазон %d-%d, ожидался 21-25", pg.Start, pg.End)
	}
}

// TestPaginate_ClampsPage проверяет зажим номера страницы с обеих сторон.
func TestPaginate_ClampsPage(t *testing.T) {
	// Запрошенная страница за пределом — молча опускается до последней
	pg := Paginate(seq(25), 10, 5)
	if pg.Current != 3 {
		t.Errorf("Current = %d, ожидалось 3 (зажим сверху)", pg.Current)
	}
	if pg.Items[0] != 21 {
		t.Errorf("после зажима первый элемент %d, ожидался 21", pg.Items[0])
	}

	// Нулевая и отрицательная страницы — первая
	for _, page := range []int{0, -3} {
		pg = Paginate(seq(25), 10, page)
		if pg.Current != 1 {
			t.Errorf("страница %d: Current = %d, ожидалось 1", page, pg.Current)
		}
	}
}

// TestPaginate_Idempotent проверяет, что повторный вызов с теми же
// аргументами даёт тот же результат.
func TestPaginate_Idempotent(t *testing.T) {
	a := Paginate(seq(25), 10, 2)
	b := Paginate(seq(25), 10, 2)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("повторный вызов дал другой результат: %+v != %+v", a, b)
	}
}

// TestPaginate_Empty проверяет пустую коллекцию.
func TestPaginate_Empty(t *testing.T) {
	pg := Paginate([]int{}, 10, 1)

	if pg.TotalPages != 1 {
		t.Errorf("TotalPages = %d, ожидалось 1 (минимум)", pg.TotalPages)
	}
	if len(pg.Items) != 0 {
		t.Errorf("пустая коллекция: %d элементов", len(pg.Items))
	}
	if pg.Start != 0 || pg.End != 0 {
		t.Errorf("диапазон %d-%d, ожидался 0-0", pg.Start, pg.End)
	}
}

// TestPaginate_BadPageSize проверяет зажим размера страницы.
func TestPaginate_BadPageSize(t *testing.T) {
	pg := Paginate(seq(3), 0, 1)
	if pg.TotalPages != 3 {
		t.Errorf("pageSize 0 → 1: TotalPages = %d, ожидалось 3", pg.TotalPages)
	}
}

// TestPageButtons проверяет построение кнопок страниц с эллипсисом.
func TestPageButtons(t *testing.T) {
	tests := []struct {
		name       string
		totalPages int
		current    int
		want       []int
	}{
		{"мало страниц — без эллипсиса", 3, 1, []int{1, 2, 3}},
		{"текущая в начале", 10, 1, []int{1, 2, 3, PageEllipsis, 10}},
		{"текущая в середине — два разрыва", 10, 5, []int{1, PageEllipsis, 3, 4, 5, 6, 7, PageEllipsis, 10}},
		{"текущая в конце", 10, 10, []int{1, PageEllipsis, 8, 9, 10}},
		{"одна страница", 1, 1, []int{1}},
		{"смежный разрыв схлопывается", 5, 3, []int{1, 2, 3, 4, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PageButtons(tt.totalPages, tt.current)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("PageButtons(%d, %d) = %v, ожидалось %v",
					tt.totalPages, tt.current, got, tt.want)
			}
		})
	}
}
