// Пакет query — конвейер списочных запросов и пагинация.
// Один обобщённый Pipeline обслуживает все списочные экраны (активы, типы,
// подразделения, пользователи); какие поля участвуют в поиске, фильтрации и
// сортировке, задаётся декларативной спецификацией для каждой сущности.
//
// Порядок применения фиксирован: текстовый поиск → точные фильтры (AND) →
// устойчивая сортировка.
package query

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Params — параметры списочного запроса.
type Params struct {
	// Search — поисковая строка (подстрока, без учёта регистра)
	Search string
	// Filters — точные фильтры по полям; пустое значение или "all" — фильтр не применяется
	Filters map[string]string
	// SortBy — поле сортировки (из whitelist спецификации; неизвестное — дефолт)
	SortBy string
	// SortOrder — направление: asc (по умолчанию) или desc
	SortOrder string
}

// SortKey — ключ сортировки поля: ровно один селектор должен быть задан.
// Текстовые поля сравниваются коллатором (locale-aware), числовые и
// временные — естественным порядком.
type SortKey[T any] struct {
	// Text — селектор текстового значения
	Text func(T) string
	// Number — селектор числового значения
	Number func(T) float64
	// Time — селектор временного значения (Unix-наносекунды)
	Time func(T) int64
}

// Spec — декларативная спецификация полей сущности:
// что ищется, что фильтруется, по чему сортируется.
type Spec[T any] struct {
	// Search — селекторы полей, участвующих в текстовом поиске
	Search []func(T) string
	// Filters — точные фильтры: имя поля → селектор значения
	Filters map[string]func(T) string
	// Sort — ключи сортировки: имя поля → ключ
	Sort map[string]SortKey[T]
	// DefaultSort — поле сортировки по умолчанию (и fallback для неизвестных)
	DefaultSort string
}

// Pipeline — конвейер списочных запросов для одной сущности.
type Pipeline[T any] struct {
	spec Spec[T]
	lang language.Tag
}

// New создаёт конвейер. locale — BCP 47 тег локали для сравнения текстовых
// полей (например, "vi" или "ru"); некорректный тег деградирует к und.
func New[T any](spec Spec[T], locale string) *Pipeline[T] {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Und
	}
	return &Pipeline[T]{spec: spec, lang: tag}
}

// Apply применяет поиск, фильтры и сортировку к коллекции.
// Вход не модифицируется; пустой вход даёт пустой выход без ошибки.
func (p *Pipeline[T]) Apply(items []T, params Params) []T {
	result := make([]T, len(items))
	copy(result, items)

	// 1. Текстовый поиск: подстрока без учёта регистра по заданным полям
	if keyword := strings.ToLower(strings.TrimSpace(params.Search)); keyword != "" {
		filtered := result[:0]
		for _, item := range result {
			if p.matches(item, keyword) {
				filtered = append(filtered, item)
			}
		}
		result = filtered
	}

	// 2. Точные фильтры, конъюнктивно
	for field, want := range params.Filters {
		if want == "" || want == "all" {
			continue
		}
		selector, ok := p.spec.Filters[field]
		if !ok {
			continue
		}
		filtered := result[:0]
		for _, item := range result {
			if selector(item) == want {
				filtered = append(filtered, item)
			}
		}
		result = filtered
	}

	// 3. Устойчивая сортировка. desc инвертирует компаратор, а не готовый
	// срез — так сохраняется исходный порядок равных элементов.
	// Отсутствующее значение сравнивается как пустая строка / ноль,
	// то есть идёт первым при asc и последним при desc.
	key, ok := p.spec.Sort[params.SortBy]
	if !ok {
		key, ok = p.spec.Sort[p.spec.DefaultSort]
	}
	if ok {
		cmp := p.comparator(key)
		desc := strings.EqualFold(params.SortOrder, "desc")
		sort.SliceStable(result, func(i, j int) bool {
			c := cmp(result[i], result[j])
			if desc {
				return c > 0
			}
			return c < 0
		})
	}

	return result
}

// matches сообщает, содержит ли хотя бы одно поисковое поле ключевое слово.
func (p *Pipeline[T]) matches(item T, keyword string) bool {
	for _, selector := range p.spec.Search {
		if strings.Contains(strings.ToLower(selector(item)), keyword) {
			return true
		}
	}
	return false
}

// comparator строит компаратор для ключа сортировки.
// Коллатор создаётся на каждый вызов: collate.Collator не потокобезопасен.
func (p *Pipeline[T]) comparator(key SortKey[T]) func(a, b T) int {
	switch {
	case key.Text != nil:
		col := collate.New(p.lang)
		return func(a, b T) int {
			return col.CompareString(key.Text(a), key.Text(b))
		}
	case key.Number != nil:
		return func(a, b T) int {
			av, bv := key.Number(a), key.Number(b)
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			}
			return 0
		}
	case key.Time != nil:
		return func(a, b T) int {
			av, bv := key.Time(a), key.Time(b)
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			}
			return 0
		}
	}
	return func(a, b T) int { return 0 }
}
