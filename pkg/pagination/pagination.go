package pagination

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Params параметры страницы (нумерация с 1)
type Params struct {
	Page     int
	PageSize int
}

// Normalize подставляет значения по умолчанию и ограничивает размер страницы
func (p Params) Normalize(defaultSize int) Params {
	if defaultSize <= 0 {
		defaultSize = DefaultPageSize
	}
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = defaultSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

// Offset смещение для LIMIT/OFFSET
func (p Params) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Page страница результатов
type Page[T any] struct {
	Items    []T
	Page     int
	PageSize int
	Total    int
	HasNext  bool
	HasPrev  bool
}

// NewPage собирает страницу из уже выбранных элементов и общего количества
func NewPage[T any](items []T, params Params, total int) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:    items,
		Page:     params.Page,
		PageSize: params.PageSize,
		Total:    total,
		HasNext:  params.Offset()+len(items) < total,
		HasPrev:  params.Page > 1,
	}
}

// Map преобразует элементы страницы, сохраняя метаданные
func Map[T, R any](p Page[T], fn func(T) R) Page[R] {
	items := make([]R, len(p.Items))
	for i, item := range p.Items {
		items[i] = fn(item)
	}
	return Page[R]{
		Items:    items,
		Page:     p.Page,
		PageSize: p.PageSize,
		Total:    p.Total,
		HasNext:  p.HasNext,
		HasPrev:  p.HasPrev,
	}
}
