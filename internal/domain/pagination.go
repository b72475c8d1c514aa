package domain

// Page запрошенная страница (нумерация с 1)
type Page struct {
	Number int
	Size   int
}

// NewPage нормализует номер и размер страницы.
// Номер обрезается так, чтобы Offset не превышал MaxPageOffset.
func NewPage(number, size int) Page {
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageOffset {
		size = MaxPageOffset
	}
	if number < 1 {
		number = 1
	}
	if maxNumber := MaxPageOffset/size + 1; number > maxNumber {
		number = maxNumber
	}
	return Page{Number: number, Size: size}
}

// Offset смещение для запроса
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// PageInfo метаданные страницы в ответе
type PageInfo struct {
	Total       int64
	PerPage     int
	CurrentPage int
	LastPage    int
	From        *int
	To          *int
}

// NewPageInfo считает метаданные по общему количеству и числу записей на странице
func NewPageInfo(page Page, total int64, count int) PageInfo {
	lastPage := int((total + int64(page.Size) - 1) / int64(page.Size))
	if lastPage < 1 {
		lastPage = 1
	}

	info := PageInfo{
		Total:       total,
		PerPage:     page.Size,
		CurrentPage: page.Number,
		LastPage:    lastPage,
	}
	if count > 0 {
		from := page.Offset() + 1
		to := page.Offset() + count
		info.From = &from
		info.To = &to
	}
	return info
}
