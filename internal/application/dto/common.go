package dto

// PageRequest paginación estilo page/per_page para listados.
type PageRequest struct {
	Page    int `query:"page" validate:"min=1"`
	PerPage int `query:"per_page" validate:"min=1,max=100"`
}

// DefaultPage aplica valores por defecto y acota per_page.
func (p *PageRequest) DefaultPage() {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PerPage <= 0 {
		p.PerPage = 20
	}
	if p.PerPage > 100 {
		p.PerPage = 100
	}
}

// Offset convierte page/per_page a offset SQL.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// PageMeta metadatos de página en respuestas de listado.
type PageMeta struct {
	CurrentPage  int  `json:"current_page"`
	NextPage     *int `json:"next_page"`
	TotalPages   int  `json:"total_pages"`
	TotalRecords int  `json:"total_records"`
}

// NewPageMeta calcula los metadatos a partir del total de registros.
func NewPageMeta(page, perPage, total int) PageMeta {
	totalPages := total / perPage
	if total%perPage != 0 {
		totalPages++
	}
	meta := PageMeta{
		CurrentPage:  page,
		TotalPages:   totalPages,
		TotalRecords: total,
	}
	if page < totalPages {
		next := page + 1
		meta.NextPage = &next
	}
	return meta
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
