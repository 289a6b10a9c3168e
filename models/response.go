package models

// APIResponse is the envelope every endpoint returns. Message is safe for
// direct display in the portal; it must never carry internal identifiers.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message"`
}

// Page wraps a paginated result set the way the portal's list views expect.
type Page struct {
	Content       interface{} `json:"content"`
	Page          int         `json:"page"`
	TotalPages    int         `json:"totalPages"`
	TotalElements int64       `json:"totalElements"`
}

// NewPage computes the page arithmetic from a total count.
func NewPage(content interface{}, page, size int, total int64) Page {
	if size <= 0 {
		size = 10
	}
	totalPages := int((total + int64(size) - 1) / int64(size))
	return Page{
		Content:       content,
		Page:          page,
		TotalPages:    totalPages,
		TotalElements: total,
	}
}
