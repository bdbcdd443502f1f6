package dto

// VideoSearchQuery 全文搜索参数
type VideoSearchQuery struct {
	Q string
	Pagination
}
