package common

type SuccessResponse struct {
	Data interface{} `json:"data"`
}

func NewSuccessResponse(data interface{}) *SuccessResponse {
	return &SuccessResponse{Data: data}
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func NewErrorResponse(message string) *ErrorResponse {
	return &ErrorResponse{Message: message}
}

type Pagination struct {
	Total int64 `json:"total"`
}

type SearchResponse struct {
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

func NewSearchResponse(data interface{}, total int64) *SearchResponse {
	return &SearchResponse{
		Data:       data,
		Pagination: Pagination{Total: total},
	}
}
