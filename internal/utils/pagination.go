package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/harukisol/board-management-api/internal/constants"
)

// PaginationParams is a validated page window. Offset is precomputed so
// repositories can feed the params straight into a query scope.
type PaginationParams struct {
	Page   int
	Limit  int
	Offset int
}

// PaginationResponse is the envelope returned alongside any paged
// collection, such as a list's tasks.
type PaginationResponse struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// GetPaginationParams reads page/limit from the query string and clamps them
// to the bounds in constants. Unparseable or out-of-range values fall back
// to the defaults rather than erroring.
func GetPaginationParams(c *gin.Context) PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(constants.MinPageSize)))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(constants.DefaultPageSize)))

	if page < constants.MinPageSize {
		page = constants.MinPageSize
	}
	if limit < constants.MinPageSize || limit > constants.MaxPageSize {
		limit = constants.DefaultPageSize
	}

	return PaginationParams{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}
