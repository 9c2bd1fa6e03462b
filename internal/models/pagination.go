package models

const DefaultPageLimit = 100

type PaginationQuery struct {
	Skip  int `form:"skip" binding:"omitempty,gte=0"`
	Limit int `form:"limit" binding:"omitempty,gte=1"`
}

// Window returns the skip/limit pair with the default limit applied.
func (q PaginationQuery) Window() (int, int) {
	limit := q.Limit
	if limit == 0 {
		limit = DefaultPageLimit
	}
	return q.Skip, limit
}
