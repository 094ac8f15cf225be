package handler

type ContextKey string

var (
	YearCtxKey  ContextKey = "year"
	MonthCtxKey ContextKey = "month"
)
