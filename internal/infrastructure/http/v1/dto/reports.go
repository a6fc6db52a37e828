package dto

// MonthlySeriesQuery bounds the monthly series (inclusive month range).
type MonthlySeriesQuery struct {
	From string `form:"from" binding:"required"`
	To   string `form:"to" binding:"required"`
}

// TopClientsQuery parameterizes the client ranking. N is a pointer so an
// explicit n=0 stays distinguishable from an absent parameter.
type TopClientsQuery struct {
	N     *int   `form:"n"`
	Scope string `form:"scope"`
}
