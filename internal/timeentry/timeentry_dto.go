package timeentry

type ClockInRequest struct {
	Latitude  *float64 `json:"latitude" binding:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" binding:"omitempty,gte=-180,lte=180"`
}

type ClockOutRequest struct {
	Latitude  *float64 `json:"latitude" binding:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" binding:"omitempty,gte=-180,lte=180"`
}

type UpdateTimeEntryRequest struct {
	ClockIn  string  `json:"clock_in" binding:"required"`
	ClockOut *string `json:"clock_out" binding:"omitempty"`
	Notes    *string `json:"notes" binding:"omitempty,max=1000"`
}

type DateRangeRequest struct {
	From string `form:"from" binding:"required"`
	To   string `form:"to" binding:"required"`
}

type TimeEntryResponse struct {
	ID                string   `json:"id"`
	UserID            string   `json:"user_id"`
	ClockIn           string   `json:"clock_in"`
	ClockOut          *string  `json:"clock_out,omitempty"`
	ClockInLatitude   *float64 `json:"clock_in_latitude,omitempty"`
	ClockInLongitude  *float64 `json:"clock_in_longitude,omitempty"`
	ClockOutLatitude  *float64 `json:"clock_out_latitude,omitempty"`
	ClockOutLongitude *float64 `json:"clock_out_longitude,omitempty"`
	Notes             *string  `json:"notes,omitempty"`
	DurationMinutes   *int     `json:"duration_minutes,omitempty"`
	Duration          *string  `json:"duration,omitempty"`
}
