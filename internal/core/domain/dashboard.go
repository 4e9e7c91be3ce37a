package domain

// SeriesPoint is one bar or slice of a dashboard chart.
type SeriesPoint struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// DashboardStats are the headline tiles.
type DashboardStats struct {
	TotalProducts int     `json:"total_products"`
	TotalUsers    int     `json:"total_users"`
	TotalOrders   int     `json:"total_orders"`
	TotalRevenue  float64 `json:"total_revenue"`
}

// Dashboard is the landing screen.
type Dashboard struct {
	Stats          DashboardStats `json:"stats"`
	RecentProducts []Product      `json:"recent_products"`
	Sales          []SeriesPoint  `json:"sales"`
	Categories     []SeriesPoint  `json:"categories"`
	Activity       []JournalEntry `json:"activity"`
}

// Chart data is static sample data; there is no orders API yet.
var (
	SampleSales = []SeriesPoint{
		{Name: "Jan", Value: 4000},
		{Name: "Feb", Value: 3000},
		{Name: "Mar", Value: 5000},
		{Name: "Apr", Value: 2780},
		{Name: "May", Value: 1890},
		{Name: "Jun", Value: 2390},
	}
	SampleCategories = []SeriesPoint{
		{Name: "Contact Lenses", Value: 400},
		{Name: "Eyeglasses", Value: 300},
		{Name: "Sunglasses", Value: 300},
		{Name: "Accessories", Value: 200},
	}
	SampleTotalOrders  = 25
	SampleTotalRevenue = 15000.0
)
