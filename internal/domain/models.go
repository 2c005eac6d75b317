package domain

// Product categories sold on the marketplace.
const (
	CatHollow       = "HOLLOW"
	CatSolid        = "SOLID"
	CatPaving       = "PAVING"
	CatDecorative   = "DECORATIVE"
	CatCement       = "CEMENT"
	CatInterlocking = "INTERLOCKING"
	CatUBlock       = "U_BLOCK"
)

type Product struct {
	ID          string  `db:"id" json:"id"`
	Name        string  `db:"name" json:"name"`
	Category    string  `db:"category" json:"category"`
	Price       float64 `db:"price" json:"price"` // base currency (GHS)
	FactoryName string  `db:"factory_name" json:"factoryName"`
	Dimensions  string  `db:"dimensions" json:"dimensions"`
	Weight      string  `db:"weight" json:"weight"`
	Strength    string  `db:"strength" json:"strength"`
	AvgRating   float64 `db:"avg_rating" json:"avgRating"`
	ReviewCount int     `db:"review_count" json:"reviewCount"`
	Active      bool    `db:"active" json:"active"`
	CreatedAt   string  `db:"created_at" json:"createdAt"`
	UpdatedAt   string  `db:"updated_at" json:"updatedAt,omitempty"`
}

// Order statuses, strictly in this sequence.
const (
	StatusProcessing     = "PROCESSING"
	StatusInProduction   = "IN_PRODUCTION"
	StatusOutForDelivery = "OUT_FOR_DELIVERY"
	StatusDelivered      = "DELIVERED"
)

type Tracking struct {
	CurrentLocation  string `db:"tracking_location" json:"currentLocation"`
	EstimatedArrival string `db:"tracking_eta" json:"estimatedArrival"`
	DriverName       string `db:"driver_name" json:"driverName"`
	DriverPhone      string `db:"driver_phone" json:"driverPhone"`
}

// Partner application statuses.
const (
	PartnerPending  = "PENDING"
	PartnerApproved = "APPROVED"
	PartnerRejected = "REJECTED"
)

type Partner struct {
	ID                 string  `db:"id" json:"id"`
	Name               string  `db:"name" json:"name"`
	Location           string  `db:"location" json:"location"`
	Contact            string  `db:"contact" json:"contact"`
	Status             string  `db:"status" json:"status"` // PENDING | APPROVED | REJECTED
	Tier               string  `db:"tier" json:"tier"`     // standard | premium | enterprise
	SubscriptionFee    float64 `db:"subscription_fee" json:"subscriptionFee"`
	RevenueGenerated   float64 `db:"revenue_generated" json:"revenueGenerated"`
	ActiveFleetCount   int     `db:"active_fleet_count" json:"activeFleetCount"`
	ProductionCapacity int     `db:"production_capacity" json:"productionCapacity"`
	CreatedAt          string  `db:"created_at" json:"createdAt"`
}
