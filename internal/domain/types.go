package domain

import "time"

type PortfolioItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Category    string    `json:"category"`
	Client      string    `json:"client"`
	Duration    string    `json:"duration"`
	Workers     int       `json:"workers"`
	CreatedAt   time.Time `json:"createdAt"`
}

type FAQItem struct {
	ID         string    `json:"id"`
	Question   string    `json:"question"`
	Answer     string    `json:"answer"`
	OrderIndex int       `json:"order_index"`
	CreatedAt  time.Time `json:"createdAt"`
}

type ServiceItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Features    []string  `json:"features"`
	OrderIndex  int       `json:"order_index"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Lead is a contact-form submission from the public site.
type Lead struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// PortfolioCategories are the categories offered by the admin console.
// Stored items may carry any category string.
var PortfolioCategories = []string{"Строительство", "Склад", "Промышленность", "Монтаж"}
