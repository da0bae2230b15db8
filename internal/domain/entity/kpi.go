package entity

import "github.com/shopspring/decimal"

type KPIs struct {
	TotalDeals   int
	DealsToday   int
	ActiveBuyers int
	AveragePrice decimal.Decimal
	GreenDeals   int
	YellowDeals  int
	RedDeals     int
	Matched      int
	Contacted    int
	Failed       int
}
