package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/salescope-dev/salescope/internal/model"
)

// DefaultLowQuantityThreshold marks products as low-performing below this
// many units sold.
const DefaultLowQuantityThreshold = 10

var hundred = decimal.NewFromInt(100)

// RegionStats aggregates sales for one region.
type RegionStats struct {
	Region           string
	TotalSales       decimal.Decimal
	TransactionCount int
	Percentage       decimal.Decimal // share of total revenue, 2 decimal places
}

// ProductStats aggregates sales for one product name.
type ProductStats struct {
	Name     string
	Quantity int
	Revenue  decimal.Decimal
}

// CustomerStats aggregates purchases for one customer.
type CustomerStats struct {
	CustomerID     string
	TotalSpent     decimal.Decimal
	PurchaseCount  int
	AvgOrderValue  decimal.Decimal
	ProductsBought []string // distinct product names, alphabetical
}

// DayStats aggregates sales for one calendar date.
type DayStats struct {
	Date             string
	Revenue          decimal.Decimal
	TransactionCount int
	UniqueCustomers  int
}

// TotalRevenue sums LineAmount over all transactions. Zero for empty input.
func TotalRevenue(txns []model.ValidatedTransaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txns {
		total = total.Add(t.LineAmount())
	}
	return total
}

// RegionWiseSales groups transactions by region, ordered by total sales
// descending with ties in first-encountered order. Percentages are zero
// when total revenue is zero.
func RegionWiseSales(txns []model.ValidatedTransaction) []RegionStats {
	total := TotalRevenue(txns)

	idx := make(map[string]int)
	var stats []RegionStats
	for _, t := range txns {
		i, seen := idx[t.Region]
		if !seen {
			i = len(stats)
			idx[t.Region] = i
			stats = append(stats, RegionStats{Region: t.Region, TotalSales: decimal.Zero, Percentage: decimal.Zero})
		}
		stats[i].TotalSales = stats[i].TotalSales.Add(t.LineAmount())
		stats[i].TransactionCount++
	}

	if !total.IsZero() {
		for i := range stats {
			stats[i].Percentage = stats[i].TotalSales.Div(total).Mul(hundred).Round(2)
		}
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].TotalSales.GreaterThan(stats[j].TotalSales)
	})
	return stats
}

// TopSellingProducts returns the top n products by summed quantity
// descending, ties in first-encountered order.
func TopSellingProducts(txns []model.ValidatedTransaction, n int) []ProductStats {
	stats := groupByProduct(txns)
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Quantity > stats[j].Quantity
	})
	if len(stats) > n {
		stats = stats[:n]
	}
	return stats
}

// LowPerformingProducts returns products with summed quantity strictly
// below threshold, ascending by quantity.
func LowPerformingProducts(txns []model.ValidatedTransaction, threshold int) []ProductStats {
	var low []ProductStats
	for _, p := range groupByProduct(txns) {
		if p.Quantity < threshold {
			low = append(low, p)
		}
	}
	sort.SliceStable(low, func(i, j int) bool {
		return low[i].Quantity < low[j].Quantity
	})
	return low
}

// CustomerAnalysis groups transactions by customer, ordered by total spent
// descending. Product names are deduplicated and sorted so output is
// deterministic.
func CustomerAnalysis(txns []model.ValidatedTransaction) []CustomerStats {
	idx := make(map[string]int)
	var stats []CustomerStats
	var products []map[string]struct{}

	for _, t := range txns {
		i, seen := idx[t.CustomerID]
		if !seen {
			i = len(stats)
			idx[t.CustomerID] = i
			stats = append(stats, CustomerStats{CustomerID: t.CustomerID, TotalSpent: decimal.Zero})
			products = append(products, make(map[string]struct{}))
		}
		stats[i].TotalSpent = stats[i].TotalSpent.Add(t.LineAmount())
		stats[i].PurchaseCount++
		products[i][t.ProductName] = struct{}{}
	}

	for i := range stats {
		names := make([]string, 0, len(products[i]))
		for name := range products[i] {
			names = append(names, name)
		}
		sort.Strings(names)
		stats[i].ProductsBought = names
		stats[i].AvgOrderValue = stats[i].TotalSpent.Div(decimal.NewFromInt(int64(stats[i].PurchaseCount)))
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].TotalSpent.GreaterThan(stats[j].TotalSpent)
	})
	return stats
}

// DailySalesTrend groups transactions by date, ascending lexicographically.
// Dates are plain strings, so YYYY-MM-DD inputs sort chronologically.
func DailySalesTrend(txns []model.ValidatedTransaction) []DayStats {
	idx := make(map[string]int)
	var stats []DayStats
	var customers []map[string]struct{}

	for _, t := range txns {
		i, seen := idx[t.Date]
		if !seen {
			i = len(stats)
			idx[t.Date] = i
			stats = append(stats, DayStats{Date: t.Date, Revenue: decimal.Zero})
			customers = append(customers, make(map[string]struct{}))
		}
		stats[i].Revenue = stats[i].Revenue.Add(t.LineAmount())
		stats[i].TransactionCount++
		customers[i][t.CustomerID] = struct{}{}
	}

	for i := range stats {
		stats[i].UniqueCustomers = len(customers[i])
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Date < stats[j].Date
	})
	return stats
}

// FindPeakSalesDay returns the date with maximum revenue. The second
// return is false for empty input; ties go to the earliest date.
func FindPeakSalesDay(txns []model.ValidatedTransaction) (DayStats, bool) {
	trend := DailySalesTrend(txns)
	if len(trend) == 0 {
		return DayStats{}, false
	}

	peak := trend[0]
	for _, day := range trend[1:] {
		if day.Revenue.GreaterThan(peak.Revenue) {
			peak = day
		}
	}
	return peak, true
}

func groupByProduct(txns []model.ValidatedTransaction) []ProductStats {
	idx := make(map[string]int)
	var stats []ProductStats
	for _, t := range txns {
		i, seen := idx[t.ProductName]
		if !seen {
			i = len(stats)
			idx[t.ProductName] = i
			stats = append(stats, ProductStats{Name: t.ProductName, Revenue: decimal.Zero})
		}
		stats[i].Quantity += t.Quantity
		stats[i].Revenue = stats[i].Revenue.Add(t.LineAmount())
	}
	return stats
}
