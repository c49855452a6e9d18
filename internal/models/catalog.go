package models

import "slices"

// Markets lists the supported market categories in display order.
var Markets = []string{"Forex", "Stocks", "Crypto", "Commodities", "Indices"}

// MarketAssets maps each market category to its tradable assets.
var MarketAssets = map[string][]string{
	"Forex":       {"EUR/USD", "GBP/USD", "USD/JPY", "AUD/USD", "USD/CHF"},
	"Stocks":      {"AAPL", "GOOGL", "MSFT", "AMZN", "TSLA"},
	"Crypto":      {"BTC/USD", "ETH/USD", "ADA/USD", "SOL/USD", "DOT/USD"},
	"Commodities": {"Gold", "Silver", "Oil", "Natural Gas", "Wheat"},
	"Indices":     {"S&P 500", "NASDAQ", "DOW", "FTSE 100", "DAX"},
}

// AIModels lists the selectable prediction model names.
var AIModels = []string{"LSTM Neural Network", "Random Forest", "XGBoost", "Ensemble Model"}

// RiskLevels lists the selectable risk tolerance levels.
var RiskLevels = []string{"Very Low", "Low", "Medium", "High", "Very High"}

// PredictionHorizons lists the selectable forecast horizons.
var PredictionHorizons = []string{"1 Hour", "4 Hours", "1 Day", "1 Week", "1 Month"}

// ExperienceLevels lists the selectable trading experience levels.
var ExperienceLevels = []string{"Beginner", "Intermediate", "Advanced", "Expert"}

// ValidMarket reports whether market is a known category.
func ValidMarket(market string) bool {
	_, ok := MarketAssets[market]
	return ok
}

// ValidAsset reports whether asset belongs to the given market.
func ValidAsset(market, asset string) bool {
	return slices.Contains(MarketAssets[market], asset)
}

// ValidExperienceLevel reports whether level is a known experience level.
func ValidExperienceLevel(level string) bool {
	return slices.Contains(ExperienceLevels, level)
}
