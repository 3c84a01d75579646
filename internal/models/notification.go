package models

import "github.com/shopspring/decimal"

// RenewalNotice — сообщение планировщика о клиенте, которому пора продлевать план.
type RenewalNotice struct {
	CustomerID     string `json:"customerId"`
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	DaysToExpiry   int    `json:"daysToExpiry"`
	MealsRemaining int    `json:"mealsRemaining"`
	UrgencyScore   int    `json:"urgencyScore"`
	ExpiringSoon   bool   `json:"expiringSoon"`
	LowMeals       bool   `json:"lowMeals"`
}

// PaymentNotice — сообщение планировщика о клиенте с долгом выше порога.
type PaymentNotice struct {
	CustomerID string          `json:"customerId"`
	Name       string          `json:"name"`
	Phone      string          `json:"phone"`
	Balance    decimal.Decimal `json:"balance"`
}
