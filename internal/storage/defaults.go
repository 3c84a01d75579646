package storage

import (
	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/messmate/internal/models"
)

// DefaultPlans — планы, которыми заполняется новый документ.
func DefaultPlans() []models.Plan {
	return []models.Plan{
		{ID: "plan_1", Name: "Full Month Mess", Cost: decimal.NewFromInt(3500), TotalMeals: 60, ValidityDays: 30},
		{ID: "plan_2", Name: "Single Meal Monthly", Cost: decimal.NewFromInt(2000), TotalMeals: 30, ValidityDays: 30},
		{ID: "plan_3", Name: "15 Days Trial", Cost: decimal.NewFromInt(1800), TotalMeals: 30, ValidityDays: 15},
	}
}

// DefaultMenuItems — встроенное меню.
func DefaultMenuItems() []models.MenuItem {
	item := func(id, name string, full, half int64) models.MenuItem {
		return models.MenuItem{ID: id, Name: name, PriceFull: decimal.NewFromInt(full), PriceHalf: decimal.NewFromInt(half)}
	}
	return []models.MenuItem{
		item("m1", "Veg Thali", 80, 50),
		item("m2", "Chicken Thali", 150, 100),
		item("m3", "Egg Rice", 90, 60),
		item("m4", "Curd Rice", 60, 40),
		item("m5", "Special Sunday", 200, 120),
	}
}

// DefaultSettings — пороги напоминаний по умолчанию.
func DefaultSettings() models.Settings {
	return models.Settings{
		SubscriptionDays: 3,
		MealThreshold:    5,
		BalanceThreshold: decimal.NewFromInt(1000),
	}
}

// Defaults возвращает документ, который создаётся при первом запуске.
func Defaults() models.State {
	return models.State{
		Customers:    []models.Customer{},
		Transactions: []models.Transaction{},
		Plans:        DefaultPlans(),
		Settings:     DefaultSettings(),
		MenuItems:    DefaultMenuItems(),
	}
}
