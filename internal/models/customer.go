// Package models содержит доменные структуры учёта абонентов столовой:
// тарифные планы, позиции меню, клиентов, проводки журнала, настройки
// напоминаний и агрегат состояния, который целиком сохраняется в хранилище.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Plan описывает тарифный план, который можно купить.
// Планы являются конфигурацией и движком не изменяются.
type Plan struct {
	ID           string          `json:"id"`           // Идентификатор плана
	Name         string          `json:"name"`         // Отображаемое название
	Cost         decimal.Decimal `json:"cost"`         // Стоимость плана
	TotalMeals   int             `json:"totalMeals"`   // Количество предоплаченных обедов
	ValidityDays int             `json:"validityDays"` // Срок действия в днях
}

// MenuItem описывает блюдо с ценой полной и половинной порции.
type MenuItem struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	PriceFull decimal.Decimal `json:"priceFull"`
	PriceHalf decimal.Decimal `json:"priceHalf"`
}

// Portion — размер порции при отметке обеда.
type Portion string

const (
	// PortionHalf — половинная порция.
	PortionHalf Portion = "half"
	// PortionFull — полная порция.
	PortionFull Portion = "full"
)

// Valid сообщает, является ли значение известным размером порции.
func (p Portion) Valid() bool {
	return p == PortionHalf || p == PortionFull
}

// UnitPrice возвращает цену одной единицы блюда для заданной порции.
func (m MenuItem) UnitPrice(p Portion) decimal.Decimal {
	if p == PortionFull {
		return m.PriceFull
	}
	return m.PriceHalf
}

// Customer представляет абонента столовой.
//
// MealsRemaining никогда не становится отрицательным.
// Balance: положительное значение означает долг клиента, отрицательное означает предоплату.
// ExpiryDate может только сдвигаться вперёд.
type Customer struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Phone          string          `json:"phone"`
	PlanID         string          `json:"planId"`
	StartDate      time.Time       `json:"startDate"`
	ExpiryDate     time.Time       `json:"expiryDate"`
	MealsRemaining int             `json:"mealsRemaining"`
	Balance        decimal.Decimal `json:"balance"`
	IsActive       bool            `json:"isActive"`
	TotalBreakDays int             `json:"totalBreakDays"`
}

// Settings хранит пороги для напоминаний.
type Settings struct {
	SubscriptionDays int             `json:"subscriptionDays"` // За сколько дней до окончания предупреждать (>= 1)
	MealThreshold    int             `json:"mealThreshold"`    // Порог остатка обедов (>= 0)
	BalanceThreshold decimal.Decimal `json:"balanceThreshold"` // Порог долга (>= 0)
}
