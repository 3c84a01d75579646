package models

// State — корневой агрегат приложения и единица сохранения.
// Каждая операция движка получает State и возвращает новый State.
type State struct {
	CurrentUser  *User         `json:"currentUser"`
	Customers    []Customer    `json:"customers"`
	Transactions []Transaction `json:"transactions"`
	Plans        []Plan        `json:"plans"`
	Settings     Settings      `json:"settings"`
	DarkMode     bool          `json:"darkMode"`
	MenuItems    []MenuItem    `json:"menuItems"`
}

// FindCustomer возвращает индекс клиента по ID или -1.
func (s State) FindCustomer(id string) int {
	for i := range s.Customers {
		if s.Customers[i].ID == id {
			return i
		}
	}
	return -1
}

// FindPlan возвращает план по ID.
func (s State) FindPlan(id string) (Plan, bool) {
	for _, p := range s.Plans {
		if p.ID == id {
			return p, true
		}
	}
	return Plan{}, false
}

// FindMenuItem возвращает позицию меню по ID.
func (s State) FindMenuItem(id string) (MenuItem, bool) {
	for _, m := range s.MenuItems {
		if m.ID == id {
			return m, true
		}
	}
	return MenuItem{}, false
}
