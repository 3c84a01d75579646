package storage

import (
	"encoding/json"
	"fmt"

	"github.com/magabrotheeeer/messmate/internal/models"
)

// Encode сериализует состояние в JSON-документ.
func Encode(st models.State) ([]byte, error) {
	const op = "storage.Encode"
	data, err := json.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return data, nil
}

// Decode разбирает документ поверх значений по умолчанию.
//
// Отсутствующие поля берутся из Defaults, settings сливаются по полям.
// Пустые plans и menuItems заменяются встроенными, пустые списки клиентов
// и проводок становятся пустыми срезами. Документ с неизвестным видом
// проводки отклоняется.
func Decode(data []byte) (models.State, error) {
	const op = "storage.Decode"
	// срезы не заполняются заранее: json декодирует элементы поверх старых значений
	st := models.State{Settings: DefaultSettings()}
	if err := json.Unmarshal(data, &st); err != nil {
		return models.State{}, fmt.Errorf("%s: %w", op, err)
	}

	if st.Plans == nil {
		st.Plans = DefaultPlans()
	}
	if st.MenuItems == nil {
		st.MenuItems = DefaultMenuItems()
	}
	if st.Customers == nil {
		st.Customers = []models.Customer{}
	}
	if st.Transactions == nil {
		st.Transactions = []models.Transaction{}
	}
	for _, tx := range st.Transactions {
		if err := tx.Type.Validate(); err != nil {
			return models.State{}, fmt.Errorf("%s: transaction %s: %w", op, tx.ID, err)
		}
	}
	return st, nil
}
