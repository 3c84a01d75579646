// Package export выгружает журнал проводок и список клиентов в CSV.
package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/magabrotheeeer/messmate/internal/models"
)

// FileName возвращает имя файла выгрузки на дату now (UTC).
func FileName(now time.Time) string {
	return "messmate_export_" + now.UTC().Format(time.DateOnly) + ".csv"
}

// WriteCSV пишет две секции: проводки и, после двух пустых строк, клиентов.
// Описания проводок и имена клиентов всегда в кавычках.
func WriteCSV(w io.Writer, transactions []models.Transaction, customers []models.Customer) error {
	const op = "export.WriteCSV"
	bw := bufio.NewWriter(w)

	fmt.Fprint(bw, "Type,Date,Category,Amount,Description\n")
	for _, tx := range transactions {
		category := tx.Category
		if category == "" {
			category = "-"
		}
		fmt.Fprintf(bw, "%s,%s,%s,%s,%s\n",
			tx.Type,
			tx.Date.UTC().Format(time.RFC3339),
			category,
			tx.Amount.String(),
			quote(tx.Description),
		)
	}

	fmt.Fprint(bw, "\n\nCustomers\nName,Phone,Meals Remaining,Balance\n")
	for _, c := range customers {
		fmt.Fprintf(bw, "%s,%s,%d,%s\n", quote(c.Name), c.Phone, c.MealsRemaining, c.Balance.String())
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
