package order

import (
	"encoding/csv"
	"io"
	"strconv"
)

var csvHeader = []string{
	"id", "user_id", "product_name", "quantity", "price", "total",
	"fullname", "phone", "address", "city", "state", "zip",
	"payment_method", "status", "tracking_number", "created_at", "updated_at",
}

// WriteCSV renders the order list as a spreadsheet-ready CSV. It is a
// pure transformation of whatever list the caller already loaded.
func WriteCSV(w io.Writer, orders []Order) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, ord := range orders {
		record := []string{
			ord.ID,
			strconv.Itoa(ord.UserID),
			ord.ProductName,
			strconv.Itoa(ord.Quantity),
			strconv.FormatFloat(ord.Price, 'f', 2, 64),
			strconv.FormatFloat(ord.Total, 'f', 2, 64),
			ord.FullName,
			ord.Phone,
			ord.Address,
			ord.City,
			ord.State,
			ord.Zip,
			ord.PaymentMethod,
			string(ord.Status),
			ord.TrackingNumber,
			ord.CreatedAt,
			ord.UpdatedAt,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
