package contact

import (
	"encoding/csv"
	"io"
	"time"
)

func WriteInquiriesCSV(w io.Writer, inquiries []*Inquiry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"name", "email", "phone", "message", "status", "created_at"}); err != nil {
		return err
	}

	for _, in := range inquiries {
		record := []string{
			in.Name, in.Email, in.Phone, in.Message,
			string(in.Status), in.CreatedAt.Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func WriteSubscribersCSV(w io.Writer, subs []*Subscriber) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"email", "subscribed_at"}); err != nil {
		return err
	}

	for _, sub := range subs {
		if err := cw.Write([]string{sub.Email, sub.CreatedAt.Format(time.RFC3339)}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
