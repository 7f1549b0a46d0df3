package utils

import (
	"bytes"
	"html/template"
	"log"
	"strconv"

	"nyn_restaurant/config"

	"gopkg.in/gomail.v2"
)

// OrderConfirmationData feeds the confirmation email template.
type OrderConfirmationData struct {
	OrderNumber  string
	CustomerName string
	Items        []OrderConfirmationItem
	Subtotal     float64
	Discount     float64
	Tax          float64
	PackagingFee float64
	Tip          float64
	Total        float64
	PickupTime   string
	DetailLink   string
}

type OrderConfirmationItem struct {
	Name  string
	Qty   int
	Price float64
}

// SendOrderConfirmationEmail sends the order confirmation (async, best effort).
func SendOrderConfirmationEmail(to string, data OrderConfirmationData) {
	go func() {
		host := config.Config("SMTP_HOST")
		if host == "" {
			log.Printf("SMTP not configured, skipping confirmation email for order %s", data.OrderNumber)
			return
		}

		tmplPath := "templates/order_confirmation.html"
		tmpl, err := template.ParseFiles(tmplPath)
		if err != nil {
			log.Printf("failed to load email template: %v", err)
			return
		}

		var body bytes.Buffer
		if err := tmpl.Execute(&body, data); err != nil {
			log.Printf("failed to render email template: %v", err)
			return
		}

		port, _ := strconv.Atoi(config.ConfigOr("SMTP_PORT", "587"))

		m := gomail.NewMessage()
		m.SetHeader("From", config.Config("SMTP_FROM"))
		m.SetHeader("To", to)
		m.SetHeader("Subject", "Your order "+data.OrderNumber+" is confirmed")
		m.SetBody("text/html", body.String())

		d := gomail.NewDialer(host, port, config.Config("SMTP_USERNAME"), config.Config("SMTP_PASSWORD"))
		if err := d.DialAndSend(m); err != nil {
			log.Printf("failed to send confirmation email for order %s: %v", data.OrderNumber, err)
		}
	}()
}
