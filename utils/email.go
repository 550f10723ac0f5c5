package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"log"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// BookingConfirmationData dữ liệu cho template email xác nhận đặt vé
type BookingConfirmationData struct {
	OrderCode   string
	TheaterName string
	Showtime    string
	Seats       string
	Snacks      string
	TotalAmount float64
	DetailLink  string
}

// CancellationData dữ liệu cho template email xác nhận hủy vé
type CancellationData struct {
	OrderCode    string
	TheaterName  string
	Showtime     string
	Seats        string
	RefundAmount float64
	CancelledAt  string
}

// SendCancellationEmail gửi email xác nhận hủy vé + số tiền hoàn (async)
func SendCancellationEmail(to string, data CancellationData) {
	go func() {
		tmpl, err := template.ParseFiles("templates/order_cancelled.html")
		if err != nil {
			log.Printf("Lỗi load template hủy vé: %v", err)
			return
		}

		var body bytes.Buffer
		if err := tmpl.Execute(&body, data); err != nil {
			log.Printf("Lỗi render template hủy vé: %v", err)
			return
		}

		port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
		m := gomail.NewMessage()
		m.SetHeader("From", os.Getenv("SMTP_FROM"))
		m.SetHeader("To", to)
		m.SetHeader("Subject", "Hủy vé thành công - Mã đơn: "+data.OrderCode)
		m.SetBody("text/html", body.String())

		d := gomail.NewDialer(os.Getenv("SMTP_HOST"), port, os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD"))
		if err := d.DialAndSend(m); err != nil {
			log.Printf("Lỗi gửi email hủy vé cho %s: %v", to, err)
		}
	}()
}

// SendBookingConfirmationEmail gửi email xác nhận đặt vé kèm mã QR của từng
// vé nhúng trong thân mail (async, lỗi gửi không ảnh hưởng đơn hàng)
func SendBookingConfirmationEmail(to string, data BookingConfirmationData, ticketCodes []string) {
	go func() { // Async để không delay response
		tmplPath := "templates/booking_confirmation.html"
		tmpl, err := template.ParseFiles(tmplPath)
		if err != nil {
			log.Printf("Lỗi load template email: %v", err)
			return
		}

		var body bytes.Buffer
		if err := tmpl.Execute(&body, data); err != nil {
			log.Printf("Lỗi render template email: %v", err)
			return
		}

		host := os.Getenv("SMTP_HOST")
		portStr := os.Getenv("SMTP_PORT")
		username := os.Getenv("SMTP_USERNAME")
		password := os.Getenv("SMTP_PASSWORD")
		from := os.Getenv("SMTP_FROM")

		port, _ := strconv.Atoi(portStr)

		m := gomail.NewMessage()
		m.SetHeader("From", from)
		m.SetHeader("To", to)
		m.SetHeader("Subject", "Xác nhận đặt vé #"+data.OrderCode)

		html := body.String()
		for i, code := range ticketCodes {
			qrBytes, err := GenerateTicketQR(code)
			if err != nil {
				log.Printf("Lỗi tạo QR cho vé %s: %v", code, err)
				continue
			}
			cid := fmt.Sprintf("ticket-qr-%d.png", i)
			payload := qrBytes
			m.Embed(cid, gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(payload)
				return err
			}))
			html += fmt.Sprintf(`<p>Vé %s</p><img src="cid:%s" alt="QR vé"/>`, code, cid)
		}
		m.SetBody("text/html", html)

		d := gomail.NewDialer(host, port, username, password)
		if err := d.DialAndSend(m); err != nil {
			log.Printf("Lỗi gửi email: %v", err)
		}
	}()
}
