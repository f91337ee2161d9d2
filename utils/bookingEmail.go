package utils

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"BayHospital/models"

	"gopkg.in/gomail.v2"
)

// SendBookingConfirmationEmail emails the patient their queue number and
// visit details. Callers invoke it off the booking transaction path; a
// failure never affects the booking itself.
func SendBookingConfirmationEmail(appointment *models.Appointment, schedule *models.Schedule, doctorName string) error {
	if appointment.Email == "" {
		return nil
	}

	fromEmail := os.Getenv("SMTP_USER")

	m := gomail.NewMessage()
	m.SetHeader("From", fromEmail)
	m.SetHeader("To", appointment.Email)
	m.SetHeader("Subject", "Appointment Confirmation")

	visit := fmt.Sprintf("%s %s (%s-%s) with %s",
		schedule.Date.Format("2006-01-02"), schedule.TimeSlot,
		schedule.StartTime, schedule.EndTime, doctorName)

	m.SetBody("text/plain", fmt.Sprintf(
		"Dear %s,\n\nYour appointment is confirmed.\n\nVisit: %s\nQueue number: %d\nBooking reference: %s\n\nPlease arrive 10 minutes early and bring your ID.",
		appointment.PatientName, visit, appointment.QueueNumber, appointment.ID))

	htmlBody := `
	<!DOCTYPE html>
	<html>
	<head>
		<title>Appointment Confirmation</title>
		<style>
			body {
				font-family: Arial, sans-serif;
				background-color: #f4f4f4;
				margin: 0;
				padding: 0;
			}
			.container {
				background-color: #ffffff;
				margin: 20px auto;
				padding: 20px;
				border-radius: 8px;
				box-shadow: 0 2px 4px rgba(0, 0, 0, 0.1);
				max-width: 600px;
			}
			h1 {
				color: #333333;
			}
			p {
				color: #666666;
			}
			.queue {
				font-weight: bold;
				color: #007bff;
			}
		</style>
	</head>
	<body>
		<div class="container">
			<h1>Appointment Confirmation</h1>
			<p>Dear ` + appointment.PatientName + `,</p>
			<p>Your appointment is confirmed: ` + visit + `</p>
			<p>Your queue number is:</p>
			<p class="queue">` + strconv.Itoa(appointment.QueueNumber) + `</p>
			<p>Booking reference: ` + appointment.ID + `</p>
			<p>Please arrive 10 minutes early and bring your ID.</p>
		</div>
	</body>
	</html>
	`
	m.AddAlternative("text/html", htmlBody)

	smtpHost := os.Getenv("SMTP_HOST")
	smtpPortStr := os.Getenv("SMTP_PORT")
	smtpUser := os.Getenv("SMTP_USER")
	smtpPass := os.Getenv("SMTP_PASS")

	smtpPort, err := strconv.Atoi(smtpPortStr)
	if err != nil {
		log.Printf("Invalid SMTP_PORT value: %v", err)
		return fmt.Errorf("invalid SMTP_PORT value: %w", err)
	}

	d := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPass)
	return d.DialAndSend(m)
}
