package main

import (
	"fmt"
	"log"
	"strings"
	"time"

	"eyefi-app/config"
	"eyefi-app/database"
	"eyefi-app/repositories"
	"eyefi-app/services"

	"gopkg.in/gomail.v2"
)

// Shortage monitor. Runs from cron, analyzes every part with open orders
// and mails the planner list when any part has an urgent shortage. Exits
// cleanly when nothing is red.

func buildReportBody(shortages []services.UrgentShortage) string {
	var b strings.Builder

	b.WriteString("<html><body>")
	b.WriteString("<h3>Urgent allocation shortages</h3>")
	b.WriteString("<p>The following parts cannot cover their urgent sales orders ")
	b.WriteString("with current work orders and stock:</p>")
	b.WriteString("<table border=\"1\" cellpadding=\"4\" cellspacing=\"0\">")
	b.WriteString("<tr><th>Part</th><th>Shortfall</th><th>Urgent Demand</th><th>Earliest Due</th></tr>")

	for _, s := range shortages {
		due := "-"
		if s.EarliestDue != nil {
			due = s.EarliestDue.Format("2006-01-02")
		}
		b.WriteString(fmt.Sprintf("<tr><td>%s</td><td>%.0f</td><td>%.0f</td><td>%s</td></tr>",
			s.PartNumber, s.Shortfall, s.UrgentDemand, due))
	}

	b.WriteString("</table>")
	b.WriteString("<p>Open the allocation dashboard for pairing details.</p>")
	b.WriteString("</body></html>")

	return b.String()
}

func sendShortageAlert(shortages []services.UrgentShortage) error {
	if config.SMTPSender == "" || len(config.PlannerEmails) == 0 {
		return fmt.Errorf("SMTP sender or planner emails not configured")
	}

	subject := fmt.Sprintf("[Allocation] %d part(s) with urgent shortage", len(shortages))

	msg := gomail.NewMessage()
	msg.SetHeader("From", config.SMTPSender)
	msg.SetHeader("To", config.PlannerEmails...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", buildReportBody(shortages))

	dialer := gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.SMTPSender, config.SMTPPassword)
	if err := dialer.DialAndSend(msg); err != nil {
		return err
	}

	fmt.Println("Shortage alert sent to:", config.PlannerEmails)
	return nil
}

func main() {
	config.LoadConfig()

	erpDB, err := database.OpenErpDB()
	if err != nil {
		log.Fatalf("Failed to connect to ERP mirror: %v", err)
	}
	appDB, err := database.OpenAppDB()
	if err != nil {
		log.Fatalf("Failed to connect to app database: %v", err)
	}

	service := services.NewAllocationService(
		repositories.NewOrderRepository(erpDB),
		repositories.NewManualAllocationRepository(appDB),
	)

	shortages, err := service.FindUrgentShortages(time.Now())
	if err != nil {
		log.Fatalf("Failed to analyze allocations: %v", err)
	}

	if len(shortages) == 0 {
		fmt.Println("No urgent shortages found")
		return
	}

	fmt.Printf("Found %d part(s) with urgent shortage\n", len(shortages))
	for _, s := range shortages {
		fmt.Printf("  %s: short %.0f units (urgent demand %.0f)\n", s.PartNumber, s.Shortfall, s.UrgentDemand)
	}

	if err := sendShortageAlert(shortages); err != nil {
		log.Fatalf("Failed to send shortage alert: %v", err)
	}
}
