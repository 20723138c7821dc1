package main

import (
	"log"
	"os"
	"time"

	"ai-docdraft-be/internal/model"
	"ai-docdraft-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/gorm/clause"
)

type seedTemplate struct {
	name        string
	description string
	category    string
	content     string
}

var seedTemplates = []seedTemplate{
	{
		name:        "Non-Disclosure Agreement",
		description: "Mutual NDA between two parties protecting confidential information",
		category:    "legal",
		content: `NON-DISCLOSURE AGREEMENT

This Non-Disclosure Agreement is entered into on {effective_date} by and between {party_a} ("Disclosing Party") and {party_b} ("Receiving Party").

1. Purpose. The parties wish to explore a business opportunity of mutual interest, in connection with which the Disclosing Party may disclose confidential information.

2. Term. The obligations of this Agreement remain in effect for {duration} from the effective date.

3. Confidentiality. The Receiving Party shall hold all disclosed information in strict confidence and shall not disclose it to any third party.

Signed,
{party_a}
{party_b}`,
	},
	{
		name:        "Service Agreement",
		description: "Contract for professional services between a client and a provider",
		category:    "legal",
		content: `SERVICE AGREEMENT

This Service Agreement is made on {start_date} between {client_name} ("Client") and {provider_name} ("Provider").

1. Services. The Provider agrees to perform the following services: {service_description}.

2. Compensation. The Client shall pay the Provider a total fee of {total_fee}.

3. Term. This agreement begins on {start_date} and continues until the services are completed.

Client: {client_name}
Provider: {provider_name}`,
	},
	{
		name:        "Invoice",
		description: "Simple invoice for billing a customer for goods or services",
		category:    "finance",
		content: `INVOICE

Invoice Number: {invoice_number}
Date: {invoice_date}

Bill To: {customer_name}

Description: {item_description}
Amount Due: {total_amount}

Payment is due within 30 days of the invoice date.`,
	},
	{
		name:        "Offer Letter",
		description: "Employment offer letter for a new hire",
		category:    "hr",
		content: `Dear {candidate_name},

We are pleased to offer you the position of {job_title} at {company_name}, starting on {start_date}.

Your initial annual salary will be {salary}, paid in accordance with our standard payroll schedule.

We look forward to welcoming you to the team.

Sincerely,
{company_name}`,
	},
}

func main() {
	color.Cyan("🚀 Seeding document templates\n")

	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		color.Red("Error: DB_CONNECTION_STRING is not set")
		os.Exit(1)
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		color.Red("Error: Failed to connect to database: %v", err)
		os.Exit(1)
	}

	for _, tpl := range seedTemplates {
		color.Yellow("Seeding template: %s", tpl.name)

		record := model.Template{
			Id:          uuid.New(),
			Name:        tpl.name,
			Description: tpl.description,
			Content:     tpl.content,
			Category:    tpl.category,
			IsActive:    true,
			CreatedAt:   time.Now(),
		}

		// Upsert by name so re-running the seeder refreshes content
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"description", "content", "category", "is_active", "updated_at"}),
		}).Create(&record).Error
		if err != nil {
			color.Red("Failed: %v", err)
			continue
		}
		color.Green("OK: %s", tpl.name)
	}

	color.Cyan("\n✅ Seeding complete")
}
