package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	"autoshop/internal/availability"
	"autoshop/internal/database"
	"autoshop/internal/domain"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "autoshop.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (child tables first)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM repair_orders")
	db.Exec("DELETE FROM appointments")
	db.Exec("DELETE FROM vehicles")
	db.Exec("DELETE FROM customers")
	db.Exec("DELETE FROM service_items")
	db.Exec("DELETE FROM users")
	db.Exec("DELETE FROM tenants")

	// ================== TENANT ==================
	log.Println("Creating demo shop...")

	rulesJSON, err := availability.DefaultRules().Marshal()
	if err != nil {
		log.Fatal(err)
	}

	shop := domain.Tenant{
		Name:                  "Main Street Auto",
		Slug:                  "main-street-auto",
		Phone:                 "+1 555 0100",
		Email:                 "service@mainstreetauto.example",
		Address:               "42 Main Street",
		City:                  "Springfield",
		About:                 "Family-run repair shop. Brakes, oil, diagnostics.",
		Status:                domain.OnboardingCompleted,
		AvailabilityRulesJSON: rulesJSON,
	}
	db.Create(&shop)

	// ================== STAFF ==================
	log.Println("Creating staff...")

	ownerHash, _ := bcrypt.GenerateFromPassword([]byte("owner123"), bcrypt.DefaultCost)
	db.Create(&domain.User{
		TenantID:     shop.ID,
		Email:        "owner@mainstreetauto.example",
		PasswordHash: string(ownerHash),
		Role:         domain.RoleOwner,
		Name:         "Sam Greer",
		IsActive:     true,
	})
	log.Println("Owner created: owner@mainstreetauto.example / owner123")

	mechanicHash, _ := bcrypt.GenerateFromPassword([]byte("mechanic123"), bcrypt.DefaultCost)
	mechanic := domain.User{
		TenantID:     shop.ID,
		Email:        "lou@mainstreetauto.example",
		PasswordHash: string(mechanicHash),
		Role:         domain.RoleMechanic,
		Name:         "Lou Barton",
		IsActive:     true,
	}
	db.Create(&mechanic)

	// ================== SERVICES ==================
	log.Println("Creating services...")

	services := []domain.ServiceItem{
		{TenantID: shop.ID, Name: "Oil Change", Category: "Maintenance", DurationMinutes: 30, BasePrice: 49.99, IsActive: true, IsBookableOnline: true},
		{TenantID: shop.ID, Name: "Brake Inspection", Category: "Brakes", DurationMinutes: 60, BasePrice: 89.00, IsActive: true, IsBookableOnline: true},
		{TenantID: shop.ID, Name: "Engine Diagnostics", Category: "Diagnostics", DurationMinutes: 90, BasePrice: 120.00, IsActive: true, IsBookableOnline: true},
		{TenantID: shop.ID, Name: "Transmission Rebuild", Category: "Drivetrain", DurationMinutes: 240, BasePrice: 1800.00, IsActive: true, IsBookableOnline: false},
	}
	db.Create(&services)

	// ================== CUSTOMERS + VEHICLES ==================
	log.Println("Creating customers...")

	customers := []domain.Customer{
		{TenantID: shop.ID, Name: "Pat Driver", Phone: "+1 555 0101", Email: "pat@example.com"},
		{TenantID: shop.ID, Name: "Jordan Wheels", Phone: "+1 555 0102"},
		{TenantID: shop.ID, Name: "Casey Motor", Phone: "+1 555 0103", Email: "casey@example.com"},
	}
	db.Create(&customers)

	vehicles := []domain.Vehicle{
		{TenantID: shop.ID, CustomerID: customers[0].ID, Make: "Toyota", Model: "Corolla", Year: 2019, LicensePlate: "ABC-1234", Mileage: 48000},
		{TenantID: shop.ID, CustomerID: customers[1].ID, Make: "Ford", Model: "F-150", Year: 2016, LicensePlate: "TRK-9876", Mileage: 112000},
		{TenantID: shop.ID, CustomerID: customers[2].ID, Make: "Honda", Model: "Civic", Year: 2021, LicensePlate: "CIV-4455", Mileage: 21000},
	}
	db.Create(&vehicles)

	// ================== APPOINTMENTS ==================
	log.Println("Creating appointments...")

	nextMonday := nextWeekday(time.Now().UTC(), time.Monday)
	for i, hour := range []int{9, 11, 14} {
		start := time.Date(nextMonday.Year(), nextMonday.Month(), nextMonday.Day(), hour, 0, 0, 0, time.UTC)
		appt := domain.Appointment{
			TenantID:      shop.ID,
			CustomerID:    &customers[i].ID,
			VehicleID:     &vehicles[i].ID,
			ServiceItemID: &services[i].ID,
			ScheduledAt:   start,
			Status:        domain.AppointmentConfirmed,
			Source:        domain.SourceStaff,
			Notes:         fmt.Sprintf("Seeded demo appointment %d", i+1),
		}
		db.Create(&appt)
	}

	// ================== REPAIR ORDER ==================
	log.Println("Creating a repair order...")

	db.Create(&domain.RepairOrder{
		TenantID:   shop.ID,
		Number:     "RO-000001",
		CustomerID: customers[1].ID,
		VehicleID:  &vehicles[1].ID,
		MechanicID: &mechanic.ID,
		Status:     domain.RepairOrderInProgress,
		Complaint:  "Grinding noise when braking",
		Diagnosis:  "Front pads worn to the backing plate",
		LaborTotal: 180.00,
		PartsTotal: 95.50,
		Total:      275.50,
		LinesJSON:  []byte(`[{"description":"Replace front brake pads","type":"labor","quantity":2,"unit_price":90},{"description":"Brake pad set","type":"part","quantity":1,"unit_price":95.5}]`),
		OpenedAt:   time.Now().UTC(),
	})

	log.Println("Seed complete.")
	log.Println("Public booking page: /api/v1/public/main-street-auto")
}

func nextWeekday(from time.Time, day time.Weekday) time.Time {
	d := from
	for d.Weekday() != day {
		d = d.AddDate(0, 0, 1)
	}
	return d
}
