package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"busexpress/internal/agents"
	"busexpress/internal/bookings"
	"busexpress/internal/employees"
	"busexpress/internal/expenses"
	"busexpress/internal/fleet"
	"busexpress/internal/routes"
	"busexpress/internal/seatmap"
	"busexpress/internal/shared/config"
	"busexpress/internal/shared/database"
	"busexpress/internal/trips"
	"busexpress/internal/users"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db  *database.DB
	rng *rand.Rand
}

func main() {
	fmt.Println("🌱 Starting BusExpress Database Seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db, rng: rand.New(rand.NewSource(time.Now().UnixNano()))}

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in the correct order (respecting foreign key constraints)
func (s *Seeder) CleanDatabase() error {
	// Delete in reverse dependency order
	tables := []string{
		"booking_seats",
		"bookings",
		"expenses",
		"agents",
		"employees",
		"trips",
		"boarding_points",
		"routes",
		"buses",
		"users",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Exec("SET CONSTRAINTS ALL DEFERRED").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to defer constraints: %w", err)
	}

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	if err := tx.Exec("SET CONSTRAINTS ALL IMMEDIATE").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to restore constraints: %w", err)
	}

	return tx.Commit().Error
}

// SeedAll seeds all required data
func (s *Seeder) SeedAll() error {
	ctx := context.Background()

	userIDs, err := s.SeedUsers()
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	if err := s.SeedAgentProfiles(userIDs); err != nil {
		return fmt.Errorf("failed to seed agent profiles: %w", err)
	}

	busIDs, err := s.SeedFleet(userIDs["admin"])
	if err != nil {
		return fmt.Errorf("failed to seed fleet: %w", err)
	}

	routeIDs, err := s.SeedRoutes(userIDs["admin"])
	if err != nil {
		return fmt.Errorf("failed to seed routes: %w", err)
	}

	if err := s.SeedEmployees(busIDs); err != nil {
		return fmt.Errorf("failed to seed employees: %w", err)
	}

	tripIDs, err := s.SeedTrips(userIDs["admin"], busIDs, routeIDs)
	if err != nil {
		return fmt.Errorf("failed to seed trips: %w", err)
	}

	if err := s.SeedBookings(tripIDs, userIDs["agent1"]); err != nil {
		return fmt.Errorf("failed to seed bookings: %w", err)
	}

	if err := s.SeedExpenses(busIDs, userIDs["admin"]); err != nil {
		return fmt.Errorf("failed to seed expenses: %w", err)
	}

	// Clear Redis cache to ensure fresh state
	if s.db.Redis != nil {
		if err := s.db.Redis.FlushDB(ctx).Err(); err != nil {
			log.Printf("Warning: Failed to clear Redis cache: %v", err)
		}
	}

	return nil
}

// SeedUsers creates one user per role plus a second agent
func (s *Seeder) SeedUsers() (map[string]uuid.UUID, error) {
	fmt.Println("  👤 Seeding users...")

	userIDs := make(map[string]uuid.UUID)

	// Hash password for all users (using "qwerty")
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("qwerty"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	usersData := []struct {
		key       string
		firstName string
		lastName  string
		email     string
		phone     string
		role      users.Role
	}{
		{"admin", "Rajesh", "Malhotra", "admin@busexpress.in", "9876500001", users.RoleAdmin},
		{"manager", "Priya", "Nair", "manager@busexpress.in", "9876500002", users.RoleManager},
		{"agent1", "Sunil", "Deshmukh", "sunil.agent@busexpress.in", "9876500003", users.RoleAgent},
		{"agent2", "Kavita", "Joshi", "kavita.agent@busexpress.in", "9876500004", users.RoleAgent},
	}

	for _, userData := range usersData {
		user := users.User{
			ID:        uuid.New(),
			FirstName: userData.firstName,
			LastName:  userData.lastName,
			Email:     userData.email,
			Phone:     userData.phone,
			Password:  string(hashedPassword),
			Role:      userData.role,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to create user %s: %w", userData.email, err)
		}

		userIDs[userData.key] = user.ID
		fmt.Printf("    ✅ Created user: %s (%s)\n", user.Email, user.Role)
	}

	return userIDs, nil
}

// SeedAgentProfiles attaches commission profiles to the agent users
func (s *Seeder) SeedAgentProfiles(userIDs map[string]uuid.UUID) error {
	fmt.Println("  💼 Seeding agent profiles...")

	profiles := []struct {
		key  string
		rate float64
	}{
		{"agent1", 5.0},
		{"agent2", 7.5},
	}

	for _, p := range profiles {
		agent := agents.Agent{
			ID:             uuid.New(),
			UserID:         userIDs[p.key],
			CommissionRate: p.rate,
			Active:         true,
			CreatedAt:      time.Now(),
			UpdatedAt:      time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&agent).Error; err != nil {
			return fmt.Errorf("failed to create agent profile for %s: %w", p.key, err)
		}
		fmt.Printf("    ✅ Created agent profile (%.1f%% commission)\n", p.rate)
	}

	return nil
}

// SeedFleet creates sample buses. Seat counts must be multiples of 6 so the
// two-deck sleeper layout divides evenly.
func (s *Seeder) SeedFleet(adminID uuid.UUID) ([]uuid.UUID, error) {
	fmt.Println("  🚌 Seeding fleet...")

	var busIDs []uuid.UUID

	busesData := []struct {
		name         string
		registration string
		totalSeats   int
		amenities    []string
		status       fleet.BusStatus
	}{
		{"Mumbai Express Sleeper", "MH12AB1234", 36, []string{"AC", "WiFi", "Charging Point", "Blanket"}, fleet.BusStatusActive},
		{"Pune Night Rider", "MH14CD5678", 30, []string{"AC", "Charging Point"}, fleet.BusStatusActive},
		{"Konkan Coastal", "MH04EF9012", 36, []string{"AC", "WiFi", "Water Bottle"}, fleet.BusStatusActive},
		{"Old Warrior", "MH01GH3456", 30, []string{"Charging Point"}, fleet.BusStatusMaintenance},
	}

	for _, busData := range busesData {
		bus := fleet.Bus{
			ID:                 uuid.New(),
			Name:               busData.name,
			RegistrationNumber: busData.registration,
			TotalSeats:         busData.totalSeats,
			Amenities:          busData.amenities,
			Status:             busData.status,
			CreatedBy:          adminID,
			CreatedAt:          time.Now(),
			UpdatedAt:          time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&bus).Error; err != nil {
			return nil, fmt.Errorf("failed to create bus %s: %w", bus.Name, err)
		}

		busIDs = append(busIDs, bus.ID)
		fmt.Printf("    ✅ Created bus: %s (%s, %d seats)\n", bus.Name, bus.RegistrationNumber, bus.TotalSeats)
	}

	return busIDs, nil
}

// SeedRoutes creates routes with boarding points
func (s *Seeder) SeedRoutes(adminID uuid.UUID) ([]uuid.UUID, error) {
	fmt.Println("  🗺️ Seeding routes...")

	var routeIDs []uuid.UUID

	routesData := []struct {
		name            string
		origin          string
		destination     string
		distanceKM      float64
		durationMinutes int
		boardingPoints  []routes.BoardingPoint
	}{
		{
			name:            "Mumbai - Pune Expressway",
			origin:          "Mumbai",
			destination:     "Pune",
			distanceKM:      148.0,
			durationMinutes: 210,
			boardingPoints: []routes.BoardingPoint{
				{Name: "Dadar East", Landmark: "Near Railway Station", OffsetMinute: 0, Sequence: 1},
				{Name: "Sion Circle", Landmark: "Opposite Metro Gate 2", OffsetMinute: 20, Sequence: 2},
				{Name: "Vashi Plaza", Landmark: "Sector 17 Bus Stop", OffsetMinute: 50, Sequence: 3},
			},
		},
		{
			name:            "Mumbai - Goa Coastal",
			origin:          "Mumbai",
			destination:     "Goa",
			distanceKM:      590.0,
			durationMinutes: 720,
			boardingPoints: []routes.BoardingPoint{
				{Name: "Borivali West", Landmark: "National Park Gate", OffsetMinute: 0, Sequence: 1},
				{Name: "Andheri East", Landmark: "Metro Station Exit 4", OffsetMinute: 35, Sequence: 2},
				{Name: "Panvel Bypass", Landmark: "McDonald's Junction", OffsetMinute: 90, Sequence: 3},
			},
		},
		{
			name:            "Pune - Nagpur Overnight",
			origin:          "Pune",
			destination:     "Nagpur",
			distanceKM:      720.0,
			durationMinutes: 840,
			boardingPoints: []routes.BoardingPoint{
				{Name: "Shivajinagar", Landmark: "ST Stand Gate 1", OffsetMinute: 0, Sequence: 1},
				{Name: "Viman Nagar", Landmark: "Phoenix Mall", OffsetMinute: 30, Sequence: 2},
			},
		},
	}

	for _, routeData := range routesData {
		route := routes.Route{
			ID:              uuid.New(),
			Name:            routeData.name,
			Origin:          routeData.origin,
			Destination:     routeData.destination,
			DistanceKM:      routeData.distanceKM,
			DurationMinutes: routeData.durationMinutes,
			CreatedBy:       adminID,
			CreatedAt:       time.Now(),
			UpdatedAt:       time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&route).Error; err != nil {
			return nil, fmt.Errorf("failed to create route %s: %w", route.Name, err)
		}

		for _, bp := range routeData.boardingPoints {
			bp.ID = uuid.New()
			bp.RouteID = route.ID
			bp.CreatedAt = time.Now()
			if err := s.db.PostgreSQL.Create(&bp).Error; err != nil {
				return nil, fmt.Errorf("failed to create boarding point %s: %w", bp.Name, err)
			}
		}

		routeIDs = append(routeIDs, route.ID)
		fmt.Printf("    ✅ Created route: %s (%d boarding points)\n", route.Name, len(routeData.boardingPoints))
	}

	return routeIDs, nil
}

// SeedEmployees creates crew members and assigns them to buses
func (s *Seeder) SeedEmployees(busIDs []uuid.UUID) error {
	fmt.Println("  🧑‍🔧 Seeding employees...")

	employeesData := []struct {
		firstName string
		lastName  string
		phone     string
		role      employees.EmployeeRole
		busIndex  int // -1 means unassigned
		salary    float64
	}{
		{"Ganesh", "Pawar", "9822100001", employees.RoleDriver, 0, 32000},
		{"Ramesh", "Kadam", "9822100002", employees.RoleConductor, 0, 21000},
		{"Vijay", "Shinde", "9822100003", employees.RoleDriver, 1, 30000},
		{"Santosh", "More", "9822100004", employees.RoleConductor, 1, 20000},
		{"Anil", "Gaikwad", "9822100005", employees.RoleDriver, 2, 31000},
		{"Prakash", "Jadhav", "9822100006", employees.RoleMechanic, -1, 26000},
		{"Mahesh", "Bhosale", "9822100007", employees.RoleCleaner, -1, 14000},
	}

	for _, empData := range employeesData {
		emp := employees.Employee{
			ID:            uuid.New(),
			FirstName:     empData.firstName,
			LastName:      empData.lastName,
			Phone:         empData.phone,
			Role:          empData.role,
			MonthlySalary: empData.salary,
			Status:        employees.EmployeeActive,
			CreatedAt:     time.Now(),
			UpdatedAt:     time.Now(),
		}
		if empData.busIndex >= 0 && empData.busIndex < len(busIDs) {
			busID := busIDs[empData.busIndex]
			emp.BusID = &busID
		}

		if err := s.db.PostgreSQL.Create(&emp).Error; err != nil {
			return fmt.Errorf("failed to create employee %s %s: %w", emp.FirstName, emp.LastName, err)
		}
		fmt.Printf("    ✅ Created employee: %s %s (%s)\n", emp.FirstName, emp.LastName, emp.Role)
	}

	return nil
}

// SeedTrips schedules upcoming departures on the active buses
func (s *Seeder) SeedTrips(adminID uuid.UUID, busIDs, routeIDs []uuid.UUID) ([]uuid.UUID, error) {
	fmt.Println("  🛣️ Seeding trips...")

	var tripIDs []uuid.UUID

	tripsData := []struct {
		busIndex     int
		routeIndex   int
		daysFromNow  int
		departHour   int
		pricePerSeat float64
	}{
		{0, 0, 1, 22, 850.0},
		{0, 0, 2, 22, 850.0},
		{1, 1, 2, 19, 1450.0},
		{2, 2, 3, 20, 1200.0},
		{2, 1, 5, 19, 1400.0},
	}

	for _, tripData := range tripsData {
		departure := time.Now().AddDate(0, 0, tripData.daysFromNow)
		departure = time.Date(departure.Year(), departure.Month(), departure.Day(),
			tripData.departHour, 0, 0, 0, time.Local)

		trip := trips.Trip{
			ID:           uuid.New(),
			BusID:        busIDs[tripData.busIndex],
			RouteID:      routeIDs[tripData.routeIndex],
			DepartureAt:  departure,
			PricePerSeat: tripData.pricePerSeat,
			Status:       trips.TripStatusScheduled,
			CreatedBy:    adminID,
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&trip).Error; err != nil {
			return nil, fmt.Errorf("failed to create trip: %w", err)
		}

		tripIDs = append(tripIDs, trip.ID)
		fmt.Printf("    ✅ Created trip departing %s (₹%.0f per seat)\n",
			departure.Format("2006-01-02 15:04"), trip.PricePerSeat)
	}

	return tripIDs, nil
}

// SeedBookings fills each trip with randomized demo occupancy. Occupied seats
// from the demo layout are grouped into confirmed bookings, pair partners
// booked together when both came up occupied.
func (s *Seeder) SeedBookings(tripIDs []uuid.UUID, agentUserID uuid.UUID) error {
	fmt.Println("  🎫 Seeding bookings...")

	customers := []struct {
		name   string
		phone  string
		email  string
		gender string
	}{
		{"Asha Patil", "9900011001", "asha.patil@example.com", "FEMALE"},
		{"Rohan Kulkarni", "9900011002", "rohan.k@example.com", "MALE"},
		{"Sneha Iyer", "9900011003", "sneha.iyer@example.com", "FEMALE"},
		{"Amit Verma", "9900011004", "amit.verma@example.com", "MALE"},
		{"Deepa Rao", "9900011005", "", "FEMALE"},
		{"Nikhil Sawant", "9900011006", "nikhil.s@example.com", "MALE"},
	}

	refSeq := 0

	for _, tripID := range tripIDs {
		var trip trips.Trip
		if err := s.db.PostgreSQL.Preload("Bus").First(&trip, "id = ?", tripID).Error; err != nil {
			return fmt.Errorf("failed to fetch trip: %w", err)
		}

		layout, err := seatmap.BuildDemoLayout(trip.Bus.TotalSeats, s.rng)
		if err != nil {
			return fmt.Errorf("failed to build demo layout: %w", err)
		}

		visited := make(map[int]bool)
		booked := 0

		for _, seat := range layout.Seats() {
			if !seat.Occupied || visited[seat.Number] {
				continue
			}
			visited[seat.Number] = true
			seatNumbers := []int{seat.Number}

			// Book double-berth partners together when both are occupied
			if seat.PairSeatNumber != 0 && !visited[seat.PairSeatNumber] {
				if partner, err := layout.Seat(seat.PairSeatNumber); err == nil && partner.Occupied {
					visited[partner.Number] = true
					seatNumbers = append(seatNumbers, partner.Number)
				}
			}

			customer := customers[refSeq%len(customers)]
			gender := customer.gender
			if seat.OccupiedByFemale {
				gender = "FEMALE"
			}

			refSeq++
			booking := bookings.Booking{
				ID:             uuid.New(),
				BookingRef:     fmt.Sprintf("BUS-%s-%06d", time.Now().Format("20060102"), refSeq),
				TripID:         trip.ID,
				AgentID:        agentUserID,
				CustomerName:   customer.name,
				CustomerPhone:  customer.phone,
				CustomerEmail:  customer.email,
				CustomerGender: gender,
				TotalSeats:     len(seatNumbers),
				TotalAmount:    float64(len(seatNumbers)) * trip.PricePerSeat,
				Status:         bookings.StatusConfirmed,
				CreatedAt:      time.Now(),
				UpdatedAt:      time.Now(),
			}
			for _, n := range seatNumbers {
				booking.Seats = append(booking.Seats, bookings.BookingSeat{
					ID:         uuid.New(),
					BookingID:  booking.ID,
					TripID:     trip.ID,
					SeatNumber: n,
					Price:      trip.PricePerSeat,
					Status:     bookings.StatusConfirmed,
					CreatedAt:  time.Now(),
				})
			}

			if err := s.db.PostgreSQL.Create(&booking).Error; err != nil {
				return fmt.Errorf("failed to create booking %s: %w", booking.BookingRef, err)
			}
			booked += len(seatNumbers)
		}

		if err := s.db.PostgreSQL.Model(&trips.Trip{}).
			Where("id = ?", trip.ID).
			Update("booked_count", booked).Error; err != nil {
			return fmt.Errorf("failed to update booked count: %w", err)
		}

		fmt.Printf("    ✅ Seeded trip occupancy: %d/%d seats booked\n", booked, trip.Bus.TotalSeats)
	}

	return nil
}

// SeedExpenses records recent operating costs per bus
func (s *Seeder) SeedExpenses(busIDs []uuid.UUID, adminID uuid.UUID) error {
	fmt.Println("  💸 Seeding expenses...")

	expensesData := []struct {
		busIndex int
		category expenses.Category
		amount   float64
		daysAgo  int
		note     string
	}{
		{0, expenses.CategoryFuel, 8500.0, 1, "Diesel top-up, Lonavala pump"},
		{0, expenses.CategoryToll, 1240.0, 1, "Expressway toll both ways"},
		{0, expenses.CategorySalary, 53000.0, 15, "Crew salary for the month"},
		{1, expenses.CategoryFuel, 12200.0, 2, "Full tank before Goa run"},
		{1, expenses.CategoryMaintenance, 4600.0, 10, "Brake pad replacement"},
		{2, expenses.CategoryFuel, 9100.0, 3, ""},
		{2, expenses.CategoryPermit, 15000.0, 30, "Annual interstate permit renewal"},
		{3, expenses.CategoryMaintenance, 38000.0, 5, "Engine overhaul"},
	}

	for _, expData := range expensesData {
		if expData.busIndex >= len(busIDs) {
			continue
		}
		exp := expenses.Expense{
			ID:         uuid.New(),
			BusID:      busIDs[expData.busIndex],
			Category:   expData.category,
			Amount:     expData.amount,
			IncurredOn: time.Now().AddDate(0, 0, -expData.daysAgo),
			Note:       expData.note,
			CreatedBy:  adminID,
			CreatedAt:  time.Now(),
			UpdatedAt:  time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&exp).Error; err != nil {
			return fmt.Errorf("failed to create expense: %w", err)
		}
		fmt.Printf("    ✅ Created expense: %s ₹%.0f\n", exp.Category, exp.Amount)
	}

	return nil
}
