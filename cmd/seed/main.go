package main

import (
	"encoding/json"
	"log"
	"time"

	"hotelstay/internal/config"
	"hotelstay/internal/database"
	"hotelstay/internal/domain"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("Migrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM rooms")
	db.Exec("DELETE FROM users")

	staff := seedUser(db, "frontdesk@hotelstay.test", "staff-password-1", "Front Desk", domain.RoleStaff)
	guest := seedUser(db, "guest@hotelstay.test", "guest-password-1", "Demo Guest", domain.RoleGuest)

	rooms := []struct {
		number   string
		capacity int
		price    float64
		roomType domain.RoomType
		extras   []string
	}{
		{"101", 2, 3500, domain.RoomStandard, []string{"wifi"}},
		{"102", 2, 3500, domain.RoomStandard, []string{"wifi"}},
		{"201", 3, 5200, domain.RoomDeluxe, []string{"wifi", "minibar"}},
		{"202", 3, 5200, domain.RoomDeluxe, []string{"wifi", "minibar", "balcony"}},
		{"301", 4, 9800, domain.RoomSuite, []string{"wifi", "minibar", "jacuzzi"}},
		{"302", 5, 7400, domain.RoomFamily, []string{"wifi", "crib"}},
	}

	var created []domain.Room
	for _, r := range rooms {
		amenities, _ := json.Marshal(r.extras)
		room := domain.Room{
			Number:        r.number,
			Capacity:      r.capacity,
			PricePerNight: r.price,
			RoomType:      r.roomType,
			Amenities:     amenities,
			IsAvailable:   true,
		}
		if err := db.Create(&room).Error; err != nil {
			log.Fatal("seed room failed:", err)
		}
		created = append(created, room)
	}
	log.Printf("Seeded %d rooms", len(created))

	today := domain.Day(time.Now())
	stays := []struct {
		room   domain.Room
		in     time.Time
		out    time.Time
		status domain.BookingStatus
	}{
		{created[0], today.AddDate(0, 0, 2), today.AddDate(0, 0, 5), domain.BookingConfirmed},
		{created[2], today.AddDate(0, 0, 3), today.AddDate(0, 0, 4), domain.BookingPending},
		{created[4], today.AddDate(0, 0, 7), today.AddDate(0, 0, 14), domain.BookingConfirmed},
	}

	for _, s := range stays {
		total, err := domain.TotalPrice(s.room.PricePerNight, s.in, s.out)
		if err != nil {
			log.Fatal("seed pricing failed:", err)
		}
		b := domain.Booking{
			Reference:     uuid.NewString(),
			RoomID:        s.room.ID,
			GuestID:       guest.ID,
			CheckIn:       s.in,
			CheckOut:      s.out,
			Adults:        2,
			TotalPrice:    total,
			Status:        s.status,
			PaymentStatus: domain.PaymentUnpaid,
		}
		if err := db.Create(&b).Error; err != nil {
			log.Fatal("seed booking failed:", err)
		}
	}
	log.Printf("Seeded %d bookings", len(stays))

	log.Printf("Done. staff=%s guest=%s", staff.Email, guest.Email)
}

func seedUser(db *gorm.DB, email, password, name string, role domain.Role) *domain.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("hash password failed:", err)
	}
	u := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     name,
		Role:         role,
	}
	if err := db.Create(u).Error; err != nil {
		log.Fatal("seed user failed:", err)
	}
	return u
}
