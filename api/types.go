// Package api holds the HTTP payloads of the booking service and the OpenAPI
// document describing them.
package api

import (
	"time"

	"github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	RequestId        string            `json:"request_id"`
	Timestamp        time.Time         `json:"timestamp"`
	ValidationErrors []ValidationError `json:"validation_errors"`
}

// SeatConflictResponse is returned when some requested seats were taken.
type SeatConflictResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
	Seats     []string  `json:"seats"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type SystemInfo struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type HealthcheckResponse struct {
	Status     string     `json:"status"`
	SystemInfo SystemInfo `json:"system_info"`
}

type MovieRequest struct {
	Title        string           `json:"title" validate:"required,max=255"`
	ShowDate     types.Date       `json:"show_date" validate:"required"`
	ShowTime     string           `json:"show_time" validate:"required,clock"`
	Language     *string          `json:"language,omitempty" validate:"omitempty,max=100"`
	Format       *string          `json:"format,omitempty" validate:"omitempty,max=50"`
	Price        *decimal.Decimal `json:"price,omitempty" validate:"omitempty,nonneg_decimal"`
	ClassicPrice *decimal.Decimal `json:"classic_price,omitempty" validate:"omitempty,nonneg_decimal"`
	PrimePrice   *decimal.Decimal `json:"prime_price,omitempty" validate:"omitempty,nonneg_decimal"`
	Picture      *string          `json:"picture,omitempty" validate:"omitempty,url,max=500"`
}

type MovieResponse struct {
	Id           int             `json:"id"`
	Title        string          `json:"title"`
	ShowDate     types.Date      `json:"show_date"`
	ShowTime     string          `json:"show_time"`
	Language     string          `json:"language"`
	Format       string          `json:"format"`
	Price        decimal.Decimal `json:"price"`
	ClassicPrice decimal.Decimal `json:"classic_price"`
	PrimePrice   decimal.Decimal `json:"prime_price"`
	Picture      string          `json:"picture"`
	IsActive     bool            `json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type MovieListResponse struct {
	Movies []MovieResponse `json:"movies"`
}

type UpdatePricesRequest struct {
	ClassicPrice decimal.Decimal `json:"classic_price" validate:"nonneg_decimal"`
	PrimePrice   decimal.Decimal `json:"prime_price" validate:"nonneg_decimal"`
}

type CountResponse struct {
	Count int `json:"count"`
}

type SeatResponse struct {
	Id         int    `json:"id"`
	SeatNumber string `json:"seat_number"`
	Status     string `json:"status"`
}

type SeatMapResponse struct {
	Owner     string         `json:"owner"`
	OwnerId   int            `json:"owner_id"`
	Available int            `json:"available"`
	Booked    int            `json:"booked"`
	Seats     []SeatResponse `json:"seats"`
}

type RowSpec struct {
	From        string `json:"from" validate:"required,row_letter"`
	To          string `json:"to" validate:"required,row_letter"`
	SeatsPerRow int    `json:"seats_per_row" validate:"gt=0,max=100"`
}

// GenerateSeatsRequest falls back to the owner's default layout when Rows is
// empty.
type GenerateSeatsRequest struct {
	Rows []RowSpec `json:"rows" validate:"omitempty,dive"`
}

type UpdateSeatStatusRequest struct {
	Seats  string `json:"seats" validate:"required,seat_list"`
	Status string `json:"status" validate:"required,seat_status"`
}

type ScreenRequest struct {
	Name string `json:"name" validate:"required,max=100"`
	Rows int    `json:"rows" validate:"min=1,max=26"`
	Cols int    `json:"cols" validate:"min=1,max=100"`
}

type ScreenResponse struct {
	Id        int       `json:"id"`
	Name      string    `json:"name"`
	Rows      int       `json:"rows"`
	Cols      int       `json:"cols"`
	CreatedAt time.Time `json:"created_at"`
}

type ScreenListResponse struct {
	Screens []ScreenResponse `json:"screens"`
}

type CreateShowRequest struct {
	ScreenId int        `json:"screen_id" validate:"required,gt=0"`
	ShowDate types.Date `json:"show_date" validate:"required"`
	ShowTime string     `json:"show_time" validate:"required,clock"`
	Format   *string    `json:"format,omitempty" validate:"omitempty,max=50"`
}

type ShowResponse struct {
	Id           int             `json:"id"`
	MovieId      int             `json:"movie_id"`
	ScreenId     int             `json:"screen_id"`
	ShowDate     types.Date      `json:"show_date"`
	ShowTime     string          `json:"show_time"`
	Format       string          `json:"format"`
	MovieTitle   string          `json:"movie_title,omitempty"`
	Language     string          `json:"language,omitempty"`
	ClassicPrice decimal.Decimal `json:"classic_price"`
	PrimePrice   decimal.Decimal `json:"prime_price"`
	Picture      string          `json:"picture,omitempty"`
	ScreenName   string          `json:"screen_name"`
	Rows         int             `json:"rows"`
	Cols         int             `json:"cols"`
	CreatedAt    time.Time       `json:"created_at"`
}

type ShowListResponse struct {
	Shows []ShowResponse `json:"shows"`
}

// CreateBookingRequest carries the seat list as the raw comma separated
// string; it is parsed by the booking manager.
type CreateBookingRequest struct {
	Username   string          `json:"username" validate:"required,max=255"`
	UserId     *int            `json:"user_id,omitempty" validate:"omitempty,gt=0"`
	UserEmail  *string         `json:"user_email,omitempty" validate:"omitempty,email"`
	MovieId    int             `json:"movie_id" validate:"required,gt=0"`
	ShowId     *int            `json:"show_id,omitempty" validate:"omitempty,gt=0"`
	Seats      string          `json:"seats"`
	TotalPrice *decimal.Decimal `json:"total_price" validate:"required,nonneg_decimal"`
}

type CreateBookingResponse struct {
	BookingId int `json:"booking_id"`
}

type BookingResponse struct {
	Id          int             `json:"id"`
	Username    string          `json:"username"`
	UserId      *int            `json:"user_id,omitempty"`
	UserEmail   *string         `json:"user_email,omitempty"`
	MovieId     int             `json:"movie_id"`
	ShowId      *int            `json:"show_id,omitempty"`
	SeatScope   string          `json:"seat_scope"`
	Seats       []string        `json:"seats"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	BookingTime time.Time       `json:"booking_time"`
	MovieTitle  string          `json:"movie_title,omitempty"`
	ShowDate    *types.Date     `json:"show_date,omitempty"`
	ShowTime    *string         `json:"show_time,omitempty"`
	ShowFormat  *string         `json:"show_format,omitempty"`
}

type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

type SignupRequest struct {
	Name     string  `json:"name" validate:"required,max=255"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,password"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=50"`
}

type AdminSignupRequest struct {
	SignupRequest
	AdminSecret string `json:"admin_secret" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,password"`
}

type UserResponse struct {
	Id           int        `json:"id"`
	Username     string     `json:"username"`
	Name         string     `json:"name,omitempty"`
	Email        string     `json:"email,omitempty"`
	Role         string     `json:"role"`
	Phone        string     `json:"phone,omitempty"`
	IsBlocked    bool       `json:"is_blocked"`
	CreatedAt    time.Time  `json:"created_at"`
	LastActive   *time.Time `json:"last_active,omitempty"`
	BookingCount int        `json:"booking_count"`
}

type UserListResponse struct {
	Users []UserResponse `json:"users"`
}

type BlockUserRequest struct {
	Blocked *bool `json:"blocked" validate:"required"`
}

// CreateNotificationRequest broadcasts to everyone when Usernames is empty.
type CreateNotificationRequest struct {
	Message   string   `json:"message" validate:"required,max=2000"`
	Usernames []string `json:"usernames,omitempty" validate:"omitempty,max=1000,dive,required,max=255"`
}

type NotificationResponse struct {
	Id        int       `json:"id"`
	Username  *string   `json:"username,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	Delivered bool      `json:"delivered"`
}

type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
}

type StatsResponse struct {
	Movies         int             `json:"movies"`
	Bookings       int             `json:"bookings"`
	Revenue        decimal.Decimal `json:"revenue"`
	BookedSeats    int             `json:"booked_seats"`
	AvailableSeats int             `json:"available_seats"`
	Users          int             `json:"users"`
}
