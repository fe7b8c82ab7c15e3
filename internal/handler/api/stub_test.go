//go:build unit

package api_test

import (
	"context"

	reqdto "rinkbook/internal/handler/dto/request"
	"rinkbook/internal/usecase/commands"
	"rinkbook/internal/usecase/queries"

	"github.com/google/uuid"
)

// Hand-rolled stubs for the usecase ports the handlers depend on.

type stubAuthCommands struct {
	RegisterFn func(req reqdto.RegisterRequest) (uuid.UUID, error)
	LoginFn    func(req reqdto.LoginRequest) (*commands.LoginResult, error)
}

func (s *stubAuthCommands) Register(_ context.Context, req reqdto.RegisterRequest) (uuid.UUID, error) {
	return s.RegisterFn(req)
}

func (s *stubAuthCommands) Login(_ context.Context, req reqdto.LoginRequest) (*commands.LoginResult, error) {
	return s.LoginFn(req)
}

type stubBookingCommands struct {
	CreateBookingsFn func(req reqdto.CreateBookingsRequest, userID uuid.UUID) (*commands.CreateBookingsResult, error)
	CancelBookingFn  func(bookingID, userID uuid.UUID) error
}

func (s *stubBookingCommands) CreateBookings(_ context.Context, req reqdto.CreateBookingsRequest, userID uuid.UUID) (*commands.CreateBookingsResult, error) {
	return s.CreateBookingsFn(req, userID)
}

func (s *stubBookingCommands) CancelBooking(_ context.Context, bookingID, userID uuid.UUID) error {
	return s.CancelBookingFn(bookingID, userID)
}

type stubBookingQueries struct {
	MyBookingsFn func(userID uuid.UUID) (*queries.MyBookingsView, error)
	GetBookingFn func(bookingID uuid.UUID) (*queries.BookingView, error)
}

func (s *stubBookingQueries) MyBookings(_ context.Context, userID uuid.UUID) (*queries.MyBookingsView, error) {
	return s.MyBookingsFn(userID)
}

func (s *stubBookingQueries) GetBooking(_ context.Context, bookingID uuid.UUID) (*queries.BookingView, error) {
	return s.GetBookingFn(bookingID)
}

type stubUserQueries struct {
	GetCurrentUserFn func(userID uuid.UUID) (*queries.AuthorizedUserView, error)
}

func (s *stubUserQueries) GetCurrentUser(_ context.Context, userID uuid.UUID) (*queries.AuthorizedUserView, error) {
	return s.GetCurrentUserFn(userID)
}
