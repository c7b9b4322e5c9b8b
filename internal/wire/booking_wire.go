package wire

import (
	"room-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler) {
	// ==================== REQUESTER ROUTES ====================
	r.Route("/api/bookings", func(r chi.Router) {
		// GET /api/bookings?status= - List booking requests, newest first
		r.Get("/", bookingHandler.ListBookings)

		// POST /api/bookings - Submit a new request (starts Pending)
		r.Post("/", bookingHandler.CreateBooking)

		// GET /api/bookings/{id}
		r.Get("/{id}", bookingHandler.GetBooking)

		// DELETE /api/bookings/{id} - Withdraw a pending request
		r.Delete("/{id}", bookingHandler.CancelBooking)
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/bookings", func(r chi.Router) {
		r.Get("/", bookingHandler.ListBookings)

		// PUT /api/admin/bookings/{id}/approve
		r.Put("/{id}/approve", bookingHandler.ApproveBooking)

		// PUT /api/admin/bookings/{id}/reject
		r.Put("/{id}/reject", bookingHandler.RejectBooking)

		// DELETE /api/admin/bookings/{id} - Remove a decided request for good
		r.Delete("/{id}", bookingHandler.DeleteBooking)
	})
}
