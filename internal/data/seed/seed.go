// Package seed holds the fixed placeholder data used to initialize or repair
// the booking store. Values must stay deterministic; tests depend on them.
package seed

import "room-booking/internal/data/entity"

func Rooms() []entity.Room {
	return []entity.Room{
		{
			ID:           "1",
			Name:         "Sala de Reuniões A",
			Capacity:     10,
			Amenities:    []string{"Projetor", "Quadro Branco", "Wi-Fi"},
			Floor:        "1º Andar",
			Type:         "Reunião",
			ImageURL:     "https://picsum.photos/400/300?random=1",
			ImageHint:    "meeting room",
			AvailableNow: true,
			StatusText:   "Disponível",
		},
		{
			ID:           "2",
			Name:         "Laboratório de Informática B",
			Capacity:     25,
			Amenities:    []string{"Computadores", "Projetor", "Internet Cabeada"},
			Floor:        "2º Andar",
			Type:         "Laboratório",
			ImageURL:     "https://picsum.photos/400/300?random=2",
			ImageHint:    "computer lab",
			AvailableNow: false,
			StatusText:   "Ocupada",
		},
		{
			ID:           "3",
			Name:         "Auditório Principal",
			Capacity:     100,
			Amenities:    []string{"Palco", "Sistema de Som", "Projetor Grande"},
			Floor:        "Térreo",
			Type:         "Auditório",
			ImageURL:     "https://picsum.photos/400/300?random=3",
			ImageHint:    "auditorium",
			AvailableNow: true,
			StatusText:   "Disponível",
		},
		{
			ID:           "4",
			Name:         "Sala de Aula 101",
			Capacity:     30,
			Amenities:    []string{"Quadro Interativo", "Wi-Fi"},
			Floor:        "1º Andar",
			Type:         "Sala de Aula",
			ImageURL:     "https://picsum.photos/400/300?random=4",
			ImageHint:    "classroom",
			AvailableNow: false,
			StatusText:   "Em manutenção",
		},
	}
}

func Bookings() []entity.BookingRequest {
	return []entity.BookingRequest{
		{
			ID:       "b1",
			RoomID:   "1",
			RoomName: "Sala de Reuniões A",
			Date:     "2024-08-15",
			Time:     "14:00 - 16:00",
			Purpose:  "Reunião de Departamento",
			Status:   entity.BookingStatusApproved,
		},
		{
			ID:       "b2",
			RoomID:   "3",
			RoomName: "Auditório Principal",
			Date:     "2024-08-20",
			Time:     "09:00 - 12:00",
			Purpose:  "Palestra sobre IA",
			Status:   entity.BookingStatusPending,
		},
		{
			ID:       "b3",
			RoomID:   "2",
			RoomName: "Laboratório de Informática B",
			Date:     "2024-08-10",
			Time:     "10:00 - 11:30",
			Purpose:  "Aula Prática de Programação",
			Status:   entity.BookingStatusRejected,
		},
	}
}
