package socket

import "github.com/02priyeshraj/Restaurant_Ordering_Backend/models"

// Room is a named group of dashboard sessions that receive a class of events
// together.
type Room string

const (
	RoomKitchen Room = "kitchen"
	RoomAdmin   Room = "admin"
)

// TableRoom is the room for the customer-facing display of one table.
func TableRoom(tableNumber string) Room {
	return Room("table-" + tableNumber)
}

// Event names sent to dashboards. Payloads carry the full order snapshot so
// subscribers never merge partial state.
const (
	EventNewOrder          = "newOrder"
	EventOrderStatusUpdate = "orderStatusUpdate"
)

// newOrderRooms and statusUpdateRooms compute the subscription targets for an
// event from the order's fields at emission time.
func newOrderRooms(*models.Order) []Room {
	return []Room{RoomKitchen, RoomAdmin}
}

func statusUpdateRooms(order *models.Order) []Room {
	rooms := []Room{RoomKitchen, RoomAdmin}
	if order.TableNumber != "" {
		rooms = append(rooms, TableRoom(order.TableNumber))
	}
	return rooms
}
