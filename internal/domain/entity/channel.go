package entity

// Channel identifica el canal de venta del que proviene un reporte PDF.
type Channel string

// Canales de venta soportados, en el orden fijo de las columnas del reporte.
const (
	ChannelFoodCourt  Channel = "Food Court"
	ChannelRestaurant Channel = "Restaurant"
	ChannelDelivery   Channel = "Delivery"
)

// Channels devuelve los canales conocidos en orden de columna.
func Channels() []Channel {
	return []Channel{ChannelFoodCourt, ChannelRestaurant, ChannelDelivery}
}

// Valid indica si c es uno de los canales conocidos.
func (c Channel) Valid() bool {
	switch c {
	case ChannelFoodCourt, ChannelRestaurant, ChannelDelivery:
		return true
	}
	return false
}

func (c Channel) String() string { return string(c) }
