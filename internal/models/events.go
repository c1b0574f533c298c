package models

const (
	TopicOrderPlaced     = "order_placed_events"
	TopicOrderStatus     = "order_status_events"
	TopicCourierPosition = "courier_position_events"
)

// EventMessage is a serialized tracking event ready for a sink.
type EventMessage struct {
	Topic   string
	Message []byte
}

// BaseEvent is the common structure for all tracking events
type BaseEvent struct {
	Timestamp int64  `json:"timestamp" parquet:"name=timestamp,type=INT64"`
	EventType string `json:"eventType" parquet:"name=eventType,type=BYTE_ARRAY,convertedtype=UTF8"`
	OrderID   string `json:"orderId" parquet:"name=orderId,type=BYTE_ARRAY,convertedtype=UTF8"`
}

// OrderPlacedEvent is emitted once when the placement flow accepts a draft
type OrderPlacedEvent struct {
	BaseEvent
	MedicineName string `json:"medicineName" parquet:"name=medicineName,type=BYTE_ARRAY,convertedtype=UTF8"`
	Quantity     int32  `json:"quantity" parquet:"name=quantity,type=INT32"`
	TotalPrice   string `json:"totalPrice" parquet:"name=totalPrice,type=BYTE_ARRAY,convertedtype=UTF8"`
	Pharmacy     string `json:"pharmacy" parquet:"name=pharmacy,type=BYTE_ARRAY,convertedtype=UTF8"`
	City         string `json:"city" parquet:"name=city,type=BYTE_ARRAY,convertedtype=UTF8"`
	Payment      string `json:"paymentMethod" parquet:"name=paymentMethod,type=BYTE_ARRAY,convertedtype=UTF8"`
}

// OrderStatusEvent is emitted when a tracked order's status is observed
type OrderStatusEvent struct {
	BaseEvent
	Status string `json:"status" parquet:"name=status,type=BYTE_ARRAY,convertedtype=UTF8"`
}

// CourierPositionEvent is emitted on every simulation tick
type CourierPositionEvent struct {
	BaseEvent
	Lat            float64 `json:"lat" parquet:"name=lat,type=DOUBLE"`
	Lng            float64 `json:"lng" parquet:"name=lng,type=DOUBLE"`
	DestinationLat float64 `json:"destinationLat" parquet:"name=destinationLat,type=DOUBLE"`
	DestinationLng float64 `json:"destinationLng" parquet:"name=destinationLng,type=DOUBLE"`
	Arrived        bool    `json:"arrived" parquet:"name=arrived,type=BOOLEAN"`
}
