// Package tracking renders order progress: the status timeline projection and
// the simulated courier movement shown on the tracking map. The courier is a
// deterministic interpolation toward the drop-off point, not a GPS feed.
package tracking

import (
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/medireach/storefront/internal/models"
	"github.com/medireach/storefront/internal/output"
)

// Observer receives each position update as it is produced. It is the map
// surface's hook; rendering happens outside the engine.
type Observer func(models.CourierPositionUpdate)

type Engine struct {
	cfg  *models.Config
	sink output.Destination
	log  *zap.Logger
}

func NewEngine(cfg *models.Config, sink output.Destination, log *zap.Logger) *Engine {
	return &Engine{cfg: cfg, sink: sink, log: log}
}

// PublishStatus emits a status observation for a tracked order.
func (e *Engine) PublishStatus(orderID, status string) {
	if e.sink == nil {
		return
	}
	event := models.OrderStatusEvent{
		BaseEvent: models.BaseEvent{
			Timestamp: time.Now().Unix(),
			EventType: "OrderStatus",
			OrderID:   orderID,
		},
		Status: status,
	}
	msg, err := json.Marshal(event)
	if err != nil {
		e.log.Warn("failed to serialize order status event", zap.Error(err))
		return
	}
	if err := e.sink.WriteMessage(models.TopicOrderStatus, msg); err != nil {
		e.log.Warn("failed to write order status event", zap.Error(err))
	}
}

// Session is one active tracking simulation. Exactly one session should run
// per tracking view; starting a session for a different order requires
// stopping the previous one first, or its ticker leaks.
type Session struct {
	engine      *Engine
	orderID     string
	destination models.Location

	mu      sync.Mutex
	courier models.Location
	arrived bool

	observer Observer
	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// Start begins ticking a courier toward the city's drop-off coordinates. The
// courier starts at the destination plus the configured offset. The returned
// session handle owns the recurring tick; the caller must Stop it when the
// tracking view goes away.
func (e *Engine) Start(orderID, city string, observer Observer) *Session {
	destination := DestinationForCity(city, e.cfg.DefaultCity)
	s := &Session{
		engine:      e,
		orderID:     orderID,
		destination: destination,
		courier: models.Location{
			Lat: destination.Lat + e.cfg.CourierOffsetLat,
			Lng: destination.Lng + e.cfg.CourierOffsetLng,
		},
		observer: observer,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}

	e.log.Info("tracking session started",
		zap.String("order_id", orderID),
		zap.String("city", city),
		zap.Float64("destination_lat", destination.Lat),
		zap.Float64("destination_lng", destination.Lng),
	)

	go s.run(e.cfg.TickInterval)
	return s
}

func (s *Session) run(interval time.Duration) {
	defer close(s.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			if s.Tick() {
				return
			}
		}
	}
}

// Tick advances the courier one simulation step and publishes the resulting
// position. It reports whether the courier has arrived; after arrival it
// never moves the courier again.
func (s *Session) Tick() bool {
	s.mu.Lock()
	if !s.arrived {
		s.courier, s.arrived = advance(s.courier, s.destination, s.engine.cfg.CourierStep, s.engine.cfg.ArrivalThreshold)
	}
	update := models.CourierPositionUpdate{
		OrderID:     s.orderID,
		Courier:     s.courier,
		Destination: s.destination,
		Arrived:     s.arrived,
	}
	s.mu.Unlock()

	s.publish(update)
	if s.observer != nil {
		s.observer(update)
	}
	return update.Arrived
}

// Stop cancels the recurring tick. Safe to call multiple times and after
// arrival.
func (s *Session) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
	<-s.done
}

// Done is closed when the session's ticker has shut down, whether by arrival
// or by Stop.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Position returns the current courier position and arrival state.
func (s *Session) Position() (models.Location, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.courier, s.arrived
}

// Destination returns the drop-off coordinates the session is moving toward.
func (s *Session) Destination() models.Location {
	return s.destination
}

// advance moves the courier one fixed step along the unit vector toward the
// destination. Arrival is distance under the threshold; the courier never
// overshoots the destination.
func advance(courier, destination models.Location, step, threshold float64) (models.Location, bool) {
	dist := PlanarDistance(courier, destination)
	if dist <= threshold {
		return courier, true
	}
	if dist <= step {
		return destination, true
	}
	next := models.Location{
		Lat: courier.Lat + (destination.Lat-courier.Lat)/dist*step,
		Lng: courier.Lng + (destination.Lng-courier.Lng)/dist*step,
	}
	return next, PlanarDistance(next, destination) <= threshold
}

func (s *Session) publish(update models.CourierPositionUpdate) {
	if s.engine.sink == nil {
		return
	}
	event := models.CourierPositionEvent{
		BaseEvent: models.BaseEvent{
			Timestamp: time.Now().Unix(),
			EventType: "CourierPosition",
			OrderID:   update.OrderID,
		},
		Lat:            update.Courier.Lat,
		Lng:            update.Courier.Lng,
		DestinationLat: update.Destination.Lat,
		DestinationLng: update.Destination.Lng,
		Arrived:        update.Arrived,
	}
	msg, err := json.Marshal(event)
	if err != nil {
		s.engine.log.Warn("failed to serialize courier position event", zap.Error(err))
		return
	}
	if err := s.engine.sink.WriteMessage(models.TopicCourierPosition, msg); err != nil {
		s.engine.log.Warn("failed to write courier position event", zap.Error(err))
	}
}
