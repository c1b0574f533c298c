package output

import (
	"fmt"
	"strings"

	"github.com/medireach/storefront/internal/models"
)

// NewDestination picks the configured tracking-event sink. Kafka wins when
// enabled; otherwise the output type decides; console is the fallback.
func NewDestination(cfg *models.Config) (Destination, error) {
	if cfg.KafkaEnabled {
		brokerList := strings.Split(cfg.KafkaBrokerList, ",")
		return NewKafkaOutput(brokerList)
	}

	switch cfg.OutputType {
	case "", "console":
		return &ConsoleOutput{}, nil
	case "json":
		return NewJSONOutput(".", cfg.OutputFolder), nil
	case "parquet":
		return NewParquetOutput(cfg)
	case "postgres":
		return NewPostgresOutput(&cfg.Database)
	default:
		return nil, fmt.Errorf("unsupported output type: %s", cfg.OutputType)
	}
}
