package kafka

// Config holds Kafka connection parameters.
type Config struct {
	Brokers []string

	// TLS enables TLS for broker connections.
	TLS bool
}
