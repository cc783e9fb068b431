package logging

import "github.com/rs/zerolog"

// Publisher writes ledger events to the structured log. It stands in for
// the Kafka publisher when no brokers are configured.
type Publisher struct {
	log zerolog.Logger
}

func NewPublisher(log zerolog.Logger) *Publisher {
	return &Publisher{log: log}
}

func (p *Publisher) Publish(topic string, event any) error {
	p.log.Info().Str("topic", topic).Interface("event", event).Msg("ledger event")
	return nil
}
