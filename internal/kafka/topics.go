package kafka

import (
	"log"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	TopicBookingCreated       = "booking-created"
	TopicBookingStatusChanged = "booking-status-changed"
	TopicPaymentRefunded      = "payment-refunded"
)

// AllTopics lists every topic the booking service produces to or consumes
// from.
func AllTopics() []string {
	return []string{TopicBookingCreated, TopicBookingStatusChanged, TopicPaymentRefunded}
}

// EnsureTopicsExist creates the given topics if they are missing. Creation
// failures are logged and skipped so a broker with auto-create enabled
// still boots the service.
func EnsureTopicsExist(brokers []string, topics []string) error {
	conn, err := kafka.Dial("tcp", brokers[0])
	if err != nil {
		return err
	}
	defer conn.Close()

	controller, err := conn.Controller()
	if err != nil {
		return err
	}
	controllerConn, err := kafka.Dial("tcp", controller.Host+":"+strconv.Itoa(controller.Port))
	if err != nil {
		return err
	}
	defer controllerConn.Close()

	for _, topic := range topics {
		err := controllerConn.CreateTopics(kafka.TopicConfig{
			Topic:             topic,
			NumPartitions:     1,
			ReplicationFactor: 1,
		})
		if err != nil {
			log.Printf("kafka: could not create topic %s: %v", topic, err)
			continue
		}
		log.Printf("kafka: ensured topic %s", topic)
	}

	// Give the controller a moment to propagate new topics.
	time.Sleep(1 * time.Second)
	return nil
}
