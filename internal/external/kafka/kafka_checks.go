package admin

import (
	"context"
	"fmt"
	"os"

	"github.com/segmentio/kafka-go"
)

// События пайплайна проверок для журнала
type KafkaChecks struct {
	reader *kafka.Reader
}

func GetNewReader(topic string) (reader *KafkaChecks, err error) {
	// config
	kafkaurl := os.Getenv("KAFKA_CHECKS_URL")
	if kafkaurl == "" {
		return nil, fmt.Errorf("env KAFKA_CHECKS_URL is not set")
	}
	kafkaport := os.Getenv("KAFKA_CHECKS_PORT")
	if kafkaport == "" {
		return nil, fmt.Errorf("env KAFKA_CHECKS_PORT is not set")
	}

	kafkaconfig := kafka.ReaderConfig{
		Brokers: []string{kafkaurl + ":" + kafkaport},
		Topic:   topic,
		GroupID: "checks_admin",
	}
	return &KafkaChecks{kafka.NewReader(kafkaconfig)}, nil
}

func (k *KafkaChecks) GetNewMessage(ctx context.Context) (eventJson string, err error) {
	msg, err := k.reader.ReadMessage(ctx)
	if err != nil {
		return "", err
	}
	return string(msg.Value), nil
}

func (k *KafkaChecks) CloseReader() {
	k.reader.Close()
}
