package repository

import (
	"context"
	"fmt"

	"MarketScan/internal/domain/models"
	domrepo "MarketScan/internal/domain/repository"
	pkgkafka "MarketScan/pkg/kafka"
)

// KafkaScanPublisher emits completed scans to a Kafka topic, keyed by scan ID.
type KafkaScanPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

func NewKafkaScanPublisher(producer *pkgkafka.Producer, topic string) *KafkaScanPublisher {
	return &KafkaScanPublisher{producer: producer, topic: topic}
}

func (p *KafkaScanPublisher) PublishScan(ctx context.Context, scan models.MarketScan) error {
	if err := p.producer.Publish(ctx, p.topic, []byte(scan.ID), scan); err != nil {
		return fmt.Errorf("publish scan %s: %w", scan.ID, err)
	}
	return nil
}

func (p *KafkaScanPublisher) Close() error {
	return p.producer.Close()
}

var _ domrepo.ScanPublisher = (*KafkaScanPublisher)(nil)
