package service

import (
	"context"
	"encoding/json"

	"ai-tripmate-be/internal/dto"
	"ai-tripmate-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains ingestion events off the in-process bus and keeps
// the ingestion audit trail out of the request path.
type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	sysLogger logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	sysLogger logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		sysLogger: sysLogger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var payload dto.PublishIngestedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.sysLogger.Error("consumer", "Failed to unmarshal ingestion event", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	cs.sysLogger.Info("consumer", "Retrieval index rebuilt", map[string]interface{}{
		"ingestion_id": payload.IngestionID,
		"generation":   payload.Generation,
		"chunks":       payload.Chunks,
	})

	msg.Ack()
}
