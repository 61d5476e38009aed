package service

import (
	"encoding/json"
	"fmt"

	"ai-tripmate-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IPublisherService interface {
	PublishIngested(msg *dto.PublishIngestedMessage) error
}

type publisherService struct {
	topicName string
	pubSub    *gochannel.GoChannel
}

func NewPublisherService(topicName string, pubSub *gochannel.GoChannel) IPublisherService {
	return &publisherService{
		topicName: topicName,
		pubSub:    pubSub,
	}
}

func (ps *publisherService) PublishIngested(payload *dto.PublishIngestedMessage) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal ingested payload: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	if err := ps.pubSub.Publish(ps.topicName, msg); err != nil {
		return fmt.Errorf("publish to %s: %w", ps.topicName, err)
	}
	return nil
}
