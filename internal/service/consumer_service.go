package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"ai-docdraft-be/internal/dto"
	"ai-docdraft-be/internal/repository/specification"
	"ai-docdraft-be/internal/repository/unitofwork"
	"ai-docdraft-be/pkg/events"
	pktNats "ai-docdraft-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the document-saved topic and fans the event out to
// the NATS bus for other instances (notifications, exports, auditing).
type consumerService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	eventPublisher *pktNats.Publisher,
) IConsumerService {
	return &consumerService{
		pubSub:         pubSub,
		topicName:      topicName,
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishDocumentSavedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Processing saved document %s", payload.DocumentId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: payload.DocumentId})
	if err != nil {
		log.Printf("[ERROR] Failed to load document %s: %v", payload.DocumentId, err)
		msg.Nack()
		return
	}
	if doc == nil {
		log.Printf("[WARN] Document %s no longer exists, skipping", payload.DocumentId)
		msg.Ack()
		return
	}

	if cs.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: "DOCUMENT_READY",
			Data: map[string]interface{}{
				"document_id":   doc.Id,
				"title":         doc.Title,
				"template_name": doc.TemplateName,
			},
			OccurredAt: time.Now(),
		}
		if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
			log.Printf("[WARN] Failed to publish DOCUMENT_READY event: %v", err)
		}
	}

	log.Printf("[SUCCESS] Document processed: %s (%s)", doc.Title, payload.DocumentId)
	msg.Ack()
}
