package ingest

import (
	"context"
	"encoding/json"

	"ai-docchat-be/internal/pkg/logger"
	"ai-docchat-be/internal/repository/unitofwork"
	"ai-docchat-be/pkg/embedding"
	"ai-docchat-be/pkg/retrieval"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Consumer drains the embed topic and writes chunk embeddings through the
// retrieval store.
type Consumer struct {
	pubSub     *gochannel.GoChannel
	topic      string
	uowFactory unitofwork.RepositoryFactory
	embedder   embedding.Provider
	log        logger.ILogger
}

func NewConsumer(
	pubSub *gochannel.GoChannel,
	topic string,
	uowFactory unitofwork.RepositoryFactory,
	embedder embedding.Provider,
	log logger.ILogger,
) *Consumer {
	return &Consumer{
		pubSub:     pubSub,
		topic:      topic,
		uowFactory: uowFactory,
		embedder:   embedder,
		log:        log,
	}
}

func (c *Consumer) Consume(ctx context.Context) error {
	messages, err := c.pubSub.Subscribe(ctx, c.topic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			c.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (c *Consumer) processMessage(ctx context.Context, msg *message.Message) {
	var payload DocumentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		c.log.Error("ingest", "failed to unmarshal ingest message", map[string]interface{}{"error": err.Error()})
		// Ack malformed messages so they do not retry forever.
		msg.Ack()
		return
	}

	c.log.Info("ingest", "processing document", map[string]interface{}{
		"document_id": payload.DocumentId.String(),
		"filename":    payload.Filename,
	})

	uow := c.uowFactory.NewUnitOfWork(ctx)
	store := retrieval.NewStore(uow, c.embedder)

	chunks, err := store.AddDocument(ctx, payload.DocumentId, payload.Filename, payload.DocType, payload.Content)
	if err != nil {
		c.log.Error("ingest", "failed to embed document", map[string]interface{}{
			"document_id": payload.DocumentId.String(),
			"error":       err.Error(),
		})
		msg.Nack()
		return
	}

	c.log.Info("ingest", "document embedded", map[string]interface{}{
		"document_id": payload.DocumentId.String(),
		"chunks":      chunks,
	})
	msg.Ack()
}
