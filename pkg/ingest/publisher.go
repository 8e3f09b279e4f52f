package ingest

import (
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// DocumentMessage is the ingestion request published to the embed topic.
type DocumentMessage struct {
	DocumentId uuid.UUID `json:"document_id"`
	Filename   string    `json:"filename"`
	DocType    string    `json:"doc_type"`
	Content    string    `json:"content"`
}

// Publisher hands documents to the background embedding consumer so uploads
// return immediately instead of blocking on the embedding provider.
type Publisher struct {
	pubSub *gochannel.GoChannel
	topic  string
}

func NewPublisher(pubSub *gochannel.GoChannel, topic string) *Publisher {
	return &Publisher{
		pubSub: pubSub,
		topic:  topic,
	}
}

func (p *Publisher) Publish(doc DocumentMessage) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	return p.pubSub.Publish(p.topic, msg)
}
