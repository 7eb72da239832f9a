package hubinterfaces

import (
	"errors"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"
)

// MessageToListener is one envelope pushed from the hub to a listener.
type MessageToListener struct {
	EventChannel string `json:"event_channel"`
	Type         string `json:"type"`
	Message      string `json:"message,omitempty"`
}

// RoomListener defines the interface for anything receiving hub traffic.
type RoomListener interface {
	MessageListener(...*MessageToListener) error
}

// ChannelListener is a generic listener backed by a buffered channel.
type ChannelListener struct {
	Name          string                  `json:"name"`
	Messages      chan *MessageToListener `json:"-"`
	atomicDropped int32
}

// MessageListener will take a pointer to messages and place them on the
// Messages channel, dropping any message a slow consumer blocks past the
// timeout.
func (l *ChannelListener) MessageListener(msgs ...*MessageToListener) error {
	if l.Messages == nil {
		return errors.New("missing Messages channel on listener")
	}
	for _, m := range msgs {
		if m.EventChannel == "" {
			return errors.New("missing EventChannel on MessageToListener")
		}
		select {
		case l.Messages <- m:
		case <-time.After(250 * time.Millisecond):
			atomic.AddInt32(&l.atomicDropped, 1)
			log.Debugf("dropped '%s' message for '%s'", m.Type, l.Name)
			return errors.New("timeout sending message(s)")
		}
	}
	return nil
}

// Dropped returns the number of messages that timed out instead of
// reaching the consumer.
func (l *ChannelListener) Dropped() int32 {
	return atomic.LoadInt32(&l.atomicDropped)
}
