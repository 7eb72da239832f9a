package hubinterfaces

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/Glxy97/glxy-gaming-platform-sub016/pkg/channels"
)

func TestChannelListener(t *testing.T) {
	Convey("ChannelListener", t, func() {
		l1 := &ChannelListener{
			Name:     "1234",
			Messages: make(chan *MessageToListener),
		}
		l2 := &ChannelListener{
			Name: "1234",
		}
		Convey("MessageListener", func() {
			Convey("errors without EventChannel", func() {
				err := l1.MessageListener(&MessageToListener{})
				So(err, ShouldBeError)
				So(err.Error(), ShouldEqual, "missing EventChannel on MessageToListener")
			})
			Convey("errors without Messages chan", func() {
				err := l2.MessageListener(&MessageToListener{})
				So(err, ShouldBeError)
				So(err.Error(), ShouldEqual, "missing Messages channel on listener")
			})
			Convey("will time out if messages not picked up quick enough", func() {
				err := l1.MessageListener(&MessageToListener{
					EventChannel: channels.Global,
				})
				So(err, ShouldBeError)
				So(err.Error(), ShouldEqual, "timeout sending message(s)")
				So(l1.Dropped(), ShouldEqual, 1)
			})
			Convey("can place multiple messages on the channel", func() {
				go func() {
					l1.MessageListener(&MessageToListener{
						EventChannel: channels.Global,
					}, &MessageToListener{
						EventChannel: channels.Room,
					})
					close(l1.Messages)
				}()
				msgLen := 0
				for range l1.Messages {
					msgLen++
				}
				So(msgLen, ShouldEqual, 2)
				So(l1.Dropped(), ShouldEqual, 0)
			})
		})
	})
}
