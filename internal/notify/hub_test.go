package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHubDeliversInSubscriptionOrder(t *testing.T) {
	hub := NewHub()
	var got []string

	hub.Subscribe(func(n Notification) { got = append(got, "first:"+n.Message) })
	hub.Subscribe(func(n Notification) { got = append(got, "second:"+n.Message) })

	n := hub.Success("Lead form saved")

	assert.Equal(t, []string{"first:Lead form saved", "second:Lead form saved"}, got)
	assert.Equal(t, LevelSuccess, n.Level)
	assert.NotEmpty(t, n.ID)
}

func TestHubUnsubscribe(t *testing.T) {
	hub := NewHub()
	count := 0
	unsubscribe := hub.Subscribe(func(Notification) { count++ })

	hub.Info("one")
	unsubscribe()
	hub.Info("two")

	assert.Equal(t, 1, count)
}

func TestHubClose(t *testing.T) {
	hub := NewHub()
	count := 0
	hub.Subscribe(func(Notification) { count++ })

	hub.Close()
	hub.Error("dropped")
	hub.Subscribe(func(Notification) { count++ })
	hub.Error("dropped again")

	assert.Equal(t, 0, count)
}
