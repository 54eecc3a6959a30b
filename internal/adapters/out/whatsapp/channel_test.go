package whatsapp_test

import (
	"testing"
	"time"

	"notifier/internal/adapters/out/whatsapp"
	"notifier/internal/core/domain/model/kernel"
	"notifier/internal/core/domain/services"
	"notifier/internal/core/ports"

	"github.com/stretchr/testify/require"
)

func notConnectedChannel() *whatsapp.Channel {
	return whatsapp.NewChannel(whatsapp.Config{ActionTimeout: time.Second})
}

func TestChannel_Open_NotConnected(t *testing.T) {
	channel := notConnectedChannel()
	phone, err := kernel.NewPhone("0300-1234567", kernel.DefaultCountryCode)
	require.NoError(t, err)

	err = channel.Open(t.Context(), phone)

	require.Error(t, err)
	require.ErrorIs(t, err, ports.ErrChannelUnavailable)
}

func TestChannel_Send_NotConnected(t *testing.T) {
	channel := notConnectedChannel()

	err := channel.Send(t.Context(), "hello")

	require.Error(t, err)
	require.ErrorIs(t, err, ports.ErrChannelUnavailable)
}

func TestChannel_AttachPoll_NotConnected(t *testing.T) {
	channel := notConnectedChannel()
	poll := services.Poll{Question: "Have you confirmed your order?", Options: []string{"Yes", "No"}}

	err := channel.AttachPoll(t.Context(), poll)

	require.Error(t, err)
	require.ErrorIs(t, err, ports.ErrChannelUnavailable)
}

func TestChannel_AttachMedia_NotConnected(t *testing.T) {
	channel := notConnectedChannel()

	err := channel.AttachMedia(t.Context(), "/tmp/promo.png")

	require.Error(t, err)
	require.ErrorIs(t, err, ports.ErrChannelUnavailable)
}

func TestChannel_Close_NotConnected(t *testing.T) {
	channel := notConnectedChannel()

	require.NoError(t, channel.Close(t.Context()))
	require.NoError(t, channel.Shutdown())
}
