//go:build unit

package reservation_test

import (
	"testing"

	"perfect-widget/internal/domain/reservation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeMinuteSlots(t *testing.T) {
	cases := []struct {
		id    reservation.SlotID
		label string
		clock string
	}{
		{id: "0", label: "0:00 am", clock: "00:00"},
		{id: "1", label: "0:01 am", clock: "00:01"},
		{id: "719", label: "11:59 am", clock: "11:59"},
		{id: "720", label: "12:00 pm", clock: "12:00"},
		{id: "721", label: "12:01 pm", clock: "12:01"},
		{id: "1140", label: "7:00 pm", clock: "19:00"},
		{id: "1439", label: "11:59 pm", clock: "23:59"},
	}

	for _, tc := range cases {
		t.Run(string(tc.id), func(t *testing.T) {
			slot, err := reservation.Decode(tc.id)
			require.NoError(t, err)
			assert.Equal(t, reservation.NotationMinutes, slot.Notation())
			assert.Equal(t, tc.label, slot.Label())
			assert.Equal(t, tc.clock, slot.Clock())
		})
	}
}

func TestDecodeClockSlots(t *testing.T) {
	cases := []struct {
		id      reservation.SlotID
		minutes int
		label   string
	}{
		{id: "00:00", minutes: 0, label: "0:00 am"},
		{id: "09:30", minutes: 570, label: "9:30 am"},
		// hour 12 keeps the "am" suffix in clock notation
		{id: "12:00", minutes: 720, label: "12:00 am"},
		{id: "12:45", minutes: 765, label: "12:45 am"},
		{id: "13:00", minutes: 780, label: "1:00 pm"},
		{id: "19:00", minutes: 1140, label: "7:00 pm"},
		{id: "23:59", minutes: 1439, label: "11:59 pm"},
		{id: "7:15", minutes: 435, label: "7:15 am"},
	}

	for _, tc := range cases {
		t.Run(string(tc.id), func(t *testing.T) {
			slot, err := reservation.Decode(tc.id)
			require.NoError(t, err)
			assert.Equal(t, reservation.NotationClock, slot.Notation())
			assert.Equal(t, tc.minutes, slot.Minutes())
			assert.Equal(t, tc.label, slot.Label())
		})
	}
}

func TestDecodeMalformed(t *testing.T) {
	for _, id := range []reservation.SlotID{"", "  ", "-1", "1440", "abc", "24:00", "12:60", "12:5", ":30", "12:3a", "1:2:3"} {
		t.Run("reject "+string(id), func(t *testing.T) {
			_, err := reservation.Decode(id)
			assert.ErrorIs(t, err, reservation.ErrMalformedSlot)
		})
	}

	t.Run("bare number is a minute offset", func(t *testing.T) {
		slot, err := reservation.Decode("19")
		require.NoError(t, err)
		assert.Equal(t, 19, slot.Minutes())
	})
}

func TestLabelOrRaw(t *testing.T) {
	assert.Equal(t, "7:00 pm", reservation.LabelOrRaw("1140"))
	assert.Equal(t, "7:00 pm", reservation.LabelOrRaw("19:00"))
	assert.Equal(t, "soon", reservation.LabelOrRaw("soon"))
}

func TestMinuteSlotID(t *testing.T) {
	id := reservation.MinuteSlotID(1140)
	assert.Equal(t, reservation.SlotID("1140"), id)
	assert.False(t, id.IsEmpty())
	assert.True(t, reservation.SlotID(" ").IsEmpty())
}
