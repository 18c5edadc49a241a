package tasks

import (
	"encoding/json"
	"testing"
	"time"

	"fintrack/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReminderTask(t *testing.T) {
	fireAt := time.Now().Add(48 * time.Hour)
	payload := models.ReminderPayload{
		ReminderID: "payment-7",
		Title:      "Payment due",
		Body:       "Rent - $1200.00 due on 2026-09-02",
		Tag:        "payment-7",
		FireDate:   fireAt.Format(time.RFC3339),
	}

	task, opts, err := NewReminderTask(payload, fireAt)
	require.NoError(t, err)
	assert.Equal(t, TypeSendReminder, task.Type())
	assert.Len(t, opts, 1)

	var decoded models.ReminderPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &decoded))
	assert.Equal(t, payload, decoded)
}
