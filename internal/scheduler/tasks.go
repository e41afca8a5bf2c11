// Package scheduler provides delayed task scheduling over Redis.
package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskAppointmentReminder = "appointments.reminder"

const TaskWaitlistSlotOffer = "waitlist.slot_offer"

type AppointmentReminderPayload struct {
	AppointmentID  string `json:"appointmentId"`
	OrganizationID string `json:"organizationId"`
}

type WaitlistSlotOfferPayload struct {
	EntryID        string `json:"entryId"`
	OrganizationID string `json:"organizationId"`
	OfferedDate    string `json:"offeredDate"`
}

func NewAppointmentReminderTask(payload AppointmentReminderPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAppointmentReminder, data), nil
}

func ParseAppointmentReminderPayload(task *asynq.Task) (AppointmentReminderPayload, error) {
	var payload AppointmentReminderPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return AppointmentReminderPayload{}, err
	}
	return payload, nil
}

func NewWaitlistSlotOfferTask(payload WaitlistSlotOfferPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskWaitlistSlotOffer, data), nil
}

func ParseWaitlistSlotOfferPayload(task *asynq.Task) (WaitlistSlotOfferPayload, error) {
	var payload WaitlistSlotOfferPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return WaitlistSlotOfferPayload{}, err
	}
	return payload, nil
}
