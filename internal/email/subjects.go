package email

const (
	subjectAppointmentReminder = "Reminder: grooming appointment tomorrow"
	subjectWaitlistSlotOffer   = "A grooming slot just opened up"
)
