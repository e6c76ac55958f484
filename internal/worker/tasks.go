package worker

const (
	TaskSweepReservations = "reservation:sweep"
	TaskPurgeReservations = "reservation:purge"
	TaskPruneEvents       = "payment_event:prune"
	TaskRelayNotification = "notification:relay"
)

const queueMaintenance = "maintenance"
