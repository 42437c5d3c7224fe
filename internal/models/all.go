package models

// All lists every table the service owns, in migration order.
func All() []interface{} {
	return []interface{}{
		&Client{},
		&Project{},
		&Incident{},
		&Ticket{},
		&TimelineEvent{},
		&TrafficLog{},
	}
}
