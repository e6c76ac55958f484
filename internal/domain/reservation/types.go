package reservation

type Status string

const (
	StatusActive    Status = "active"
	StatusConsumed  Status = "consumed"
	StatusCancelled Status = "cancelled"
	StatusExpired   Status = "expired"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusConsumed, StatusCancelled, StatusExpired:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusConsumed || s == StatusCancelled || s == StatusExpired
}

type HolderType string

const (
	HolderUser  HolderType = "user"
	HolderGuest HolderType = "guest"
)

func (t HolderType) IsValid() bool {
	return t == HolderUser || t == HolderGuest
}
