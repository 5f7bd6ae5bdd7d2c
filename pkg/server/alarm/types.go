package alarm

type AlarmOutput interface {
	IsAlarmOn() (bool, error)
	SetAlarm(on bool) error
}

type Handler struct {
	alarm AlarmOutput
}
