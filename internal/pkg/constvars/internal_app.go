package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
)

const (
	DefaultCurrency = "MAD"

	VideoCallRoomPrefix = "teleconsult-"

	MobileMoneyPaymentIDPrefix = "MM_"
	PayPalPaymentIDPrefix      = "PP_"

	BookingLockKeyFormat = "booking_lock:doctor:%d"
)

const (
	DateOnlyFormat      = "2006-01-02"
	SlotTimeOfDayFormat = "15:04"
)

const ResponseUnknown = "unknown"
