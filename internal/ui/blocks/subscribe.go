package blocks

const (
	SubscribeFormID   = "subscribe-form"
	SubscribePath     = "/newsletter/subscribe"
	SubscribeFormPath = "/newsletter/form"
)
