package model

// SubscriptionState classifies a user's live membership in the gate channel.
type SubscriptionState string

const (
	SubscriptionStateSubscribed    SubscriptionState = "subscribed"
	SubscriptionStateNotSubscribed SubscriptionState = "not_subscribed"
	SubscriptionStateCheckFailed   SubscriptionState = "check_failed"
)

// SubscriptionCheck is the tagged outcome of one live membership check.
// Reason is only set for CheckFailed and exists for logging, not access control.
type SubscriptionCheck struct {
	State  SubscriptionState
	Reason string
}

// Allowed collapses the outcome for access control: a failed check is treated
// as not subscribed so the gate fails closed.
func (c SubscriptionCheck) Allowed() bool {
	return c.State == SubscriptionStateSubscribed
}

// subscribedMemberStatuses are the chat-member statuses Telegram reports for
// users who count as subscribed to the channel.
var subscribedMemberStatuses = map[string]struct{}{
	"member":        {},
	"administrator": {},
	"creator":       {},
}

// ClassifyMemberStatus maps a raw chat-member status string to an outcome.
func ClassifyMemberStatus(status string) SubscriptionCheck {
	if _, ok := subscribedMemberStatuses[status]; ok {
		return SubscriptionCheck{State: SubscriptionStateSubscribed}
	}
	return SubscriptionCheck{State: SubscriptionStateNotSubscribed}
}

// FailedCheck builds a CheckFailed outcome carrying the failure reason.
func FailedCheck(reason string) SubscriptionCheck {
	return SubscriptionCheck{State: SubscriptionStateCheckFailed, Reason: reason}
}
