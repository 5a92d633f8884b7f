// Package policy maps every protected action to the roles allowed to perform it.
package policy

import "servicehub/internal/domain"

type Action string

const (
	BookingCreate   Action = "booking.create"
	BookingList     Action = "booking.list"
	BookingView     Action = "booking.view"
	BookingAccept   Action = "booking.accept"
	BookingReject   Action = "booking.reject"
	BookingStart    Action = "booking.start"
	BookingComplete Action = "booking.complete"
	BookingCancel   Action = "booking.cancel"
	BookingPayment  Action = "booking.payment"

	ChatOpen Action = "chat.open"
	ChatList Action = "chat.list"
	ChatRead Action = "chat.read"
	ChatSend Action = "chat.send"

	ReviewCreate      Action = "review.create"
	ReviewRespond     Action = "review.respond"
	ReviewModerate    Action = "review.moderate"
	ReviewModerateQue Action = "review.moderation_queue"

	ComplaintCreate  Action = "complaint.create"
	ComplaintMine    Action = "complaint.mine"
	ComplaintList    Action = "complaint.list"
	ComplaintStatus  Action = "complaint.status"
	ComplaintAssign  Action = "complaint.assign"
	ComplaintResolve Action = "complaint.resolve"

	ServiceCreate Action = "service.create"
	ServiceUpdate Action = "service.update"
	ServiceDelete Action = "service.delete"

	AccountMe       Action = "account.me"
	ProviderApprove Action = "account.provider_approval"

	NotificationRead Action = "notification.read"
)

var (
	customer = domain.RoleCustomer
	provider = domain.RoleProvider
	admin    = domain.RoleAdmin
)

var table = map[Action][]domain.Role{
	BookingCreate:   {customer},
	BookingList:     {customer, provider, admin},
	BookingView:     {customer, provider, admin},
	BookingAccept:   {provider},
	BookingReject:   {provider},
	BookingStart:    {provider},
	BookingComplete: {provider},
	BookingCancel:   {customer},
	BookingPayment:  {provider},

	ChatOpen: {customer, provider},
	ChatList: {customer, provider},
	ChatRead: {customer, provider},
	ChatSend: {customer, provider},

	ReviewCreate:      {customer},
	ReviewRespond:     {provider},
	ReviewModerate:    {admin},
	ReviewModerateQue: {admin},

	ComplaintCreate:  {provider},
	ComplaintMine:    {provider},
	ComplaintList:    {admin},
	ComplaintStatus:  {admin},
	ComplaintAssign:  {admin},
	ComplaintResolve: {admin},

	ServiceCreate: {provider},
	ServiceUpdate: {provider},
	ServiceDelete: {provider},

	AccountMe:       {customer, provider, admin},
	ProviderApprove: {admin},

	NotificationRead: {customer, provider, admin},
}

// Allowed reports whether role may perform action. Unknown actions are denied.
func Allowed(role domain.Role, action Action) bool {
	for _, r := range table[action] {
		if r == role {
			return true
		}
	}
	return false
}
