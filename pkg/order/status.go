package order

// Order lifecycle. Status only moves forward along this chain; there is no
// "send back to kitchen". StatusCancelled is terminal and has no modeled
// transition into it: cancelling is an operator action performed directly on
// the store, not part of this state machine.
const (
	StatusPending    = "pendente"
	StatusPreparing  = "preparando"
	StatusReady      = "pronto"
	StatusDelivering = "em_entrega"
	StatusDelivered  = "entregue"
	StatusCancelled  = "cancelado"
)

var forward = map[string]string{
	StatusPending:    StatusPreparing,
	StatusPreparing:  StatusReady,
	StatusReady:      StatusDelivering,
	StatusDelivering: StatusDelivered,
}

// CanTransition reports whether from→to is a legal single step of the
// lifecycle. Terminal states (entregue, cancelado) have no outgoing step.
func CanTransition(from, to string) bool {
	next, ok := forward[from]
	return ok && next == to
}

// IsTerminal reports whether an order in this status has left every active
// queue.
func IsTerminal(status string) bool {
	return status == StatusDelivered || status == StatusCancelled
}
