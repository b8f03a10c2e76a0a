package domain

// Machine is an explicit state transition table.
// A state missing from the table is terminal.
type Machine[S ~string] struct {
	next map[S][]S
}

// NewMachine builds a Machine from an adjacency table.
func NewMachine[S ~string](table map[S][]S) Machine[S] {
	next := make(map[S][]S, len(table))
	for from, to := range table {
		next[from] = append([]S(nil), to...)
	}
	return Machine[S]{next: next}
}

// CanTransition reports whether the table contains the edge from → to.
func (m Machine[S]) CanTransition(from, to S) bool {
	for _, s := range m.next[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Terminal reports whether no transition leaves s.
func (m Machine[S]) Terminal(s S) bool {
	return len(m.next[s]) == 0
}

// OrderMachine is the seller-side order status machine.
// rider_assigned is only ever written by the dispatch engine and has no seller edges.
var OrderMachine = NewMachine(map[OrderStatus][]OrderStatus{
	OrderPending:        {OrderConfirmed, OrderCancelled},
	OrderConfirmed:      {OrderPreparing, OrderCancelled},
	OrderPreparing:      {OrderReadyForPickup, OrderCancelled},
	OrderReadyForPickup: {OrderOutForDelivery, OrderCancelled},
	OrderOutForDelivery: {OrderDelivered, OrderCancelled},
})

// AssignmentMachine is the courier-driven delivery assignment machine.
var AssignmentMachine = NewMachine(map[AssignmentStatus][]AssignmentStatus{
	AssignmentLookingForRider: {AssignmentRiderAssigned, AssignmentCancelled},
	AssignmentRiderAssigned:   {AssignmentPickedUp, AssignmentCancelled},
	AssignmentPickedUp:        {AssignmentDelivered, AssignmentCancelled},
})
