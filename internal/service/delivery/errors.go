package delivery

import "service-dispatch/internal/apperr"

var (
	errEmptyOrderID      = apperr.New(apperr.ErrInvalid, apperr.CodeInvalidInput, "orderId is required")
	errNullPickupAddress = apperr.New(apperr.ErrInvalid, apperr.CodeNullSellerPickupAddress, "seller has no pickup address with coordinates")
	errOrderNotFound     = apperr.New(apperr.ErrNotFound, apperr.CodeOrderNotFound, "order not found")
	errOrderNotReady     = apperr.New(apperr.ErrConflict, apperr.CodeOrderNotReady, "order is not ready for pickup")
	errAssignmentExists  = apperr.New(apperr.ErrConflict, apperr.CodeAssignmentExists, "order already has a delivery assignment")

	errAssignmentNotFound = apperr.New(apperr.ErrNotFound, apperr.CodeAssignmentNotFound, "assignment not found")
	errAssignmentNotOwned = apperr.New(apperr.ErrForbidden, apperr.CodeAssignmentNotOwned, "assignment is not assigned to you")
	errCourierOccupied    = apperr.New(apperr.ErrConflict, apperr.CodeCourierOccupied, "courier already has an active delivery")
	errInvalidTransition  = apperr.New(apperr.ErrConflict, apperr.CodeInvalidStatusTransition, "status transition is not allowed")

	errAlreadyTaken = apperr.New(apperr.ErrConflict, apperr.CodeAssignmentNotAvailable, "assignment was already accepted by another courier")
	errNotOffered   = apperr.New(apperr.ErrConflict, apperr.CodeAssignmentNotAvailable, "assignment was not offered to you")
	errOfferClosed  = apperr.New(apperr.ErrConflict, apperr.CodeAssignmentNotAvailable, "your offer for this assignment is no longer pending")
	errNoLongerOpen = apperr.New(apperr.ErrConflict, apperr.CodeAssignmentNotAvailable, "assignment is no longer available")
)
